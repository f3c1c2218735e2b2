// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package storage persists item embeddings in BadgerDB.
//
// Each vector is stored under the key "emb:<id>" as little-endian float32
// values. The store serves the Embedder contract used by the rerankers and
// can seed an in-process FlatIndex for development datasets.
package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/retrieval"
	"github.com/tomtom215/framescout/internal/retrieval/vector"
)

const keyPrefix = "emb:"

var errStopIteration = errors.New("stop iteration")

// Config configures the embedding store.
type Config struct {
	// Path is the Badger data directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps all data in memory.
	InMemory bool
	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// EmbeddingStore is a Badger-backed item embedding table.
type EmbeddingStore struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens or creates the store described by cfg.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func Open(cfg Config, logger zerolog.Logger) (*EmbeddingStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open embedding store: %w", err)
	}
	return &EmbeddingStore{
		db:     db,
		logger: logger.With().Str("component", "embedding_store").Logger(),
	}, nil
}

// Close closes the underlying database.
func (s *EmbeddingStore) Close() error {
	return s.db.Close()
}

// RunGC reclaims value log space until Badger reports nothing left to
// rewrite. In-memory stores have no value log and return nil.
func (s *EmbeddingStore) RunGC(discardRatio float64) error {
	rewrites := 0
	for {
		err := s.db.RunValueLogGC(discardRatio)
		switch {
		case err == nil:
			rewrites++
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			if rewrites > 0 {
				s.logger.Debug().Int("rewrites", rewrites).Msg("Value log GC reclaimed space")
			}
			return nil
		default:
			return fmt.Errorf("value log gc: %w", err)
		}
	}
}

// Put stores the embedding of id, replacing any previous value.
func (s *EmbeddingStore) Put(_ context.Context, id int64, vec []float32) error {
	if len(vec) == 0 {
		return fmt.Errorf("embedding for %d is empty", id)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key(id), encode(vec)))
	})
}

// PutBatch stores many embeddings in one write batch.
func (s *EmbeddingStore) PutBatch(_ context.Context, vectors map[int64][]float32) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for id, vec := range vectors {
		if len(vec) == 0 {
			return fmt.Errorf("embedding for %d is empty", id)
		}
		if err := wb.Set(key(id), encode(vec)); err != nil {
			return fmt.Errorf("batch set %d: %w", id, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush embeddings: %w", err)
	}
	return nil
}

// Get returns the embedding of id, or an error wrapping
// retrieval.ErrMissingEmbedding.
func (s *EmbeddingStore) Get(_ context.Context, id int64) ([]float32, error) {
	var vec []float32
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("item %d: %w", id, retrieval.ErrMissingEmbedding)
		}
		if err != nil {
			return fmt.Errorf("get embedding %d: %w", id, err)
		}
		return item.Value(func(val []byte) error {
			vec, err = decode(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return vec, nil
}

// Embedding implements retrieval.Embedder.
func (s *EmbeddingStore) Embedding(ctx context.Context, id int64) ([]float32, error) {
	return s.Get(ctx, id)
}

// Iterate calls fn for every stored embedding in key order. Returning an
// error from fn stops the iteration and is returned.
func (s *EmbeddingStore) Iterate(ctx context.Context, fn func(id int64, vec []float32) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			id, err := parseKey(item.Key())
			if err != nil {
				return err
			}
			var vec []float32
			if err := item.Value(func(val []byte) error {
				vec, err = decode(val)
				return err
			}); err != nil {
				return err
			}
			if err := fn(id, vec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Len returns the number of stored embeddings.
func (s *EmbeddingStore) Len() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// ImportJSON loads embeddings from a JSON object mapping item id strings
// to float arrays and returns the number stored.
func (s *EmbeddingStore) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	var raw map[string][]float32
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return 0, fmt.Errorf("decode embeddings: %w", err)
	}

	vectors := make(map[int64][]float32, len(raw))
	for k, vec := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(k), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("embedding key %q: %w", k, err)
		}
		vectors[id] = vec
	}
	if err := s.PutBatch(ctx, vectors); err != nil {
		return 0, err
	}
	s.logger.Info().Int("count", len(vectors)).Msg("Imported item embeddings")
	return len(vectors), nil
}

// Dimension returns the length of the first stored embedding, or 0 when
// the store is empty.
func (s *EmbeddingStore) Dimension(ctx context.Context) (int, error) {
	dim := 0
	err := s.Iterate(ctx, func(_ int64, vec []float32) error {
		dim = len(vec)
		return errStopIteration
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		return 0, err
	}
	return dim, nil
}

// BuildFlatIndex copies every stored embedding into an exact in-memory
// index of dimension dim.
func (s *EmbeddingStore) BuildFlatIndex(ctx context.Context, dim int) (*vector.FlatIndex, error) {
	idx := vector.NewFlatIndex(dim)
	if err := s.Iterate(ctx, idx.Add); err != nil {
		return nil, fmt.Errorf("build flat index: %w", err)
	}
	return idx, nil
}

func key(id int64) []byte {
	return []byte(keyPrefix + strconv.FormatInt(id, 10))
}

func parseKey(k []byte) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(string(k), keyPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed embedding key %q: %w", k, err)
	}
	return id, nil
}

func encode(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decode(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("embedding value has %d bytes, not a multiple of 4", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec, nil
}
