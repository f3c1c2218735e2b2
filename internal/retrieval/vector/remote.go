// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package vector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/framescout/internal/metrics"
	"github.com/tomtom215/framescout/internal/retrieval"
)

// maxResponseBytes bounds the body read from a remote service.
const maxResponseBytes = 64 << 20

// RemoteConfig configures an HTTP client for an external index or encoder.
type RemoteConfig struct {
	// Name identifies the service in logs, metrics and errors.
	Name string

	// URL is the service base URL.
	URL string

	// Timeout bounds a single request.
	// Default: 10s.
	Timeout time.Duration

	// RequestsPerSecond limits outgoing requests. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the limiter bucket size.
	// Default: 10.
	Burst int

	// FailureThreshold opens the breaker after this many consecutive failures.
	// Default: 5.
	FailureThreshold uint32

	// OpenTimeout is how long the breaker stays open before probing.
	// Default: 30s.
	OpenTimeout time.Duration
}

func (c *RemoteConfig) withDefaults() RemoteConfig {
	out := *c
	out.URL = strings.TrimRight(out.URL, "/")
	if out.Timeout <= 0 {
		out.Timeout = 10 * time.Second
	}
	if out.Burst <= 0 {
		out.Burst = 10
	}
	if out.FailureThreshold == 0 {
		out.FailureThreshold = 5
	}
	if out.OpenTimeout <= 0 {
		out.OpenTimeout = 30 * time.Second
	}
	return out
}

// remoteClient posts JSON to a service behind a breaker and limiter.
type remoteClient struct {
	name    string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger
}

func newRemoteClient(cfg *RemoteConfig, logger zerolog.Logger) *remoteClient {
	c := cfg.withDefaults()

	limit := rate.Inf
	if c.RequestsPerSecond > 0 {
		limit = rate.Limit(c.RequestsPerSecond)
	}

	log := logger.With().Str("component", "vector").Str("remote", c.Name).Logger()
	metrics.CircuitBreakerState.WithLabelValues(c.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        c.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     c.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &remoteClient{
		name:    c.Name,
		baseURL: c.URL,
		client:  &http.Client{Timeout: c.Timeout},
		limiter: rate.NewLimiter(limit, c.Burst),
		cb:      cb,
		logger:  log,
	}
}

// post sends body to path and returns the raw response. Transport failures
// and rejected calls wrap retrieval.ErrIndexUnavailable.
func (c *remoteClient) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	data, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", retrieval.ErrIndexUnavailable, err)
		}
		defer func() { _ = resp.Body.Close() }()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %s returned HTTP %d", retrieval.ErrIndexUnavailable, path, resp.StatusCode)
		}
		return raw, nil
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		return nil, fmt.Errorf("%w: %w", retrieval.ErrIndexUnavailable, err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	return data, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

type searchRequest struct {
	Vector []float32 `json:"vector"`
	K      int       `json:"k"`
}

type searchResponse struct {
	Distances []float32 `json:"distances"`
	IDs       []int64   `json:"ids"`
}

// RemoteIndex queries an external ANN service:
//
//	POST {url}/search {"vector": [...], "k": 50}
//	-> {"distances": [...], "ids": [...]}
type RemoteIndex struct {
	remote *remoteClient
}

// NewRemoteIndex creates a client for the ANN service at cfg.URL.
func NewRemoteIndex(cfg *RemoteConfig, logger zerolog.Logger) *RemoteIndex {
	return &RemoteIndex{remote: newRemoteClient(cfg, logger)}
}

// Search implements Index.
func (r *RemoteIndex) Search(ctx context.Context, vector []float32, k int) ([]float32, []int64, error) {
	raw, err := r.remote.post(ctx, "/search", searchRequest{Vector: vector, K: k})
	if err != nil {
		return nil, nil, &retrieval.RetrievalError{Op: "search", Index: r.remote.name, Err: err}
	}
	var resp searchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, &retrieval.RetrievalError{Op: "search", Index: r.remote.name, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.Distances, resp.IDs, nil
}

type encodeRequest struct {
	Text string `json:"text"`
}

type encodeResponse struct {
	Vector []float32 `json:"vector"`
}

// RemoteEncoder embeds query text with an external encoder service:
//
//	POST {url}/encode {"text": "..."} -> {"vector": [...]}
type RemoteEncoder struct {
	remote *remoteClient
}

// NewRemoteEncoder creates a client for the encoder service at cfg.URL.
func NewRemoteEncoder(cfg *RemoteConfig, logger zerolog.Logger) *RemoteEncoder {
	return &RemoteEncoder{remote: newRemoteClient(cfg, logger)}
}

// EncodeText implements retrieval.TextEncoder.
func (e *RemoteEncoder) EncodeText(ctx context.Context, text string) ([]float32, error) {
	raw, err := e.remote.post(ctx, "/encode", encodeRequest{Text: text})
	if err != nil {
		return nil, &retrieval.RetrievalError{Op: "encode", Index: e.remote.name, Err: err}
	}
	var resp encodeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &retrieval.RetrievalError{Op: "encode", Index: e.remote.name, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(resp.Vector) == 0 {
		return nil, &retrieval.RetrievalError{Op: "encode", Index: e.remote.name, Err: errors.New("empty embedding")}
	}
	return resp.Vector, nil
}
