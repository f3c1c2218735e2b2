// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package vector

import (
	"sort"
	"sync"

	"github.com/tomtom215/framescout/internal/retrieval"
)

// Registry holds the named item indexes a query may select.
type Registry struct {
	mu          sync.RWMutex
	indexes     map[string]*Adapter
	defaultName string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{indexes: make(map[string]*Adapter)}
}

// Register adds or replaces the index under name. The first registered
// index becomes the default.
func (r *Registry) Register(name string, index Index) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexes[name] = NewAdapter(name, index)
	if r.defaultName == "" {
		r.defaultName = name
	}
}

// SetDefault selects the index used for an empty name.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.indexes[name]; !ok {
		return &retrieval.RetrievalError{Op: "lookup", Index: name, Err: retrieval.ErrUnknownIndex}
	}
	r.defaultName = name
	return nil
}

// Default returns the default index name.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// Get returns the adapter registered under name, or the default for "".
func (r *Registry) Get(name string) (*Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		name = r.defaultName
	}
	a, ok := r.indexes[name]
	if !ok {
		return nil, &retrieval.RetrievalError{Op: "lookup", Index: name, Err: retrieval.ErrUnknownIndex}
	}
	return a, nil
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.indexes))
	for name := range r.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
