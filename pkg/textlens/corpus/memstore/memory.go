package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/textlens/pkg/textlens/analysis"
	"github.com/cognicore/textlens/pkg/textlens/corpus"
)

// Store is an in-memory implementation of corpus.Store.
type Store struct {
	mu     sync.RWMutex
	labels []string
	docs   map[string]analysis.Result
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{docs: make(map[string]analysis.Result)}
}

// Close implements corpus.Store.
func (s *Store) Close() error { return nil }

// Register writes r under label, replacing any previous entry.
func (s *Store) Register(ctx context.Context, label string, r analysis.Result) error {
	if err := corpus.CheckEntry(label, r); err != nil {
		return err
	}
	cp := r.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[label]; !ok {
		s.labels = append(s.labels, label)
	}
	s.docs[label] = cp
	return nil
}

// Get returns the document registered under label.
func (s *Store) Get(ctx context.Context, label string) (corpus.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.docs[label]
	if !ok {
		return corpus.Document{}, false, nil
	}
	return corpus.Document{Label: label, Result: r.Clone()}, true, nil
}

// Labels returns labels in registration order.
func (s *Store) Labels(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out, nil
}

// Documents returns a copy of every document in label order.
func (s *Store) Documents(ctx context.Context) ([]corpus.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]corpus.Document, 0, len(s.labels))
	for _, label := range s.labels {
		out = append(out, corpus.Document{Label: label, Result: s.docs[label].Clone()})
	}
	return out, nil
}

// Len returns the number of registered documents.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.labels), nil
}
