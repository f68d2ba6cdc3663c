package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/indicator/pkg/domain"
)

// Source implements ports.DocumentStore using an in-memory map.
// It is safe for concurrent use.
type Source struct {
	mu   sync.RWMutex
	docs map[string]*domain.Document
}

// NewSource creates a Source holding docs. Every document needs an ID.
func NewSource(docs ...*domain.Document) (*Source, error) {
	s := &Source{docs: make(map[string]*domain.Document, len(docs))}
	for _, doc := range docs {
		if err := s.Put(doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewFromRaw decodes generic trees keyed by ID.
// This handles decoding automatically, improving DX for tests.
func NewFromRaw(raw map[string]map[string]any) (*Source, error) {
	s := &Source{docs: make(map[string]*domain.Document, len(raw))}
	for id, tree := range raw {
		doc, err := domain.DecodeDocument(tree)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		doc.ID = id
		if err := s.Put(doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Put stores doc, replacing any document with the same ID.
func (s *Source) Put(doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

// Get retrieves a document by ID.
func (s *Source) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", domain.ErrTraceNotFound, id)
	}
	return doc, nil
}

// List returns all document IDs.
func (s *Source) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

// Save implements ports.DocumentStore.
func (s *Source) Save(_ context.Context, doc *domain.Document) error {
	return s.Put(doc)
}

// Delete removes the document with the given ID.
func (s *Source) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}
