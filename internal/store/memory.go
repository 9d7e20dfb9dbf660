package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Daniangio/golem/internal/models"
)

// MemoryStore keeps every document in process memory behind one mutex. It is
// the default for tests and for running without a database.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]*models.GameDoc
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*models.GameDoc)}
}

func (s *MemoryStore) Create(_ context.Context, doc *models.GameDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.GameDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]*models.GameDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.GameDoc
	for _, doc := range s.docs {
		if f.matches(doc) {
			out = append(out, doc.Clone())
		}
	}
	// Newest first, same ordering as the SQL backend.
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// RunTransaction holds the store lock for the whole callback, so transactions
// are trivially serialized and never conflict.
func (s *MemoryStore) RunTransaction(_ context.Context, id string, fn TxFunc) (*models.GameDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	working := doc.Clone()
	deleteDoc, err := fn(working)
	if err != nil {
		return nil, err
	}
	if deleteDoc {
		delete(s.docs, id)
		return nil, nil
	}
	s.docs[id] = working
	return working.Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, doc *models.GameDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; !ok {
		return ErrNotFound
	}
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
