package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fieldline/conduit/pkg/graph"
)

// Store implements ports.WorkflowStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*graph.Workflow
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*graph.Workflow),
	}
}

// Save persists the workflow in memory.
func (s *Store) Save(ctx context.Context, w *graph.Workflow) error {
	if w == nil || w.ID == "" {
		return fmt.Errorf("workflow ID cannot be empty")
	}

	// Deep copy so the caller can't mutate stored state through
	// retained pointers.
	cp := w.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[w.ID] = cp
	return nil
}

// Load retrieves the workflow from memory.
func (s *Store) Load(ctx context.Context, id string) (*graph.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.data[id]
	if !ok {
		return nil, graph.ErrWorkflowNotFound
	}
	// Copy on read as well.
	return w.Clone(), nil
}

// Delete removes the workflow.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored workflow IDs, sorted for stable output.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
