package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldline/conduit/pkg/graph"
	"github.com/fieldline/conduit/pkg/persist"
)

// Store implements ports.WorkflowStore on the local filesystem.
// Workflows are stored as persisted-format JSON files in a directory,
// so the on-disk form is exactly what the serializer emits.
type Store struct {
	BasePath string
}

// NewStore creates a file store rooted at basePath.
// If basePath is empty, it defaults to ".conduit/workflows".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".conduit", "workflows")
	}
	return &Store{BasePath: basePath}
}

// Save writes the workflow as a persisted JSON file.
func (f *Store) Save(ctx context.Context, w *graph.Workflow) error {
	if w == nil || w.ID == "" {
		return fmt.Errorf("workflow ID cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure workflow directory: %w", err)
	}

	data, err := persist.Encode(w)
	if err != nil {
		return fmt.Errorf("failed to serialize workflow: %w", err)
	}

	path := filepath.Join(f.BasePath, w.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write workflow file: %w", err)
	}
	return nil
}

// Load reads and deserializes a workflow file.
func (f *Store) Load(ctx context.Context, id string) (*graph.Workflow, error) {
	if id == "" {
		return nil, fmt.Errorf("workflow ID cannot be empty")
	}

	path := filepath.Join(f.BasePath, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, graph.ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}

	w, err := persist.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow file: %w", err)
	}
	return w, nil
}

// Delete removes the workflow file.
func (f *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("workflow ID cannot be empty")
	}

	err := os.Remove(filepath.Join(f.BasePath, id+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete workflow file: %w", err)
	}
	return nil
}

// List returns the IDs of all stored workflows.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			ids = append(ids, name[:len(name)-len(".json")])
		}
	}
	return ids, nil
}
