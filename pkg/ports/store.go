// Package ports declares the driven-side interfaces the hosting
// surfaces are wired through. Adapters live under internal/adapters.
package ports

import (
	"context"

	"github.com/fieldline/conduit/pkg/graph"
)

// WorkflowStore persists workflow definitions at the save/load
// boundary the serializer exists for.
type WorkflowStore interface {
	// Save persists the workflow under its ID.
	Save(ctx context.Context, w *graph.Workflow) error

	// Load retrieves a workflow by ID.
	// Returns graph.ErrWorkflowNotFound if it does not exist.
	Load(ctx context.Context, id string) (*graph.Workflow, error)

	// Delete removes a workflow by ID. Deleting a missing workflow is
	// not an error.
	Delete(ctx context.Context, id string) error

	// List returns the stored workflow IDs.
	List(ctx context.Context) ([]string, error)
}
