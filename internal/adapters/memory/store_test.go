package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/conduit/pkg/graph"
)

func sampleWorkflow(id string) *graph.Workflow {
	return &graph.Workflow{
		ID:   id,
		Name: "Ping Sweep",
		Nodes: []graph.Node{
			{ID: "start", Type: "core.start", Label: "Start"},
			{ID: "ping", Type: "net.ping_sweep", Label: "Ping",
				Parameters: map[string]any{"subnet": "10.0.0.0/24"}},
		},
		Edges: []graph.Edge{
			{ID: "start-ping", Source: "start", SourceHandle: "trigger",
				Target: "ping", TargetHandle: "trigger", Kind: graph.EdgeKindTrigger},
		},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-1")))

	got, err := store.Load(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "Ping Sweep", got.Name)
	require.Len(t, got.Nodes, 2)
}

func TestStore_LoadNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, graph.ErrWorkflowNotFound)
}

func TestStore_SaveEmptyID(t *testing.T) {
	store := NewStore()

	err := store.Save(context.Background(), &graph.Workflow{})
	assert.Error(t, err)
}

func TestStore_Isolation(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	w := sampleWorkflow("wf-1")
	require.NoError(t, store.Save(ctx, w))

	// Mutating the saved value must not leak into the store.
	w.Name = "mutated"
	w.Nodes[1].Parameters["subnet"] = "changed"

	got, err := store.Load(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "Ping Sweep", got.Name)
	assert.Equal(t, "10.0.0.0/24", got.Nodes[1].Parameters["subnet"])

	// And mutating a loaded value must not leak either.
	got.Nodes[1].Parameters["subnet"] = "changed again"
	again, err := store.Load(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", again.Nodes[1].Parameters["subnet"])
}

func TestStore_DeleteAndList(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-b")))
	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-a")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"wf-a", "wf-b"}, ids)

	require.NoError(t, store.Delete(ctx, "wf-a"))
	require.NoError(t, store.Delete(ctx, "never-existed"))

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"wf-b"}, ids)
}
