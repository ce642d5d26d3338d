package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/conduit/pkg/graph"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := NewFromClient(client, opts...)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func sampleWorkflow(id string) *graph.Workflow {
	return &graph.Workflow{
		ID:   id,
		Name: "Nightly Backup",
		Nodes: []graph.Node{
			{ID: "start", Type: "core.start", Label: "Start"},
			{ID: "backup", Type: "net.config_backup", Label: "Backup",
				Parameters: map[string]any{"target": "10.0.0.1"}},
		},
		Edges: []graph.Edge{
			{ID: "start-backup", Source: "start", SourceHandle: "trigger",
				Target: "backup", TargetHandle: "trigger", Kind: graph.EdgeKindTrigger},
		},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	w := sampleWorkflow("wf-1")
	require.NoError(t, store.Save(ctx, w))

	got, err := store.Load(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "wf-1", got.ID)
	assert.Equal(t, "Nightly Backup", got.Name)
	require.Len(t, got.Nodes, 2)
	assert.Equal(t, "net.config_backup", got.Nodes[1].Type)
	assert.Equal(t, "10.0.0.1", got.Nodes[1].Parameters["target"])
	require.Len(t, got.Edges, 1)
	assert.Equal(t, graph.EdgeKindTrigger, got.Edges[0].Kind)

	// Round trip through the persisted form fills canonical defaults.
	assert.Equal(t, graph.DefaultSettings(), got.Settings)
	assert.Equal(t, graph.DefaultViewport(), got.Viewport)
}

func TestStore_LoadNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, graph.ErrWorkflowNotFound)
}

func TestStore_SaveEmptyID(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Save(context.Background(), &graph.Workflow{})
	assert.Error(t, err)
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-1")))
	require.NoError(t, store.Delete(ctx, "wf-1"))

	_, err := store.Load(ctx, "wf-1")
	assert.ErrorIs(t, err, graph.ErrWorkflowNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_List(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-a")))
	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-b")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wf-a", "wf-b"}, ids)
}

func TestStore_ListPrunesExpired(t *testing.T) {
	store, mr := newTestStore(t, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-a")))
	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-b")))

	mr.FastForward(2 * time.Minute)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_WithPrefix(t *testing.T) {
	store, mr := newTestStore(t, WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleWorkflow("wf-1")))

	assert.True(t, mr.Exists("custom:wf-1"))
	assert.True(t, mr.Exists("custom:index"))
}
