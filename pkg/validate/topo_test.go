package validate

import (
	"testing"

	"github.com/fieldline/conduit/pkg/catalog"
	"github.com/fieldline/conduit/pkg/graph"
)

// chainCatalog has a single relay type so trigger topology tests stay
// focused on the graph shape.
func chainCatalog() *catalog.Registry {
	return catalog.NewRegistry(catalog.NodeDefinition{
		Type: "test.relay",
		Inputs: []catalog.Port{
			{ID: "go", Kind: catalog.KindTrigger, Type: catalog.TypeTrigger},
		},
		Outputs: []catalog.Port{
			{ID: "done", Kind: catalog.KindTrigger, Type: catalog.TypeTrigger},
			{ID: "value", Kind: catalog.KindData, Type: catalog.TypeString},
		},
	})
}

func relay(ids ...string) []graph.Node {
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = graph.Node{ID: id, Type: "test.relay"}
	}
	return nodes
}

func trigger(id, from, to string) graph.Edge {
	return graph.Edge{ID: id, Source: from, SourceHandle: "done", Target: to, TargetHandle: "go"}
}

func TestValidate_CycleDetected(t *testing.T) {
	w := &graph.Workflow{
		Nodes: relay("a", "b", "c"),
		Edges: []graph.Edge{
			trigger("e1", "a", "b"),
			trigger("e2", "b", "c"),
			trigger("e3", "c", "a"),
		},
	}
	r := Validate(w, chainCatalog())
	if n := countKind(r, KindCycleDetected); n < 1 {
		t.Errorf("cycle_detected count = %d, want at least 1", n)
	}
}

func TestValidate_AcyclicChainClean(t *testing.T) {
	w := &graph.Workflow{
		Nodes: relay("a", "b", "c"),
		Edges: []graph.Edge{
			trigger("e1", "a", "b"),
			trigger("e2", "b", "c"),
		},
	}
	r := Validate(w, chainCatalog())
	if n := countKind(r, KindCycleDetected); n != 0 {
		t.Errorf("acyclic chain flagged %d cycles", n)
	}
	if n := countKind(r, KindUnreachableNode); n != 0 {
		t.Errorf("chain from root flagged %d unreachable nodes", n)
	}
}

func TestValidate_DataEdgesExcludedFromTopology(t *testing.T) {
	// A data-edge "cycle" is not an execution cycle.
	w := &graph.Workflow{
		Nodes: relay("a", "b"),
		Edges: []graph.Edge{
			trigger("e1", "a", "b"),
			{ID: "e2", Source: "b", SourceHandle: "value", Target: "a", TargetHandle: "go", Kind: graph.EdgeKindData},
		},
	}
	r := Validate(w, chainCatalog())
	if n := countKind(r, KindCycleDetected); n != 0 {
		t.Errorf("data edge participated in cycle detection: %d issues", n)
	}
}

func TestValidate_UnreachableNode(t *testing.T) {
	// d and e trigger each other but nothing roots them.
	w := &graph.Workflow{
		Nodes: relay("a", "b", "d", "e"),
		Edges: []graph.Edge{
			trigger("e1", "a", "b"),
			trigger("e2", "d", "e"),
			trigger("e3", "e", "d"),
		},
	}
	r := Validate(w, chainCatalog())

	unreachable := map[string]bool{}
	for _, issue := range r.Issues {
		if issue.Kind == KindUnreachableNode {
			if issue.Severity != SeverityWarning {
				t.Errorf("unreachable severity = %q, want warning", issue.Severity)
			}
			unreachable[issue.NodeID] = true
		}
	}
	if !unreachable["d"] || !unreachable["e"] {
		t.Errorf("unreachable nodes = %v, want d and e", unreachable)
	}
	if unreachable["a"] || unreachable["b"] {
		t.Errorf("root-reachable nodes flagged: %v", unreachable)
	}
}

func TestValidate_SelfLoop(t *testing.T) {
	w := &graph.Workflow{
		Nodes: relay("a"),
		Edges: []graph.Edge{trigger("e1", "a", "a")},
	}
	r := Validate(w, chainCatalog())
	if n := countKind(r, KindCycleDetected); n != 1 {
		t.Errorf("self loop produced %d cycle issues, want 1", n)
	}
}

func TestValidate_EmptyGraph(t *testing.T) {
	r := Validate(&graph.Workflow{}, chainCatalog())
	if len(r.Issues) != 0 {
		t.Errorf("empty graph produced issues: %+v", r.Issues)
	}
}
