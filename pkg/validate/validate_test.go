package validate

import (
	"testing"

	"github.com/fieldline/conduit/pkg/catalog"
	"github.com/fieldline/conduit/pkg/graph"
)

// testCatalog gives precise control over port kinds and types.
func testCatalog() *catalog.Registry {
	return catalog.NewRegistry(
		catalog.NodeDefinition{
			Type: "test.source",
			Outputs: []catalog.Port{
				{ID: "done", Kind: catalog.KindTrigger, Type: catalog.TypeTrigger},
				{ID: "text", Kind: catalog.KindData, Type: catalog.TypeString},
				{ID: "blob", Kind: catalog.KindData, Type: catalog.TypeAny},
			},
			Platforms: []catalog.Platform{catalog.PlatformWindows},
		},
		catalog.NodeDefinition{
			Type: "test.sink",
			Inputs: []catalog.Port{
				{ID: "go", Kind: catalog.KindTrigger, Type: catalog.TypeTrigger},
				{ID: "num", Kind: catalog.KindData, Type: catalog.TypeNumber},
				{ID: "anything", Kind: catalog.KindData, Type: catalog.TypeAny},
			},
			Outputs: []catalog.Port{
				{ID: "done", Kind: catalog.KindTrigger, Type: catalog.TypeTrigger},
			},
			Platforms: []catalog.Platform{catalog.PlatformLinux},
		},
		catalog.NodeDefinition{
			Type: "test.universal",
			Inputs: []catalog.Port{
				{ID: "go", Kind: catalog.KindTrigger, Type: catalog.TypeTrigger},
			},
			Outputs: []catalog.Port{
				{ID: "done", Kind: catalog.KindTrigger, Type: catalog.TypeTrigger},
			},
			Platforms: []catalog.Platform{catalog.PlatformAny},
		},
	)
}

func pair(edges ...graph.Edge) *graph.Workflow {
	return &graph.Workflow{
		Nodes: []graph.Node{
			{ID: "a", Type: "test.source"},
			{ID: "b", Type: "test.sink"},
		},
		Edges: edges,
	}
}

func countKind(r Report, kind Kind) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

func TestValidate_TriggerToTriggerClean(t *testing.T) {
	w := pair(graph.Edge{
		ID: "e1", Source: "a", SourceHandle: "done", Target: "b", TargetHandle: "go",
	})
	r := Validate(w, testCatalog())
	if n := countKind(r, KindTypeMismatch); n != 0 {
		t.Errorf("trigger-to-trigger edge produced %d type_mismatch issues", n)
	}
}

func TestValidate_StringToNumberMismatch(t *testing.T) {
	w := pair(
		graph.Edge{ID: "e1", Source: "a", SourceHandle: "done", Target: "b", TargetHandle: "go"},
		graph.Edge{ID: "e2", Source: "a", SourceHandle: "text", Target: "b", TargetHandle: "num"},
	)
	r := Validate(w, testCatalog())
	if n := countKind(r, KindTypeMismatch); n != 1 {
		t.Fatalf("type_mismatch count = %d, want exactly 1", n)
	}
	for _, issue := range r.ByEdge("a", "b") {
		if issue.Kind == KindTypeMismatch && issue.Severity != SeverityError {
			t.Errorf("severity = %q, want error", issue.Severity)
		}
	}
}

func TestValidate_AnySideIsCompatible(t *testing.T) {
	for _, e := range []graph.Edge{
		{ID: "e1", Source: "a", SourceHandle: "blob", Target: "b", TargetHandle: "num"},
		{ID: "e2", Source: "a", SourceHandle: "text", Target: "b", TargetHandle: "anything"},
	} {
		r := Validate(pair(e), testCatalog())
		if n := countKind(r, KindTypeMismatch); n != 0 {
			t.Errorf("edge %s: any-typed side produced %d type_mismatch issues", e.ID, n)
		}
	}
}

func TestValidate_KindConfusionIsTypeMismatch(t *testing.T) {
	// Data output wired into a trigger input.
	w := pair(graph.Edge{
		ID: "e1", Source: "a", SourceHandle: "text", Target: "b", TargetHandle: "go",
	})
	r := Validate(w, testCatalog())
	if n := countKind(r, KindTypeMismatch); n != 1 {
		t.Errorf("kind confusion produced %d type_mismatch issues, want 1", n)
	}
}

func TestValidate_PlatformMismatchWarning(t *testing.T) {
	// WINDOWS source feeding LINUX sink: one warning, not an error.
	w := pair(graph.Edge{
		ID: "e1", Source: "a", SourceHandle: "done", Target: "b", TargetHandle: "go",
	})
	r := Validate(w, testCatalog())
	if n := countKind(r, KindPlatformMismatch); n != 1 {
		t.Fatalf("platform_mismatch count = %d, want 1", n)
	}
	for _, issue := range r.Issues {
		if issue.Kind == KindPlatformMismatch && issue.Severity != SeverityWarning {
			t.Errorf("platform mismatch severity = %q, want warning", issue.Severity)
		}
	}
}

func TestValidate_AnyPlatformSuppressesWarning(t *testing.T) {
	w := &graph.Workflow{
		Nodes: []graph.Node{
			{ID: "a", Type: "test.source"},
			{ID: "u", Type: "test.universal"},
		},
		Edges: []graph.Edge{
			{ID: "e1", Source: "a", SourceHandle: "done", Target: "u", TargetHandle: "go"},
		},
	}
	r := Validate(w, testCatalog())
	if n := countKind(r, KindPlatformMismatch); n != 0 {
		t.Errorf("ANY platform still produced %d platform_mismatch issues", n)
	}
}

func TestValidate_UnknownNodeType(t *testing.T) {
	w := &graph.Workflow{
		Nodes: []graph.Node{
			{ID: "a", Type: "vendor.mystery"},
			{ID: "b", Type: "test.sink"},
		},
		Edges: []graph.Edge{
			// Touches the unknown node: all port checks skipped.
			{ID: "e1", Source: "a", SourceHandle: "nope", Target: "b", TargetHandle: "go"},
		},
	}
	r := Validate(w, testCatalog())
	if n := countKind(r, KindUnknownNodeType); n != 1 {
		t.Errorf("unknown_node_type count = %d, want 1", n)
	}
	if n := countKind(r, KindTypeMismatch); n != 0 {
		t.Errorf("edges touching unknown nodes still produced %d type_mismatch issues", n)
	}
}

func TestValidate_DanglingEdgeEndpoint(t *testing.T) {
	w := &graph.Workflow{
		Nodes: []graph.Node{{ID: "a", Type: "test.source"}},
		Edges: []graph.Edge{
			{ID: "e1", Source: "a", SourceHandle: "done", Target: "ghost", TargetHandle: "go"},
		},
	}
	// Total: must return a report, not crash.
	r := Validate(w, testCatalog())
	if len(r.Issues) == 0 {
		t.Error("dangling edge endpoint produced no issues")
	}
}

func TestValidate_UnknownHandle(t *testing.T) {
	w := pair(graph.Edge{
		ID: "e1", Source: "a", SourceHandle: "no_such_port", Target: "b", TargetHandle: "go",
	})
	r := Validate(w, testCatalog())
	if n := countKind(r, KindTypeMismatch); n != 1 {
		t.Errorf("unknown handle produced %d type_mismatch issues, want 1", n)
	}
}

func TestValidate_MissingRequiredInput(t *testing.T) {
	reg := catalog.NewRegistry(catalog.NodeDefinition{
		Type: "test.strict",
		Inputs: []catalog.Port{
			{ID: "target", Kind: catalog.KindData, Type: catalog.TypeString, Required: true},
		},
	})
	w := &graph.Workflow{Nodes: []graph.Node{{ID: "n", Type: "test.strict"}}}

	r := Validate(w, reg)
	if n := countKind(r, KindMissingRequiredInput); n != 1 {
		t.Fatalf("missing_required_input count = %d, want 1", n)
	}

	// A non-empty parameter of the same name satisfies the input.
	w.Nodes[0].Parameters = map[string]any{"target": "10.0.0.0/24"}
	r = Validate(w, reg)
	if n := countKind(r, KindMissingRequiredInput); n != 0 {
		t.Errorf("parameter-satisfied input still flagged %d times", n)
	}

	// An empty string does not.
	w.Nodes[0].Parameters = map[string]any{"target": ""}
	r = Validate(w, reg)
	if n := countKind(r, KindMissingRequiredInput); n != 1 {
		t.Errorf("empty parameter suppressed the issue")
	}
}

func TestValidate_NilArgumentsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Validate(nil, ...) did not panic")
		}
	}()
	Validate(nil, testCatalog())
}

func TestReport_SummaryMatchesFilteredCounts(t *testing.T) {
	w := pair(
		graph.Edge{ID: "e1", Source: "a", SourceHandle: "done", Target: "b", TargetHandle: "go"},
		graph.Edge{ID: "e2", Source: "a", SourceHandle: "text", Target: "b", TargetHandle: "num"},
	)
	r := Validate(w, testCatalog())

	s := r.Summary()
	var errs, warns, infos int
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		case SeverityInfo:
			infos++
		}
	}
	if s.Errors != errs || s.Warnings != warns || s.Infos != infos {
		t.Errorf("Summary() = %+v, filtered counts = %d/%d/%d", s, errs, warns, infos)
	}
	if !r.HasErrors() {
		t.Error("HasErrors() = false with a type mismatch present")
	}
}

func TestReport_Projections(t *testing.T) {
	r := Report{Issues: []Issue{
		{Kind: KindUnknownNodeType, Severity: SeverityError, NodeID: "x"},
		{Kind: KindTypeMismatch, Severity: SeverityError, SourceNodeID: "a", TargetNodeID: "b"},
		{Kind: KindPlatformMismatch, Severity: SeverityWarning, SourceNodeID: "a", TargetNodeID: "c"},
	}}

	if got := r.ByNode("a"); len(got) != 2 {
		t.Errorf("ByNode(a) = %d issues, want 2", len(got))
	}
	if got := r.ByNode("x"); len(got) != 1 {
		t.Errorf("ByNode(x) = %d issues, want 1", len(got))
	}
	if got := r.ByEdge("a", "b"); len(got) != 1 {
		t.Errorf("ByEdge(a,b) = %d issues, want 1", len(got))
	}
	if got := r.ByEdge("b", "a"); len(got) != 0 {
		t.Errorf("ByEdge(b,a) = %d issues, want 0", len(got))
	}
}
