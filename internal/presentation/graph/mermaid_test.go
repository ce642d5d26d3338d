package graph_test

import (
	"strings"
	"testing"

	"github.com/fieldline/conduit/internal/presentation/graph"
	wf "github.com/fieldline/conduit/pkg/graph"
	"github.com/fieldline/conduit/pkg/validate"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		workflow *wf.Workflow
		contains []string
	}{
		{
			name: "Node Shapes",
			workflow: &wf.Workflow{
				Nodes: []wf.Node{
					{ID: "start", Type: "core.start", Label: "Start"},
					{ID: "store", Type: "db.write", Label: "Store"},
					{ID: "ping", Type: "net.ping_sweep", Label: "Ping"},
				},
			},
			contains: []string{
				`start(("Start"))`,
				`store[("Store")]`,
				`ping["Ping"]`,
			},
		},
		{
			name: "Edge Styles",
			workflow: &wf.Workflow{
				Nodes: []wf.Node{
					{ID: "a", Label: "A"},
					{ID: "b", Label: "B"},
				},
				Edges: []wf.Edge{
					{Source: "a", SourceHandle: "trigger", Target: "b", Kind: wf.EdgeKindTrigger},
					{Source: "a", SourceHandle: "output", Target: "b", Kind: wf.EdgeKindData},
					{Source: "a", SourceHandle: "failure", Target: "b", Kind: wf.EdgeKindTrigger},
				},
			},
			contains: []string{
				"a --> b",
				`a -. "output" .-> b`,
				`a -- "failure" --> b`,
			},
		},
		{
			name: "ID Sanitization",
			workflow: &wf.Workflow{
				Nodes: []wf.Node{
					{ID: "action-1", Label: "Hyphen"},
					{ID: "db.write", Label: "Dotted"},
				},
			},
			contains: []string{
				`action_1["Hyphen"]`,
				`db_write["Dotted"]`,
			},
		},
		{
			name: "Label Escaping",
			workflow: &wf.Workflow{
				Nodes: []wf.Node{
					{ID: "n", Label: `Say "hello"`},
				},
			},
			contains: []string{
				`n["Say 'hello'"]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.workflow, nil)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	w := &wf.Workflow{
		Nodes: []wf.Node{
			{ID: "a", Label: "A"},
			{ID: "b", Label: "B"},
			{ID: "c", Label: "C"},
		},
	}
	overlay := &graph.Overlay{
		Report: validate.Report{Issues: []validate.Issue{
			{Kind: validate.KindUnreachableNode, Severity: validate.SeverityWarning, NodeID: "a"},
			{Kind: validate.KindTypeMismatch, Severity: validate.SeverityError,
				SourceNodeID: "a", TargetNodeID: "b"},
		}},
	}

	got := graph.GenerateMermaid(w, overlay)

	// a carries both a warning and an error endpoint; error wins.
	if !strings.Contains(got, "class a issueError;") {
		t.Errorf("node a not styled as error:\n%s", got)
	}
	if !strings.Contains(got, "class b issueError;") {
		t.Errorf("node b not styled as error:\n%s", got)
	}
	if strings.Contains(got, "class c ") {
		t.Errorf("clean node c styled:\n%s", got)
	}
}
