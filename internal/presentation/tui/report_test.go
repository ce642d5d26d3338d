package tui

import (
	"strings"
	"testing"

	"github.com/fieldline/conduit/pkg/graph"
	"github.com/fieldline/conduit/pkg/validate"
)

func TestBuildReport_Clean(t *testing.T) {
	w := &graph.Workflow{ID: "wf-1", Name: "Sweep"}
	got := BuildReport(w, validate.Report{})

	if !strings.Contains(got, "# Validation Report: Sweep") {
		t.Errorf("missing title:\n%s", got)
	}
	if !strings.Contains(got, "No issues found") {
		t.Errorf("clean report not marked valid:\n%s", got)
	}
	if strings.Contains(got, "## Errors") {
		t.Errorf("clean report has an errors section:\n%s", got)
	}
}

func TestBuildReport_GroupsBySeverity(t *testing.T) {
	w := &graph.Workflow{ID: "wf-1"}
	report := validate.Report{Issues: []validate.Issue{
		{Kind: validate.KindTypeMismatch, Severity: validate.SeverityError,
			SourceNodeID: "a", TargetNodeID: "b", Message: "string into number"},
		{Kind: validate.KindUnreachableNode, Severity: validate.SeverityWarning,
			NodeID: "c", Message: "no trigger path"},
	}}

	got := BuildReport(w, report)

	errIdx := strings.Index(got, "## Errors")
	warnIdx := strings.Index(got, "## Warnings")
	if errIdx < 0 || warnIdx < 0 || errIdx > warnIdx {
		t.Fatalf("sections missing or out of order:\n%s", got)
	}
	if !strings.Contains(got, "`type_mismatch`") {
		t.Errorf("missing issue kind:\n%s", got)
	}
	if !strings.Contains(got, "(a → b)") {
		t.Errorf("missing edge location:\n%s", got)
	}
	if !strings.Contains(got, "(c)") {
		t.Errorf("missing node location:\n%s", got)
	}
	if !strings.Contains(got, "1 error(s), 1 warning(s)") {
		t.Errorf("missing summary line:\n%s", got)
	}
}

func TestBuildReport_FallbackTitle(t *testing.T) {
	got := BuildReport(&graph.Workflow{}, validate.Report{})
	if !strings.Contains(got, "# Validation Report: workflow") {
		t.Errorf("missing fallback title:\n%s", got)
	}
}
