package tui

import (
	"fmt"
	"strings"

	"github.com/fieldline/conduit/pkg/graph"
	"github.com/fieldline/conduit/pkg/validate"
)

// BuildReport renders a validation report as markdown, grouped by
// severity. The result feeds NewRenderer for terminal display and is
// readable as-is when piped.
func BuildReport(w *graph.Workflow, report validate.Report) string {
	var sb strings.Builder

	title := w.Name
	if title == "" {
		title = w.ID
	}
	if title == "" {
		title = "workflow"
	}
	fmt.Fprintf(&sb, "# Validation Report: %s\n\n", title)

	s := report.Summary()
	if s.Errors == 0 && s.Warnings == 0 {
		sb.WriteString("✅ **Valid.** No issues found.\n\n")
	} else {
		fmt.Fprintf(&sb, "**%d error(s), %d warning(s)** across %d node(s) and %d edge(s).\n\n",
			s.Errors, s.Warnings, len(w.Nodes), len(w.Edges))
	}

	writeSection(&sb, "Errors", report, validate.SeverityError)
	writeSection(&sb, "Warnings", report, validate.SeverityWarning)
	writeSection(&sb, "Info", report, validate.SeverityInfo)

	return sb.String()
}

func writeSection(sb *strings.Builder, heading string, report validate.Report, sev validate.Severity) {
	var issues []validate.Issue
	for _, issue := range report.Issues {
		if issue.Severity == sev {
			issues = append(issues, issue)
		}
	}
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(sb, "## %s\n\n", heading)
	for _, issue := range issues {
		fmt.Fprintf(sb, "- `%s` %s%s\n", issue.Kind, location(issue), issue.Message)
	}
	sb.WriteString("\n")
}

func location(issue validate.Issue) string {
	switch {
	case issue.SourceNodeID != "" && issue.TargetNodeID != "":
		return fmt.Sprintf("(%s → %s): ", issue.SourceNodeID, issue.TargetNodeID)
	case issue.NodeID != "":
		return fmt.Sprintf("(%s): ", issue.NodeID)
	}
	return ""
}
