package graph

import (
	"fmt"
	"strings"

	"github.com/fieldline/conduit/pkg/catalog"
	wf "github.com/fieldline/conduit/pkg/graph"
	"github.com/fieldline/conduit/pkg/validate"
)

// Overlay carries validation results to visualize on the graph.
type Overlay struct {
	Report validate.Report
}

// GenerateMermaid produces a Mermaid flowchart from a workflow.
// It applies semantic styling:
// - Start: ((Circle))
// - Database Write: [(Cylinder)]
// - Default: [Rectangle]
// Trigger edges are solid arrows, data edges dotted. Edge labels carry
// the source handle when it is not the plain trigger port. An overlay
// styles nodes that validation flagged.
func GenerateMermaid(w *wf.Workflow, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range w.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case catalog.TypeStart:
			opener, closer = "((", "))"
		case catalog.TypeDBWrite:
			opener, closer = "[(", ")]"
		}

		label := node.Label
		if label == "" {
			label = node.ID
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeMermaidLabel(label), closer))
	}

	for _, e := range w.Edges {
		safeFrom := sanitizeMermaidID(e.Source)
		safeTo := sanitizeMermaidID(e.Target)

		arrow := "-->"
		if e.Kind == wf.EdgeKindData {
			arrow = "-.->"
		}
		if e.SourceHandle != "" && e.SourceHandle != "trigger" {
			label := escapeMermaidLabel(e.SourceHandle)
			arrow = fmt.Sprintf("-- \"%s\" -->", label)
			if e.Kind == wf.EdgeKindData {
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			}
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeTo))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Validation Overlay\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef issueError fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef issueWarning fill:#fff8e1,stroke:#f57f17,stroke-width:2px,color:#000;\n")

		// Errors win over warnings when a node carries both.
		flagged := make(map[string]validate.Severity)
		for _, issue := range overlay.Report.Issues {
			for _, id := range []string{issue.NodeID, issue.SourceNodeID, issue.TargetNodeID} {
				if id == "" {
					continue
				}
				if issue.Severity == validate.SeverityError || flagged[id] == "" {
					flagged[id] = issue.Severity
				}
			}
		}
		for _, node := range w.Nodes {
			sev, ok := flagged[node.ID]
			if !ok {
				continue
			}
			class := "issueWarning"
			if sev == validate.SeverityError {
				class = "issueError"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(node.ID), class))
		}
	}

	return sb.String()
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
