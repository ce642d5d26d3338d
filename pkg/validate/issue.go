package validate

// Kind classifies a validation finding.
type Kind string

const (
	KindTypeMismatch         Kind = "type_mismatch"
	KindPlatformMismatch     Kind = "platform_mismatch"
	KindCycleDetected        Kind = "cycle_detected"
	KindMissingRequiredInput Kind = "missing_required_input"
	KindUnreachableNode      Kind = "unreachable_node"
	KindUnknownNodeType      Kind = "unknown_node_type"
)

// Severity ranks a finding. Errors block execution; warnings are for a
// human to accept or fix; the host decides the policy either way.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one structured finding. Graph invalidity is ordinary data,
// not an error channel.
type Issue struct {
	Kind         Kind     `json:"kind"`
	Severity     Severity `json:"severity"`
	NodeID       string   `json:"node_id,omitempty"`
	SourceNodeID string   `json:"source_node_id,omitempty"`
	TargetNodeID string   `json:"target_node_id,omitempty"`
	Message      string   `json:"message"`
}

// Summary counts issues per severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Report is the validator output: the flat issue list. Summary and the
// lookup helpers are pure projections of that list, never separately
// maintained state.
type Report struct {
	Issues []Issue `json:"issues"`
}

// Summary derives per-severity counts.
func (r Report) Summary() Summary {
	var s Summary
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
	}
	return s
}

// HasErrors reports whether any error-severity issue is present.
func (r Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByNode projects the issues attached to a node, either directly or as
// an endpoint of a checked edge.
func (r Report) ByNode(nodeID string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.NodeID == nodeID || issue.SourceNodeID == nodeID || issue.TargetNodeID == nodeID {
			out = append(out, issue)
		}
	}
	return out
}

// ByEdge projects the issues attached to the (source, target) node pair.
func (r Report) ByEdge(sourceNodeID, targetNodeID string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.SourceNodeID == sourceNodeID && issue.TargetNodeID == targetNodeID {
			out = append(out, issue)
		}
	}
	return out
}
