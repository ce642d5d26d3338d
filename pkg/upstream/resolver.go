// Package upstream computes, for a given node, the data sources its
// expressions may legally reference: the non-trigger outputs of its
// direct predecessors plus the global pseudo-variables.
package upstream

import (
	"strings"

	"github.com/fieldline/conduit/pkg/catalog"
	"github.com/fieldline/conduit/pkg/graph"
)

// Candidate is one referenceable data source, ready for insertion into
// a parameter expression.
type Candidate struct {
	NodeID      string `json:"node_id"`
	OutputID    string `json:"output_id,omitempty"`
	Type        string `json:"type"`
	NodeLabel   string `json:"node_label"`
	OutputLabel string `json:"output_label,omitempty"`
	Expression  string `json:"expression"`
}

// Matches reports whether the candidate survives a case-insensitive
// substring filter against its labels, output id, or expression text.
func (c Candidate) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.NodeLabel), q) ||
		strings.Contains(strings.ToLower(c.OutputLabel), q) ||
		strings.Contains(strings.ToLower(c.OutputID), q) ||
		strings.Contains(strings.ToLower(c.Expression), q)
}

// Globals returns the two fixed pseudo-variable candidates, in the
// order they are always appended.
func Globals() []Candidate {
	return []Candidate{
		{
			NodeID:     "$input",
			Type:       catalog.TypeObject,
			NodeLabel:  "Trigger Payload",
			Expression: "{{$input}}",
		},
		{
			NodeID:      "$env",
			OutputID:    "VARIABLE_NAME",
			Type:        catalog.TypeString,
			NodeLabel:   "Environment Variable",
			OutputLabel: "Variable",
			Expression:  "{{$env.VARIABLE_NAME}}",
		},
	}
}

// Resolve lists the candidates for expressions on the given node.
//
// Only direct predecessors are consulted: the walk is one incoming
// edge deep, deduplicated by source node id preserving the order the
// edges first appear. Predecessors with unknown node types contribute
// nothing. The global candidates are always last, regardless of graph
// shape.
func Resolve(nodeID string, w *graph.Workflow, cat catalog.Catalog) []Candidate {
	var out []Candidate

	seen := make(map[string]bool)
	for _, e := range w.Incoming(nodeID) {
		if seen[e.Source] {
			continue
		}
		seen[e.Source] = true

		src, ok := w.NodeByID(e.Source)
		if !ok {
			continue
		}
		def, ok := cat.Definition(src.Type)
		if !ok {
			continue
		}

		label := src.Label
		if label == "" {
			label = src.ID
		}
		for _, port := range def.DataOutputs() {
			out = append(out, Candidate{
				NodeID:      src.ID,
				OutputID:    port.ID,
				Type:        port.Type,
				NodeLabel:   label,
				OutputLabel: port.Label,
				Expression:  "{{" + src.ID + "." + port.ID + "}}",
			})
		}
	}

	return append(out, Globals()...)
}

// Filter returns the candidates matching the query, preserving order.
func Filter(cands []Candidate, query string) []Candidate {
	if query == "" {
		return cands
	}
	var out []Candidate
	for _, c := range cands {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out
}
