// Package validate walks a whole workflow graph and produces a
// structured diagnostic report: port kind and type mismatches,
// platform conflicts, cycles, missing required inputs, unreachable
// nodes and unknown node types.
//
// Validate is pure and total: it completes and returns a report for
// malformed and partially-unknown graphs alike. The only hard failure
// is programmer misuse (a nil graph or catalog), which panics.
package validate

import (
	"fmt"

	"github.com/fieldline/conduit/pkg/catalog"
	"github.com/fieldline/conduit/pkg/graph"
)

// Validate checks the workflow against the catalog and returns every
// finding.
func Validate(w *graph.Workflow, cat catalog.Catalog) Report {
	if w == nil {
		panic("validate: nil workflow")
	}
	if cat == nil {
		panic("validate: nil catalog")
	}

	v := &run{w: w, cat: cat, defs: make(map[string]catalog.NodeDefinition)}

	v.checkNodeTypes()
	v.checkEdges()
	v.checkTriggerGraph()
	v.checkRequiredInputs()

	return Report{Issues: v.issues}
}

type run struct {
	w      *graph.Workflow
	cat    catalog.Catalog
	defs   map[string]catalog.NodeDefinition // resolved per node id
	issues []Issue
}

func (v *run) add(issue Issue) {
	v.issues = append(v.issues, issue)
}

// checkNodeTypes resolves every node's definition. Unknown types get
// one error each; edges touching such nodes are skipped later without
// aborting validation of the rest of the graph.
func (v *run) checkNodeTypes() {
	for _, n := range v.w.Nodes {
		def, ok := v.cat.Definition(n.Type)
		if !ok {
			v.add(Issue{
				Kind:     KindUnknownNodeType,
				Severity: SeverityError,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("node %q has unknown type %q", n.ID, n.Type),
			})
			continue
		}
		v.defs[n.ID] = def
	}
}

// resolved reports whether both endpoints of an edge name known nodes
// with known definitions. Dangling endpoints are reported once here.
func (v *run) resolved(e graph.Edge) bool {
	ok := true
	for _, endpoint := range []string{e.Source, e.Target} {
		if _, exists := v.w.NodeByID(endpoint); !exists {
			v.add(Issue{
				Kind:         KindUnknownNodeType,
				Severity:     SeverityError,
				NodeID:       endpoint,
				SourceNodeID: e.Source,
				TargetNodeID: e.Target,
				Message:      fmt.Sprintf("edge %q references missing node %q", e.ID, endpoint),
			})
			ok = false
		}
	}
	if !ok {
		return false
	}
	_, srcKnown := v.defs[e.Source]
	_, dstKnown := v.defs[e.Target]
	return srcKnown && dstKnown
}

func (v *run) checkEdges() {
	for _, e := range v.w.Edges {
		if !v.resolved(e) {
			continue
		}
		srcDef := v.defs[e.Source]
		dstDef := v.defs[e.Target]

		srcPort, srcOK := srcDef.Output(e.SourceHandle)
		if !srcOK {
			v.add(Issue{
				Kind:         KindTypeMismatch,
				Severity:     SeverityError,
				SourceNodeID: e.Source,
				TargetNodeID: e.Target,
				Message:      fmt.Sprintf("node %q declares no output port %q", e.Source, e.SourceHandle),
			})
		}
		dstPort, dstOK := dstDef.Input(e.TargetHandle)
		if !dstOK {
			v.add(Issue{
				Kind:         KindTypeMismatch,
				Severity:     SeverityError,
				SourceNodeID: e.Source,
				TargetNodeID: e.Target,
				Message:      fmt.Sprintf("node %q declares no input port %q", e.Target, e.TargetHandle),
			})
		}
		if !srcOK || !dstOK {
			continue
		}

		v.checkPortPair(e, srcPort, dstPort)
		v.checkPlatforms(e, srcDef, dstDef)
	}
}

// checkPortPair enforces the kind rule (trigger connects only to
// trigger) and, for data ports, the type rule (identical or either
// side "any").
func (v *run) checkPortPair(e graph.Edge, src, dst catalog.Port) {
	if src.Kind != dst.Kind {
		v.add(Issue{
			Kind:         KindTypeMismatch,
			Severity:     SeverityError,
			SourceNodeID: e.Source,
			TargetNodeID: e.Target,
			Message: fmt.Sprintf("cannot connect %s port %q to %s port %q",
				src.Kind, e.SourceHandle, dst.Kind, e.TargetHandle),
		})
		return
	}
	if src.Kind == catalog.KindTrigger {
		return
	}

	if src.Type == catalog.TypeAny || dst.Type == catalog.TypeAny || src.Type == dst.Type {
		return
	}
	v.add(Issue{
		Kind:         KindTypeMismatch,
		Severity:     SeverityError,
		SourceNodeID: e.Source,
		TargetNodeID: e.Target,
		Message: fmt.Sprintf("output %q (%s) is not assignable to input %q (%s)",
			e.SourceHandle, src.Type, e.TargetHandle, dst.Type),
	})
}

// checkPlatforms warns when two connected nodes share no platform.
// A warning, not an error: an operator may accept the combination
// deliberately.
func (v *run) checkPlatforms(e graph.Edge, src, dst catalog.NodeDefinition) {
	if src.SupportsAnyPlatform() || dst.SupportsAnyPlatform() {
		return
	}
	for _, sp := range src.Platforms {
		for _, dp := range dst.Platforms {
			if sp == dp {
				return
			}
		}
	}
	v.add(Issue{
		Kind:         KindPlatformMismatch,
		Severity:     SeverityWarning,
		SourceNodeID: e.Source,
		TargetNodeID: e.Target,
		Message: fmt.Sprintf("nodes %q and %q support no common platform (%v vs %v)",
			e.Source, e.Target, src.Platforms, dst.Platforms),
	})
}

// checkRequiredInputs flags required input ports with neither an
// incoming edge nor a non-empty parameter of the same name.
func (v *run) checkRequiredInputs() {
	for _, n := range v.w.Nodes {
		def, known := v.defs[n.ID]
		if !known {
			continue
		}
		for _, port := range def.Inputs {
			if !port.Required {
				continue
			}
			if v.hasIncoming(n.ID, port.ID) {
				continue
			}
			if paramSet(n.Parameters, port.ID) {
				continue
			}
			v.add(Issue{
				Kind:     KindMissingRequiredInput,
				Severity: SeverityError,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("node %q input %q is required but unconnected", n.ID, port.ID),
			})
		}
	}
}

func (v *run) hasIncoming(nodeID, portID string) bool {
	for _, e := range v.w.Edges {
		if e.Target == nodeID && e.TargetHandle == portID {
			return true
		}
	}
	return false
}

// paramSet reports whether the parameter exists with a non-empty value.
func paramSet(params map[string]any, key string) bool {
	value, ok := params[key]
	if !ok {
		return false
	}
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
