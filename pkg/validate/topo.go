package validate

import (
	"fmt"
	"sort"

	"github.com/fieldline/conduit/pkg/catalog"
	"github.com/fieldline/conduit/pkg/graph"
)

// triggerEdges selects the control-flow subgraph. Data edges carry
// values, not execution order, and are excluded from cycle and
// reachability analysis. Classification prefers the resolved source
// port kind and falls back to the edge's own kind tag when the
// definition is unknown.
func (v *run) triggerEdges() []graph.Edge {
	var out []graph.Edge
	for _, e := range v.w.Edges {
		if _, ok := v.w.NodeByID(e.Source); !ok {
			continue
		}
		if _, ok := v.w.NodeByID(e.Target); !ok {
			continue
		}
		if def, known := v.defs[e.Source]; known {
			if port, ok := def.Output(e.SourceHandle); ok {
				if port.Kind == catalog.KindTrigger {
					out = append(out, e)
				}
				continue
			}
		}
		if e.Kind == graph.EdgeKindTrigger {
			out = append(out, e)
		}
	}
	return out
}

// checkTriggerGraph runs cycle detection (Kahn's topological sort) and
// root reachability over the trigger subgraph.
func (v *run) checkTriggerGraph() {
	edges := v.triggerEdges()

	inDegree := make(map[string]int, len(v.w.Nodes))
	successors := make(map[string][]string)
	for _, n := range v.w.Nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range edges {
		inDegree[e.Target]++
		successors[e.Source] = append(successors[e.Source], e.Target)
	}

	// Roots: no incoming trigger edges. They seed both Kahn's queue
	// and the reachability sweep.
	var queue []string
	reachable := make(map[string]bool, len(v.w.Nodes))
	for _, n := range v.w.Nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
			reachable[n.ID] = true
		}
	}

	// Reachability first: plain BFS from the roots, ignoring degrees.
	frontier := append([]string(nil), queue...)
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, next := range successors[current] {
			if !reachable[next] {
				reachable[next] = true
				frontier = append(frontier, next)
			}
		}
	}
	for _, n := range v.w.Nodes {
		if !reachable[n.ID] {
			v.add(Issue{
				Kind:     KindUnreachableNode,
				Severity: SeverityWarning,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("node %q is not reachable from any trigger root", n.ID),
			})
		}
	}

	// Kahn's sort: whatever survives with a positive in-degree sits on
	// a cycle.
	processed := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		processed++
		for _, next := range successors[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if processed == len(v.w.Nodes) {
		return
	}

	var cyclic []string
	for id, deg := range inDegree {
		if deg > 0 {
			cyclic = append(cyclic, id)
		}
	}
	sort.Strings(cyclic)
	for _, id := range cyclic {
		v.add(Issue{
			Kind:     KindCycleDetected,
			Severity: SeverityError,
			NodeID:   id,
			Message:  fmt.Sprintf("node %q participates in a trigger cycle", id),
		})
	}
}
