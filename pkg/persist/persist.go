// Package persist converts workflows between the in-memory graph and
// the persisted JSON document. Serialization normalizes every optional
// field to its canonical empty value so the stored form is always
// structurally complete; deserialization defaults defensively so
// partial or legacy documents load silently.
package persist

import (
	"encoding/json"

	"github.com/fieldline/conduit/pkg/graph"
)

// Workflow is the persisted document shape.
type Workflow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	FolderID    string          `json:"folder_id"`
	Tags        []string        `json:"tags"`
	Definition  Definition      `json:"definition"`
	Schedule    *graph.Schedule `json:"schedule,omitempty"`
	Settings    *graph.Settings `json:"settings,omitempty"`
}

// Definition nests the graph body of the persisted document.
type Definition struct {
	Nodes    []Node          `json:"nodes"`
	Edges    []Edge          `json:"edges"`
	Viewport *graph.Viewport `json:"viewport,omitempty"`
}

// Node is the persisted node shape. The catalog key lives in
// Data.NodeType; the outer Type mirrors it for hosts that key their
// renderer off the top-level field.
type Node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position graph.Position `json:"position"`
	Data     NodeData       `json:"data"`
}

// NodeData carries the node's display and configuration payload.
type NodeData struct {
	NodeType    string         `json:"nodeType"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Edge is the persisted edge shape.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
	Type         string `json:"type"`
}

// Serialize maps a workflow to its persisted form, stripping nothing
// the document needs and defaulting every optional field so the result
// is structurally complete.
func Serialize(w *graph.Workflow) Workflow {
	if w == nil {
		panic("persist: nil workflow")
	}

	doc := Workflow{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		FolderID:    w.FolderID,
		Tags:        append([]string{}, w.Tags...),
	}

	doc.Definition.Nodes = make([]Node, len(w.Nodes))
	for i, n := range w.Nodes {
		params := make(map[string]any, len(n.Parameters))
		for k, v := range n.Parameters {
			params[k] = v
		}
		doc.Definition.Nodes[i] = Node{
			ID:       n.ID,
			Type:     n.Type,
			Position: n.Position,
			Data: NodeData{
				NodeType:    n.Type,
				Label:       n.Label,
				Description: n.Description,
				Parameters:  params,
			},
		}
	}

	doc.Definition.Edges = make([]Edge, len(w.Edges))
	for i, e := range w.Edges {
		doc.Definition.Edges[i] = Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Type:         e.Kind,
		}
	}

	viewport := w.Viewport
	if viewport == (graph.Viewport{}) {
		viewport = graph.DefaultViewport()
	}
	doc.Definition.Viewport = &viewport

	schedule := w.Schedule
	doc.Schedule = &schedule

	settings := w.Settings
	if settings == (graph.Settings{}) {
		settings = graph.DefaultSettings()
	}
	doc.Settings = &settings

	return doc
}

// Deserialize maps a persisted document back to the in-memory graph.
// Absent optional fields take their canonical defaults; nothing here
// fails on partial input.
func Deserialize(doc Workflow) *graph.Workflow {
	w := &graph.Workflow{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		FolderID:    doc.FolderID,
		Tags:        append([]string{}, doc.Tags...),
	}

	w.Nodes = make([]graph.Node, len(doc.Definition.Nodes))
	for i, n := range doc.Definition.Nodes {
		nodeType := n.Data.NodeType
		if nodeType == "" {
			nodeType = n.Type
		}
		params := n.Data.Parameters
		if params == nil {
			params = map[string]any{}
		}
		w.Nodes[i] = graph.Node{
			ID:          n.ID,
			Type:        nodeType,
			Label:       n.Data.Label,
			Description: n.Data.Description,
			Position:    n.Position,
			Parameters:  params,
		}
	}

	w.Edges = make([]graph.Edge, len(doc.Definition.Edges))
	for i, e := range doc.Definition.Edges {
		w.Edges[i] = graph.Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Kind:         e.Type,
		}
	}

	if doc.Definition.Viewport != nil {
		w.Viewport = *doc.Definition.Viewport
	} else {
		w.Viewport = graph.DefaultViewport()
	}
	if doc.Schedule != nil {
		w.Schedule = *doc.Schedule
	}
	if doc.Settings != nil {
		w.Settings = *doc.Settings
	} else {
		w.Settings = graph.DefaultSettings()
	}

	return w
}

// Encode serializes a workflow straight to the persisted JSON bytes.
func Encode(w *graph.Workflow) ([]byte, error) {
	return json.MarshalIndent(Serialize(w), "", "  ")
}

// Decode parses persisted JSON bytes into a workflow, applying the
// same defensive defaults as Deserialize.
func Decode(data []byte) (*graph.Workflow, error) {
	var doc Workflow
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return Deserialize(doc), nil
}
