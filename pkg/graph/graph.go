package graph

// Edge kinds mirror the port kinds they connect.
const (
	EdgeKindTrigger = "trigger"
	EdgeKindData    = "data"
)

// Position is a node's placement on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the host canvas camera. Persisted so a reload restores the view.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Notifications controls which run outcomes the host reports on.
type Notifications struct {
	OnSuccess bool `json:"on_success"`
	OnFailure bool `json:"on_failure"`
}

// Settings holds execution policy carried alongside the graph.
// The core never interprets these; they ride through serialization.
type Settings struct {
	ErrorHandling string        `json:"error_handling"`
	Timeout       int           `json:"timeout"`
	Notifications Notifications `json:"notifications"`
}

// Schedule describes when the hosting runtime triggers the workflow.
type Schedule struct {
	Enabled  bool   `json:"enabled"`
	Cron     string `json:"cron,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Node is one step in a workflow graph. Type keys into the node-type
// catalog; Parameters is the open per-type configuration map. Unknown
// parameter keys are preserved verbatim for forward compatibility.
type Node struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Position    Position       `json:"position"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Edge is a directed connection from one node's output port to another
// node's input port. It references nodes by id and never owns them.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
	Kind         string `json:"kind,omitempty"`
}

// Workflow is the in-memory graph definition. It stays a valid value
// even when it is invalid as a program; the validator reports the
// difference as data.
type Workflow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FolderID    string    `json:"folder_id,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Nodes       []Node    `json:"nodes"`
	Edges       []Edge    `json:"edges"`
	Viewport    Viewport  `json:"viewport"`
	Schedule    Schedule  `json:"schedule"`
	Settings    Settings  `json:"settings"`
}

// DefaultSettings is the canonical settings value used when a persisted
// workflow omits the field.
func DefaultSettings() Settings {
	return Settings{
		ErrorHandling: "continue",
		Timeout:       300,
		Notifications: Notifications{OnSuccess: false, OnFailure: true},
	}
}

// DefaultViewport is the canonical viewport for workflows saved without one.
func DefaultViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: 1}
}

// NodeByID returns the node with the given id.
func (w *Workflow) NodeByID(id string) (*Node, bool) {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return &w.Nodes[i], true
		}
	}
	return nil, false
}

// Incoming returns the edges targeting the given node, in declaration order.
func (w *Workflow) Incoming(nodeID string) []Edge {
	var in []Edge
	for _, e := range w.Edges {
		if e.Target == nodeID {
			in = append(in, e)
		}
	}
	return in
}

// Outgoing returns the edges originating at the given node, in declaration order.
func (w *Workflow) Outgoing(nodeID string) []Edge {
	var out []Edge
	for _, e := range w.Edges {
		if e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy. Stores copy on save/load so callers can't
// mutate shared state through retained pointers.
func (w *Workflow) Clone() *Workflow {
	cp := *w
	if w.Tags != nil {
		cp.Tags = append([]string(nil), w.Tags...)
	}
	cp.Nodes = make([]Node, len(w.Nodes))
	for i, n := range w.Nodes {
		cp.Nodes[i] = n
		if n.Parameters != nil {
			params := make(map[string]any, len(n.Parameters))
			for k, v := range n.Parameters {
				params[k] = v
			}
			cp.Nodes[i].Parameters = params
		}
	}
	cp.Edges = append([]Edge(nil), w.Edges...)
	return &cp
}
