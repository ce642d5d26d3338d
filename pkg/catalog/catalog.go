package catalog

// PortKind separates control flow from value flow.
type PortKind string

const (
	KindTrigger PortKind = "trigger"
	KindData    PortKind = "data"
)

// Well-known port type names. Array types use the "<T>[]" form
// (e.g. "string[]"); "any" is compatible with everything.
const (
	TypeTrigger = "trigger"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeAny     = "any"
)

// Platform tags a node definition with the device platforms it can
// execute against. ANY matches everything.
type Platform string

const (
	PlatformAny     Platform = "ANY"
	PlatformLinux   Platform = "LINUX"
	PlatformWindows Platform = "WINDOWS"
	PlatformIOS     Platform = "CISCO_IOS"
	PlatformJunos   Platform = "JUNOS"
	PlatformEOS     Platform = "ARISTA_EOS"
)

// Protocol tags a node definition with the transports it speaks.
type Protocol string

const (
	ProtocolAny   Protocol = "ANY"
	ProtocolSSH   Protocol = "SSH"
	ProtocolHTTP  Protocol = "HTTP"
	ProtocolSNMP  Protocol = "SNMP"
	ProtocolICMP  Protocol = "ICMP"
	ProtocolTelnet Protocol = "TELNET"
)

// Port is a typed, named slot on a node type. A port exists only via
// its NodeDefinition; node instances reference it by id through edge
// handles.
type Port struct {
	ID       string   `json:"id" yaml:"id"`
	Kind     PortKind `json:"kind" yaml:"kind"`
	Type     string   `json:"type" yaml:"type"`
	Label    string   `json:"label" yaml:"label"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
}

// NodeDefinition is one catalog entry: the port, platform and protocol
// schema for a nodeType. Definitions are immutable once registered.
type NodeDefinition struct {
	Type       string            `json:"type" yaml:"type"`
	Label      string            `json:"label" yaml:"label"`
	Inputs     []Port            `json:"inputs" yaml:"inputs"`
	Outputs    []Port            `json:"outputs" yaml:"outputs"`
	Platforms  []Platform        `json:"platforms" yaml:"platforms"`
	Protocols  []Protocol        `json:"protocols" yaml:"protocols"`
	Parameters map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Input returns the input port with the given id.
func (d NodeDefinition) Input(id string) (Port, bool) {
	for _, p := range d.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// Output returns the output port with the given id.
func (d NodeDefinition) Output(id string) (Port, bool) {
	for _, p := range d.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// DataOutputs returns the non-trigger output ports, in declaration order.
func (d NodeDefinition) DataOutputs() []Port {
	var out []Port
	for _, p := range d.Outputs {
		if p.Kind != KindTrigger {
			out = append(out, p)
		}
	}
	return out
}

// SupportsAnyPlatform reports whether the definition carries the ANY tag
// or declares no platform constraint at all.
func (d NodeDefinition) SupportsAnyPlatform() bool {
	if len(d.Platforms) == 0 {
		return true
	}
	for _, p := range d.Platforms {
		if p == PlatformAny {
			return true
		}
	}
	return false
}

// Catalog is the lookup capability the validator and resolver depend
// on. Implementations must return ok=false for unknown types, never
// panic.
type Catalog interface {
	Definition(nodeType string) (NodeDefinition, bool)
	Types() []string
}
