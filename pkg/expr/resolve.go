package expr

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Context is the execution-time binding data handed in by the hosting
// runtime: per-node output maps plus the two globals.
type Context struct {
	// Nodes maps node id to that node's produced outputs.
	Nodes map[string]map[string]any
	// Input is the trigger payload ($input).
	Input any
	// Env is the environment variable map ($env).
	Env map[string]string
}

// Warning reports a reference that resolved to nothing. Resolution
// degrades to the empty string instead of failing; the host decides
// whether warnings matter.
type Warning struct {
	Ref     string `json:"ref"`
	Message string `json:"message"`
}

// Resolve replaces every well-formed placeholder in the template with
// the string form of its referenced value. Missing nodes, outputs,
// fields and env keys resolve to "" and produce a Warning. Malformed
// placeholders (unbalanced braces) pass through verbatim. Resolve
// never fails.
func Resolve(template string, ctx Context) (string, []Warning) {
	var sb strings.Builder
	var warnings []Warning

	last := 0
	for _, ph := range Placeholders(template) {
		sb.WriteString(template[last:ph.Start])
		last = ph.End

		ref, ok := ParseRef(ph.Content)
		if !ok {
			warnings = append(warnings, Warning{
				Ref:     ph.Content,
				Message: "unrecognized reference",
			})
			continue
		}

		value, found := lookup(ref, ctx)
		if !found {
			warnings = append(warnings, Warning{
				Ref:     ref.Raw,
				Message: "reference has no value in context",
			})
			continue
		}
		sb.WriteString(Stringify(value))
	}
	sb.WriteString(template[last:])

	return sb.String(), warnings
}

func lookup(ref Ref, ctx Context) (any, bool) {
	switch ref.Kind {
	case RefInput:
		value := ctx.Input
		for _, field := range ref.Path {
			m, ok := value.(map[string]any)
			if !ok {
				return nil, false
			}
			value, ok = m[field]
			if !ok {
				return nil, false
			}
		}
		return value, true

	case RefEnv:
		if ctx.Env == nil {
			return nil, false
		}
		v, ok := ctx.Env[ref.EnvVar]
		return v, ok

	case RefNode:
		outputs, ok := ctx.Nodes[ref.NodeID]
		if !ok {
			return nil, false
		}
		v, ok := outputs[ref.OutputID]
		return v, ok
	}
	return nil, false
}

// Stringify renders a bound value into template output. Composite
// values render as compact JSON so object and array outputs stay
// usable inside command parameters.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
