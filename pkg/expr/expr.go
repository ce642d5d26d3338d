// Package expr implements the parameter templating language: literal
// text interspersed with {{...}} placeholders referencing upstream
// node outputs or the global pseudo-variables.
//
// Everything here is total over messy input. Malformed templates never
// produce errors; they degrade per the resolution contract and are
// reported by the validator instead.
package expr

import "strings"

// Delimiters for placeholders.
const (
	Open  = "{{"
	Close = "}}"
)

// RefKind discriminates the three reference forms.
type RefKind int

const (
	// RefInput is $input with an optional dotted field path.
	RefInput RefKind = iota
	// RefEnv is $env.NAME.
	RefEnv
	// RefNode is nodeId.outputId.
	RefNode
)

// Ref is a parsed placeholder reference.
type Ref struct {
	Kind     RefKind
	Raw      string   // trimmed placeholder content
	Path     []string // field path after $input
	EnvVar   string   // variable name after $env
	NodeID   string
	OutputID string
}

// Placeholder is one well-formed {{...}} span within a template.
// Start/End are byte offsets of the opening and past the closing
// delimiter.
type Placeholder struct {
	Start   int
	End     int
	Content string // trimmed text between the delimiters
}

// Placeholders scans a template for well-formed placeholders, left to
// right. An opening delimiter with no closer is not a placeholder; it
// is left for the validator to flag.
func Placeholders(template string) []Placeholder {
	var spans []Placeholder
	offset := 0
	for {
		rel := strings.Index(template[offset:], Open)
		if rel < 0 {
			return spans
		}
		start := offset + rel
		closeRel := strings.Index(template[start+len(Open):], Close)
		if closeRel < 0 {
			return spans
		}
		end := start + len(Open) + closeRel + len(Close)
		spans = append(spans, Placeholder{
			Start:   start,
			End:     end,
			Content: strings.TrimSpace(template[start+len(Open) : end-len(Close)]),
		})
		offset = end
	}
}

// HasUnclosed reports whether the template contains an opening
// delimiter with no matching closer after it.
func HasUnclosed(template string) bool {
	offset := 0
	for {
		rel := strings.Index(template[offset:], Open)
		if rel < 0 {
			return false
		}
		start := offset + rel
		closeRel := strings.Index(template[start+len(Open):], Close)
		if closeRel < 0 {
			return true
		}
		offset = start + len(Open) + closeRel + len(Close)
	}
}

// ParseRef parses placeholder content against the reference grammar:
//
//	$input(.field)*
//	$env.NAME
//	nodeId.outputId
//
// Node ids may not contain dots; the first dot separates node from
// output.
func ParseRef(content string) (Ref, bool) {
	content = strings.TrimSpace(content)
	ref := Ref{Raw: content}

	switch {
	case content == "$input":
		ref.Kind = RefInput
		return ref, true

	case strings.HasPrefix(content, "$input."):
		ref.Kind = RefInput
		for _, part := range strings.Split(content[len("$input."):], ".") {
			if !isIdent(part) {
				return Ref{}, false
			}
			ref.Path = append(ref.Path, part)
		}
		return ref, true

	case strings.HasPrefix(content, "$env."):
		name := content[len("$env."):]
		if !isIdent(name) {
			return Ref{}, false
		}
		ref.Kind = RefEnv
		ref.EnvVar = name
		return ref, true

	default:
		dot := strings.Index(content, ".")
		if dot <= 0 || dot == len(content)-1 {
			return Ref{}, false
		}
		nodeID, outputID := content[:dot], content[dot+1:]
		if !isIdent(nodeID) || !isIdent(outputID) {
			return Ref{}, false
		}
		ref.Kind = RefNode
		ref.NodeID = nodeID
		ref.OutputID = outputID
		return ref, true
	}
}

// isIdent accepts the characters node ids and port ids are built from.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
