package catalog

import "sort"

// Registry is an immutable Catalog built once from a set of
// definitions. Later entries for the same type override earlier ones,
// which is how file-loaded catalogs shadow the builtin set.
type Registry struct {
	defs map[string]NodeDefinition
}

// NewRegistry builds a registry from the given definitions.
func NewRegistry(defs ...NodeDefinition) *Registry {
	m := make(map[string]NodeDefinition, len(defs))
	for _, d := range defs {
		m[d.Type] = d
	}
	return &Registry{defs: m}
}

// Merge returns a new registry with the given definitions layered on
// top of the receiver's. The receiver is not modified.
func (r *Registry) Merge(defs ...NodeDefinition) *Registry {
	m := make(map[string]NodeDefinition, len(r.defs)+len(defs))
	for k, v := range r.defs {
		m[k] = v
	}
	for _, d := range defs {
		m[d.Type] = d
	}
	return &Registry{defs: m}
}

// Definition looks up a node type. Unknown types return ok=false.
func (r *Registry) Definition(nodeType string) (NodeDefinition, bool) {
	d, ok := r.defs[nodeType]
	return d, ok
}

// Types returns the sorted registered type names.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.defs))
	for t := range r.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
