package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML document shape for operator-supplied node types.
type catalogFile struct {
	NodeTypes []NodeDefinition `yaml:"node_types"`
}

// LoadFile reads node definitions from a YAML file.
func LoadFile(path string) ([]NodeDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) ([]NodeDefinition, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: parsing: %w", err)
	}

	for i, def := range file.NodeTypes {
		if def.Type == "" {
			return nil, fmt.Errorf("catalog: node_types[%d] missing type", i)
		}
	}
	return file.NodeTypes, nil
}

// LoadRegistry builds a registry from the builtin set plus the given
// YAML files, in order. Files shadow the builtin set and each other.
func LoadRegistry(paths ...string) (*Registry, error) {
	reg := Builtin()
	for _, path := range paths {
		defs, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: loading %s: %w", path, err)
		}
		reg = reg.Merge(defs...)
	}
	return reg, nil
}
