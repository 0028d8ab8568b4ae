package prism

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StyleDef is the YAML shape of one named style.
type StyleDef struct {
	Extends string         `yaml:"extends"`
	Attrs   map[string]any `yaml:"attrs"`
}

// Definition is a complete declarative UI definition: named styles plus
// the root entity tree. It is the concrete ingest path used by the cmd
// tools and tests; the authoring front end produces the same shape.
type Definition struct {
	Styles map[string]StyleDef `yaml:"styles"`
	Root   *Entity             `yaml:"root"`
}

// Registry converts the definition's style section into a registry.
func (d *Definition) Registry() *StyleRegistry {
	reg := NewStyleRegistry()
	for name, def := range d.Styles {
		reg.Define(NamedStyle{Name: name, Extends: def.Extends, Attrs: def.Attrs})
	}
	return reg
}

// LoadDefinition parses a YAML UI definition.
func LoadDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	return &def, nil
}

// LoadDefinitionFile parses a YAML UI definition from disk.
func LoadDefinitionFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return LoadDefinition(data)
}

// BuildDefinition loads a definition and builds its element tree in one
// step, returning the tree and the registry it was resolved against.
func BuildDefinition(data []byte) (Element, *StyleRegistry, error) {
	def, err := LoadDefinition(data)
	if err != nil {
		return nil, nil, err
	}
	reg := def.Registry()
	root, err := NewBuilder(reg).Build(def.Root)
	if err != nil {
		return nil, nil, err
	}
	return root, reg, nil
}
