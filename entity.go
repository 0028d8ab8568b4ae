package prism

// Entity is the source shape produced by the UI-authoring front end: a
// kind tag, a flat attribute map, and nested entities for containers.
// The builder is the sole boundary between authoring syntax and the
// element tree.
type Entity struct {
	Name     string         `yaml:"name"`
	Attrs    map[string]any `yaml:"attrs"`
	Children []*Entity      `yaml:"children"`
}

// attr returns a raw attribute value.
func (e *Entity) attr(key string) any {
	if e == nil || e.Attrs == nil {
		return nil
	}
	return e.Attrs[key]
}

// strAttr returns a string attribute, "" when absent or mistyped.
func (e *Entity) strAttr(key string) string {
	s, _ := e.attr(key).(string)
	return s
}

// boolAttr returns a boolean attribute with a default.
func (e *Entity) boolAttr(key string, def bool) bool {
	if b, ok := e.attr(key).(bool); ok {
		return b
	}
	return def
}

// intAttr returns an optional integer attribute.
func (e *Entity) intAttr(key string) *int {
	return toIntPtr(e.attr(key))
}

// intAttrDef returns an integer attribute with a default.
func (e *Entity) intAttrDef(key string, def int) int {
	if p := toIntPtr(e.attr(key)); p != nil {
		return *p
	}
	return def
}

// floatAttr returns a numeric attribute with a default.
func (e *Entity) floatAttr(key string, def float64) float64 {
	switch n := e.attr(key).(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

// floatsAttr returns a numeric list attribute.
func (e *Entity) floatsAttr(key string) []float64 {
	items, ok := e.attr(key).([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		switch n := item.(type) {
		case float64:
			out = append(out, n)
		case int:
			out = append(out, float64(n))
		case int64:
			out = append(out, float64(n))
		}
	}
	return out
}

// childEntities locates a named sub-collection among an entity's children.
// A child matches when its name equals the child-kind tag directly, or
// when it is a grouping node named after the collection key, in which case
// the grouping node's own children of the child kind are the matches.
// Unmatched shapes yield an empty list, never an error.
func childEntities(e *Entity, collection, childKind string) []*Entity {
	if e == nil {
		return nil
	}
	var out []*Entity
	for _, child := range e.Children {
		switch child.Name {
		case childKind:
			out = append(out, child)
		case collection:
			for _, nested := range child.Children {
				if nested.Name == childKind {
					out = append(out, nested)
				}
			}
		}
	}
	return out
}
