package prism

import (
	"fmt"
	"strings"
)

// NamedStyle is a reusable style definition that may extend another one.
// Child attributes override inherited ones during resolution.
type NamedStyle struct {
	Name    string
	Extends string
	Attrs   map[string]any
}

// StyleRegistry holds named style definitions keyed by name. Resolution is
// a pure function of the registry contents; nothing is cached.
type StyleRegistry struct {
	styles map[string]NamedStyle
}

// NewStyleRegistry creates an empty registry.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{styles: make(map[string]NamedStyle)}
}

// Define adds or replaces a named style.
func (r *StyleRegistry) Define(ns NamedStyle) *StyleRegistry {
	r.styles[ns.Name] = ns
	return r
}

// Lookup returns a named style definition.
func (r *StyleRegistry) Lookup(name string) (NamedStyle, bool) {
	if r == nil {
		return NamedStyle{}, false
	}
	ns, ok := r.styles[name]
	return ns, ok
}

// Names returns all defined style names.
func (r *StyleRegistry) Names() []string {
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	return names
}

// StyleCycleError reports circular style inheritance. Chain holds every
// name visited up to and including the repeated one.
type StyleCycleError struct {
	Chain []string
}

func (e *StyleCycleError) Error() string {
	return fmt.Sprintf("cyclic style inheritance detected: %s", strings.Join(e.Chain, " -> "))
}

// Resolve produces the effective style for a name, applying call-site
// overrides last. An unknown name silently resolves to just the overrides.
// The extends chain resolves parent-first: parent attributes, then the
// style's own attributes, then overrides. Circular inheritance is a fatal
// configuration error carrying the full chain of names visited.
func (r *StyleRegistry) Resolve(name string, overrides map[string]any) (*Style, error) {
	ns, ok := r.Lookup(name)
	if !ok {
		return NewStyle(overrides), nil
	}
	base, err := r.resolveChain(ns, []string{name})
	if err != nil {
		return nil, err
	}
	return MergeStyles(base, NewStyle(overrides)), nil
}

// resolveChain walks the extends chain, tracking visited names to detect
// cycles. A name reachable from its own ancestor chain fails, never loops.
func (r *StyleRegistry) resolveChain(ns NamedStyle, visited []string) (*Style, error) {
	own := NewStyle(ns.Attrs)
	if ns.Extends == "" {
		return own, nil
	}
	for _, seen := range visited {
		if seen == ns.Extends {
			return nil, &StyleCycleError{Chain: append(visited, ns.Extends)}
		}
	}
	parent, ok := r.Lookup(ns.Extends)
	if !ok {
		// dangling extends degrades to the style's own attributes
		return own, nil
	}
	resolved, err := r.resolveChain(parent, append(visited, ns.Extends))
	if err != nil {
		return nil, err
	}
	return MergeStyles(resolved, own), nil
}

// ResolveRef resolves a style reference as it appears in a source entity's
// attribute map. Accepted shapes:
//
//	nil or ""                     -> nil (no style)
//	"name"                        -> named lookup
//	map[string]any{...}           -> inline attributes
//	[]any{"name", map{...}}       -> named lookup plus overrides
//	[]any of attribute pairs      -> inline (head token is a reserved key)
//
// The list form is disambiguated by checking whether the head token is a
// reserved attribute key: if so the whole list is inline attributes.
func ResolveRef(reg *StyleRegistry, ref any) (*Style, error) {
	switch v := ref.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return reg.Resolve(v, nil)
	case *Style:
		return v, nil
	case map[string]any:
		if len(v) == 0 {
			return nil, nil
		}
		return NewStyle(v), nil
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
		head, isName := v[0].(string)
		if !isName || reservedStyleKeys[head] {
			return NewStyle(pairsToMap(v)), nil
		}
		return reg.Resolve(head, pairsToMap(v[1:]))
	}
	return nil, nil
}

// pairsToMap flattens a list of attribute maps or [key, value] pairs into a
// single attribute map. Unmatched shapes are skipped, not rejected.
func pairsToMap(items []any) map[string]any {
	out := make(map[string]any)
	for _, item := range items {
		switch kv := item.(type) {
		case map[string]any:
			for k, val := range kv {
				out[k] = val
			}
		case []any:
			if len(kv) == 2 {
				if k, ok := kv[0].(string); ok {
					out[k] = kv[1]
				}
			}
		}
	}
	return out
}
