package prism

// Predefined style registries for consistent UI appearance. Each theme
// defines a "base" style that the semantic styles extend, so applications
// can restyle everything by redefining the base.

// ThemeDark is a dark theme with light text on dark background.
func ThemeDark() *StyleRegistry {
	reg := NewStyleRegistry()
	reg.Define(NamedStyle{Name: "base", Attrs: map[string]any{"fg": "white"}})
	reg.Define(NamedStyle{Name: "muted", Extends: "base", Attrs: map[string]any{"fg": "brightblack"}})
	reg.Define(NamedStyle{Name: "accent", Extends: "base", Attrs: map[string]any{"fg": "cyan", "attrs": "bold"}})
	reg.Define(NamedStyle{Name: "error", Extends: "base", Attrs: map[string]any{"fg": "red", "attrs": "bold"}})
	reg.Define(NamedStyle{Name: "border", Extends: "muted", Attrs: nil})
	return reg
}

// ThemeLight is a light theme with dark text on light background.
func ThemeLight() *StyleRegistry {
	reg := NewStyleRegistry()
	reg.Define(NamedStyle{Name: "base", Attrs: map[string]any{"fg": "black"}})
	reg.Define(NamedStyle{Name: "muted", Extends: "base", Attrs: map[string]any{"fg": "brightblack"}})
	reg.Define(NamedStyle{Name: "accent", Extends: "base", Attrs: map[string]any{"fg": "blue"}})
	reg.Define(NamedStyle{Name: "error", Extends: "base", Attrs: map[string]any{"fg": "red"}})
	reg.Define(NamedStyle{Name: "border", Extends: "base", Attrs: map[string]any{"fg": "white"}})
	return reg
}

// ThemeMonochrome is a minimal theme using only text attributes.
func ThemeMonochrome() *StyleRegistry {
	reg := NewStyleRegistry()
	reg.Define(NamedStyle{Name: "base", Attrs: nil})
	reg.Define(NamedStyle{Name: "muted", Extends: "base", Attrs: map[string]any{"attrs": "dim"}})
	reg.Define(NamedStyle{Name: "accent", Extends: "base", Attrs: map[string]any{"attrs": "bold"}})
	reg.Define(NamedStyle{Name: "error", Extends: "base", Attrs: map[string]any{"attrs": []string{"bold", "underline"}}})
	reg.Define(NamedStyle{Name: "border", Extends: "muted", Attrs: nil})
	return reg
}
