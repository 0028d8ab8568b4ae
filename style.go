// Package prism compiles a declarative UI definition into render trees for
// terminal, desktop and web targets, and normalizes raw platform input into
// a uniform signal vocabulary.
package prism

import (
	"sort"
	"strings"
)

// Attr represents text styling attributes that can be combined.
type Attr uint8

const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
)

// attrNames maps attribute tags from source definitions to bits.
var attrNames = map[string]Attr{
	"bold":          AttrBold,
	"dim":           AttrDim,
	"italic":        AttrItalic,
	"underline":     AttrUnderline,
	"blink":         AttrBlink,
	"inverse":       AttrInverse,
	"strikethrough": AttrStrikethrough,
}

// Has returns true if the attribute set contains the given attribute.
func (a Attr) Has(attr Attr) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attr) With(attr Attr) Attr {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attr) Without(attr Attr) Attr {
	return a &^ attr
}

// Tags returns the attribute tags in the set, sorted for determinism.
func (a Attr) Tags() []string {
	var tags []string
	for name, bit := range attrNames {
		if a.Has(bit) {
			tags = append(tags, name)
		}
	}
	sort.Strings(tags)
	return tags
}

// ParseAttr returns the attribute bit for a tag, AttrNone if unrecognized.
func ParseAttr(tag string) Attr {
	return attrNames[strings.ToLower(tag)]
}

// Style is a platform-agnostic set of visual attributes. Every field is
// optional: an empty string or nil pointer means "unset". Styles are
// immutable values; transformations produce new instances.
type Style struct {
	FG      string // color name or #rrggbb
	BG      string
	Attrs   Attr
	Padding *int
	Margin  *int
	Width   *int
	Height  *int
	Align   string // left, center, right
}

// reservedStyleKeys are the attribute keys recognized by NewStyle. Used by
// ResolveRef to tell an inline attribute list apart from a named reference.
var reservedStyleKeys = map[string]bool{
	"fg": true, "bg": true, "attrs": true,
	"padding": true, "margin": true,
	"width": true, "height": true, "align": true,
}

// NewStyle builds a Style from a flat attribute map. Unknown keys are
// ignored. A nil or empty map yields an empty style.
func NewStyle(attrs map[string]any) *Style {
	s := &Style{}
	for key, val := range attrs {
		switch key {
		case "fg":
			s.FG = toString(val)
		case "bg":
			s.BG = toString(val)
		case "align":
			s.Align = toString(val)
		case "padding":
			s.Padding = toIntPtr(val)
		case "margin":
			s.Margin = toIntPtr(val)
		case "width":
			s.Width = toIntPtr(val)
		case "height":
			s.Height = toIntPtr(val)
		case "attrs":
			s.Attrs = parseAttrList(val)
		}
	}
	return s
}

// parseAttrList accepts a single tag, a list of tags, or an Attr value.
func parseAttrList(val any) Attr {
	switch v := val.(type) {
	case Attr:
		return v
	case string:
		return ParseAttr(v)
	case []string:
		var a Attr
		for _, tag := range v {
			a = a.With(ParseAttr(tag))
		}
		return a
	case []any:
		var a Attr
		for _, item := range v {
			if tag, ok := item.(string); ok {
				a = a.With(ParseAttr(tag))
			}
		}
		return a
	}
	return AttrNone
}

// MergeStyles combines two styles right-biased: every scalar field takes
// b's value when set, a's otherwise; attribute sets are unioned. Neither
// input is mutated. merge(nil, nil) is an empty style.
func MergeStyles(a, b *Style) *Style {
	if a == nil && b == nil {
		return &Style{}
	}
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := &Style{
		FG:      pickString(a.FG, b.FG),
		BG:      pickString(a.BG, b.BG),
		Attrs:   a.Attrs | b.Attrs,
		Padding: pickInt(a.Padding, b.Padding),
		Margin:  pickInt(a.Margin, b.Margin),
		Width:   pickInt(a.Width, b.Width),
		Height:  pickInt(a.Height, b.Height),
		Align:   pickString(a.Align, b.Align),
	}
	return out
}

// IsZero reports whether no field of the style is set.
func (s *Style) IsZero() bool {
	if s == nil {
		return true
	}
	return s.FG == "" && s.BG == "" && s.Attrs == AttrNone &&
		s.Padding == nil && s.Margin == nil &&
		s.Width == nil && s.Height == nil && s.Align == ""
}

func pickString(a, b string) string {
	if b != "" {
		return b
	}
	return a
}

func pickInt(a, b *int) *int {
	if b != nil {
		return b
	}
	return a
}

// toString converts scalar attribute values to their textual form.
func toString(v any) string {
	s, _ := v.(string)
	return s
}

// toIntPtr converts numeric attribute values to an optional int.
func toIntPtr(v any) *int {
	switch n := v.(type) {
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case float64:
		i := int(n)
		return &i
	case uint64:
		i := int(n)
		return &i
	}
	return nil
}
