package prism

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// WebRenderer converts element trees into a single HTML string with
// inline styling. All interpolated text passes through html.EscapeString,
// so the output is XSS-safe by construction.
type WebRenderer struct{}

// NewWebRenderer creates a web renderer.
func NewWebRenderer() *WebRenderer { return &WebRenderer{} }

// Platform implements Renderer.
func (r *WebRenderer) Platform() Platform { return PlatformWeb }

// Render converts the full tree and wraps it in a baseline state.
func (r *WebRenderer) Render(root Element, opts map[string]any) (*State, error) {
	st := newState(PlatformWeb, nil, root, opts)
	st.Root = r.Convert(root, st)
	return st, nil
}

// Update implements the shared change-gated update semantics.
func (r *WebRenderer) Update(root Element, st *State, opts map[string]any) (*State, error) {
	return updateState(r, root, st, opts), nil
}

// Destroy is a no-op: the HTML output is a pure value.
func (r *WebRenderer) Destroy(st *State) error { return nil }

// Convert maps one element to its HTML string. Hidden elements convert to
// nil (not an empty tag); unknown kinds to an empty string. Never fails.
func (r *WebRenderer) Convert(node Element, st *State) any {
	if node == nil || !ElementVisible(node) {
		return nil
	}
	return r.convert(node)
}

func (r *WebRenderer) convert(node Element) string {
	if node == nil || !ElementVisible(node) {
		return ""
	}
	switch el := node.(type) {
	case *Text:
		return tag("span", attrs(el.ID, el.Style, nil), html.EscapeString(el.Content))
	case *Button:
		a := attrs(el.ID, el.Style, nil)
		if el.Disabled {
			a += ` disabled`
		}
		if el.OnClick != "" {
			a += fmt.Sprintf(` data-on-click=%q`, html.EscapeString(el.OnClick))
		}
		return tag("button", a, html.EscapeString(el.Label))
	case *Label:
		a := attrs(el.ID, el.Style, nil)
		if el.For != "" {
			a += fmt.Sprintf(` for=%q`, html.EscapeString(el.For))
		}
		return tag("label", a, html.EscapeString(el.Text))
	case *TextInput:
		return r.convertInput(el)
	case *Gauge:
		return tag("pre", attrs(el.ID, el.Style, map[string]any{
			"value": el.Value, "min": el.Min, "max": el.Max,
		}), html.EscapeString(renderGauge(el)))
	case *Sparkline:
		return tag("pre", attrs(el.ID, el.Style, nil), html.EscapeString(renderSparkline(el)))
	case *BarChart:
		return tag("pre", attrs(el.ID, el.Style, nil), html.EscapeString(renderBarChart(el)))
	case *LineChart:
		return tag("pre", attrs(el.ID, el.Style, nil), html.EscapeString(renderLineChart(el)))
	case *Table:
		return r.convertTable(el)
	case *Menu:
		return r.convertMenu("menu", el.ID, el.Items, el.Style)
	case *ContextMenu:
		return r.convertMenu("context-menu", el.ID, el.Items, el.Style)
	case *MenuItem:
		return r.convertMenuItem(el)
	case *Tabs:
		return r.convertTabs(el)
	case *Tab:
		if el.Content == nil {
			return ""
		}
		return r.convert(el.Content)
	case *TreeView:
		var b strings.Builder
		for i := range el.Roots {
			b.WriteString(r.convertTreeNode(&el.Roots[i]))
		}
		return tag("ul", attrs(el.ID, el.Style, map[string]any{"role": "tree"}), b.String())
	case *TreeNode:
		return r.convertTreeNode(el)
	case *VBox:
		return r.convertBox("column", el.ID, el.Style, el.Spacing, el.Children)
	case *HBox:
		return r.convertBox("row", el.ID, el.Style, el.Spacing, el.Children)
	case *Column:
		return ""
	}
	return ""
}

func (r *WebRenderer) convertInput(el *TextInput) string {
	var b strings.Builder
	b.WriteString("<input")
	b.WriteString(attrs(el.ID, el.Style, nil))
	inputType := el.Type
	if inputType == "" {
		inputType = "text"
	}
	fmt.Fprintf(&b, " type=%q", html.EscapeString(inputType))
	if el.Value != "" {
		fmt.Fprintf(&b, " value=%q", html.EscapeString(el.Value))
	}
	if el.Placeholder != "" {
		fmt.Fprintf(&b, " placeholder=%q", html.EscapeString(el.Placeholder))
	}
	if el.Disabled {
		b.WriteString(" disabled")
	}
	if el.OnChange != "" {
		fmt.Fprintf(&b, " data-on-change=%q", html.EscapeString(el.OnChange))
	}
	if el.OnSubmit != "" {
		fmt.Fprintf(&b, " data-on-submit=%q", html.EscapeString(el.OnSubmit))
	}
	if el.FormID != "" {
		fmt.Fprintf(&b, " form=%q", html.EscapeString(el.FormID))
	}
	b.WriteString("/>")
	return b.String()
}

func (r *WebRenderer) convertTable(el *Table) string {
	cols := el.Columns
	if len(cols) == 0 {
		cols = derivedColumns(el.Rows)
	}
	visible := cols[:0:0]
	for _, c := range cols {
		if !c.Hidden {
			visible = append(visible, c)
		}
	}
	var b strings.Builder
	b.WriteString("<thead><tr>")
	for _, c := range visible {
		title := c.Title
		if title == "" {
			title = c.Key
		}
		if c.Key != "" && c.Key == el.SortColumn {
			if el.SortDir == SortDesc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		b.WriteString(tag("th", alignAttr(c.Align), html.EscapeString(title)))
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range SortRows(el.Rows, el.SortColumn, el.SortDir) {
		b.WriteString("<tr>")
		for _, c := range visible {
			b.WriteString(tag("td", alignAttr(c.Align), html.EscapeString(cellText(rowValue(row, c.Key)))))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody>")
	return tag("table", attrs(el.ID, el.Style, nil), b.String())
}

func (r *WebRenderer) convertMenu(class, id string, items []MenuItem, style *Style) string {
	var b strings.Builder
	for i := range items {
		b.WriteString(r.convertMenuItem(&items[i]))
	}
	return tag("ul", attrs(id, style, map[string]any{"class": class}), b.String())
}

func (r *WebRenderer) convertMenuItem(item *MenuItem) string {
	if item.Hidden {
		return ""
	}
	a := attrs(item.ID, nil, nil)
	if item.Disabled {
		a += ` aria-disabled="true"`
	}
	if item.Action != "" {
		a += fmt.Sprintf(` data-action=%q`, html.EscapeString(item.Action))
	}
	return tag("li", a, html.EscapeString(item.Label))
}

func (r *WebRenderer) convertTabs(el *Tabs) string {
	var bar, panels strings.Builder
	for i := range el.Tabs {
		t := &el.Tabs[i]
		if t.Hidden {
			continue
		}
		class := "tab"
		if i == el.Active {
			class = "tab active"
		}
		bar.WriteString(tag("li", fmt.Sprintf(" class=%q", class), html.EscapeString(t.Title)))
		if i == el.Active && t.Content != nil {
			panels.WriteString(tag("div", ` class="tab-panel"`, r.convert(t.Content)))
		}
	}
	inner := tag("ul", ` class="tab-bar"`, bar.String()) + panels.String()
	return tag("div", attrs(el.ID, el.Style, map[string]any{"class": "tabs"}), inner)
}

// convertTreeNode renders a node; collapsed nodes suppress their subtree.
func (r *WebRenderer) convertTreeNode(node *TreeNode) string {
	if node.Hidden {
		return ""
	}
	var b strings.Builder
	b.WriteString(html.EscapeString(node.Label))
	if node.Expanded && len(node.Children) > 0 {
		b.WriteString("<ul>")
		for i := range node.Children {
			b.WriteString(r.convertTreeNode(&node.Children[i]))
		}
		b.WriteString("</ul>")
	}
	a := attrs(node.ID, nil, nil)
	if !node.Expanded {
		a += ` data-collapsed="true"`
	}
	return tag("li", a, b.String())
}

func (r *WebRenderer) convertBox(direction, id string, style *Style, spacing int, children []Element) string {
	var b strings.Builder
	for _, child := range children {
		b.WriteString(r.convert(child))
	}
	css := fmt.Sprintf("display:flex;flex-direction:%s", direction)
	if spacing > 0 {
		css += fmt.Sprintf(";gap:%dpx", spacing*4)
	}
	if s := inlineCSS(style); s != "" {
		css += ";" + s
	}
	return fmt.Sprintf(`<div%s style="%s">%s</div>`, idAttr(id), html.EscapeString(css), b.String())
}

// tag wraps inner content in an element. attrStr must be pre-escaped.
func tag(name, attrStr, inner string) string {
	return fmt.Sprintf("<%s%s>%s</%s>", name, attrStr, inner, name)
}

func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf(" id=%q", html.EscapeString(id))
}

func alignAttr(align string) string {
	if align == "" {
		return ""
	}
	return fmt.Sprintf(` style="%s"`, html.EscapeString("text-align:"+align))
}

// attrs builds the common attribute string: id, inline style, data-*.
func attrs(id string, style *Style, data map[string]any) string {
	var b strings.Builder
	b.WriteString(idAttr(id))
	if css := inlineCSS(style); css != "" {
		fmt.Fprintf(&b, ` style="%s"`, html.EscapeString(css))
	}
	for _, k := range sortedKeys(data) {
		fmt.Fprintf(&b, " data-%s=%q", strings.ReplaceAll(k, "_", "-"),
			html.EscapeString(fmt.Sprint(data[k])))
	}
	return b.String()
}

func sortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cssNames maps the color vocabulary to CSS color values.
var cssNames = map[string]string{
	"brightblack": "#666666", "brightred": "#ff5555",
	"brightgreen": "#55ff55", "brightyellow": "#ffff55",
	"brightblue": "#5555ff", "brightmagenta": "#ff55ff",
	"brightcyan": "#55ffff", "brightwhite": "#ffffff",
}

func cssColor(name string) string {
	if v, ok := cssNames[strings.ToLower(name)]; ok {
		return v
	}
	return name
}

// inlineCSS translates a resolved style into an inline CSS declaration.
func inlineCSS(s *Style) string {
	if s == nil || s.IsZero() {
		return ""
	}
	var parts []string
	if s.FG != "" {
		parts = append(parts, "color:"+cssColor(s.FG))
	}
	if s.BG != "" {
		parts = append(parts, "background-color:"+cssColor(s.BG))
	}
	if s.Attrs.Has(AttrBold) {
		parts = append(parts, "font-weight:bold")
	}
	if s.Attrs.Has(AttrDim) {
		parts = append(parts, "opacity:0.6")
	}
	if s.Attrs.Has(AttrItalic) {
		parts = append(parts, "font-style:italic")
	}
	var deco []string
	if s.Attrs.Has(AttrUnderline) {
		deco = append(deco, "underline")
	}
	if s.Attrs.Has(AttrStrikethrough) {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		parts = append(parts, "text-decoration:"+strings.Join(deco, " "))
	}
	if s.Padding != nil {
		parts = append(parts, fmt.Sprintf("padding:%dpx", *s.Padding*4))
	}
	if s.Margin != nil {
		parts = append(parts, fmt.Sprintf("margin:%dpx", *s.Margin*4))
	}
	if s.Width != nil {
		parts = append(parts, fmt.Sprintf("width:%dch", *s.Width))
	}
	if s.Height != nil {
		parts = append(parts, fmt.Sprintf("height:%dem", *s.Height))
	}
	if s.Align != "" {
		parts = append(parts, "text-align:"+s.Align)
	}
	return strings.Join(parts, ";")
}
