package prism

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TermNode is the terminal renderer's native output: a tagged tree of
// text leaves and stack containers. The tree is a pure value; flattening
// to an ANSI string happens separately in RenderString.
type TermNode struct {
	Kind     string // "text" or "stack"
	Text     string
	Dir      string // "v" or "h", stacks only
	Spacing  int
	Style    *Style
	Meta     map[string]any
	Children []*TermNode
}

// TerminalRenderer converts element trees into TermNode trees.
type TerminalRenderer struct{}

// NewTerminalRenderer creates a terminal renderer.
func NewTerminalRenderer() *TerminalRenderer { return &TerminalRenderer{} }

// Platform implements Renderer.
func (r *TerminalRenderer) Platform() Platform { return PlatformTerminal }

// Render converts the full tree and wraps it in a baseline state. Default
// width/height options come from the attached terminal when there is one.
func (r *TerminalRenderer) Render(root Element, opts map[string]any) (*State, error) {
	cfg := copyConfig(opts)
	if _, ok := cfg["width"]; !ok {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cfg["width"] = w
			cfg["height"] = h
		}
	}
	st := newState(PlatformTerminal, nil, root, cfg)
	st.Root = r.Convert(root, st)
	return st, nil
}

// Update implements the shared change-gated update semantics.
func (r *TerminalRenderer) Update(root Element, st *State, opts map[string]any) (*State, error) {
	return updateState(r, root, st, opts), nil
}

// Destroy releases native resources. The terminal output is a pure value,
// so there is nothing to release.
func (r *TerminalRenderer) Destroy(st *State) error { return nil }

// Convert maps one element (and its subtree) to a TermNode. Hidden
// elements convert to nil and contribute nothing; unknown kinds convert
// to an empty node. Conversion is total and never fails.
func (r *TerminalRenderer) Convert(node Element, st *State) any {
	n := r.convert(node)
	if n == nil {
		return nil
	}
	return n
}

func (r *TerminalRenderer) convert(node Element) *TermNode {
	if node == nil || !ElementVisible(node) {
		return nil
	}
	switch el := node.(type) {
	case *Text:
		return &TermNode{Kind: "text", Text: el.Content, Style: el.Style}
	case *Button:
		n := &TermNode{Kind: "text", Text: "[ " + el.Label + " ]", Style: el.Style}
		if el.OnClick != "" {
			n.Meta = map[string]any{"on_click": el.OnClick, "id": el.ID, "disabled": el.Disabled}
		}
		return n
	case *Label:
		n := &TermNode{Kind: "text", Text: el.Text, Style: el.Style}
		if el.For != "" {
			n.Meta = map[string]any{"for": el.For}
		}
		return n
	case *TextInput:
		return &TermNode{
			Kind:  "text",
			Text:  renderTextInputText(el),
			Style: el.Style,
			Meta: map[string]any{
				"id": el.ID, "value": el.Value, "placeholder": el.Placeholder,
				"type": el.Type, "on_change": el.OnChange, "on_submit": el.OnSubmit,
				"disabled": el.Disabled, "form_id": el.FormID,
			},
		}
	case *Gauge:
		return &TermNode{Kind: "text", Text: renderGauge(el), Style: el.Style,
			Meta: map[string]any{"value": el.Value, "min": el.Min, "max": el.Max}}
	case *Sparkline:
		return &TermNode{Kind: "text", Text: renderSparkline(el), Style: el.Style,
			Meta: map[string]any{"values": el.Values}}
	case *BarChart:
		return &TermNode{Kind: "text", Text: renderBarChart(el), Style: el.Style}
	case *LineChart:
		return &TermNode{Kind: "text", Text: renderLineChart(el), Style: el.Style,
			Meta: map[string]any{"values": el.Values}}
	case *Table:
		cols := el.Columns
		if len(cols) == 0 {
			cols = derivedColumns(el.Rows)
		}
		rows := SortRows(el.Rows, el.SortColumn, el.SortDir)
		return &TermNode{Kind: "text", Text: renderTableText(cols, rows, el.SortColumn, el.SortDir), Style: el.Style}
	case *Menu:
		return r.convertMenu("menu", el.ID, el.Items, el.Style)
	case *ContextMenu:
		return r.convertMenu("context_menu", el.ID, el.Items, el.Style)
	case *MenuItem:
		return r.convertMenuItem(el)
	case *Tabs:
		return r.convertTabs(el)
	case *Tab:
		if el.Content == nil {
			return nil
		}
		return r.convert(el.Content)
	case *TreeView:
		st := &TermNode{Kind: "stack", Dir: "v", Style: el.Style}
		for i := range el.Roots {
			if n := r.convertTreeNode(&el.Roots[i], 0); n != nil {
				st.Children = append(st.Children, n)
			}
		}
		return st
	case *TreeNode:
		return r.convertTreeNode(el, 0)
	case *VBox:
		return r.convertBox("v", el.Children, el.Spacing, el.Style)
	case *HBox:
		return r.convertBox("h", el.Children, el.Spacing, el.Style)
	case *Column:
		// columns render only as part of their table
		return &TermNode{Kind: "text"}
	}
	return &TermNode{Kind: "text"}
}

func (r *TerminalRenderer) convertBox(dir string, children []Element, spacing int, style *Style) *TermNode {
	st := &TermNode{Kind: "stack", Dir: dir, Spacing: spacing, Style: style}
	for _, child := range children {
		if n := r.convert(child); n != nil {
			st.Children = append(st.Children, n)
		}
	}
	return st
}

func (r *TerminalRenderer) convertMenu(kind, id string, items []MenuItem, style *Style) *TermNode {
	st := &TermNode{Kind: "stack", Dir: "v", Style: style}
	if id != "" {
		st.Meta = map[string]any{"id": id, "kind": kind}
	}
	for i := range items {
		if n := r.convertMenuItem(&items[i]); n != nil {
			st.Children = append(st.Children, n)
		}
	}
	return st
}

func (r *TerminalRenderer) convertMenuItem(item *MenuItem) *TermNode {
	if item.Hidden {
		return nil
	}
	text := "• " + item.Label
	if item.Disabled {
		text = "· " + item.Label
	}
	n := &TermNode{Kind: "text", Text: text}
	if item.Action != "" {
		n.Meta = map[string]any{"action": item.Action, "id": item.ID, "disabled": item.Disabled}
	}
	return n
}

func (r *TerminalRenderer) convertTabs(el *Tabs) *TermNode {
	st := &TermNode{Kind: "stack", Dir: "v", Style: el.Style}
	var bar []string
	for i, tab := range el.Tabs {
		if tab.Hidden {
			continue
		}
		if i == el.Active {
			bar = append(bar, "["+tab.Title+"]")
		} else {
			bar = append(bar, " "+tab.Title+" ")
		}
	}
	st.Children = append(st.Children, &TermNode{Kind: "text", Text: strings.Join(bar, " ")})
	if el.Active >= 0 && el.Active < len(el.Tabs) {
		active := el.Tabs[el.Active]
		if !active.Hidden && active.Content != nil {
			if n := r.convert(active.Content); n != nil {
				st.Children = append(st.Children, n)
			}
		}
	}
	return st
}

// convertTreeNode renders a node and, when expanded, its subtree.
// Collapsed nodes suppress children entirely, independent of visibility.
func (r *TerminalRenderer) convertTreeNode(node *TreeNode, depth int) *TermNode {
	if node.Hidden {
		return nil
	}
	glyph := "▾"
	if !node.Expanded {
		glyph = "▸"
	}
	if len(node.Children) == 0 {
		glyph = "·"
	}
	indent := strings.Repeat("  ", depth)
	st := &TermNode{Kind: "stack", Dir: "v"}
	st.Children = append(st.Children, &TermNode{Kind: "text", Text: indent + glyph + " " + node.Label})
	if node.Expanded {
		for i := range node.Children {
			if n := r.convertTreeNode(&node.Children[i], depth+1); n != nil {
				st.Children = append(st.Children, n)
			}
		}
	}
	return st
}

// RenderString flattens a TermNode tree into a styled ANSI string.
func (r *TerminalRenderer) RenderString(node *TermNode) string {
	if node == nil {
		return ""
	}
	switch node.Kind {
	case "text":
		return styleToLipgloss(node.Style).Render(node.Text)
	case "stack":
		parts := make([]string, 0, len(node.Children))
		for _, child := range node.Children {
			parts = append(parts, r.RenderString(child))
		}
		if node.Spacing > 0 {
			parts = withSpacing(parts, node.Dir, node.Spacing)
		}
		var out string
		if node.Dir == "h" {
			out = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		} else {
			out = lipgloss.JoinVertical(lipgloss.Left, parts...)
		}
		return styleToLipgloss(node.Style).Render(out)
	}
	return ""
}

// withSpacing interleaves blank gaps between stack entries.
func withSpacing(parts []string, dir string, spacing int) []string {
	gap := strings.Repeat("\n", spacing-1)
	if dir == "h" {
		gap = strings.Repeat(" ", spacing)
	}
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, p)
	}
	return out
}

// styleToLipgloss maps a resolved Style onto a lipgloss style.
func styleToLipgloss(s *Style) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s == nil {
		return ls
	}
	if s.FG != "" {
		ls = ls.Foreground(lipgloss.Color(termColor(s.FG)))
	}
	if s.BG != "" {
		ls = ls.Background(lipgloss.Color(termColor(s.BG)))
	}
	if s.Attrs.Has(AttrBold) {
		ls = ls.Bold(true)
	}
	if s.Attrs.Has(AttrDim) {
		ls = ls.Faint(true)
	}
	if s.Attrs.Has(AttrItalic) {
		ls = ls.Italic(true)
	}
	if s.Attrs.Has(AttrUnderline) {
		ls = ls.Underline(true)
	}
	if s.Attrs.Has(AttrBlink) {
		ls = ls.Blink(true)
	}
	if s.Attrs.Has(AttrInverse) {
		ls = ls.Reverse(true)
	}
	if s.Attrs.Has(AttrStrikethrough) {
		ls = ls.Strikethrough(true)
	}
	if s.Padding != nil {
		ls = ls.Padding(*s.Padding)
	}
	if s.Margin != nil {
		ls = ls.Margin(*s.Margin)
	}
	if s.Width != nil {
		ls = ls.Width(*s.Width)
	}
	if s.Height != nil {
		ls = ls.Height(*s.Height)
	}
	switch s.Align {
	case "center":
		ls = ls.Align(lipgloss.Center)
	case "right":
		ls = ls.Align(lipgloss.Right)
	}
	return ls
}

// ansiNames maps the basic color vocabulary onto ANSI palette indexes.
var ansiNames = map[string]string{
	"black": "0", "red": "1", "green": "2", "yellow": "3",
	"blue": "4", "magenta": "5", "cyan": "6", "white": "7",
	"brightblack": "8", "brightred": "9", "brightgreen": "10",
	"brightyellow": "11", "brightblue": "12", "brightmagenta": "13",
	"brightcyan": "14", "brightwhite": "15",
}

// termColor translates a color name to its ANSI index; hex values and
// unknown names pass through for lipgloss to interpret.
func termColor(name string) string {
	if idx, ok := ansiNames[strings.ToLower(name)]; ok {
		return idx
	}
	return name
}
