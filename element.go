package prism

import "sort"

// Element is implemented by every widget and layout variant. The set of
// variants is closed: tree traversal dispatches over the concrete types
// below and degrades to {type: unknown} for anything else.
type Element interface {
	element()
}

// SortDir is a table sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Row is a keyed table row.
type Row = map[string]any

// Pair is one entry of an ordered association-list row.
type Pair struct {
	Key   string
	Value any
}

// Pairs is an ordered association-list row representation. Table rows may
// be either Row maps or Pairs lists; value extraction treats them alike.
type Pairs []Pair

// Get returns the value for a key, nil if absent.
func (p Pairs) Get(key string) any {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value
		}
	}
	return nil
}

// --- leaf widgets ---

// Text displays static content.
type Text struct {
	ID      string
	Content string
	Style   *Style
	Hidden  bool
}

// Button is a pressable widget. An empty OnClick means no event handler is
// attached and no event metadata is emitted for it.
type Button struct {
	ID       string
	Label    string
	OnClick  string
	Disabled bool
	Style    *Style
	Hidden   bool
}

// Label is a text leaf optionally linked to an input by ID.
type Label struct {
	ID     string
	Text   string
	For    string
	Style  *Style
	Hidden bool
}

// TextInput is a single editable field.
type TextInput struct {
	ID          string
	Value       string
	Placeholder string
	Type        string // text, password, ...
	OnChange    string
	OnSubmit    string
	Disabled    bool
	FormID      string
	Style       *Style
	Hidden      bool
}

// Gauge shows a single value within a [Min, Max] range.
type Gauge struct {
	ID     string
	Label  string
	Value  float64
	Min    float64
	Max    float64
	Width  *int
	Style  *Style
	Hidden bool
}

// Sparkline shows a numeric series as a compact run of block glyphs.
type Sparkline struct {
	ID     string
	Values []float64
	Width  *int
	Style  *Style
	Hidden bool
}

// BarItem is one labelled bar of a BarChart.
type BarItem struct {
	Label string
	Value float64
}

// BarChart shows labelled horizontal bars scaled to the largest value.
type BarChart struct {
	ID     string
	Items  []BarItem
	Width  *int
	Style  *Style
	Hidden bool
}

// LineChart plots a numeric series on a fixed character grid.
type LineChart struct {
	ID     string
	Values []float64
	Width  *int
	Height *int
	Style  *Style
	Hidden bool
}

// Column describes one table column.
type Column struct {
	ID     string
	Key    string
	Title  string
	Align  string // left, center, right
	Width  *int
	Hidden bool
}

// Table renders rows under declared columns. When no columns are declared
// and rows exist, renderers derive columns from the first row's key set.
type Table struct {
	ID         string
	Columns    []Column
	Rows       []any // Row or Pairs
	SortColumn string
	SortDir    SortDir
	Style      *Style
	Hidden     bool
}

// --- navigational widgets ---

// MenuItem is one selectable entry of a Menu or ContextMenu.
type MenuItem struct {
	ID       string
	Label    string
	Action   string
	Disabled bool
	Hidden   bool
}

// Menu is a flat list of selectable items.
type Menu struct {
	ID     string
	Items  []MenuItem
	Style  *Style
	Hidden bool
}

// ContextMenu is a menu anchored to another element.
type ContextMenu struct {
	ID     string
	Items  []MenuItem
	Style  *Style
	Hidden bool
}

// Tab is one page of a Tabs widget.
type Tab struct {
	ID      string
	Title   string
	Content Element
	Hidden  bool
}

// Tabs shows one of several tab pages, selected by index.
type Tabs struct {
	ID     string
	Tabs   []Tab
	Active int
	Style  *Style
	Hidden bool
}

// TreeNode is a self-referential tree entry. A collapsed node suppresses
// rendering of its children entirely, independent of visibility.
type TreeNode struct {
	ID       string
	Label    string
	Expanded bool
	Children []TreeNode
	Hidden   bool
}

// TreeView renders a forest of TreeNodes.
type TreeView struct {
	ID     string
	Roots  []TreeNode
	Style  *Style
	Hidden bool
}

// --- layouts ---

// VBox stacks children vertically. The layout exclusively owns its
// children; there are no shared or back references.
type VBox struct {
	ID       string
	Children []Element
	Spacing  int
	Align    string
	Justify  string
	Style    *Style
	Hidden   bool
}

// HBox stacks children horizontally.
type HBox struct {
	ID       string
	Children []Element
	Spacing  int
	Align    string
	Justify  string
	Style    *Style
	Hidden   bool
}

func (*Text) element()        {}
func (*Button) element()      {}
func (*Label) element()       {}
func (*TextInput) element()   {}
func (*Gauge) element()       {}
func (*Sparkline) element()   {}
func (*BarChart) element()    {}
func (*LineChart) element()   {}
func (*Column) element()      {}
func (*Table) element()       {}
func (*MenuItem) element()    {}
func (*Menu) element()        {}
func (*ContextMenu) element() {}
func (*Tab) element()         {}
func (*Tabs) element()        {}
func (*TreeNode) element()    {}
func (*TreeView) element()    {}
func (*VBox) element()        {}
func (*HBox) element()        {}

// ElementChildren returns the owned child elements of any value. Leaf
// widgets and unrecognized values yield nil. Nested collections (columns,
// menu items, tabs, tree nodes) are part of the traversal.
func ElementChildren(v any) []Element {
	switch el := v.(type) {
	case *VBox:
		return el.Children
	case *HBox:
		return el.Children
	case *Table:
		out := make([]Element, 0, len(el.Columns))
		for i := range el.Columns {
			out = append(out, &el.Columns[i])
		}
		return out
	case *Menu:
		return menuItemChildren(el.Items)
	case *ContextMenu:
		return menuItemChildren(el.Items)
	case *Tabs:
		out := make([]Element, 0, len(el.Tabs))
		for i := range el.Tabs {
			out = append(out, &el.Tabs[i])
		}
		return out
	case *Tab:
		if el.Content == nil {
			return nil
		}
		return []Element{el.Content}
	case *TreeView:
		return treeNodeChildren(el.Roots)
	case *TreeNode:
		return treeNodeChildren(el.Children)
	}
	return nil
}

func menuItemChildren(items []MenuItem) []Element {
	out := make([]Element, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out
}

func treeNodeChildren(nodes []TreeNode) []Element {
	out := make([]Element, 0, len(nodes))
	for i := range nodes {
		out = append(out, &nodes[i])
	}
	return out
}

// ElementMeta returns a flattened property map for any value, including
// the resolved style and visibility. It is total: unrecognized values
// yield {type: "unknown"} so traversal never panics on foreign input.
func ElementMeta(v any) map[string]any {
	switch el := v.(type) {
	case *Text:
		return meta("text", el.ID, el.Style, el.Hidden, map[string]any{"content": el.Content})
	case *Button:
		return meta("button", el.ID, el.Style, el.Hidden, map[string]any{
			"label": el.Label, "on_click": el.OnClick, "disabled": el.Disabled,
		})
	case *Label:
		return meta("label", el.ID, el.Style, el.Hidden, map[string]any{"text": el.Text, "for": el.For})
	case *TextInput:
		return meta("text_input", el.ID, el.Style, el.Hidden, map[string]any{
			"value": el.Value, "placeholder": el.Placeholder, "input_type": el.Type,
			"on_change": el.OnChange, "on_submit": el.OnSubmit,
			"disabled": el.Disabled, "form_id": el.FormID,
		})
	case *Gauge:
		return meta("gauge", el.ID, el.Style, el.Hidden, map[string]any{
			"label": el.Label, "value": el.Value, "min": el.Min, "max": el.Max,
		})
	case *Sparkline:
		return meta("sparkline", el.ID, el.Style, el.Hidden, map[string]any{"values": el.Values})
	case *BarChart:
		return meta("bar_chart", el.ID, el.Style, el.Hidden, map[string]any{"items": len(el.Items)})
	case *LineChart:
		return meta("line_chart", el.ID, el.Style, el.Hidden, map[string]any{"values": el.Values})
	case *Column:
		return meta("column", el.ID, nil, el.Hidden, map[string]any{
			"key": el.Key, "title": el.Title, "align": el.Align,
		})
	case *Table:
		return meta("table", el.ID, el.Style, el.Hidden, map[string]any{
			"columns": len(el.Columns), "rows": len(el.Rows),
			"sort_column": el.SortColumn, "sort_dir": string(el.SortDir),
		})
	case *MenuItem:
		return meta("menu_item", el.ID, nil, el.Hidden, map[string]any{
			"label": el.Label, "action": el.Action, "disabled": el.Disabled,
		})
	case *Menu:
		return meta("menu", el.ID, el.Style, el.Hidden, map[string]any{"items": len(el.Items)})
	case *ContextMenu:
		return meta("context_menu", el.ID, el.Style, el.Hidden, map[string]any{"items": len(el.Items)})
	case *Tab:
		return meta("tab", el.ID, nil, el.Hidden, map[string]any{"title": el.Title})
	case *Tabs:
		return meta("tabs", el.ID, el.Style, el.Hidden, map[string]any{
			"tabs": len(el.Tabs), "active": el.Active,
		})
	case *TreeNode:
		return meta("tree_node", el.ID, nil, el.Hidden, map[string]any{
			"label": el.Label, "expanded": el.Expanded,
		})
	case *TreeView:
		return meta("tree_view", el.ID, el.Style, el.Hidden, map[string]any{"roots": len(el.Roots)})
	case *VBox:
		return meta("vbox", el.ID, el.Style, el.Hidden, layoutMeta(el.Spacing, el.Align, el.Justify))
	case *HBox:
		return meta("hbox", el.ID, el.Style, el.Hidden, layoutMeta(el.Spacing, el.Align, el.Justify))
	}
	return map[string]any{"type": "unknown"}
}

func layoutMeta(spacing int, align, justify string) map[string]any {
	return map[string]any{"spacing": spacing, "align": align, "justify": justify}
}

func meta(kind, id string, style *Style, hidden bool, extra map[string]any) map[string]any {
	m := map[string]any{
		"type":    kind,
		"visible": !hidden,
	}
	if id != "" {
		m["id"] = id
	}
	if style != nil && !style.IsZero() {
		m["style"] = style
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

// ElementVisible reports the visibility flag of any value. Unrecognized
// values are visible so unknown-node fallbacks still take effect.
func ElementVisible(v any) bool {
	m := ElementMeta(v)
	if vis, ok := m["visible"].(bool); ok {
		return vis
	}
	return true
}

// WalkElements visits v and every descendant depth-first.
func WalkElements(v any, fn func(any)) {
	fn(v)
	for _, child := range ElementChildren(v) {
		WalkElements(child, fn)
	}
}

// derivedColumns builds a deterministic column list from the key set of
// the first row, keys sorted. Used when a table declares no columns.
func derivedColumns(rows []any) []Column {
	if len(rows) == 0 {
		return nil
	}
	var keys []string
	switch first := rows[0].(type) {
	case Row:
		for k := range first {
			keys = append(keys, k)
		}
	case Pairs:
		for _, kv := range first {
			keys = append(keys, kv.Key)
		}
	}
	sort.Strings(keys)
	cols := make([]Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, Column{Key: k, Title: k})
	}
	return cols
}
