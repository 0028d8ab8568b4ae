package prism

// DesktopNode is the desktop renderer's native output: a widget
// description record consumed by an opaque desktop widget library.
type DesktopNode struct {
	Type     string         `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Children []*DesktopNode `json:"children,omitempty"`
}

// DesktopRenderer converts element trees into widget-description trees.
type DesktopRenderer struct{}

// NewDesktopRenderer creates a desktop renderer.
func NewDesktopRenderer() *DesktopRenderer { return &DesktopRenderer{} }

// Platform implements Renderer.
func (r *DesktopRenderer) Platform() Platform { return PlatformDesktop }

// Render converts the full tree and wraps it in a baseline state.
func (r *DesktopRenderer) Render(root Element, opts map[string]any) (*State, error) {
	st := newState(PlatformDesktop, nil, root, opts)
	st.Root = r.Convert(root, st)
	return st, nil
}

// Update implements the shared change-gated update semantics.
func (r *DesktopRenderer) Update(root Element, st *State, opts map[string]any) (*State, error) {
	return updateState(r, root, st, opts), nil
}

// Destroy clears references to the widget tree. The description records
// hold no live native handles.
func (r *DesktopRenderer) Destroy(st *State) error {
	if st != nil {
		st.Root = nil
	}
	return nil
}

// Convert maps one element to a widget description. Hidden elements
// convert to nil; unknown kinds to an empty node. Never fails.
func (r *DesktopRenderer) Convert(node Element, st *State) any {
	n := r.convert(node)
	if n == nil {
		return nil
	}
	return n
}

func (r *DesktopRenderer) convert(node Element) *DesktopNode {
	if node == nil || !ElementVisible(node) {
		return nil
	}
	switch el := node.(type) {
	case *Text:
		return &DesktopNode{Type: "text", Props: withStyle(map[string]any{"content": el.Content}, el.Style)}
	case *Button:
		props := map[string]any{"label": el.Label, "disabled": el.Disabled}
		if el.OnClick != "" {
			props["on_click"] = el.OnClick
			props["id"] = el.ID
		}
		return &DesktopNode{Type: "button", Props: withStyle(props, el.Style)}
	case *Label:
		props := map[string]any{"text": el.Text}
		if el.For != "" {
			props["for"] = el.For
		}
		return &DesktopNode{Type: "label", Props: withStyle(props, el.Style)}
	case *TextInput:
		return &DesktopNode{Type: "text_input", Props: withStyle(map[string]any{
			"id": el.ID, "value": el.Value, "placeholder": el.Placeholder,
			"input_type": el.Type, "on_change": el.OnChange, "on_submit": el.OnSubmit,
			"disabled": el.Disabled, "form_id": el.FormID,
			"display": renderTextInputText(el),
		}, el.Style)}
	case *Gauge:
		return &DesktopNode{Type: "gauge", Props: withStyle(map[string]any{
			"label": el.Label, "value": el.Value, "min": el.Min, "max": el.Max,
			"display": renderGauge(el),
		}, el.Style)}
	case *Sparkline:
		return &DesktopNode{Type: "sparkline", Props: withStyle(map[string]any{
			"values": el.Values, "display": renderSparkline(el),
		}, el.Style)}
	case *BarChart:
		return &DesktopNode{Type: "bar_chart", Props: withStyle(map[string]any{
			"items": el.Items, "display": renderBarChart(el),
		}, el.Style)}
	case *LineChart:
		return &DesktopNode{Type: "line_chart", Props: withStyle(map[string]any{
			"values": el.Values, "display": renderLineChart(el),
		}, el.Style)}
	case *Table:
		return r.convertTable(el)
	case *Menu:
		return r.convertMenu("menu", el.ID, el.Items, el.Style)
	case *ContextMenu:
		return r.convertMenu("context_menu", el.ID, el.Items, el.Style)
	case *MenuItem:
		return r.convertMenuItem(el)
	case *Tabs:
		return r.convertTabs(el)
	case *Tab:
		n := &DesktopNode{Type: "tab", Props: map[string]any{"title": el.Title}}
		if el.Content != nil {
			if c := r.convert(el.Content); c != nil {
				n.Children = append(n.Children, c)
			}
		}
		return n
	case *TreeView:
		n := &DesktopNode{Type: "tree_view", Props: withStyle(map[string]any{"id": el.ID}, el.Style)}
		for i := range el.Roots {
			if c := r.convertTreeNode(&el.Roots[i]); c != nil {
				n.Children = append(n.Children, c)
			}
		}
		return n
	case *TreeNode:
		return r.convertTreeNode(el)
	case *VBox:
		return r.convertBox("vbox", el.Children, el.Spacing, el.Align, el.Justify, el.Style)
	case *HBox:
		return r.convertBox("hbox", el.Children, el.Spacing, el.Align, el.Justify, el.Style)
	case *Column:
		return &DesktopNode{Type: "column", Props: map[string]any{
			"key": el.Key, "title": el.Title, "align": el.Align,
		}}
	}
	return &DesktopNode{Type: "unknown"}
}

func (r *DesktopRenderer) convertTable(el *Table) *DesktopNode {
	cols := el.Columns
	if len(cols) == 0 {
		cols = derivedColumns(el.Rows)
	}
	colProps := make([]map[string]any, 0, len(cols))
	for _, c := range cols {
		if c.Hidden {
			continue
		}
		title := c.Title
		if title == "" {
			title = c.Key
		}
		colProps = append(colProps, map[string]any{"key": c.Key, "title": title, "align": c.Align})
	}
	rows := SortRows(el.Rows, el.SortColumn, el.SortDir)
	n := &DesktopNode{Type: "table", Props: withStyle(map[string]any{
		"id": el.ID, "columns": colProps,
		"sort_column": el.SortColumn, "sort_dir": string(el.SortDir),
	}, el.Style)}
	for _, row := range rows {
		cells := make([]any, 0, len(colProps))
		for _, c := range cols {
			if c.Hidden {
				continue
			}
			cells = append(cells, rowValue(row, c.Key))
		}
		n.Children = append(n.Children, &DesktopNode{Type: "table_row", Props: map[string]any{"cells": cells}})
	}
	return n
}

func (r *DesktopRenderer) convertMenu(kind, id string, items []MenuItem, style *Style) *DesktopNode {
	n := &DesktopNode{Type: kind, Props: withStyle(map[string]any{"id": id}, style)}
	for i := range items {
		if c := r.convertMenuItem(&items[i]); c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func (r *DesktopRenderer) convertMenuItem(item *MenuItem) *DesktopNode {
	if item.Hidden {
		return nil
	}
	props := map[string]any{"label": item.Label, "disabled": item.Disabled}
	if item.Action != "" {
		props["action"] = item.Action
		props["id"] = item.ID
	}
	return &DesktopNode{Type: "menu_item", Props: props}
}

func (r *DesktopRenderer) convertTabs(el *Tabs) *DesktopNode {
	n := &DesktopNode{Type: "tabs", Props: withStyle(map[string]any{
		"id": el.ID, "active": el.Active,
	}, el.Style)}
	for i := range el.Tabs {
		if el.Tabs[i].Hidden {
			continue
		}
		if c := r.convert(&el.Tabs[i]); c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// convertTreeNode renders a node; collapsed nodes drop their children.
func (r *DesktopRenderer) convertTreeNode(node *TreeNode) *DesktopNode {
	if node.Hidden {
		return nil
	}
	n := &DesktopNode{Type: "tree_node", Props: map[string]any{
		"id": node.ID, "label": node.Label, "expanded": node.Expanded,
	}}
	if node.Expanded {
		for i := range node.Children {
			if c := r.convertTreeNode(&node.Children[i]); c != nil {
				n.Children = append(n.Children, c)
			}
		}
	}
	return n
}

func (r *DesktopRenderer) convertBox(kind string, children []Element, spacing int, align, justify string, style *Style) *DesktopNode {
	props := map[string]any{}
	if spacing != 0 {
		props["spacing"] = spacing
	}
	if align != "" {
		props["align"] = align
	}
	if justify != "" {
		props["justify"] = justify
	}
	n := &DesktopNode{Type: kind, Props: withStyle(props, style)}
	for _, child := range children {
		if c := r.convert(child); c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// withStyle attaches a resolved style to a prop map when one is set.
func withStyle(props map[string]any, style *Style) map[string]any {
	if style != nil && !style.IsZero() {
		props["style"] = style
	}
	return props
}
