package prism

import "fmt"

// Builder converts source entity trees into element trees, resolving style
// references against an explicit registry. The registry is threaded
// through the whole build so the builder stays pure and testable.
type Builder struct {
	Styles *StyleRegistry
}

// NewBuilder creates a builder over a style registry. A nil registry is
// treated as empty: named references resolve to just their overrides.
func NewBuilder(reg *StyleRegistry) *Builder {
	if reg == nil {
		reg = NewStyleRegistry()
	}
	return &Builder{Styles: reg}
}

// Build converts one entity into an element. Unrecognized entity kinds
// yield (nil, nil): building is lenient, a partially-specified UI still
// renders what it can. Style cycle errors are fatal and propagate.
func (b *Builder) Build(e *Entity) (Element, error) {
	if e == nil {
		return nil, nil
	}
	switch e.Name {
	case "text":
		return b.buildText(e)
	case "button":
		return b.buildButton(e)
	case "label":
		return b.buildLabel(e)
	case "text_input", "input":
		return b.buildTextInput(e)
	case "gauge":
		return b.buildGauge(e)
	case "sparkline":
		return b.buildSparkline(e)
	case "bar_chart":
		return b.buildBarChart(e)
	case "line_chart":
		return b.buildLineChart(e)
	case "table":
		return b.buildTable(e)
	case "menu":
		m, err := b.buildMenuItems(e)
		if err != nil {
			return nil, err
		}
		style, err := b.style(e)
		if err != nil {
			return nil, err
		}
		return &Menu{ID: e.strAttr("id"), Items: m, Style: style, Hidden: hidden(e)}, nil
	case "context_menu":
		m, err := b.buildMenuItems(e)
		if err != nil {
			return nil, err
		}
		style, err := b.style(e)
		if err != nil {
			return nil, err
		}
		return &ContextMenu{ID: e.strAttr("id"), Items: m, Style: style, Hidden: hidden(e)}, nil
	case "tabs":
		return b.buildTabs(e)
	case "tree_view", "tree":
		return b.buildTreeView(e)
	case "vbox":
		return b.buildBox(e, true)
	case "hbox":
		return b.buildBox(e, false)
	}
	return nil, nil
}

// BuildAll converts a list of entities, filtering out unrecognized kinds.
func (b *Builder) BuildAll(entities []*Entity) ([]Element, error) {
	out := make([]Element, 0, len(entities))
	for _, e := range entities {
		el, err := b.Build(e)
		if err != nil {
			return nil, err
		}
		if el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// style resolves the entity's style attribute through the registry.
func (b *Builder) style(e *Entity) (*Style, error) {
	return ResolveRef(b.Styles, e.attr("style"))
}

// hidden applies the visible default (true).
func hidden(e *Entity) bool {
	return !e.boolAttr("visible", true)
}

func (b *Builder) buildText(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	return &Text{
		ID:      e.strAttr("id"),
		Content: e.strAttr("content"),
		Style:   style,
		Hidden:  hidden(e),
	}, nil
}

func (b *Builder) buildButton(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	return &Button{
		ID:       e.strAttr("id"),
		Label:    e.strAttr("label"),
		OnClick:  e.strAttr("on_click"),
		Disabled: e.boolAttr("disabled", false),
		Style:    style,
		Hidden:   hidden(e),
	}, nil
}

func (b *Builder) buildLabel(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	return &Label{
		ID:     e.strAttr("id"),
		Text:   e.strAttr("text"),
		For:    e.strAttr("for"),
		Style:  style,
		Hidden: hidden(e),
	}, nil
}

func (b *Builder) buildTextInput(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	return &TextInput{
		ID:          e.strAttr("id"),
		Value:       e.strAttr("value"),
		Placeholder: e.strAttr("placeholder"),
		Type:        e.strAttr("type"),
		OnChange:    e.strAttr("on_change"),
		OnSubmit:    e.strAttr("on_submit"),
		Disabled:    e.boolAttr("disabled", false),
		FormID:      e.strAttr("form_id"),
		Style:       style,
		Hidden:      hidden(e),
	}, nil
}

func (b *Builder) buildGauge(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	return &Gauge{
		ID:     e.strAttr("id"),
		Label:  e.strAttr("label"),
		Value:  e.floatAttr("value", 0),
		Min:    e.floatAttr("min", 0),
		Max:    e.floatAttr("max", 100),
		Width:  e.intAttr("width"),
		Style:  style,
		Hidden: hidden(e),
	}, nil
}

func (b *Builder) buildSparkline(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	return &Sparkline{
		ID:     e.strAttr("id"),
		Values: e.floatsAttr("values"),
		Width:  e.intAttr("width"),
		Style:  style,
		Hidden: hidden(e),
	}, nil
}

func (b *Builder) buildBarChart(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	var items []BarItem
	for _, bar := range childEntities(e, "bars", "bar") {
		items = append(items, BarItem{
			Label: bar.strAttr("label"),
			Value: bar.floatAttr("value", 0),
		})
	}
	// bars may alternatively arrive as an inline attribute list
	if raw, ok := e.attr("items").([]any); ok {
		for _, item := range raw {
			if m, mok := item.(map[string]any); mok {
				bi := BarItem{}
				bi.Label, _ = m["label"].(string)
				if p := toIntPtr(m["value"]); p != nil {
					bi.Value = float64(*p)
				}
				if f, fok := m["value"].(float64); fok {
					bi.Value = f
				}
				items = append(items, bi)
			}
		}
	}
	return &BarChart{
		ID:     e.strAttr("id"),
		Items:  items,
		Width:  e.intAttr("width"),
		Style:  style,
		Hidden: hidden(e),
	}, nil
}

func (b *Builder) buildLineChart(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	return &LineChart{
		ID:     e.strAttr("id"),
		Values: e.floatsAttr("values"),
		Width:  e.intAttr("width"),
		Height: e.intAttr("height"),
		Style:  style,
		Hidden: hidden(e),
	}, nil
}

func (b *Builder) buildTable(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	var cols []Column
	for _, ce := range childEntities(e, "columns", "column") {
		cols = append(cols, Column{
			ID:     ce.strAttr("id"),
			Key:    ce.strAttr("key"),
			Title:  ce.strAttr("title"),
			Align:  ce.strAttr("align"),
			Width:  ce.intAttr("width"),
			Hidden: hidden(ce),
		})
	}
	var rows []any
	if raw, ok := e.attr("rows").([]any); ok {
		for _, r := range raw {
			if m, mok := r.(map[string]any); mok {
				rows = append(rows, Row(m))
			}
		}
	}
	dir := SortDir(e.strAttr("sort_dir"))
	if dir != SortDesc {
		dir = SortAsc
	}
	return &Table{
		ID:         e.strAttr("id"),
		Columns:    cols,
		Rows:       rows,
		SortColumn: e.strAttr("sort_column"),
		SortDir:    dir,
		Style:      style,
		Hidden:     hidden(e),
	}, nil
}

func (b *Builder) buildMenuItems(e *Entity) ([]MenuItem, error) {
	var items []MenuItem
	for _, ie := range childEntities(e, "menu_items", "menu_item") {
		items = append(items, MenuItem{
			ID:       ie.strAttr("id"),
			Label:    ie.strAttr("label"),
			Action:   ie.strAttr("action"),
			Disabled: ie.boolAttr("disabled", false),
			Hidden:   hidden(ie),
		})
	}
	return items, nil
}

func (b *Builder) buildTabs(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	var tabs []Tab
	for _, te := range childEntities(e, "tabs", "tab") {
		tab := Tab{
			ID:     te.strAttr("id"),
			Title:  te.strAttr("title"),
			Hidden: hidden(te),
		}
		// the first recognized child entity becomes the tab content
		for _, ce := range te.Children {
			content, err := b.Build(ce)
			if err != nil {
				return nil, err
			}
			if content != nil {
				tab.Content = content
				break
			}
		}
		tabs = append(tabs, tab)
	}
	return &Tabs{
		ID:     e.strAttr("id"),
		Tabs:   tabs,
		Active: e.intAttrDef("active", 0),
		Style:  style,
		Hidden: hidden(e),
	}, nil
}

func (b *Builder) buildTreeView(e *Entity) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	var roots []TreeNode
	for _, ne := range childEntities(e, "root_nodes", "node") {
		roots = append(roots, b.buildTreeNode(ne))
	}
	return &TreeView{
		ID:     e.strAttr("id"),
		Roots:  roots,
		Style:  style,
		Hidden: hidden(e),
	}, nil
}

// buildTreeNode builds a node and its subtree top-down. Nodes own their
// children exclusively; the source shape cannot express cycles.
func (b *Builder) buildTreeNode(e *Entity) TreeNode {
	node := TreeNode{
		ID:       e.strAttr("id"),
		Label:    e.strAttr("label"),
		Expanded: e.boolAttr("expanded", true),
		Hidden:   hidden(e),
	}
	for _, ce := range childEntities(e, "children", "node") {
		node.Children = append(node.Children, b.buildTreeNode(ce))
	}
	return node
}

func (b *Builder) buildBox(e *Entity, vertical bool) (Element, error) {
	style, err := b.style(e)
	if err != nil {
		return nil, err
	}
	children, err := b.BuildAll(e.Children)
	if err != nil {
		return nil, err
	}
	if vertical {
		return &VBox{
			ID:       e.strAttr("id"),
			Children: children,
			Spacing:  e.intAttrDef("spacing", 0),
			Align:    e.strAttr("align"),
			Justify:  e.strAttr("justify"),
			Style:    style,
			Hidden:   hidden(e),
		}, nil
	}
	return &HBox{
		ID:       e.strAttr("id"),
		Children: children,
		Spacing:  e.intAttrDef("spacing", 0),
		Align:    e.strAttr("align"),
		Justify:  e.strAttr("justify"),
		Style:    style,
		Hidden:   hidden(e),
	}, nil
}

// Validate checks required fields on a built element. It is an optional
// post-build pass: Build itself stays lenient.
func Validate(el Element) error {
	switch v := el.(type) {
	case *Text:
		if v.Content == "" {
			return fmt.Errorf("text %q: content must not be empty", v.ID)
		}
	case *Button:
		if v.Label == "" {
			return fmt.Errorf("button %q: label must not be empty", v.ID)
		}
	}
	return nil
}

// ValidateAll validates a list, stopping at the first invalid element.
func ValidateAll(els []Element) error {
	for _, el := range els {
		if err := Validate(el); err != nil {
			return err
		}
	}
	return nil
}

// VerifyTree checks fatal configuration errors over a whole tree:
// duplicate element IDs and Label For references that name no element.
// These indicate a broken UI definition that cannot safely render.
func VerifyTree(root Element) error {
	seen := make(map[string]bool)
	var labels []*Label
	var dup string
	WalkElements(root, func(v any) {
		m := ElementMeta(v)
		if id, _ := m["id"].(string); id != "" {
			if seen[id] && dup == "" {
				dup = id
			}
			seen[id] = true
		}
		if l, ok := v.(*Label); ok && l.For != "" {
			labels = append(labels, l)
		}
	})
	if dup != "" {
		return fmt.Errorf("duplicate element id %q", dup)
	}
	for _, l := range labels {
		if !seen[l.For] {
			return fmt.Errorf("label %q references unknown element %q", l.ID, l.For)
		}
	}
	return nil
}
