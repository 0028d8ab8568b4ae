package prism

import (
	"strings"
	"testing"
)

func webConvert(t *testing.T, el Element) string {
	t.Helper()
	r := NewWebRenderer()
	out := r.Convert(el, nil)
	if out == nil {
		t.Fatalf("Convert(%T) = nil", el)
	}
	s, ok := out.(string)
	if !ok {
		t.Fatalf("Convert(%T) = %T, want string", el, out)
	}
	return s
}

func TestWebEscapesContent(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		must string
		not  string
	}{
		{
			"text content",
			&Text{Content: "<script>alert(1)</script>"},
			"&lt;script&gt;alert(1)&lt;/script&gt;",
			"<script>",
		},
		{
			"button label",
			&Button{Label: `"><img onerror=x>`},
			"&lt;img",
			"<img",
		},
		{
			"input value",
			&TextInput{Value: `" onmouseover="evil()`},
			"&#34; onmouseover=&#34;evil()",
			`" onmouseover="evil()"`,
		},
		{
			"tree label",
			&TreeNode{Label: "<b>bold</b>", Expanded: true},
			"&lt;b&gt;",
			"<b>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := webConvert(t, tt.el)
			if !strings.Contains(got, tt.must) {
				t.Errorf("output %q should contain %q", got, tt.must)
			}
			if strings.Contains(got, tt.not) {
				t.Errorf("output %q leaked raw markup %q", got, tt.not)
			}
		})
	}
}

func TestWebEscapesStyleValues(t *testing.T) {
	hostile := `red" onmouseover=alert(1) x="`

	t.Run("inline style", func(t *testing.T) {
		got := webConvert(t, &Text{Content: "hi", Style: &Style{FG: hostile}})
		if strings.Contains(got, `" onmouseover`) {
			t.Fatalf("style value broke out of its attribute: %q", got)
		}
		if !strings.Contains(got, `color:red&#34;`) {
			t.Errorf("style value should be entity-escaped: %q", got)
		}
	})

	t.Run("column align", func(t *testing.T) {
		tbl := &Table{
			Columns: []Column{{Key: "a", Title: "A", Align: `left" onclick=alert(2) y="`}},
			Rows:    []any{Row{"a": 1}},
		}
		got := webConvert(t, tbl)
		if strings.Contains(got, `" onclick=`) {
			t.Fatalf("align value broke out of its attribute: %q", got)
		}
		if !strings.Contains(got, `text-align:left&#34;`) {
			t.Errorf("align should be entity-escaped: %q", got)
		}
	})

	t.Run("box style", func(t *testing.T) {
		box := &VBox{Style: &Style{BG: hostile}, Children: []Element{&Text{Content: "x"}}}
		got := webConvert(t, box)
		if strings.Contains(got, `" onmouseover=`) {
			t.Fatalf("box style broke out of its attribute: %q", got)
		}
	})
}

func TestWebHiddenConvertsToNil(t *testing.T) {
	r := NewWebRenderer()
	if got := r.Convert(&Text{Content: "x", Hidden: true}, nil); got != nil {
		t.Errorf("hidden element = %v, want nil", got)
	}
}

func TestWebHiddenAbsentFromContainer(t *testing.T) {
	box := &VBox{Children: []Element{
		&Text{Content: "shown"},
		&Text{Content: "ghost", Hidden: true},
	}}
	got := webConvert(t, box)
	if !strings.Contains(got, "shown") {
		t.Errorf("visible child missing: %q", got)
	}
	if strings.Contains(got, "ghost") {
		t.Errorf("hidden child leaked into HTML: %q", got)
	}
	if !strings.Contains(got, "flex-direction:column") {
		t.Errorf("vbox should be a column flexbox: %q", got)
	}
}

func TestWebText(t *testing.T) {
	got := webConvert(t, &Text{ID: "t1", Content: "hi"})
	if got != `<span id="t1">hi</span>` {
		t.Errorf("text = %q", got)
	}
}

func TestWebButton(t *testing.T) {
	got := webConvert(t, &Button{ID: "b", Label: "Save", OnClick: "save", Disabled: true})
	for _, part := range []string{`id="b"`, "disabled", `data-on-click="save"`, ">Save</button>"} {
		if !strings.Contains(got, part) {
			t.Errorf("button %q missing %q", got, part)
		}
	}
}

func TestWebInput(t *testing.T) {
	got := webConvert(t, &TextInput{ID: "name", Placeholder: "Name", OnChange: "set", FormID: "f1"})
	for _, part := range []string{`type="text"`, `placeholder="Name"`, `data-on-change="set"`, `form="f1"`} {
		if !strings.Contains(got, part) {
			t.Errorf("input %q missing %q", got, part)
		}
	}
	if strings.Contains(got, "value=") {
		t.Errorf("empty value should be omitted: %q", got)
	}
}

func TestWebTable(t *testing.T) {
	tbl := &Table{
		Columns: []Column{
			{Key: "name", Title: "Name"},
			{Key: "age", Title: "Age", Hidden: true},
		},
		Rows:       []any{Row{"name": "bo", "age": 7}, Row{"name": "ada", "age": 36}},
		SortColumn: "name",
		SortDir:    SortAsc,
	}
	got := webConvert(t, tbl)
	if !strings.Contains(got, "<th>Name ▲</th>") {
		t.Errorf("sort glyph missing: %q", got)
	}
	if strings.Contains(got, "Age") || strings.Contains(got, "36") {
		t.Errorf("hidden column leaked: %q", got)
	}
	// ascending by name: ada before bo
	if strings.Index(got, ">ada<") > strings.Index(got, ">bo<") {
		t.Errorf("rows not sorted: %q", got)
	}
}

func TestWebTabs(t *testing.T) {
	tabs := &Tabs{
		Active: 0,
		Tabs: []Tab{
			{Title: "One", Content: &Text{Content: "alpha"}},
			{Title: "Two", Content: &Text{Content: "beta"}},
		},
	}
	got := webConvert(t, tabs)
	if !strings.Contains(got, `<li class="tab active">One</li>`) {
		t.Errorf("active tab not marked: %q", got)
	}
	if !strings.Contains(got, "alpha") || strings.Contains(got, "beta") {
		t.Errorf("only the active panel should render: %q", got)
	}
}

func TestWebTreeCollapse(t *testing.T) {
	tv := &TreeView{Roots: []TreeNode{{
		Label:    "root",
		Expanded: false,
		Children: []TreeNode{{Label: "secret"}},
	}}}
	got := webConvert(t, tv)
	if !strings.Contains(got, `data-collapsed="true"`) {
		t.Errorf("collapsed marker missing: %q", got)
	}
	if strings.Contains(got, "secret") {
		t.Errorf("collapsed subtree leaked: %q", got)
	}
}

func TestWebMenu(t *testing.T) {
	m := &Menu{ID: "m", Items: []MenuItem{
		{Label: "Open", Action: "open"},
		{Label: "Gone", Hidden: true},
		{Label: "Off", Disabled: true},
	}}
	got := webConvert(t, m)
	if !strings.Contains(got, `data-action="open"`) {
		t.Errorf("action missing: %q", got)
	}
	if strings.Contains(got, "Gone") {
		t.Errorf("hidden item leaked: %q", got)
	}
	if !strings.Contains(got, `aria-disabled="true"`) {
		t.Errorf("disabled marker missing: %q", got)
	}
}

func TestWebInlineCSS(t *testing.T) {
	p := 1
	s := &Style{FG: "red", Attrs: AttrBold | AttrUnderline, Padding: &p}
	got := inlineCSS(s)
	for _, part := range []string{"color:red", "font-weight:bold", "text-decoration:underline", "padding:4px"} {
		if !strings.Contains(got, part) {
			t.Errorf("css %q missing %q", got, part)
		}
	}
	if inlineCSS(nil) != "" || inlineCSS(&Style{}) != "" {
		t.Error("empty styles should produce no CSS")
	}
}
