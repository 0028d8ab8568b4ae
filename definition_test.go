package prism

import (
	"strings"
	"testing"
)

const dashboardYAML = `
styles:
  base:
    attrs:
      fg: white
      padding: 1
  header:
    extends: base
    attrs:
      attrs: [bold]
root:
  name: vbox
  attrs:
    spacing: 1
  children:
    - name: text
      attrs:
        content: Dashboard
        style: header
    - name: gauge
      attrs:
        label: CPU
        value: 42
        max: 100
    - name: table
      attrs:
        id: jobs
        sort_column: name
      children:
        - name: column
          attrs:
            key: name
            title: Name
        - name: column
          attrs:
            key: state
            title: State
`

func TestLoadDefinition(t *testing.T) {
	def, err := LoadDefinition([]byte(dashboardYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Styles) != 2 {
		t.Errorf("styles = %d, want 2", len(def.Styles))
	}
	if def.Styles["header"].Extends != "base" {
		t.Errorf("header extends %q", def.Styles["header"].Extends)
	}
	if def.Root == nil || def.Root.Name != "vbox" {
		t.Fatalf("root = %+v", def.Root)
	}
	if len(def.Root.Children) != 3 {
		t.Errorf("root children = %d", len(def.Root.Children))
	}
}

func TestLoadDefinitionBadYAML(t *testing.T) {
	if _, err := LoadDefinition([]byte("styles: [")); err == nil {
		t.Error("malformed YAML should fail to parse")
	}
}

func TestBuildDefinition(t *testing.T) {
	root, reg, err := BuildDefinition([]byte(dashboardYAML))
	if err != nil {
		t.Fatal(err)
	}

	box, ok := root.(*VBox)
	if !ok {
		t.Fatalf("root = %T, want *VBox", root)
	}
	if box.Spacing != 1 || len(box.Children) != 3 {
		t.Fatalf("box = %+v", box)
	}

	text := box.Children[0].(*Text)
	if text.Content != "Dashboard" {
		t.Errorf("content = %q", text.Content)
	}
	if text.Style == nil || text.Style.FG != "white" || !text.Style.Attrs.Has(AttrBold) {
		t.Errorf("header style not resolved through inheritance: %+v", text.Style)
	}

	gauge := box.Children[1].(*Gauge)
	if gauge.Label != "CPU" || gauge.Value != 42 || gauge.Max != 100 {
		t.Errorf("gauge = %+v", gauge)
	}

	tbl := box.Children[2].(*Table)
	if tbl.ID != "jobs" || tbl.SortColumn != "name" || tbl.SortDir != SortAsc {
		t.Errorf("table = %+v", tbl)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[1].Title != "State" {
		t.Errorf("columns = %+v", tbl.Columns)
	}

	if _, ok := reg.Lookup("header"); !ok {
		t.Error("registry should carry the defined styles")
	}
}

func TestBuildDefinitionRendersEverywhere(t *testing.T) {
	root, _, err := BuildDefinition([]byte(dashboardYAML))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCoordinator()
	results, err := c.RenderOn(root, []Platform{PlatformTerminal, PlatformDesktop, PlatformWeb}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for p, res := range results {
		if res.Err != nil || res.State == nil || res.State.Root == nil {
			t.Errorf("%s = %+v", p, res)
		}
	}
	web := results[PlatformWeb].State.Root.(string)
	if !strings.Contains(web, "Dashboard") {
		t.Errorf("web output missing content: %q", web)
	}
}
