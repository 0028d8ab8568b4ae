package prism

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Deterministic text renderings for the data widgets, shared by all three
// platform renderers. Each platform wraps the same text in its own native
// node shape so a gauge reads identically everywhere.

const (
	defaultGaugeWidth = 20
	defaultChartWidth = 20
	defaultLineChartW = 40
	defaultLineChartH = 5
)

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// renderGauge draws a fixed-width fill bar. Value is clamped into
// [min, max] before the fill ratio is computed.
func renderGauge(g *Gauge) string {
	width := defaultGaugeWidth
	if g.Width != nil && *g.Width > 0 {
		width = *g.Width
	}
	min, max := g.Min, g.Max
	if max <= min {
		max = min + 1
	}
	value := g.Value
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	ratio := (value - min) / (max - min)
	filled := int(math.Round(ratio * float64(width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
	if g.Label != "" {
		return fmt.Sprintf("%s [%s] %s", g.Label, bar, pct)
	}
	return fmt.Sprintf("[%s] %s", bar, pct)
}

// renderSparkline maps each value onto one of eight block glyphs scaled
// between the series minimum and maximum.
func renderSparkline(s *Sparkline) string {
	values := s.Values
	if len(values) == 0 {
		return ""
	}
	if s.Width != nil && *s.Width > 0 && len(values) > *s.Width {
		values = values[len(values)-*s.Width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkGlyphs)-1))
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}

// renderBarChart draws one labelled bar per item, scaled to the largest
// value. Labels are padded to a common width so bars align.
func renderBarChart(c *BarChart) string {
	if len(c.Items) == 0 {
		return ""
	}
	width := defaultChartWidth
	if c.Width != nil && *c.Width > 0 {
		width = *c.Width
	}
	labelW := 0
	max := 0.0
	for _, item := range c.Items {
		if w := runewidth.StringWidth(item.Label); w > labelW {
			labelW = w
		}
		if item.Value > max {
			max = item.Value
		}
	}
	lines := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		n := 0
		if max > 0 && item.Value > 0 {
			n = int(math.Round(item.Value / max * float64(width)))
		}
		lines = append(lines, fmt.Sprintf("%s │%s %g",
			runewidth.FillRight(item.Label, labelW),
			strings.Repeat("█", n),
			item.Value))
	}
	return strings.Join(lines, "\n")
}

// renderLineChart plots the series on a fixed character grid, one column
// per sample, top row = maximum.
func renderLineChart(c *LineChart) string {
	values := c.Values
	if len(values) == 0 {
		return ""
	}
	width := defaultLineChartW
	if c.Width != nil && *c.Width > 0 {
		width = *c.Width
	}
	height := defaultLineChartH
	if c.Height != nil && *c.Height > 0 {
		height = *c.Height
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", len(values)))
	}
	for x, v := range values {
		row := height - 1
		if span > 0 {
			row = int(math.Round((hi - v) / span * float64(height-1)))
		}
		grid[row][x] = '•'
	}
	lines := make([]string, height)
	for y := range grid {
		lines[y] = string(grid[y])
	}
	return strings.Join(lines, "\n")
}

// renderTableText renders a table as aligned text: header, separator and
// one line per row, with a direction glyph on the active sort column.
// Rows arrive pre-sorted by the caller.
func renderTableText(cols []Column, rows []any, sortCol string, dir SortDir) string {
	visible := cols[:0:0]
	for _, c := range cols {
		if !c.Hidden {
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		return ""
	}

	headers := make([]string, len(visible))
	widths := make([]int, len(visible))
	for i, c := range visible {
		title := c.Title
		if title == "" {
			title = c.Key
		}
		if c.Key != "" && c.Key == sortCol {
			glyph := "▲"
			if dir == SortDesc {
				glyph = "▼"
			}
			title += " " + glyph
		}
		headers[i] = title
		widths[i] = runewidth.StringWidth(title)
	}

	cells := make([][]string, len(rows))
	for ri, row := range rows {
		cells[ri] = make([]string, len(visible))
		for ci, c := range visible {
			text := cellText(rowValue(row, c.Key))
			cells[ri][ci] = text
			if w := runewidth.StringWidth(text); w > widths[ci] {
				widths[ci] = w
			}
		}
	}
	for i, c := range visible {
		if c.Width != nil && *c.Width > widths[i] {
			widths[i] = *c.Width
		}
	}

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(alignCell(h, widths[i], visible[i].Align))
	}
	b.WriteByte('\n')
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("─", w))
	}
	for _, row := range cells {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(alignCell(cell, widths[i], visible[i].Align))
		}
	}
	return b.String()
}

// cellText is the display form of a table cell; nil renders empty.
func cellText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// alignCell pads text to width per column alignment.
func alignCell(text string, width int, align string) string {
	switch align {
	case "right":
		return runewidth.FillLeft(text, width)
	case "center":
		gap := width - runewidth.StringWidth(text)
		if gap <= 0 {
			return text
		}
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return runewidth.FillRight(text, width)
	}
}

// renderTextInputText shows the live value, else a bracketed placeholder,
// else an empty placeholder.
func renderTextInputText(in *TextInput) string {
	switch {
	case in.Value != "":
		if in.Type == "password" {
			return "[" + strings.Repeat("•", len([]rune(in.Value))) + "]"
		}
		return "[" + in.Value + "]"
	case in.Placeholder != "":
		return "[" + in.Placeholder + "]"
	default:
		return "[ ]"
	}
}
