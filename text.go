package gt

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// textRow is one visual row of a text table. A full row spans every column.
type textRow struct {
	full  bool
	text  string
	align Alignment
	spans []layoutSpan // spanner rows only
	cells []string
	// ellipsis centers every cell.
	ellipsis bool
	// rule draws a separator above the row.
	rule bool
}

// textGrid is a layout flattened for text output: the stub, when present,
// is column 0.
type textGrid struct {
	header  []string
	aligns  []Alignment
	minimum []int
	above   []textRow // title, subtitle, spanners
	body    []textRow // group labels and data rows
	notes   []string
}

func newTextGrid(l *layout) *textGrid {
	g := &textGrid{}
	offset := 0
	if l.hasStub {
		offset = 1
		g.header = append(g.header, l.stubhead.toPlain())
		g.aligns = append(g.aligns, AlignLeft)
		g.minimum = append(g.minimum, l.stubWidth.chars())
	}
	for _, c := range l.columns {
		g.header = append(g.header, c.label.toPlain())
		g.aligns = append(g.aligns, c.align)
		g.minimum = append(g.minimum, c.width.chars())
	}

	if !l.title.IsZero() {
		g.above = append(g.above, textRow{full: true, text: l.title.toPlain(), align: AlignCenter})
	}
	if !l.subtitle.IsZero() {
		g.above = append(g.above, textRow{full: true, text: l.subtitle.toPlain(), align: AlignCenter})
	}
	for _, level := range l.spanners {
		var spans []layoutSpan
		if l.hasStub {
			spans = append(spans, layoutSpan{start: 0, n: 1})
		}
		for _, s := range level {
			s.start += offset
			spans = append(spans, s)
		}
		g.above = append(g.above, textRow{spans: spans})
	}

	for gi, grp := range l.groups {
		if grp.labeled {
			g.body = append(g.body, textRow{full: true, text: grp.label.toPlain(), align: AlignLeft, rule: gi > 0})
		}
		for ri, row := range grp.rows {
			cells := row.cells
			if l.hasStub {
				cells = append([]string{row.stub}, cells...)
			}
			g.body = append(g.body, textRow{
				cells:    cells,
				ellipsis: row.ellipsis,
				rule:     ri == 0 && gi > 0 && !grp.labeled,
			})
		}
	}
	for _, n := range l.sourceNotes {
		g.notes = append(g.notes, n.toPlain())
	}
	return g
}

// widths sizes every column to its widest content, then widens the last
// column under any span or full-width row whose text does not fit. gap is the
// number of characters between adjacent cells.
func (g *textGrid) widths(gap int) []int {
	widths := make([]int, len(g.header))
	for i, h := range g.header {
		widths[i] = max(runewidth.StringWidth(h), g.minimum[i])
	}
	for _, row := range g.body {
		for i, c := range row.cells {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(c))
			}
		}
	}
	if len(widths) == 0 {
		return widths
	}
	fit := func(text string, start, n int) {
		need := runewidth.StringWidth(text) - spanWidth(widths, start, n, gap)
		if need > 0 {
			widths[start+n-1] += need
		}
	}
	for _, row := range append(append([]textRow(nil), g.above...), g.body...) {
		switch {
		case row.full:
			fit(row.text, 0, len(widths))
		case row.spans != nil:
			for _, s := range row.spans {
				fit(s.label.toPlain(), s.start, s.n)
			}
		}
	}
	return widths
}

// spanWidth is the content width of n merged cells starting at start.
func spanWidth(widths []int, start, n, gap int) int {
	w := 0
	for _, x := range widths[start : start+n] {
		w += x
	}
	return w + gap*(n-1)
}

func writeTextTable(w io.Writer, l *layout, style BorderStyle) error {
	g := newTextGrid(l)
	var sb strings.Builder
	if style == BorderNone {
		renderPlainTable(&sb, g)
	} else {
		renderBorderedTable(&sb, g, borderSets[style])
	}
	for _, n := range g.notes {
		sb.WriteString(n)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// --- Plain table (BorderNone) ---

func renderPlainTable(sb *strings.Builder, g *textGrid) {
	widths := g.widths(2)
	total := spanWidth(widths, 0, len(widths), 2)
	for _, row := range g.above {
		if row.full {
			writePlainLine(sb, alignCell(row.text, total, row.align))
			continue
		}
		parts := make([]string, len(row.spans))
		for i, s := range row.spans {
			parts[i] = alignCell(s.label.toPlain(), spanWidth(widths, s.start, s.n, 2), AlignCenter)
		}
		writePlainLine(sb, strings.Join(parts, "  "))
	}
	writePlainLine(sb, joinCells(g.header, widths, g.aligns, false, "  "))
	writePlainSep(sb, widths)
	for _, row := range g.body {
		if row.rule {
			writePlainSep(sb, widths)
		}
		if row.full {
			writePlainLine(sb, row.text)
			continue
		}
		writePlainLine(sb, joinCells(row.cells, widths, g.aligns, row.ellipsis, "  "))
	}
}

func writePlainLine(sb *strings.Builder, line string) {
	sb.WriteString(strings.TrimRight(line, " "))
	sb.WriteByte('\n')
}

func writePlainSep(sb *strings.Builder, widths []int) {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	writePlainLine(sb, strings.Join(sep, "  "))
}

func joinCells(cells []string, widths []int, aligns []Alignment, center bool, gap string) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		c := ""
		if i < len(cells) {
			c = cells[i]
		}
		align := aligns[i]
		if center {
			align = AlignCenter
		}
		parts[i] = formatTableCell(c, width, align)
	}
	return strings.Join(parts, gap)
}

// --- Bordered table ---

func renderBorderedTable(sb *strings.Builder, g *textGrid, bc borderChars) {
	widths := g.widths(3)
	inner := tableInnerWidth(widths) - 2

	rows := append(append([]textRow(nil), g.above...), textRow{cells: g.header})
	headerAt := len(rows) - 1
	rows = append(rows, g.body...)

	prevFull := false
	for i, row := range rows {
		switch {
		case i == 0 && row.full:
			drawHLine(sb, widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight)
		case i == 0:
			drawHLine(sb, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight)
		case i <= headerAt+1 || row.rule || row.full || prevFull:
			drawHLine(sb, widths, bc.leftTee, bc.horizontal, junction(bc, prevFull, row.full), bc.rightTee)
		}

		switch {
		case row.full:
			sb.WriteString(bc.vertical + " " + formatTableCell(row.text, inner, row.align) + " " + bc.vertical + "\n")
		case row.spans != nil:
			sb.WriteString(bc.vertical)
			for j, s := range row.spans {
				sb.WriteString(" " + alignCell(s.label.toPlain(), spanWidth(widths, s.start, s.n, 3), AlignCenter) + " ")
				if j < len(row.spans)-1 {
					sb.WriteString(bc.vertical)
				}
			}
			sb.WriteString(bc.vertical + "\n")
		default:
			sb.WriteString(bc.vertical + " " + joinCells(row.cells, widths, g.aligns, row.ellipsis, " "+bc.vertical+" ") + " " + bc.vertical + "\n")
		}
		prevFull = row.full
	}
	if prevFull {
		drawHLine(sb, widths, bc.bottomLeft, bc.horizontal, bc.horizontal, bc.bottomRight)
		return
	}
	drawHLine(sb, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func junction(bc borderChars, prevFull, nextFull bool) string {
	switch {
	case prevFull && nextFull:
		return bc.horizontal
	case prevFull:
		return bc.topTee
	case nextFull:
		return bc.bottomTee
	default:
		return bc.cross
	}
}

// tableInnerWidth returns the total character width between the outer vertical
// borders of a bordered table. Each cell contributes its width plus 2 (one
// space of padding on each side), and cells are separated by a single vertical
// border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(sb *strings.Builder, widths []int, left, fill, mid, right string) {
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	sb.WriteByte('\n')
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
