package gt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeMarkdown renders a GitHub-flavored Markdown table. Markdown has no
// merged cells, so spanner labels are prefixed to the column labels they
// cover and group labels become bold rows.
func writeMarkdown(w io.Writer, l *layout) error {
	var sb strings.Builder
	if !l.title.IsZero() {
		fmt.Fprintf(&sb, "**%s**\n\n", escapeMarkdown(l.title.toPlain()))
	}
	if !l.subtitle.IsZero() {
		fmt.Fprintf(&sb, "*%s*\n\n", escapeMarkdown(l.subtitle.toPlain()))
	}

	var header []string
	var aligns []Alignment
	if l.hasStub {
		header = append(header, l.stubhead.toPlain())
		aligns = append(aligns, AlignLeft)
	}
	for i, c := range l.columns {
		label := c.label.toPlain()
		for li := len(l.spanners) - 1; li >= 0; li-- {
			for _, s := range l.spanners[li] {
				if s.id != "" && i >= s.start && i < s.start+s.n {
					label = s.label.toPlain() + " / " + label
				}
			}
		}
		header = append(header, label)
		aligns = append(aligns, c.align)
	}

	var rows [][]string
	for _, g := range l.groups {
		if g.labeled {
			row := make([]string, len(header))
			if len(row) > 0 {
				row[0] = "**" + escapeMarkdown(g.label.toPlain()) + "**"
			}
			rows = append(rows, row)
		}
		for _, r := range g.rows {
			var row []string
			if l.hasStub {
				row = append(row, escapeMarkdown(r.stub))
			}
			for _, c := range r.cells {
				row = append(row, escapeMarkdown(c))
			}
			rows = append(rows, row)
		}
	}

	for i := range header {
		header[i] = escapeMarkdown(header[i])
	}

	// Calculate column widths (minimum 3 for alignment markers).
	widths := make([]int, len(header))
	for i, col := range header {
		widths[i] = max(3, runewidth.StringWidth(col))
	}
	for _, row := range rows {
		for i, c := range row {
			if w := runewidth.StringWidth(c); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeMarkdownRow(&sb, header, widths, aligns)
	sep := make([]string, len(widths))
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	fmt.Fprintf(&sb, "| %s |\n", strings.Join(sep, " | "))
	for _, row := range rows {
		writeMarkdownRow(&sb, row, widths, aligns)
	}

	for _, n := range l.sourceNotes {
		fmt.Fprintf(&sb, "\n%s\n", escapeMarkdown(n.toPlain()))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMarkdownRow(sb *strings.Builder, cells []string, widths []int, aligns []Alignment) {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	fmt.Fprintf(sb, "| %s |\n", strings.Join(padded, " | "))
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
