package gt

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

const htmlStyle = `.gt_table { border-collapse: collapse; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; font-size: 16px; color: #333333; border-top: 2px solid #A8A8A8; border-bottom: 2px solid #A8A8A8; }
.gt_table caption { caption-side: top; padding: 4px; }
.gt_title { font-size: 125%; font-weight: normal; padding-top: 4px; border-bottom: 0; }
.gt_subtitle { font-size: 85%; font-weight: normal; padding-bottom: 6px; border-top: 0; }
.gt_heading { text-align: center; border-bottom: 2px solid #D3D3D3; }
.gt_column_spanner { border-bottom: 2px solid #D3D3D3; font-weight: normal; padding: 5px 5px 0 5px; text-align: center; }
.gt_col_heading { border-bottom: 2px solid #D3D3D3; font-weight: normal; padding: 5px; vertical-align: bottom; }
.gt_group_heading { border-top: 2px solid #D3D3D3; border-bottom: 2px solid #D3D3D3; padding: 8px 5px; text-align: left; font-weight: normal; }
.gt_row { padding: 8px 5px; border-top: 1px solid #D3D3D3; vertical-align: middle; }
.gt_stub { border-right: 2px solid #D3D3D3; text-align: left; font-weight: normal; }
.gt_sourcenote { font-size: 90%; padding: 4px; text-align: left; }
.gt_empty { border-bottom: 0; }
`

func writeHTML(w io.Writer, l *layout, complete bool) error {
	var sb strings.Builder
	if complete {
		title := l.title.toPlain()
		if title == "" {
			title = "Table"
		}
		sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
		fmt.Fprintf(&sb, "<title>%s</title>\n<style>\n%s</style>\n</head>\n<body>\n", html.EscapeString(title), htmlStyle)
	}
	writeHTMLTable(&sb, l)
	if complete {
		sb.WriteString("</body>\n</html>\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeHTMLTable(sb *strings.Builder, l *layout) {
	n := l.ncols()
	if l.id != "" {
		fmt.Fprintf(sb, "<table class=\"gt_table\" id=\"%s\">\n", html.EscapeString(l.id))
	} else {
		sb.WriteString("<table class=\"gt_table\">\n")
	}
	if !l.caption.IsZero() {
		fmt.Fprintf(sb, "  <caption>%s</caption>\n", l.caption.toHTML())
	}
	writeHTMLColgroup(sb, l)

	sb.WriteString("  <thead>\n")
	if !l.title.IsZero() {
		fmt.Fprintf(sb, "    <tr class=\"gt_heading\">\n      <th class=\"gt_heading gt_title\" colspan=\"%d\">%s</th>\n    </tr>\n", n, l.title.toHTML())
	}
	if !l.subtitle.IsZero() {
		fmt.Fprintf(sb, "    <tr class=\"gt_heading\">\n      <th class=\"gt_heading gt_subtitle\" colspan=\"%d\">%s</th>\n    </tr>\n", n, l.subtitle.toHTML())
	}
	for _, level := range l.spanners {
		sb.WriteString("    <tr class=\"gt_col_spanners\">\n")
		if l.hasStub {
			sb.WriteString("      <th class=\"gt_col_heading gt_empty\"></th>\n")
		}
		for _, span := range level {
			if span.id == "" {
				fmt.Fprintf(sb, "      <th class=\"gt_col_heading gt_empty\"%s></th>\n", colspanAttr(span.n))
				continue
			}
			fmt.Fprintf(sb, "      <th class=\"gt_column_spanner\" scope=\"colgroup\"%s data-spanner=\"%s\">%s</th>\n",
				colspanAttr(span.n), html.EscapeString(span.id), span.label.toHTML())
		}
		sb.WriteString("    </tr>\n")
	}
	sb.WriteString("    <tr class=\"gt_col_headings\">\n")
	if l.hasStub {
		fmt.Fprintf(sb, "      <th class=\"gt_col_heading gt_stubhead\" scope=\"col\">%s</th>\n", l.stubhead.toHTML())
	}
	for _, c := range l.columns {
		fmt.Fprintf(sb, "      <th class=\"gt_col_heading\" scope=\"col\" data-column=\"%s\"%s>%s</th>\n",
			html.EscapeString(c.name), alignStyle(c.align), c.label.toHTML())
	}
	sb.WriteString("    </tr>\n")
	sb.WriteString("  </thead>\n")

	sb.WriteString("  <tbody>\n")
	for _, g := range l.groups {
		if g.labeled {
			fmt.Fprintf(sb, "    <tr class=\"gt_group_heading_row\">\n      <th class=\"gt_group_heading\" colspan=\"%d\" scope=\"colgroup\">%s</th>\n    </tr>\n", n, g.label.toHTML())
		}
		for _, row := range g.rows {
			sb.WriteString("    <tr>\n")
			if l.hasStub {
				fmt.Fprintf(sb, "      <th class=\"gt_row gt_stub\" scope=\"row\">%s</th>\n", html.EscapeString(row.stub))
			}
			for i, cell := range row.cells {
				align := l.columns[i].align
				if row.ellipsis {
					align = AlignCenter
				}
				fmt.Fprintf(sb, "      <td class=\"gt_row\"%s>%s</td>\n", alignStyle(align), html.EscapeString(cell))
			}
			sb.WriteString("    </tr>\n")
		}
	}
	sb.WriteString("  </tbody>\n")

	if len(l.sourceNotes) > 0 {
		sb.WriteString("  <tfoot>\n")
		for _, note := range l.sourceNotes {
			fmt.Fprintf(sb, "    <tr>\n      <td class=\"gt_sourcenote\" colspan=\"%d\">%s</td>\n    </tr>\n", n, note.toHTML())
		}
		sb.WriteString("  </tfoot>\n")
	}
	sb.WriteString("</table>\n")
}

func writeHTMLColgroup(sb *strings.Builder, l *layout) {
	sized := !l.stubWidth.IsZero()
	for _, c := range l.columns {
		if !c.width.IsZero() {
			sized = true
		}
	}
	if !sized {
		return
	}
	sb.WriteString("  <colgroup>\n")
	if l.hasStub {
		writeHTMLCol(sb, l.stubWidth)
	}
	for _, c := range l.columns {
		writeHTMLCol(sb, c.width)
	}
	sb.WriteString("  </colgroup>\n")
}

func writeHTMLCol(sb *strings.Builder, w Width) {
	if w.IsZero() {
		sb.WriteString("    <col/>\n")
		return
	}
	fmt.Fprintf(sb, "    <col style=\"width: %s\"/>\n", w)
}

func colspanAttr(n int) string {
	if n <= 1 {
		return ""
	}
	return fmt.Sprintf(" colspan=\"%d\"", n)
}

func alignStyle(align Alignment) string {
	switch align {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	case AlignLeft:
		return ` style="text-align: left"`
	default:
		return ""
	}
}
