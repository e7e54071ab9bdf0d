package gt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// writeLaTeX renders a longtable with booktabs rules. Fixed widths become
// p{} columns, which need the array package for alignment.
func writeLaTeX(w io.Writer, l *layout) error {
	var sb strings.Builder
	n := l.ncols()
	offset := 0
	if l.hasStub {
		offset = 1
	}

	var spec []string
	if l.hasStub {
		spec = append(spec, latexColSpec(AlignLeft, l.stubWidth))
	}
	for _, c := range l.columns {
		spec = append(spec, latexColSpec(c.align, c.width))
	}

	fmt.Fprintf(&sb, "\\begin{longtable}{%s}\n", strings.Join(spec, ""))
	if !l.title.IsZero() {
		sb.WriteString("\\caption*{\n")
		fmt.Fprintf(&sb, "{\\large %s}", latexEscape(l.title.toPlain()))
		if !l.subtitle.IsZero() {
			fmt.Fprintf(&sb, " \\\\\n{\\small %s}", latexEscape(l.subtitle.toPlain()))
		}
		sb.WriteString("\n} \\\\\n")
	}
	sb.WriteString("\\toprule\n")

	for _, level := range l.spanners {
		var cells, rules []string
		if l.hasStub {
			cells = append(cells, "")
		}
		for _, s := range level {
			if s.id == "" {
				for range s.n {
					cells = append(cells, "")
				}
				continue
			}
			cells = append(cells, fmt.Sprintf("\\multicolumn{%d}{c}{%s}", s.n, latexEscape(s.label.toPlain())))
			first := offset + s.start + 1
			rules = append(rules, fmt.Sprintf("\\cmidrule(lr){%d-%d}", first, first+s.n-1))
		}
		fmt.Fprintf(&sb, "%s \\\\\n", strings.Join(cells, " & "))
		if len(rules) > 0 {
			sb.WriteString(strings.Join(rules, " ") + "\n")
		}
	}

	var header []string
	if l.hasStub {
		header = append(header, latexEscape(l.stubhead.toPlain()))
	}
	for _, c := range l.columns {
		header = append(header, latexEscape(c.label.toPlain()))
	}
	fmt.Fprintf(&sb, "%s \\\\\n", strings.Join(header, " & "))
	sb.WriteString("\\midrule\\addlinespace[2.5pt]\n")

	for gi, g := range l.groups {
		if g.labeled {
			if gi > 0 {
				sb.WriteString("\\midrule\\addlinespace[2.5pt]\n")
			}
			fmt.Fprintf(&sb, "\\multicolumn{%d}{l}{%s} \\\\[2.5pt]\n", n, latexEscape(g.label.toPlain()))
			sb.WriteString("\\midrule\\addlinespace[2.5pt]\n")
		}
		for _, r := range g.rows {
			var cells []string
			if l.hasStub {
				cells = append(cells, latexEscape(r.stub))
			}
			for _, c := range r.cells {
				if r.ellipsis {
					cells = append(cells, "$\\vdots$")
					continue
				}
				cells = append(cells, latexEscape(c))
			}
			fmt.Fprintf(&sb, "%s \\\\\n", strings.Join(cells, " & "))
		}
	}
	sb.WriteString("\\bottomrule\n")
	sb.WriteString("\\end{longtable}\n")

	if len(l.sourceNotes) > 0 {
		sb.WriteString("\\begin{minipage}{\\linewidth}\n")
		for _, note := range l.sourceNotes {
			fmt.Fprintf(&sb, "%s\\\\\n", latexEscape(note.toPlain()))
		}
		sb.WriteString("\\end{minipage}\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func latexColSpec(align Alignment, width Width) string {
	if width.IsZero() {
		switch align {
		case AlignRight:
			return "r"
		case AlignCenter:
			return "c"
		default:
			return "l"
		}
	}
	var size string
	if width.Unit == UnitPct {
		size = strconv.FormatFloat(width.Value/100, 'f', -1, 64) + "\\linewidth"
	} else {
		// 1px is 0.75pt at 96dpi.
		size = strconv.FormatFloat(width.Value*0.75, 'f', -1, 64) + "pt"
	}
	switch align {
	case AlignRight:
		return ">{\\raggedleft\\arraybackslash}p{" + size + "}"
	case AlignCenter:
		return ">{\\centering\\arraybackslash}p{" + size + "}"
	default:
		return ">{\\raggedright\\arraybackslash}p{" + size + "}"
	}
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func latexEscape(s string) string {
	return latexEscaper.Replace(s)
}
