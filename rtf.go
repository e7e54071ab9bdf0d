package gt

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf16"
)

const (
	rtfDefaultCellTwips = 1800 // 1.25in
	rtfTextWidthTwips   = 9360 // 6.5in between 1in margins on US Letter
	rtfTwipsPerPx       = 15
)

// writeRTF renders the table as an RTF document with a native table. Spanner
// and group label rows merge their cells by sharing a right boundary.
func writeRTF(w io.Writer, l *layout) error {
	var sb strings.Builder
	sb.WriteString("{\\rtf1\\ansi\\deff0\n")
	sb.WriteString("{\\fonttbl{\\f0\\fswiss Helvetica;}}\n")
	sb.WriteString("\\paperw12240\\paperh15840\\margl1440\\margr1440\\margt1440\\margb1440\n")
	sb.WriteString("\\f0\\fs20\n")

	if !l.title.IsZero() {
		fmt.Fprintf(&sb, "{\\pard\\qc\\b\\fs28 %s\\b0\\par}\n", rtfEscape(l.title.toPlain()))
	}
	if !l.subtitle.IsZero() {
		fmt.Fprintf(&sb, "{\\pard\\qc\\fs22 %s\\par}\n", rtfEscape(l.subtitle.toPlain()))
	}

	bounds := rtfBounds(l)
	total := bounds[len(bounds)-1]
	offset := 0
	if l.hasStub {
		offset = 1
	}

	for _, level := range l.spanners {
		var cells []rtfCell
		if l.hasStub {
			cells = append(cells, rtfCell{right: bounds[0]})
		}
		for _, s := range level {
			cells = append(cells, rtfCell{
				text:   s.label.toPlain(),
				right:  bounds[offset+s.start+s.n-1],
				align:  AlignCenter,
				bottom: s.id != "",
			})
		}
		writeRTFRow(&sb, cells, true)
	}

	var header []rtfCell
	if l.hasStub {
		header = append(header, rtfCell{text: l.stubhead.toPlain(), right: bounds[0], bottom: true})
	}
	for i, c := range l.columns {
		header = append(header, rtfCell{text: c.label.toPlain(), right: bounds[offset+i], align: c.align, bottom: true})
	}
	writeRTFRow(&sb, header, true)

	for _, g := range l.groups {
		if g.labeled {
			writeRTFRow(&sb, []rtfCell{{text: g.label.toPlain(), right: total, bottom: true}}, true)
		}
		for _, r := range g.rows {
			var cells []rtfCell
			if l.hasStub {
				cells = append(cells, rtfCell{text: r.stub, right: bounds[0]})
			}
			for i, c := range r.cells {
				align := l.columns[i].align
				if r.ellipsis {
					align = AlignCenter
				}
				cells = append(cells, rtfCell{text: c, right: bounds[offset+i], align: align})
			}
			writeRTFRow(&sb, cells, false)
		}
	}

	for _, n := range l.sourceNotes {
		fmt.Fprintf(&sb, "{\\pard\\ql\\fs18 %s\\par}\n", rtfEscape(n.toPlain()))
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

type rtfCell struct {
	text   string
	right  int
	align  Alignment
	bottom bool
}

func writeRTFRow(sb *strings.Builder, cells []rtfCell, bold bool) {
	sb.WriteString("\\trowd\\trgaph108\\trleft0\n")
	for _, c := range cells {
		if c.bottom {
			sb.WriteString("\\clbrdrb\\brdrs\\brdrw10")
		}
		fmt.Fprintf(sb, "\\cellx%d\n", c.right)
	}
	for _, c := range cells {
		sb.WriteString("\\pard\\intbl" + rtfAlign(c.align) + " ")
		if bold && c.text != "" {
			sb.WriteString("{\\b " + rtfEscape(c.text) + "}")
		} else {
			sb.WriteString(rtfEscape(c.text))
		}
		sb.WriteString("\\cell\n")
	}
	sb.WriteString("\\row\n")
}

// rtfBounds returns the right boundary, in twips, of every rendered column.
func rtfBounds(l *layout) []int {
	var widths []Width
	if l.hasStub {
		widths = append(widths, l.stubWidth)
	}
	for _, c := range l.columns {
		widths = append(widths, c.width)
	}
	bounds := make([]int, 0, len(widths)+1)
	pos := 0
	for _, w := range widths {
		pos += rtfTwips(w)
		bounds = append(bounds, pos)
	}
	if len(bounds) == 0 {
		bounds = append(bounds, rtfDefaultCellTwips)
	}
	return bounds
}

func rtfTwips(w Width) int {
	switch {
	case w.IsZero():
		return rtfDefaultCellTwips
	case w.Unit == UnitPct:
		return int(math.Round(w.Value / 100 * rtfTextWidthTwips))
	default:
		return int(math.Round(w.Value * rtfTwipsPerPx))
	}
}

func rtfAlign(a Alignment) string {
	switch a {
	case AlignRight:
		return "\\qr"
	case AlignCenter:
		return "\\qc"
	default:
		return "\\ql"
	}
}

// rtfEscape escapes control characters and encodes non-ASCII runes as
// \uN? with signed 16-bit code units.
func rtfEscape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString("\\line ")
		case r == '\t':
			sb.WriteString("\\tab ")
		case r < 0x80:
			sb.WriteRune(r)
		default:
			units := []uint16{uint16(r)}
			if r > 0xFFFF {
				r1, r2 := utf16.EncodeRune(r)
				units = []uint16{uint16(r1), uint16(r2)}
			}
			for _, u := range units {
				fmt.Fprintf(&sb, "\\u%d?", int16(u))
			}
		}
	}
	return sb.String()
}
