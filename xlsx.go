package gt

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxSheet        = "Table"
	xlsxPxPerChar    = 7
	xlsxDefaultWidth = 12
)

// ReadXLSX reads a worksheet whose first row is the header. An empty sheet
// name selects the first sheet. Column types are inferred as in [ReadCSV].
func ReadXLSX(r io.Reader, sheet string) (*Data, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidArgument)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no header", ErrInvalidArgument, sheet)
	}
	header := rows[0]
	body := make([][]string, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedRow, i, len(row), len(header))
		}
		// Trailing empty cells are not returned by GetRows.
		padded := make([]string, len(header))
		copy(padded, row)
		body[i] = padded
	}
	return fromStrings(header, body)
}

// writeXLSX writes a workbook with one sheet holding the rendered table.
// Numbers are written as formatted text so the sheet matches other outputs.
func writeXLSX(w io.Writer, l *layout) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}
	x := &xlsxWriter{f: f, ncols: max(l.ncols(), 1)}
	if err := x.styles(); err != nil {
		return err
	}

	offset := 0
	if l.hasStub {
		offset = 1
	}
	if !l.title.IsZero() {
		if err := x.fullRow(l.title.toPlain(), x.titleStyle); err != nil {
			return err
		}
	}
	if !l.subtitle.IsZero() {
		if err := x.fullRow(l.subtitle.toPlain(), x.titleStyle); err != nil {
			return err
		}
	}
	for _, level := range l.spanners {
		x.row++
		for _, s := range level {
			if s.id == "" {
				continue
			}
			first := offset + s.start + 1
			if err := x.merged(first, first+s.n-1, s.label.toPlain(), x.headerStyle[AlignCenter]); err != nil {
				return err
			}
		}
	}

	x.row++
	if l.hasStub {
		if err := x.set(1, l.stubhead.toPlain(), x.headerStyle[AlignLeft]); err != nil {
			return err
		}
	}
	for i, c := range l.columns {
		if err := x.set(offset+i+1, c.label.toPlain(), x.headerStyle[c.align]); err != nil {
			return err
		}
	}

	for _, g := range l.groups {
		if g.labeled {
			if err := x.fullRow(g.label.toPlain(), x.groupStyle); err != nil {
				return err
			}
		}
		for _, r := range g.rows {
			x.row++
			if l.hasStub {
				if err := x.set(1, r.stub, x.cellStyle[AlignLeft]); err != nil {
					return err
				}
			}
			for i, c := range r.cells {
				align := l.columns[i].align
				if r.ellipsis {
					align = AlignCenter
				}
				if err := x.set(offset+i+1, c, x.cellStyle[align]); err != nil {
					return err
				}
			}
		}
	}
	for _, n := range l.sourceNotes {
		if err := x.fullRow(n.toPlain(), 0); err != nil {
			return err
		}
	}

	if err := x.widths(l); err != nil {
		return err
	}
	return f.Write(w)
}

type xlsxWriter struct {
	f           *excelize.File
	ncols       int
	row         int
	titleStyle  int
	groupStyle  int
	headerStyle map[Alignment]int
	cellStyle   map[Alignment]int
}

func (x *xlsxWriter) styles() error {
	var err error
	x.titleStyle, err = x.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	x.groupStyle, err = x.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true},
		Border: []excelize.Border{
			{Type: "top", Color: "D3D3D3", Style: 1},
			{Type: "bottom", Color: "D3D3D3", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	x.headerStyle = map[Alignment]int{}
	x.cellStyle = map[Alignment]int{}
	for _, a := range []Alignment{AlignLeft, AlignCenter, AlignRight} {
		if x.headerStyle[a], err = x.f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: a.String()},
			Border:    []excelize.Border{{Type: "bottom", Color: "A8A8A8", Style: 2}},
		}); err != nil {
			return err
		}
		if x.cellStyle[a], err = x.f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: a.String()},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (x *xlsxWriter) set(col int, value string, style int) error {
	name, err := excelize.CoordinatesToCellName(col, x.row)
	if err != nil {
		return err
	}
	if err := x.f.SetCellStr(xlsxSheet, name, value); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	return x.f.SetCellStyle(xlsxSheet, name, name, style)
}

func (x *xlsxWriter) merged(first, last int, value string, style int) error {
	if err := x.set(first, value, style); err != nil {
		return err
	}
	if last <= first {
		return nil
	}
	from, err := excelize.CoordinatesToCellName(first, x.row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(last, x.row)
	if err != nil {
		return err
	}
	return x.f.MergeCell(xlsxSheet, from, to)
}

func (x *xlsxWriter) fullRow(value string, style int) error {
	x.row++
	return x.merged(1, x.ncols, value, style)
}

func (x *xlsxWriter) widths(l *layout) error {
	var widths []Width
	if l.hasStub {
		widths = append(widths, l.stubWidth)
	}
	for _, c := range l.columns {
		widths = append(widths, c.width)
	}
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		chars := float64(xlsxDefaultWidth)
		if !w.IsZero() && w.Unit == UnitPx {
			chars = math.Max(1, w.Value/xlsxPxPerChar)
		}
		if err := x.f.SetColWidth(xlsxSheet, name, name, chars); err != nil {
			return err
		}
	}
	return nil
}
