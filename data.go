package gt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the inferred type of a data column.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindInteger
	KindLogical
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindLogical:
		return "logical"
	default:
		return "text"
	}
}

// Numeric reports whether values of this kind are numbers.
func (k Kind) Numeric() bool { return k == KindNumber || k == KindInteger }

// Data is immutable tabular input: named columns of typed values.
//
// Values are float64, int64, bool, string, or nil for a missing value.
type Data struct {
	columns  []string
	kinds    []Kind
	index    map[string]int
	rows     [][]any
	rowNames []string
}

// NewData builds Data from column names and rows of values. Integer and
// float values of any Go width are normalized to int64 and float64;
// time.Time values become strings.
func NewData(columns []string, rows [][]any) (*Data, error) {
	index, err := indexColumns(columns)
	if err != nil {
		return nil, err
	}
	d := &Data{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    make([][]any, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedRow, i, len(row), len(columns))
		}
		out := make([]any, len(row))
		for j, v := range row {
			nv, err := normalize(v)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", i, columns[j], err)
			}
			out[j] = nv
		}
		d.rows[i] = out
	}
	d.kinds = inferKinds(len(columns), d.rows)
	return d, nil
}

// WithRowNames returns a copy of d carrying row names. The number of names
// must equal the number of rows.
func (d *Data) WithRowNames(names []string) (*Data, error) {
	if len(names) != len(d.rows) {
		return nil, fmt.Errorf("%w: %d row names for %d rows", ErrInvalidArgument, len(names), len(d.rows))
	}
	cp := *d
	cp.rowNames = append([]string(nil), names...)
	return &cp, nil
}

// Len returns the number of rows.
func (d *Data) Len() int { return len(d.rows) }

// Columns returns the column names in order.
func (d *Data) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// RowNames returns the row names, or nil when none were set.
func (d *Data) RowNames() []string {
	if d.rowNames == nil {
		return nil
	}
	out := make([]string, len(d.rowNames))
	copy(out, d.rowNames)
	return out
}

// Has reports whether the named column exists.
func (d *Data) Has(col string) bool {
	_, ok := d.index[col]
	return ok
}

// Kind returns the inferred kind of a column.
func (d *Data) Kind(col string) (Kind, bool) {
	i, ok := d.index[col]
	if !ok {
		return KindText, false
	}
	return d.kinds[i], true
}

// Value returns the value at row and column, or nil if either is out of range.
func (d *Data) Value(row int, col string) any {
	i, ok := d.index[col]
	if !ok || row < 0 || row >= len(d.rows) {
		return nil
	}
	return d.rows[row][i]
}

// subset returns a new Data holding only the given rows, in order.
func (d *Data) subset(rows []int) *Data {
	cp := &Data{
		columns: d.columns,
		kinds:   d.kinds,
		index:   d.index,
		rows:    make([][]any, len(rows)),
	}
	if d.rowNames != nil {
		cp.rowNames = make([]string, len(rows))
	}
	for i, r := range rows {
		cp.rows[i] = d.rows[r]
		if d.rowNames != nil {
			cp.rowNames[i] = d.rowNames[r]
		}
	}
	return cp
}

func indexColumns(columns []string) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrInvalidColumn, i)
		}
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		index[c] = i
	}
	return index, nil
}

func normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return x, nil
	case bool:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return float64(x), nil
		}
		return int64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		if math.IsNaN(x) {
			return nil, nil
		}
		return x, nil
	case time.Time:
		if x.IsZero() {
			return nil, nil
		}
		h, m, s := x.Clock()
		if h == 0 && m == 0 && s == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly), nil
		}
		return x.Format(time.DateTime), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported value type %T", ErrInvalidArgument, v)
	}
}

func inferKinds(n int, rows [][]any) []Kind {
	kinds := make([]Kind, n)
	for j := range n {
		var ints, floats, bools, strs int
		for _, row := range rows {
			switch row[j].(type) {
			case int64:
				ints++
			case float64:
				floats++
			case bool:
				bools++
			case string:
				strs++
			}
		}
		switch {
		case strs > 0, bools > 0 && ints+floats > 0:
			kinds[j] = KindText
		case bools > 0:
			kinds[j] = KindLogical
		case floats > 0:
			kinds[j] = KindNumber
		case ints > 0:
			kinds[j] = KindInteger
		default:
			kinds[j] = KindText
		}
	}
	return kinds
}

// fromStrings types each column of string cells by inference. "NA" and the
// empty string are missing.
func fromStrings(header []string, records [][]string) (*Data, error) {
	index, err := indexColumns(header)
	if err != nil {
		return nil, err
	}
	d := &Data{
		columns: append([]string(nil), header...),
		kinds:   make([]Kind, len(header)),
		index:   index,
		rows:    make([][]any, len(records)),
	}
	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedRow, i, len(rec), len(header))
		}
		d.rows[i] = make([]any, len(header))
	}
	cells := make([]string, len(records))
	for j := range header {
		for i, rec := range records {
			cells[i] = rec[j]
		}
		values, kind := parseColumn(cells)
		d.kinds[j] = kind
		for i, v := range values {
			d.rows[i][j] = v
		}
	}
	return d, nil
}

func isMissing(s string) bool {
	return s == "" || s == "NA"
}

func parseColumn(cells []string) ([]any, Kind) {
	out := make([]any, len(cells))
	present := 0
	for _, c := range cells {
		if !isMissing(c) {
			present++
		}
	}
	if present == 0 {
		return out, KindText
	}

	if ints, ok := parseAll(cells, func(s string) (any, bool) {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	}); ok {
		return ints, KindInteger
	}
	if floats, ok := parseAll(cells, func(s string) (any, bool) {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil && !math.IsNaN(f)
	}); ok {
		return floats, KindNumber
	}
	if bools, ok := parseAll(cells, parseLogical); ok {
		return bools, KindLogical
	}
	for i, c := range cells {
		if !isMissing(c) {
			out[i] = c
		}
	}
	return out, KindText
}

func parseAll(cells []string, parse func(string) (any, bool)) ([]any, bool) {
	out := make([]any, len(cells))
	for i, c := range cells {
		if isMissing(c) {
			continue
		}
		v, ok := parse(strings.TrimSpace(c))
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseLogical(s string) (any, bool) {
	switch s {
	case "TRUE", "true", "True":
		return true, true
	case "FALSE", "false", "False":
		return false, true
	}
	return nil, false
}

// FromRows builds Data from items implementing [Rower]. Column names come
// from [Headed] on the first item; without it columns are named V1..Vn.
func FromRows[T Rower](items ...T) (*Data, error) {
	var header []string
	records := make([][]string, len(items))
	for i, item := range items {
		records[i] = item.Row()
	}
	if len(items) > 0 {
		if h, ok := any(items[0]).(Headed); ok {
			header = h.Header()
		}
	}
	if header == nil {
		n := 0
		for _, r := range records {
			n = max(n, len(r))
		}
		header = make([]string, n)
		for i := range header {
			header[i] = "V" + strconv.Itoa(i+1)
		}
	}
	return fromStrings(header, records)
}
