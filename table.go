package gt

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

const defaultGroupSep = " - "

// Table is a display table built from [Data]. Operations mutate the table in
// place; use [Table.Clone] to branch a pipeline.
type Table struct {
	data *Data

	id             string
	caption        Text
	rowNameCol     string
	rowNamesToStub bool
	groupCols      []string
	groupSep       string

	title       Text
	subtitle    Text
	stubhead    Text
	stubWidth   Width
	sourceNotes []Text

	boxhead    []*column
	spanners   []*spanner
	groups     []*rowGroup
	membership []int // row -> index into groups, -1 when ungrouped
	merges     []merge
	formats    map[string]func(any) string
	missing    map[string]string

	// stubLabels overrides the stub text per row; used by Preview.
	stubLabels []string
	// ellipsisAt inserts an ellipsis row before this row; -1 disables it.
	ellipsisAt int
}

type column struct {
	name   string
	kind   Kind
	label  Text
	align  Alignment
	width  Width
	hidden bool
}

// Option configures [New].
type Option func(*Table)

// WithRowNameCol uses the values of col as the stub (row labels).
func WithRowNameCol(col string) Option {
	return func(t *Table) { t.rowNameCol = col }
}

// WithRowNamesToStub uses the data's row names as the stub. Rows without
// names are labeled with their 1-based row number.
func WithRowNamesToStub() Option {
	return func(t *Table) { t.rowNamesToStub = true }
}

// WithGroupNameCol partitions rows into groups labeled by the values of cols.
// Values of several columns are joined by the row group separator.
func WithGroupNameCol(cols ...string) Option {
	return func(t *Table) { t.groupCols = append([]string(nil), cols...) }
}

// WithRowGroupSep sets the separator used to join multiple group columns.
// The default is " - ".
func WithRowGroupSep(sep string) Option {
	return func(t *Table) { t.groupSep = sep }
}

// WithID sets the table identifier, used as the HTML id attribute.
func WithID(id string) Option {
	return func(t *Table) { t.id = id }
}

// WithCaption sets a table caption.
func WithCaption(caption Text) Option {
	return func(t *Table) { t.caption = caption }
}

// New creates a display table from data.
func New(data *Data, opts ...Option) (*Table, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data", ErrInvalidArgument)
	}
	t := &Table{
		data:       data,
		groupSep:   defaultGroupSep,
		formats:    map[string]func(any) string{},
		missing:    map[string]string{},
		ellipsisAt: -1,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.rowNameCol != "" && t.rowNamesToStub {
		return nil, fmt.Errorf("%w: row name column and row names to stub", ErrConflictingOptions)
	}
	excluded := map[string]bool{}
	if t.rowNameCol != "" {
		if !data.Has(t.rowNameCol) {
			return nil, fmt.Errorf("%w: row name column %q", ErrUnknownColumn, t.rowNameCol)
		}
		excluded[t.rowNameCol] = true
	}
	for _, g := range t.groupCols {
		if !data.Has(g) {
			return nil, fmt.Errorf("%w: group column %q", ErrUnknownColumn, g)
		}
		if g == t.rowNameCol {
			return nil, fmt.Errorf("%w: %q is both the row name and a group column", ErrConflictingOptions, g)
		}
		excluded[g] = true
	}

	for i, name := range data.columns {
		if excluded[name] {
			continue
		}
		t.boxhead = append(t.boxhead, &column{
			name:  name,
			kind:  data.kinds[i],
			label: Plain(name),
		})
	}

	t.membership = make([]int, data.Len())
	for i := range t.membership {
		t.membership[i] = -1
	}
	if len(t.groupCols) > 0 {
		t.groupByColumns()
	}
	return t, nil
}

func (t *Table) groupByColumns() {
	byID := map[string]int{}
	parts := make([]string, len(t.groupCols))
	for r := range t.data.Len() {
		for i, g := range t.groupCols {
			v := t.data.Value(r, g)
			if v == nil {
				parts[i] = "NA"
			} else {
				parts[i] = defaultText(v)
			}
		}
		id := strings.Join(parts, t.groupSep)
		gi, ok := byID[id]
		if !ok {
			gi = len(t.groups)
			byID[id] = gi
			t.groups = append(t.groups, &rowGroup{id: id, label: Plain(id)})
		}
		t.membership[r] = gi
	}
}

// Clone returns an independent copy of the table. The underlying data is
// shared since it is immutable.
func (t *Table) Clone() *Table {
	cp := *t
	cp.groupCols = slices.Clone(t.groupCols)
	cp.sourceNotes = slices.Clone(t.sourceNotes)
	cp.boxhead = make([]*column, len(t.boxhead))
	for i, c := range t.boxhead {
		cc := *c
		cp.boxhead[i] = &cc
	}
	cp.spanners = make([]*spanner, len(t.spanners))
	for i, s := range t.spanners {
		sc := *s
		sc.columns = slices.Clone(s.columns)
		cp.spanners[i] = &sc
	}
	cp.groups = make([]*rowGroup, len(t.groups))
	for i, g := range t.groups {
		gc := *g
		cp.groups[i] = &gc
	}
	cp.membership = slices.Clone(t.membership)
	cp.merges = make([]merge, len(t.merges))
	for i, m := range t.merges {
		m.columns = slices.Clone(m.columns)
		cp.merges[i] = m
	}
	cp.formats = maps.Clone(t.formats)
	cp.missing = maps.Clone(t.missing)
	cp.stubLabels = slices.Clone(t.stubLabels)
	return &cp
}

// Data returns the table's underlying data.
func (t *Table) Data() *Data { return t.data }

// ID returns the table identifier.
func (t *Table) ID() string { return t.id }

// HasStub reports whether the table has a stub column.
func (t *Table) HasStub() bool {
	return t.rowNameCol != "" || t.rowNamesToStub || t.stubLabels != nil
}

// TabHeader sets the title and subtitle. A subtitle requires a title.
func (t *Table) TabHeader(title, subtitle Text) error {
	if title.IsZero() && !subtitle.IsZero() {
		return fmt.Errorf("%w: subtitle without a title", ErrInvalidArgument)
	}
	t.title = title
	t.subtitle = subtitle
	return nil
}

// TabSourceNote appends a source note shown below the table body.
func (t *Table) TabSourceNote(note Text) {
	t.sourceNotes = append(t.sourceNotes, note)
}

// TabStubhead sets the label above the stub.
func (t *Table) TabStubhead(label Text) {
	t.stubhead = label
}

// StubWidth sets the width of the stub column.
func (t *Table) StubWidth(w Width) error {
	if err := w.validate(); err != nil {
		return err
	}
	t.stubWidth = w
	return nil
}

// Columns describes the body columns in display order, hidden ones included.
func (t *Table) Columns() []ColumnInfo {
	out := make([]ColumnInfo, len(t.boxhead))
	for i, c := range t.boxhead {
		out[i] = ColumnInfo{Name: c.name, Kind: c.kind, Label: c.label.toPlain(), Hidden: c.hidden}
	}
	return out
}

func (t *Table) column(name string) *column {
	for _, c := range t.boxhead {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (t *Table) columnIndex(name string) int {
	for i, c := range t.boxhead {
		if c.name == name {
			return i
		}
	}
	return -1
}

func (t *Table) resolve(sel Selector) ([]string, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: nil selector", ErrInvalidArgument)
	}
	return sel.selectColumns(t.Columns())
}

func (t *Table) requireColumn(name string) error {
	if t.column(name) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return nil
}

// stubText returns the stub label for data row r.
func (t *Table) stubText(r int) string {
	switch {
	case t.stubLabels != nil:
		return t.stubLabels[r]
	case t.rowNameCol != "":
		return defaultText(t.data.Value(r, t.rowNameCol))
	case t.rowNamesToStub:
		if t.data.rowNames != nil {
			return t.data.rowNames[r]
		}
		return strconv.Itoa(r + 1)
	}
	return ""
}
