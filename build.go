package gt

const (
	ellipsisCell = "⋮"
	ellipsisStub = "…"
)

// layout is a render-independent snapshot of a table: visible columns in
// order, spanner rows, row groups with formatted cells, and the header and
// footer parts. Renderers only read layouts.
type layout struct {
	id          string
	caption     Text
	title       Text
	subtitle    Text
	stubhead    Text
	hasStub     bool
	stubWidth   Width
	columns     []layoutColumn
	spanners    [][]layoutSpan // outermost level first
	groups      []layoutGroup
	sourceNotes []Text
}

type layoutColumn struct {
	name  string
	label Text
	align Alignment
	width Width
}

// layoutSpan covers n columns from start. Spans without a spanner have an
// empty id.
type layoutSpan struct {
	id    string
	label Text
	start int
	n     int
}

type layoutGroup struct {
	label   Text
	labeled bool
	rows    []layoutRow
}

type layoutRow struct {
	stub     string
	cells    []string
	ellipsis bool
}

// ncols returns the number of rendered columns, stub included.
func (l *layout) ncols() int {
	n := len(l.columns)
	if l.hasStub {
		n++
	}
	return n
}

// hasGroupLabels reports whether any group carries a label row.
func (l *layout) hasGroupLabels() bool {
	for _, g := range l.groups {
		if g.labeled {
			return true
		}
	}
	return false
}

func (t *Table) build() *layout {
	l := &layout{
		id:          t.id,
		caption:     t.caption,
		title:       t.title,
		subtitle:    t.subtitle,
		stubhead:    t.stubhead,
		hasStub:     t.HasStub(),
		stubWidth:   t.stubWidth,
		sourceNotes: t.sourceNotes,
	}

	for _, c := range t.boxhead {
		if c.hidden {
			continue
		}
		align := c.align
		if align == AlignAuto {
			align = AlignLeft
			if c.kind.Numeric() {
				align = AlignRight
			}
		}
		l.columns = append(l.columns, layoutColumn{name: c.name, label: c.label, align: align, width: c.width})
	}
	l.spanners = t.buildSpanners(l.columns)

	rows := make([]layoutRow, t.data.Len())
	for r := range rows {
		rows[r] = t.buildRow(r, l.columns)
	}

	ellipsis := layoutRow{stub: ellipsisStub, cells: make([]string, len(l.columns)), ellipsis: true}
	for i := range ellipsis.cells {
		ellipsis.cells[i] = ellipsisCell
	}

	var ungrouped layoutGroup
	members := make([][]int, len(t.groups))
	for r, gi := range t.membership {
		if gi < 0 {
			if r == t.ellipsisAt {
				ungrouped.rows = append(ungrouped.rows, ellipsis)
			}
			ungrouped.rows = append(ungrouped.rows, rows[r])
			continue
		}
		members[gi] = append(members[gi], r)
	}
	if t.ellipsisAt == len(t.membership) {
		ungrouped.rows = append(ungrouped.rows, ellipsis)
	}
	if len(ungrouped.rows) > 0 {
		l.groups = append(l.groups, ungrouped)
	}
	for gi, g := range t.groups {
		if len(members[gi]) == 0 {
			continue
		}
		lg := layoutGroup{label: g.label, labeled: true}
		for _, r := range members[gi] {
			lg.rows = append(lg.rows, rows[r])
		}
		l.groups = append(l.groups, lg)
	}
	return l
}

func (t *Table) buildRow(r int, visible []layoutColumn) layoutRow {
	cells := make(map[string]*cell, len(t.boxhead))
	for _, c := range t.boxhead {
		cells[c.name] = t.formatCell(c.name, t.data.Value(r, c.name))
	}
	for _, m := range t.merges {
		m.apply(cells)
	}
	row := layoutRow{cells: make([]string, len(visible))}
	if t.HasStub() {
		row.stub = t.stubText(r)
	}
	for i, c := range visible {
		row.cells[i] = cells[c.name].text
	}
	return row
}

func (t *Table) buildSpanners(visible []layoutColumn) [][]layoutSpan {
	top := -1
	for _, s := range t.spanners {
		top = max(top, s.level)
	}
	var out [][]layoutSpan
	for level := top; level >= 0; level-- {
		owner := map[string]*spanner{}
		for _, s := range t.spanners {
			if s.level != level {
				continue
			}
			for _, c := range s.columns {
				owner[c] = s
			}
		}
		var row []layoutSpan
		used := false
		for i, c := range visible {
			s := owner[c.name]
			id := ""
			var label Text
			if s != nil {
				id, label, used = s.id, s.label, true
			}
			if n := len(row); n > 0 && row[n-1].id == id {
				row[n-1].n++
				continue
			}
			row = append(row, layoutSpan{id: id, label: label, start: i, n: 1})
		}
		if used {
			out = append(out, row)
		}
	}
	return out
}
