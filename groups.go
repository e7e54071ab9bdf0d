package gt

import (
	"fmt"
	"slices"
)

type rowGroup struct {
	id    string
	label Text
}

// Row gives a row predicate access to a data row.
type Row struct {
	Index int
	data  *Data
}

// Value returns the row's value in the named column.
func (r Row) Value(col string) any { return r.data.Value(r.Index, col) }

// RowSelector picks data rows by their 0-based index.
type RowSelector interface {
	selectRows(d *Data) ([]int, error)
}

type rowSelectorFunc func(d *Data) ([]int, error)

func (f rowSelectorFunc) selectRows(d *Data) ([]int, error) { return f(d) }

// Rows selects rows by 0-based index.
func Rows(indices ...int) RowSelector {
	return rowSelectorFunc(func(d *Data) ([]int, error) {
		for _, i := range indices {
			if i < 0 || i >= d.Len() {
				return nil, fmt.Errorf("%w: row %d out of range [0, %d)", ErrInvalidArgument, i, d.Len())
			}
		}
		return slices.Clone(indices), nil
	})
}

// RowsWhere selects the rows for which keep returns true.
func RowsWhere(keep func(Row) bool) RowSelector {
	return rowSelectorFunc(func(d *Data) ([]int, error) {
		var out []int
		for i := range d.Len() {
			if keep(Row{Index: i, data: d}) {
				out = append(out, i)
			}
		}
		return out, nil
	})
}

// TabRowGroup creates a row group, or extends the group with the same label,
// and moves the selected rows into it. A row belongs to at most one group;
// the latest assignment wins.
func (t *Table) TabRowGroup(label Text, rows RowSelector) error {
	if label.IsZero() {
		return fmt.Errorf("%w: empty row group label", ErrInvalidArgument)
	}
	if rows == nil {
		return fmt.Errorf("%w: nil row selector", ErrInvalidArgument)
	}
	selected, err := rows.selectRows(t.data)
	if err != nil {
		return err
	}
	id := label.toPlain()
	gi := t.groupIndex(id)
	if gi < 0 {
		gi = len(t.groups)
		t.groups = append(t.groups, &rowGroup{id: id, label: label})
	} else {
		t.groups[gi].label = label
	}
	for _, r := range selected {
		t.membership[r] = gi
	}
	return nil
}

// RowGroupOrder moves the named groups to the front, in the order given.
// Remaining groups keep their relative order.
func (t *Table) RowGroupOrder(ids ...string) error {
	order := make([]int, 0, len(t.groups))
	taken := map[int]bool{}
	for _, id := range ids {
		gi := t.groupIndex(id)
		if gi < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownGroup, id)
		}
		if !taken[gi] {
			taken[gi] = true
			order = append(order, gi)
		}
	}
	for gi := range t.groups {
		if !taken[gi] {
			order = append(order, gi)
		}
	}

	remap := make([]int, len(t.groups))
	groups := make([]*rowGroup, len(t.groups))
	for newIdx, oldIdx := range order {
		remap[oldIdx] = newIdx
		groups[newIdx] = t.groups[oldIdx]
	}
	for r, gi := range t.membership {
		if gi >= 0 {
			t.membership[r] = remap[gi]
		}
	}
	t.groups = groups
	return nil
}

// Groups returns the row group identifiers in display order. Groups without
// rows are omitted.
func (t *Table) Groups() []string {
	counts := make([]int, len(t.groups))
	for _, gi := range t.membership {
		if gi >= 0 {
			counts[gi]++
		}
	}
	var out []string
	for gi, g := range t.groups {
		if counts[gi] > 0 {
			out = append(out, g.id)
		}
	}
	return out
}

func (t *Table) groupIndex(id string) int {
	for i, g := range t.groups {
		if g.id == id {
			return i
		}
	}
	return -1
}
