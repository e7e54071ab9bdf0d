package gt

import (
	"fmt"
	"slices"
)

// ColsAlign sets the alignment of the selected columns. [AlignAuto] aligns
// numbers right and everything else left.
func (t *Table) ColsAlign(align Alignment, sel Selector) error {
	if align < AlignAuto || align > AlignRight {
		return fmt.Errorf("%w: alignment %d", ErrInvalidArgument, align)
	}
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	for _, n := range names {
		t.column(n).align = align
	}
	return nil
}

// ColsLabel relabels columns by name. Labels only change what is displayed;
// columns keep being addressed by name.
func (t *Table) ColsLabel(labels map[string]Text) error {
	for name := range labels {
		if err := t.requireColumn(name); err != nil {
			return err
		}
	}
	for name, label := range labels {
		t.column(name).label = label
	}
	return nil
}

// ColsLabelWith relabels the selected columns by applying fn to their
// current plain-text label.
func (t *Table) ColsLabelWith(sel Selector, fn func(string) string) error {
	if fn == nil {
		return fmt.Errorf("%w: nil label function", ErrInvalidArgument)
	}
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	for _, n := range names {
		c := t.column(n)
		c.label = Plain(fn(c.label.toPlain()))
	}
	return nil
}

// ColsWidth sets column widths by name.
func (t *Table) ColsWidth(widths map[string]Width) error {
	for name, w := range widths {
		if err := t.requireColumn(name); err != nil {
			return err
		}
		if err := w.validate(); err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
	}
	for name, w := range widths {
		t.column(name).width = w
	}
	return nil
}

// ColsMove places the selected columns, in selection order, directly after
// the column named after.
func (t *Table) ColsMove(sel Selector, after string) error {
	if err := t.requireColumn(after); err != nil {
		return err
	}
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	if slices.Contains(names, after) {
		return fmt.Errorf("%w: %q cannot be moved after itself", ErrInvalidMove, after)
	}
	moved, rest := t.partition(names)
	pos := slices.IndexFunc(rest, func(c *column) bool { return c.name == after })
	t.boxhead = slices.Concat(rest[:pos+1], moved, rest[pos+1:])
	return nil
}

// ColsMoveToStart moves the selected columns to the start of the body.
func (t *Table) ColsMoveToStart(sel Selector) error {
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	moved, rest := t.partition(names)
	t.boxhead = slices.Concat(moved, rest)
	return nil
}

// ColsMoveToEnd moves the selected columns to the end of the body.
func (t *Table) ColsMoveToEnd(sel Selector) error {
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	moved, rest := t.partition(names)
	t.boxhead = slices.Concat(rest, moved)
	return nil
}

// partition splits the boxhead into the named columns, in the order of
// names, and the remaining columns in display order.
func (t *Table) partition(names []string) (moved, rest []*column) {
	picked := make(map[string]bool, len(names))
	for _, n := range names {
		picked[n] = true
		moved = append(moved, t.column(n))
	}
	for _, c := range t.boxhead {
		if !picked[c.name] {
			rest = append(rest, c)
		}
	}
	return moved, rest
}

// ColsHide hides the selected columns. Hidden columns keep their data and can
// still take part in merges.
func (t *Table) ColsHide(sel Selector) error {
	return t.setHidden(sel, true)
}

// ColsUnhide shows previously hidden columns.
func (t *Table) ColsUnhide(sel Selector) error {
	return t.setHidden(sel, false)
}

func (t *Table) setHidden(sel Selector, hidden bool) error {
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	for _, n := range names {
		t.column(n).hidden = hidden
	}
	return nil
}
