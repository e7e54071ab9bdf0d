package gt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type mergeKind int

const (
	mergePattern mergeKind = iota
	mergeRange
	mergeUncert
	mergeNPct
)

type merge struct {
	kind    mergeKind
	columns []string // target first
	pattern string
	sep     string
	hide    bool
}

// MergeOption configures the column merge operations.
type MergeOption func(*merge)

// MergeSep sets the separator for [Table.ColsMergeRange] and
// [Table.ColsMergeUncert].
func MergeSep(sep string) MergeOption {
	return func(m *merge) { m.sep = sep }
}

// HideColumns controls whether merged-in columns are hidden. The default is
// true.
func HideColumns(hide bool) MergeOption {
	return func(m *merge) { m.hide = hide }
}

const (
	defaultRangeSep  = "--"
	defaultUncertSep = " +/- "
)

// ColsMergeRange shows the range "begin–end" in the begin column and hides
// the end column. A missing end leaves begin alone.
func (t *Table) ColsMergeRange(begin, end string, opts ...MergeOption) error {
	return t.addPairMerge(mergeRange, begin, end, defaultRangeSep, opts)
}

// ColsMergeUncert shows "value ± uncert" in the value column and hides the
// uncertainty column. A missing uncertainty leaves value alone.
func (t *Table) ColsMergeUncert(value, uncert string, opts ...MergeOption) error {
	return t.addPairMerge(mergeUncert, value, uncert, defaultUncertSep, opts)
}

// ColsMergeNPct shows "n (pct)" in the n column and hides the pct column.
// A zero count or a missing percentage leaves n alone.
func (t *Table) ColsMergeNPct(n, pct string, opts ...MergeOption) error {
	return t.addPairMerge(mergeNPct, n, pct, "", opts)
}

func (t *Table) addPairMerge(kind mergeKind, target, other, sep string, opts []MergeOption) error {
	if err := t.requireColumn(target); err != nil {
		return err
	}
	if err := t.requireColumn(other); err != nil {
		return err
	}
	if target == other {
		return fmt.Errorf("%w: cannot merge %q with itself", ErrInvalidArgument, target)
	}
	m := merge{kind: kind, columns: []string{target, other}, sep: sep, hide: true}
	for _, opt := range opts {
		opt(&m)
	}
	t.addMerge(m)
	return nil
}

// ColsMerge combines the selected columns into the first one using pattern.
// "{1}" refers to the first selected column, "{2}" to the second, and so on.
// A section wrapped in "<<" and ">>" is dropped when any column it refers to
// is missing.
func (t *Table) ColsMerge(sel Selector, pattern string, opts ...MergeOption) error {
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: merge selects no columns", ErrInvalidArgument)
	}
	if err := checkPattern(pattern, len(names)); err != nil {
		return err
	}
	m := merge{kind: mergePattern, columns: names, pattern: pattern, hide: true}
	for _, opt := range opts {
		opt(&m)
	}
	t.addMerge(m)
	return nil
}

func (t *Table) addMerge(m merge) {
	if m.hide {
		for _, c := range m.columns[1:] {
			t.column(c).hidden = true
		}
	}
	t.merges = append(t.merges, m)
}

// cell is a formatted body value.
type cell struct {
	text    string
	missing bool
	value   any
}

func (m merge) apply(cells map[string]*cell) {
	target := cells[m.columns[0]]
	switch m.kind {
	case mergeRange:
		end := cells[m.columns[1]]
		if target.missing || end.missing {
			return
		}
		target.text = target.text + rangeSep(m.sep) + end.text
	case mergeUncert:
		unc := cells[m.columns[1]]
		if target.missing || unc.missing {
			return
		}
		target.text = target.text + uncertSep(m.sep) + unc.text
	case mergeNPct:
		pct := cells[m.columns[1]]
		if target.missing || pct.missing {
			return
		}
		if n, ok := toFloat(target.value); ok && n == 0 {
			return
		}
		target.text = target.text + " (" + pct.text + ")"
	case mergePattern:
		refs := make([]*cell, len(m.columns))
		for i, c := range m.columns {
			refs[i] = cells[c]
		}
		target.text = renderPattern(m.pattern, refs)
		target.missing = false
	}
}

func rangeSep(sep string) string {
	return strings.ReplaceAll(sep, "--", "–")
}

func uncertSep(sep string) string {
	return strings.ReplaceAll(sep, "+/-", "±")
}

var placeholderRe = regexp.MustCompile(`\{(\d+)\}`)

func checkPattern(pattern string, n int) error {
	rest := pattern
	for {
		open := strings.Index(rest, "<<")
		shut := strings.Index(rest, ">>")
		if open < 0 && shut < 0 {
			break
		}
		if open < 0 || (shut >= 0 && shut < open) {
			return fmt.Errorf("%w: unmatched \">>\" in %q", ErrInvalidPattern, pattern)
		}
		inner := rest[open+2:]
		end := strings.Index(inner, ">>")
		if end < 0 {
			return fmt.Errorf("%w: unmatched \"<<\" in %q", ErrInvalidPattern, pattern)
		}
		if strings.Contains(inner[:end], "<<") {
			return fmt.Errorf("%w: nested \"<<\" in %q", ErrInvalidPattern, pattern)
		}
		rest = inner[end+2:]
	}

	matches := placeholderRe.FindAllStringSubmatch(pattern, -1)
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q has no {n} placeholders", ErrInvalidPattern, pattern)
	}
	for _, m := range matches {
		k, err := strconv.Atoi(m[1])
		if err != nil || k < 1 || k > n {
			return fmt.Errorf("%w: placeholder %s with %d columns", ErrInvalidPattern, m[0], n)
		}
	}
	return nil
}

func renderPattern(pattern string, refs []*cell) string {
	var sb strings.Builder
	rest := pattern
	for {
		open := strings.Index(rest, "<<")
		if open < 0 {
			sb.WriteString(fillPattern(rest, refs))
			return sb.String()
		}
		sb.WriteString(fillPattern(rest[:open], refs))
		inner := rest[open+2:]
		end := strings.Index(inner, ">>")
		section := inner[:end]
		if !patternHasMissing(section, refs) {
			sb.WriteString(fillPattern(section, refs))
		}
		rest = inner[end+2:]
	}
}

func fillPattern(s string, refs []*cell) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		k, _ := strconv.Atoi(m[1 : len(m)-1])
		return refs[k-1].text
	})
}

func patternHasMissing(s string, refs []*cell) bool {
	for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
		k, _ := strconv.Atoi(m[1])
		if refs[k-1].missing {
			return true
		}
	}
	return false
}
