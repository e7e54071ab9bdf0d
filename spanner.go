package gt

import (
	"fmt"
	"strconv"
	"strings"
)

type spanner struct {
	id      string
	label   Text
	columns []string
	level   int // 0 sits directly above the column labels
}

// SpannerOption configures [Table.TabSpanner].
type SpannerOption func(*spanner)

// SpannerID sets the spanner identifier. The default is the label's plain text.
func SpannerID(id string) SpannerOption {
	return func(s *spanner) { s.id = id }
}

// TabSpanner places a label over the selected columns. The spanner sits one
// level above the highest spanner already covering any of those columns.
func (t *Table) TabSpanner(label Text, sel Selector, opts ...SpannerOption) error {
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: spanner %q selects no columns", ErrInvalidArgument, label.String())
	}
	s := &spanner{id: label.toPlain(), label: label, columns: names}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		return fmt.Errorf("%w: spanner needs an id or a label", ErrInvalidArgument)
	}
	if t.spannerByID(s.id) != nil {
		return fmt.Errorf("%w: spanner %q already exists", ErrInvalidArgument, s.id)
	}
	s.level = t.levelAbove(names)
	t.spanners = append(t.spanners, s)
	return nil
}

// Split controls which delimiter occurrences [Table.TabSpannerDelim] uses.
type Split int

const (
	SplitLast Split = iota
	SplitFirst
)

type delimConfig struct {
	split Split
	limit int
}

// DelimOption configures [Table.TabSpannerDelim].
type DelimOption func(*delimConfig)

// SplitFrom chooses whether splitting starts at the first or last delimiter
// when a limit is set.
func SplitFrom(s Split) DelimOption {
	return func(c *delimConfig) { c.split = s }
}

// Limit caps the number of splits per column name. Zero means no limit.
func Limit(n int) DelimOption {
	return func(c *delimConfig) { c.limit = n }
}

// TabSpannerDelim derives spanners from column names containing delim.
// "a.b.c" yields the label "c" under spanner "b" under spanner "a". Adjacent
// columns sharing a prefix share the spanner. Columns whose names do not
// contain delim are left alone.
func (t *Table) TabSpannerDelim(delim string, opts ...DelimOption) error {
	if delim == "" {
		return fmt.Errorf("%w: empty delimiter", ErrInvalidArgument)
	}
	cfg := delimConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.limit < 0 {
		return fmt.Errorf("%w: negative split limit", ErrInvalidArgument)
	}

	paths := make([][]string, len(t.boxhead))
	var split []string
	depth := 0
	for i, c := range t.boxhead {
		if !strings.Contains(c.name, delim) {
			continue
		}
		parts := splitName(c.name, delim, cfg)
		c.label = Plain(parts[len(parts)-1])
		paths[i] = parts[:len(parts)-1]
		split = append(split, c.name)
		depth = max(depth, len(paths[i]))
	}
	if len(split) == 0 {
		return nil
	}
	base := t.levelAbove(split)

	// Walk each depth from outermost to innermost. A run of adjacent columns
	// sharing the same prefix through that depth shares one spanner, placed
	// above the deepest path in the run so it stacks over every inner
	// spanner of its columns.
	for d := range depth {
		for i := 0; i < len(t.boxhead); {
			p := paths[i]
			if len(p) <= d {
				i++
				continue
			}
			key := strings.Join(p[:d+1], delim)
			j := i + 1
			for j < len(t.boxhead) && len(paths[j]) > d && strings.Join(paths[j][:d+1], delim) == key {
				j++
			}
			cols := make([]string, 0, j-i)
			height := 0
			for k := i; k < j; k++ {
				cols = append(cols, t.boxhead[k].name)
				height = max(height, len(paths[k])-1-d)
			}
			t.spanners = append(t.spanners, &spanner{
				id:      t.uniqueSpannerID(key),
				label:   Plain(p[d]),
				columns: cols,
				level:   base + height,
			})
			i = j
		}
	}
	return nil
}

func splitName(name, delim string, cfg delimConfig) []string {
	parts := strings.Split(name, delim)
	if cfg.limit == 0 || len(parts)-1 <= cfg.limit {
		return parts
	}
	if cfg.split == SplitFirst {
		return strings.SplitN(name, delim, cfg.limit+1)
	}
	keep := len(parts) - cfg.limit
	head := strings.Join(parts[:keep], delim)
	return append([]string{head}, parts[keep:]...)
}

// Spanners returns the spanner identifiers in creation order.
func (t *Table) Spanners() []string {
	out := make([]string, len(t.spanners))
	for i, s := range t.spanners {
		out[i] = s.id
	}
	return out
}

func (t *Table) levelAbove(cols []string) int {
	level := 0
	for _, s := range t.spanners {
		for _, c := range cols {
			if s.covers(c) && s.level+1 > level {
				level = s.level + 1
			}
		}
	}
	return level
}

func (t *Table) spannerByID(id string) *spanner {
	for _, s := range t.spanners {
		if s.id == id {
			return s
		}
	}
	return nil
}

func (t *Table) uniqueSpannerID(id string) string {
	if t.spannerByID(id) == nil {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if t.spannerByID(candidate) == nil {
			return candidate
		}
	}
}

func (s *spanner) covers(col string) bool {
	for _, c := range s.columns {
		if c == col {
			return true
		}
	}
	return false
}
