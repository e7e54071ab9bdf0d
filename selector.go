package gt

import (
	"fmt"
	"regexp"
	"strings"
)

// ColumnInfo describes a body column to a [Selector].
type ColumnInfo struct {
	Name   string
	Kind   Kind
	Label  string
	Hidden bool
}

// Selector picks body columns. Columns are offered in their current display
// order; the stub and row group columns are never offered.
type Selector interface {
	selectColumns(cols []ColumnInfo) ([]string, error)
}

type selectorFunc func(cols []ColumnInfo) ([]string, error)

func (f selectorFunc) selectColumns(cols []ColumnInfo) ([]string, error) { return f(cols) }

// Cols selects columns by name, in the order given.
func Cols(names ...string) Selector {
	return selectorFunc(func(cols []ColumnInfo) ([]string, error) {
		known := make(map[string]bool, len(cols))
		for _, c := range cols {
			known[c.Name] = true
		}
		seen := make(map[string]bool, len(names))
		out := make([]string, 0, len(names))
		for _, n := range names {
			if !known[n] {
				return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, n)
			}
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
		return out, nil
	})
}

// Where selects the columns for which keep returns true.
func Where(keep func(ColumnInfo) bool) Selector {
	return selectorFunc(func(cols []ColumnInfo) ([]string, error) {
		var out []string
		for _, c := range cols {
			if keep(c) {
				out = append(out, c.Name)
			}
		}
		return out, nil
	})
}

// Everything selects all body columns.
func Everything() Selector {
	return Where(func(ColumnInfo) bool { return true })
}

// Numeric selects columns holding numbers.
func Numeric() Selector {
	return Where(func(c ColumnInfo) bool { return c.Kind.Numeric() })
}

// StartsWith selects columns whose name has the prefix.
func StartsWith(prefix string) Selector {
	return Where(func(c ColumnInfo) bool { return strings.HasPrefix(c.Name, prefix) })
}

// EndsWith selects columns whose name has the suffix.
func EndsWith(suffix string) Selector {
	return Where(func(c ColumnInfo) bool { return strings.HasSuffix(c.Name, suffix) })
}

// Contains selects columns whose name contains substr.
func Contains(substr string) Selector {
	return Where(func(c ColumnInfo) bool { return strings.Contains(c.Name, substr) })
}

// Matches selects columns whose name matches the regular expression.
func Matches(pattern string) Selector {
	return selectorFunc(func(cols []ColumnInfo) ([]string, error) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidArgument, pattern, err)
		}
		return Where(func(c ColumnInfo) bool { return re.MatchString(c.Name) }).selectColumns(cols)
	})
}
