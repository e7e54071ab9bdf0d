package gt

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Recipe is a declarative table build, usually loaded from YAML:
//
//	stub: row
//	groups: [group]
//	title: {md: "**Exibble**"}
//	steps:
//	  - op: label
//	    labels: {num: Number}
//	  - op: merge_range
//	    begin: low
//	    end: high
type Recipe struct {
	Stub           string   `yaml:"stub"`
	RowNamesToStub bool     `yaml:"rownames_to_stub"`
	Groups         []string `yaml:"groups"`
	GroupSep       string   `yaml:"group_sep"`
	ID             string   `yaml:"id"`
	Caption        Text     `yaml:"caption"`
	Title          Text     `yaml:"title"`
	Subtitle       Text     `yaml:"subtitle"`
	Stubhead       Text     `yaml:"stubhead"`
	SourceNotes    []Text   `yaml:"source_notes"`
	Steps          []Step   `yaml:"steps"`
}

// Step is one operation of a [Recipe]. Op names the operation; the other
// fields are its arguments. Column selection uses Columns, or one of the
// name matchers; with none of them set, every column is selected.
type Step struct {
	Op string `yaml:"op"`

	Columns    []string `yaml:"columns"`
	StartsWith string   `yaml:"starts_with"`
	EndsWith   string   `yaml:"ends_with"`
	Contains   string   `yaml:"contains"`
	Matches    string   `yaml:"matches"`
	Numeric    bool     `yaml:"numeric"`

	Align   string           `yaml:"align"`
	Labels  map[string]Text  `yaml:"labels"`
	Widths  map[string]Width `yaml:"widths"`
	After   string           `yaml:"after"`
	Begin   string           `yaml:"begin"`
	End     string           `yaml:"end"`
	Value   string           `yaml:"value"`
	Uncert  string           `yaml:"uncert"`
	N       string           `yaml:"n"`
	Pct     string           `yaml:"pct"`
	Pattern string           `yaml:"pattern"`
	Sep     *string          `yaml:"sep"`
	Hide    *bool            `yaml:"hide"`

	Label Text   `yaml:"label"`
	ID    string `yaml:"id"`
	Delim string `yaml:"delim"`
	Split string `yaml:"split"`
	Limit int    `yaml:"limit"`

	Decimals int      `yaml:"decimals"`
	NoSeps   bool     `yaml:"no_seps"`
	Locale   string   `yaml:"locale"`
	Currency string   `yaml:"currency"`
	Binary   bool     `yaml:"binary"`
	Text     string   `yaml:"text"`
	Template string   `yaml:"template"`
	Order    []string `yaml:"order"`
}

// LoadRecipe decodes a YAML recipe. Unknown fields are rejected.
func LoadRecipe(r io.Reader) (*Recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var rec Recipe
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return &rec, nil
		}
		if errors.Is(err, ErrInvalidRecipe) || errors.Is(err, ErrInvalidWidth) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	return &rec, nil
}

// Build creates a table from data and applies every step in order.
func (rec *Recipe) Build(data *Data) (*Table, error) {
	var opts []Option
	if rec.Stub != "" {
		opts = append(opts, WithRowNameCol(rec.Stub))
	}
	if rec.RowNamesToStub {
		opts = append(opts, WithRowNamesToStub())
	}
	if len(rec.Groups) > 0 {
		opts = append(opts, WithGroupNameCol(rec.Groups...))
	}
	if rec.GroupSep != "" {
		opts = append(opts, WithRowGroupSep(rec.GroupSep))
	}
	if rec.ID != "" {
		opts = append(opts, WithID(rec.ID))
	}
	if !rec.Caption.IsZero() {
		opts = append(opts, WithCaption(rec.Caption))
	}
	t, err := New(data, opts...)
	if err != nil {
		return nil, err
	}
	if err := t.TabHeader(rec.Title, rec.Subtitle); err != nil {
		return nil, err
	}
	if !rec.Stubhead.IsZero() {
		t.TabStubhead(rec.Stubhead)
	}
	for _, n := range rec.SourceNotes {
		t.TabSourceNote(n)
	}
	for i, s := range rec.Steps {
		if err := s.apply(t); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.Op, err)
		}
	}
	return t, nil
}

func (s Step) selector() Selector {
	switch {
	case len(s.Columns) > 0:
		return Cols(s.Columns...)
	case s.StartsWith != "":
		return StartsWith(s.StartsWith)
	case s.EndsWith != "":
		return EndsWith(s.EndsWith)
	case s.Contains != "":
		return Contains(s.Contains)
	case s.Matches != "":
		return Matches(s.Matches)
	case s.Numeric:
		return Numeric()
	default:
		return Everything()
	}
}

func (s Step) mergeOptions() []MergeOption {
	var opts []MergeOption
	if s.Sep != nil {
		opts = append(opts, MergeSep(*s.Sep))
	}
	if s.Hide != nil {
		opts = append(opts, HideColumns(*s.Hide))
	}
	return opts
}

func (s Step) apply(t *Table) error {
	switch s.Op {
	case "align":
		a, err := ParseAlignment(s.Align)
		if err != nil {
			return err
		}
		return t.ColsAlign(a, s.selector())
	case "label":
		return t.ColsLabel(s.Labels)
	case "width":
		return t.ColsWidth(s.Widths)
	case "move":
		return t.ColsMove(s.selector(), s.After)
	case "move_to_start":
		return t.ColsMoveToStart(s.selector())
	case "move_to_end":
		return t.ColsMoveToEnd(s.selector())
	case "hide":
		return t.ColsHide(s.selector())
	case "unhide":
		return t.ColsUnhide(s.selector())
	case "merge_range":
		return t.ColsMergeRange(s.Begin, s.End, s.mergeOptions()...)
	case "merge_uncert":
		return t.ColsMergeUncert(s.Value, s.Uncert, s.mergeOptions()...)
	case "merge_n_pct":
		return t.ColsMergeNPct(s.N, s.Pct, s.mergeOptions()...)
	case "merge":
		return t.ColsMerge(s.selector(), s.Pattern, s.mergeOptions()...)
	case "spanner":
		var opts []SpannerOption
		if s.ID != "" {
			opts = append(opts, SpannerID(s.ID))
		}
		return t.TabSpanner(s.Label, s.selector(), opts...)
	case "spanner_delim":
		opts := []DelimOption{Limit(s.Limit)}
		switch s.Split {
		case "", "last":
		case "first":
			opts = append(opts, SplitFrom(SplitFirst))
		default:
			return fmt.Errorf("%w: split %q", ErrInvalidRecipe, s.Split)
		}
		return t.TabSpannerDelim(s.Delim, opts...)
	case "fmt_number":
		return t.FmtNumber(s.selector(), NumberOptions{Decimals: s.Decimals, NoSeps: s.NoSeps, Locale: s.Locale})
	case "fmt_percent":
		return t.FmtPercent(s.selector(), s.Decimals)
	case "fmt_currency":
		return t.FmtCurrency(s.selector(), s.Currency, s.Decimals)
	case "fmt_bytes":
		return t.FmtBytes(s.selector(), s.Binary)
	case "fmt_template":
		return t.FmtTemplate(s.selector(), s.Template)
	case "sub_missing":
		return t.SubMissing(s.selector(), s.Text)
	case "row_group_order":
		return t.RowGroupOrder(s.Order...)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidRecipe, s.Op)
	}
}
