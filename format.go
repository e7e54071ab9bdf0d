package gt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultMissingText is the text [Table.SubMissing] uses when none is given.
const DefaultMissingText = "—"

// NumberOptions configures [Table.FmtNumber].
type NumberOptions struct {
	// Decimals is the number of digits after the decimal mark.
	Decimals int
	// NoSeps disables digit grouping separators.
	NoSeps bool
	// Locale is a BCP 47 tag choosing separators; default "en".
	Locale string
}

// FmtNumber formats numeric values of the selected columns with fixed
// decimals and locale digit grouping. Non-numeric values keep their default
// text.
func (t *Table) FmtNumber(sel Selector, opts NumberOptions) error {
	if opts.Decimals < 0 {
		return fmt.Errorf("%w: negative decimals", ErrInvalidArgument)
	}
	tag, err := parseLocale(opts.Locale)
	if err != nil {
		return err
	}
	p := message.NewPrinter(tag)
	return t.Fmt(sel, numeric(func(v float64) string {
		return formatNumber(p, v, opts.Decimals, !opts.NoSeps)
	}))
}

// FmtPercent formats numeric values as percentages: 0.123 becomes "12.3%"
// with one decimal.
func (t *Table) FmtPercent(sel Selector, decimals int) error {
	if decimals < 0 {
		return fmt.Errorf("%w: negative decimals", ErrInvalidArgument)
	}
	p := message.NewPrinter(language.English)
	return t.Fmt(sel, numeric(func(v float64) string {
		return formatNumber(p, v*100, decimals, true) + "%"
	}))
}

// FmtCurrency formats numeric values as amounts in the ISO 4217 currency
// code, e.g. "USD" or "EUR".
func (t *Table) FmtCurrency(sel Selector, code string, decimals int) error {
	if decimals < 0 {
		return fmt.Errorf("%w: negative decimals", ErrInvalidArgument)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Errorf("%w: currency %q: %v", ErrInvalidArgument, code, err)
	}
	p := message.NewPrinter(language.English)
	symbol := strings.TrimSpace(p.Sprint(currency.Symbol(unit)))
	return t.Fmt(sel, numeric(func(v float64) string {
		sign := ""
		if v < 0 {
			sign = "-"
			v = -v
		}
		return sign + symbol + formatNumber(p, v, decimals, true)
	}))
}

// FmtBytes formats numeric values as byte sizes: SI units ("1.5 kB"), or
// IEC units ("1.5 KiB") when binary is set.
func (t *Table) FmtBytes(sel Selector, binary bool) error {
	return t.Fmt(sel, numeric(func(v float64) string {
		// Beyond the uint64 range there is no byte count to report.
		if math.IsInf(v, 0) || math.Abs(v) >= 1<<64 {
			return defaultText(v)
		}
		sign := ""
		if v < 0 {
			sign = "-"
			v = -v
		}
		n := uint64(math.Round(v))
		if binary {
			return sign + humanize.IBytes(n)
		}
		return sign + humanize.Bytes(n)
	}))
}

// Fmt registers fn to format the non-missing values of the selected columns.
// The last formatter registered for a column wins.
func (t *Table) Fmt(sel Selector, fn func(any) string) error {
	if fn == nil {
		return fmt.Errorf("%w: nil formatter", ErrInvalidArgument)
	}
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	for _, n := range names {
		t.formats[n] = fn
	}
	return nil
}

// SubMissing sets the text shown for missing values in the selected columns.
// An empty text selects [DefaultMissingText].
func (t *Table) SubMissing(sel Selector, text string) error {
	if text == "" {
		text = DefaultMissingText
	}
	names, err := t.resolve(sel)
	if err != nil {
		return err
	}
	for _, n := range names {
		t.missing[n] = text
	}
	return nil
}

// formatCell turns a value into body text for the named column.
func (t *Table) formatCell(col string, v any) *cell {
	if v == nil {
		text, ok := t.missing[col]
		if !ok {
			text = "NA"
		}
		return &cell{text: text, missing: true}
	}
	if fn, ok := t.formats[col]; ok {
		return &cell{text: fn(v), value: v}
	}
	return &cell{text: defaultText(v), value: v}
}

func numeric(fn func(float64) string) func(any) string {
	return func(v any) string {
		if f, ok := toFloat(v); ok {
			return fn(f)
		}
		return defaultText(v)
	}
}

func parseLocale(locale string) (language.Tag, error) {
	if locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w: locale %q: %v", ErrInvalidArgument, locale, err)
	}
	return tag, nil
}

func formatNumber(p *message.Printer, v float64, decimals int, seps bool) string {
	if !seps {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
	return p.Sprintf("%."+strconv.Itoa(decimals)+"f", v)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func defaultText(v any) string {
	switch x := v.(type) {
	case nil:
		return "NA"
	case string:
		return x
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
