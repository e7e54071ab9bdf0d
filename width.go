package gt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unit is the unit of a [Width].
type Unit int

const (
	UnitPx Unit = iota
	UnitPct
)

// Width is a column width in pixels or as a percentage of the table width.
// The zero Width means "automatic".
type Width struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel width.
func Px(v float64) Width { return Width{Value: v, Unit: UnitPx} }

// Pct returns a percentage width.
func Pct(v float64) Width { return Width{Value: v, Unit: UnitPct} }

// IsZero reports whether the width is automatic.
func (w Width) IsZero() bool { return w.Value == 0 }

// String renders the width as CSS, e.g. "120px" or "20%".
func (w Width) String() string {
	if w.IsZero() {
		return ""
	}
	v := strconv.FormatFloat(w.Value, 'f', -1, 64)
	if w.Unit == UnitPct {
		return v + "%"
	}
	return v + "px"
}

func (w Width) validate() error {
	if w.Value < 0 || math.IsNaN(w.Value) || math.IsInf(w.Value, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, w.Value)
	}
	if w.Unit == UnitPct && w.Value > 100 {
		return fmt.Errorf("%w: %s exceeds 100%%", ErrInvalidWidth, w)
	}
	return nil
}

// chars converts a pixel width to a minimum character count for text
// formats. Percentages have no fixed character width.
func (w Width) chars() int {
	if w.Unit != UnitPx || w.Value <= 0 {
		return 0
	}
	return int(math.Ceil(w.Value / 8))
}

// ParseWidth parses "120px", "120" (pixels) or "20%".
func ParseWidth(s string) (Width, error) {
	s = strings.TrimSpace(s)
	unit := UnitPx
	num := s
	switch {
	case strings.HasSuffix(s, "%"):
		unit = UnitPct
		num = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Width{}, fmt.Errorf("%w: %q", ErrInvalidWidth, s)
	}
	w := Width{Value: v, Unit: unit}
	if err := w.validate(); err != nil {
		return Width{}, err
	}
	return w, nil
}

// UnmarshalYAML accepts the forms understood by [ParseWidth].
func (w *Width) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseWidth(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*w = parsed
	return nil
}
