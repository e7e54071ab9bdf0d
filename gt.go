package gt

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrDuplicateColumn    = errors.New("duplicate column")
	ErrInvalidColumn      = errors.New("invalid column name")
	ErrRaggedRow          = errors.New("ragged row")
	ErrConflictingOptions = errors.New("conflicting options")
	ErrUnknownGroup       = errors.New("unknown row group")
	ErrInvalidMove        = errors.New("invalid column move")
	ErrInvalidPattern     = errors.New("invalid merge pattern")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidWidth       = errors.New("invalid width")
	ErrNoBrowser          = errors.New("no headless browser available")
	ErrInvalidRecipe      = errors.New("invalid recipe")
)

// Format represents an output format.
type Format string

const (
	HTML      Format = "html"
	RTF       Format = "rtf"
	LaTeX     Format = "latex"
	Markdown  Format = "markdown"
	TextTable Format = "text"
	CSV       Format = "csv"
	XLSX      Format = "xlsx"
	PDF       Format = "pdf"
	PNG       Format = "png"
)

var formats = []Format{HTML, RTF, LaTeX, Markdown, TextTable, CSV, XLSX, PDF, PNG}

var extensions = map[string]Format{
	".html": HTML,
	".htm":  HTML,
	".rtf":  RTF,
	".tex":  LaTeX,
	".ltx":  LaTeX,
	".rnw":  LaTeX,
	".md":   Markdown,
	".txt":  TextTable,
	".csv":  CSV,
	".xlsx": XLSX,
	".pdf":  PDF,
	".png":  PNG,
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == XLSX || f == PDF || f == PNG
}

// NeedsBrowser reports whether rendering the format requires a [Browser].
func (f Format) NeedsBrowser() bool {
	return f == PDF || f == PNG
}

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. "tex" is accepted as an alias for LaTeX
// and "md" for Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "tex":
		return LaTeX, nil
	case "md":
		return Markdown, nil
	case "txt":
		return TextTable, nil
	}
	for _, f := range formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatForPath picks the output format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: file extension %q", ErrUnsupportedFormat, ext)
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignAuto Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "auto"
	}
}

// ParseAlignment parses "auto", "left", "center" or "right".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return AlignAuto, nil
	case "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignAuto, fmt.Errorf("%w: alignment %q", ErrInvalidArgument, s)
}

// BorderStyle controls text table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

// Rower provides row data. Used by [FromRows] to build [Data].
type Rower interface {
	Row() []string
}

// Headed provides column names for [FromRows].
// Without it, columns are named V1, V2, ...
type Headed interface {
	Header() []string
}
