package gt_test

import (
	"testing"

	"github.com/bjaus/gt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  gt.Format
		err   bool
	}{
		"html":      {input: "html", want: gt.HTML},
		"upper":     {input: "HTML", want: gt.HTML},
		"rtf":       {input: "rtf", want: gt.RTF},
		"latex":     {input: "latex", want: gt.LaTeX},
		"tex alias": {input: "tex", want: gt.LaTeX},
		"md alias":  {input: "md", want: gt.Markdown},
		"text":      {input: "text", want: gt.TextTable},
		"txt alias": {input: "txt", want: gt.TextTable},
		"xlsx":      {input: "xlsx", want: gt.XLSX},
		"png":       {input: "png", want: gt.PNG},
		"unknown":   {input: "docx", err: true},
		"empty":     {input: "", err: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := gt.ParseFormat(tt.input)
			if tt.err {
				require.ErrorIs(t, err, gt.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		path string
		want gt.Format
		err  bool
	}{
		"html":      {path: "out/table.html", want: gt.HTML},
		"htm upper": {path: "TABLE.HTM", want: gt.HTML},
		"rtf":       {path: "t.rtf", want: gt.RTF},
		"tex":       {path: "t.tex", want: gt.LaTeX},
		"ltx":       {path: "t.ltx", want: gt.LaTeX},
		"rnw":       {path: "t.Rnw", want: gt.LaTeX},
		"md":        {path: "t.md", want: gt.Markdown},
		"txt":       {path: "t.txt", want: gt.TextTable},
		"csv":       {path: "t.csv", want: gt.CSV},
		"xlsx":      {path: "t.xlsx", want: gt.XLSX},
		"pdf":       {path: "t.pdf", want: gt.PDF},
		"png":       {path: "t.png", want: gt.PNG},
		"no ext":    {path: "table", err: true},
		"unknown":   {path: "t.docx", err: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := gt.FormatForPath(tt.path)
			if tt.err {
				require.ErrorIs(t, err, gt.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()
	all := gt.Formats()
	assert.Len(t, all, 9)
	all[0] = "mutated"
	assert.Equal(t, gt.HTML, gt.Formats()[0])
}

func TestFormatProperties(t *testing.T) {
	t.Parallel()
	for _, f := range gt.Formats() {
		switch f {
		case gt.PDF, gt.PNG:
			assert.True(t, f.NeedsBrowser(), f)
			assert.True(t, f.Binary(), f)
		case gt.XLSX:
			assert.False(t, f.NeedsBrowser(), f)
			assert.True(t, f.Binary(), f)
		default:
			assert.False(t, f.NeedsBrowser(), f)
			assert.False(t, f.Binary(), f)
		}
	}
	assert.Equal(t, "markdown", gt.Markdown.String())
}

func TestParseAlignment(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  gt.Alignment
		err   bool
	}{
		"empty":   {input: "", want: gt.AlignAuto},
		"auto":    {input: "auto", want: gt.AlignAuto},
		"left":    {input: "Left", want: gt.AlignLeft},
		"center":  {input: "center", want: gt.AlignCenter},
		"centre":  {input: "centre", want: gt.AlignCenter},
		"right":   {input: "right", want: gt.AlignRight},
		"invalid": {input: "justify", err: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := gt.ParseAlignment(tt.input)
			if tt.err {
				require.ErrorIs(t, err, gt.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	t.Parallel()
	errs := []error{
		gt.ErrUnsupportedFormat, gt.ErrUnknownColumn, gt.ErrDuplicateColumn,
		gt.ErrInvalidColumn, gt.ErrRaggedRow, gt.ErrConflictingOptions,
		gt.ErrUnknownGroup, gt.ErrInvalidMove, gt.ErrInvalidPattern,
		gt.ErrInvalidArgument, gt.ErrInvalidWidth, gt.ErrNoBrowser,
		gt.ErrInvalidRecipe,
	}
	seen := map[string]bool{}
	for _, err := range errs {
		assert.False(t, seen[err.Error()], err.Error())
		seen[err.Error()] = true
	}
}
