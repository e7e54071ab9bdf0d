package gt_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bjaus/gt"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func simpleTable(t *testing.T) *gt.Table {
	t.Helper()
	d := mustData(t, []string{"name", "n"}, []any{"a", 1}, []any{"bb", 22})
	return mustTable(t, d)
}

// richTable has every table part: caption, header, stub, stubhead, spanner,
// row groups, formatted and missing cells, and a source note.
func richTable(t *testing.T) *gt.Table {
	t.Helper()
	d := mustData(t, []string{"name", "grp", "low", "high", "pct"},
		[]any{"ant", "A", 1, 2, 0.5},
		[]any{"bee", "A", 3, nil, 0.25},
		[]any{"cat", "B", 5, 6, nil},
	)
	tbl := mustTable(t, d,
		gt.WithRowNameCol("name"),
		gt.WithGroupNameCol("grp"),
		gt.WithID("rich"),
		gt.WithCaption(gt.Plain("cap")),
	)
	require.NoError(t, tbl.TabHeader(gt.Md("**Rich**"), gt.Plain("sub & more")))
	tbl.TabStubhead(gt.Plain("Animal"))
	require.NoError(t, tbl.TabSpanner(gt.Plain("Range"), gt.Cols("low", "high")))
	require.NoError(t, tbl.FmtPercent(gt.Cols("pct"), 0))
	require.NoError(t, tbl.SubMissing(gt.Cols("pct"), ""))
	tbl.TabSourceNote(gt.Plain("Source: made up"))
	return tbl
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, render(t, richTable(t), gt.HTML))

	tables := findAll(doc, "table", map[string]string{"class": "gt_table"})
	require.Len(t, tables, 1)
	assert.Equal(t, "rich", attr(tables[0], "id"))

	captions := findAll(doc, "caption", nil)
	require.Len(t, captions, 1)
	assert.Equal(t, "cap", textOf(captions[0]))

	title := findAll(doc, "th", map[string]string{"class": "gt_title"})
	require.Len(t, title, 1)
	assert.Equal(t, "Rich", textOf(title[0]))
	assert.Equal(t, "4", attr(title[0], "colspan"))
	assert.Len(t, findAll(title[0], "strong", nil), 1)

	subtitle := findAll(doc, "th", map[string]string{"class": "gt_subtitle"})
	require.Len(t, subtitle, 1)
	assert.Equal(t, "sub & more", textOf(subtitle[0]))

	spanners := findAll(doc, "th", map[string]string{"class": "gt_column_spanner"})
	require.Len(t, spanners, 1)
	assert.Equal(t, "Range", attr(spanners[0], "data-spanner"))
	assert.Equal(t, "2", attr(spanners[0], "colspan"))
	assert.Equal(t, "Range", textOf(spanners[0]))

	stubhead := findAll(doc, "th", map[string]string{"class": "gt_stubhead"})
	require.Len(t, stubhead, 1)
	assert.Equal(t, "Animal", textOf(stubhead[0]))

	var headings []string
	for _, th := range findAll(doc, "th", map[string]string{"data-column": ""}) {
		if c := attr(th, "data-column"); c != "" {
			headings = append(headings, c)
		}
	}
	assert.Equal(t, []string{"low", "high", "pct"}, headings)

	var groups []string
	for _, th := range findAll(doc, "th", map[string]string{"class": "gt_group_heading"}) {
		groups = append(groups, textOf(th))
		assert.Equal(t, "4", attr(th, "colspan"))
	}
	assert.Equal(t, []string{"A", "B"}, groups)

	var stubs []string
	for _, th := range findAll(doc, "th", map[string]string{"class": "gt_row gt_stub"}) {
		stubs = append(stubs, textOf(th))
	}
	assert.Equal(t, []string{"ant", "bee", "cat"}, stubs)

	var cells []string
	for _, td := range findAll(doc, "td", map[string]string{"class": "gt_row"}) {
		cells = append(cells, textOf(td))
		assert.Equal(t, "text-align: right", attr(td, "style"))
	}
	assert.Equal(t, []string{"1", "2", "50%", "3", "NA", "25%", "5", "6", "—"}, cells)

	notes := findAll(doc, "td", map[string]string{"class": "gt_sourcenote"})
	require.Len(t, notes, 1)
	assert.Equal(t, "Source: made up", textOf(notes[0]))
}

func TestRenderHTMLEscapesCells(t *testing.T) {
	t.Parallel()

	d := mustData(t, []string{"x"}, []any{"<b>bold</b> & co"})
	out := render(t, mustTable(t, d), gt.HTML)

	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt; &amp; co")
	doc := parseHTML(t, out)
	assert.Empty(t, findAll(doc, "b", nil))
	td := findAll(doc, "td", nil)
	require.Len(t, td, 1)
	assert.Equal(t, "<b>bold</b> & co", textOf(td[0]))
}

func TestRenderHTMLDocument(t *testing.T) {
	t.Parallel()

	fragment := render(t, richTable(t), gt.HTML)
	assert.True(t, strings.HasPrefix(fragment, "<table"))
	assert.NotContains(t, fragment, "<style>")

	doc := render(t, richTable(t), gt.HTML, gt.WithCompleteHTML(true))
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>Rich</title>")
	assert.Contains(t, doc, ".gt_table {")
	assert.True(t, strings.HasSuffix(doc, "</html>\n"))

	untitled := render(t, simpleTable(t), gt.HTML, gt.WithCompleteHTML(true))
	assert.Contains(t, untitled, "<title>Table</title>")
}

func TestRenderHTMLColumnWidths(t *testing.T) {
	t.Parallel()

	tbl := simpleTable(t)
	assert.NotContains(t, render(t, tbl, gt.HTML), "<colgroup>")

	require.NoError(t, tbl.ColsWidth(map[string]gt.Width{"n": gt.Px(80)}))
	doc := parseHTML(t, render(t, tbl, gt.HTML))
	cols := findAll(doc, "col", nil)
	require.Len(t, cols, 2)
	assert.Empty(t, attr(cols[0], "style"))
	assert.Equal(t, "width: 80px", attr(cols[1], "style"))
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("simple", func(t *testing.T) {
		t.Parallel()
		want := "| name |   n |\n" +
			"| ---- | --: |\n" +
			"| a    |   1 |\n" +
			"| bb   |  22 |\n"
		assert.Equal(t, want, render(t, simpleTable(t), gt.Markdown))
	})

	t.Run("rich", func(t *testing.T) {
		t.Parallel()
		want := "**Rich**\n\n" +
			"*sub & more*\n\n" +
			"| Animal | Range / low | Range / high | pct |\n" +
			"| ------ | ----------: | -----------: | --: |\n" +
			"| **A**  |             |              |     |\n" +
			"| ant    |           1 |            2 | 50% |\n" +
			"| bee    |           3 |           NA | 25% |\n" +
			"| **B**  |             |              |     |\n" +
			"| cat    |           5 |            6 |   — |\n" +
			"\nSource: made up\n"
		assert.Equal(t, want, render(t, richTable(t), gt.Markdown))
	})

	t.Run("escapes pipes", func(t *testing.T) {
		t.Parallel()
		d := mustData(t, []string{"x"}, []any{"a|b"})
		assert.Contains(t, render(t, mustTable(t, d), gt.Markdown), `| a\|b |`)
	})
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		border gt.BorderStyle
		want   string
	}{
		"rounded": {
			border: gt.BorderRounded,
			want: "╭──────┬────╮\n" +
				"│ name │  n │\n" +
				"├──────┼────┤\n" +
				"│ a    │  1 │\n" +
				"│ bb   │ 22 │\n" +
				"╰──────┴────╯\n",
		},
		"ascii": {
			border: gt.BorderASCII,
			want: "+------+----+\n" +
				"| name |  n |\n" +
				"+------+----+\n" +
				"| a    |  1 |\n" +
				"| bb   | 22 |\n" +
				"+------+----+\n",
		},
		"none": {
			border: gt.BorderNone,
			want: "name   n\n" +
				"----  --\n" +
				"a      1\n" +
				"bb    22\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, render(t, simpleTable(t), gt.TextTable, gt.WithBorder(tc.border)))
		})
	}
}

func TestRenderTextRichLinesAlign(t *testing.T) {
	t.Parallel()

	borders := map[string]gt.BorderStyle{
		"rounded": gt.BorderRounded,
		"ascii":   gt.BorderASCII,
		"heavy":   gt.BorderHeavy,
		"double":  gt.BorderDouble,
	}
	for name, border := range borders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := render(t, richTable(t), gt.TextTable, gt.WithBorder(border))
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			require.Equal(t, "Source: made up", lines[len(lines)-1])

			table := lines[:len(lines)-1]
			width := runewidth.StringWidth(table[0])
			for _, line := range table {
				assert.Equal(t, width, runewidth.StringWidth(line), line)
			}
			for _, want := range []string{"Rich", "sub & more", "Range", "Animal", "ant", "50%", "NA", "—"} {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRenderCSV(t *testing.T) {
	t.Parallel()

	records := splitCSV(t, render(t, richTable(t), gt.CSV))
	assert.Equal(t, [][]string{
		{"group", "Animal", "low", "high", "pct"},
		{"A", "ant", "1", "2", "50%"},
		{"A", "bee", "3", "NA", "25%"},
		{"B", "cat", "5", "6", "—"},
	}, records)

	records = splitCSV(t, render(t, simpleTable(t), gt.CSV))
	assert.Equal(t, [][]string{{"name", "n"}, {"a", "1"}, {"bb", "22"}}, records)
}

func TestRenderRTF(t *testing.T) {
	t.Parallel()

	out := render(t, richTable(t), gt.RTF)

	assert.True(t, strings.HasPrefix(out, "{\\rtf1\\ansi"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	// Spanner, header, two group labels and three body rows.
	assert.Equal(t, 7, strings.Count(out, "\\row\n"))
	assert.Contains(t, out, "\\b\\fs28 Rich\\b0")
	assert.Contains(t, out, "{\\b Range}")
	assert.Contains(t, out, "{\\b Animal}")
	assert.Contains(t, out, "\\cellx1800")
	assert.Contains(t, out, "\\cellx7200")
	assert.Contains(t, out, "\\u8212?")
	assert.Contains(t, out, "Source: made up")
}

func TestRenderLaTeX(t *testing.T) {
	t.Parallel()

	out := render(t, richTable(t), gt.LaTeX)

	for _, want := range []string{
		"\\begin{longtable}{lrrr}\n",
		"{\\large Rich}",
		"{\\small sub \\& more}",
		"\\multicolumn{2}{c}{Range}",
		"\\cmidrule(lr){2-3}",
		"Animal & low & high & pct \\\\\n",
		"\\multicolumn{4}{l}{A} \\\\[2.5pt]\n",
		"ant & 1 & 2 & 50\\% \\\\\n",
		"bee & 3 & NA & 25\\% \\\\\n",
		"\\end{longtable}\n",
		"Source: made up\\\\\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderLaTeXWidths(t *testing.T) {
	t.Parallel()

	tbl := simpleTable(t)
	require.NoError(t, tbl.ColsWidth(map[string]gt.Width{"name": gt.Pct(25), "n": gt.Px(100)}))
	out := render(t, tbl, gt.LaTeX)
	assert.Contains(t, out, ">{\\raggedright\\arraybackslash}p{0.25\\linewidth}")
	assert.Contains(t, out, ">{\\raggedleft\\arraybackslash}p{75pt}")
}

func TestRenderXLSX(t *testing.T) {
	t.Parallel()

	out := render(t, richTable(t), gt.XLSX)
	f, err := excelize.OpenReader(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Table"}, f.GetSheetList())

	cells := map[string]string{
		"A1":  "Rich",
		"A2":  "sub & more",
		"B3":  "Range",
		"A4":  "Animal",
		"B4":  "low",
		"D4":  "pct",
		"A5":  "A",
		"A6":  "ant",
		"D6":  "50%",
		"C7":  "NA",
		"A8":  "B",
		"D9":  "—",
		"A10": "Source: made up",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue("Table", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	merged, err := f.GetMergeCells("Table")
	require.NoError(t, err)
	var ranges []string
	for _, m := range merged {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.Contains(t, ranges, "B3:C3")
	assert.Contains(t, ranges, "A5:D5")
}

func TestRenderBrowserFormats(t *testing.T) {
	t.Parallel()

	t.Run("pdf", func(t *testing.T) {
		t.Parallel()
		b := &fakeBrowser{}
		out := render(t, richTable(t), gt.PDF, gt.WithBrowser(b))
		assert.Equal(t, "%PDF-1.7 fake", out)
		require.Len(t, b.html, 1)
		assert.True(t, strings.HasPrefix(b.html[0], "<!DOCTYPE html>"))
		assert.Contains(t, b.html[0], `class="gt_table"`)
	})

	t.Run("png defaults", func(t *testing.T) {
		t.Parallel()
		b := &fakeBrowser{}
		out := render(t, richTable(t), gt.PNG, gt.WithBrowser(b))
		assert.Equal(t, "\x89PNG fake", out)
		assert.Equal(t, "#gt-capture", b.selector)
		assert.InDelta(t, 2.0, b.scale, 1e-9)
		require.Len(t, b.html, 1)
		assert.Contains(t, b.html[0], `id="gt-capture"`)
		assert.Contains(t, b.html[0], "padding: 5px")
	})

	t.Run("png options", func(t *testing.T) {
		t.Parallel()
		b := &fakeBrowser{}
		render(t, simpleTable(t), gt.PNG, gt.WithBrowser(b), gt.WithZoom(3), gt.WithExpand(12))
		assert.InDelta(t, 3.0, b.scale, 1e-9)
		assert.Contains(t, b.html[0], "padding: 12px")
	})

	t.Run("browser error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		b := &fakeBrowser{err: boom}
		err := simpleTable(t).Render(&bytes.Buffer{}, gt.PDF, gt.WithBrowser(b))
		require.ErrorIs(t, err, boom)
	})
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format gt.Format
		opts   []gt.RenderOption
		err    error
	}{
		"unknown format": {format: gt.Format("docx"), err: gt.ErrUnsupportedFormat},
		"zero zoom":      {format: gt.PNG, opts: []gt.RenderOption{gt.WithZoom(0)}, err: gt.ErrInvalidArgument},
		"negative pad":   {format: gt.PNG, opts: []gt.RenderOption{gt.WithExpand(-1)}, err: gt.ErrInvalidArgument},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := simpleTable(t).Render(&bytes.Buffer{}, tc.format, tc.opts...)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	b, err := simpleTable(t).Marshal(gt.CSV)
	require.NoError(t, err)
	assert.Equal(t, "name,n\na,1\nbb,22\n", string(b))

	_, err = simpleTable(t).Marshal(gt.Format("nope"))
	require.ErrorIs(t, err, gt.ErrUnsupportedFormat)
}

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("formats by extension", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		tbl := richTable(t)

		for _, name := range []string{"t.html", "t.csv", "t.md", "t.tex", "t.rtf", "t.txt", "t.xlsx"} {
			path := filepath.Join(dir, name)
			require.NoError(t, tbl.Save(context.Background(), path), name)
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size(), name)
			assert.Equal(t, os.FileMode(0o644), info.Mode().Perm(), name)
		}

		page, err := os.ReadFile(filepath.Join(dir, "t.html"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(page), "<!DOCTYPE html>"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 7)
	})

	t.Run("html fragment", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "t.html")
		require.NoError(t, simpleTable(t).Save(context.Background(), path, gt.WithCompleteHTML(false)))
		page, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(page), "<table"))
	})

	t.Run("png through browser", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "t.png")
		b := &fakeBrowser{}
		require.NoError(t, simpleTable(t).Save(context.Background(), path, gt.WithBrowser(b)))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "\x89PNG fake", string(got))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		err := simpleTable(t).Save(context.Background(), filepath.Join(dir, "t.docx"))
		require.ErrorIs(t, err, gt.ErrUnsupportedFormat)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("failed render leaves no file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		b := &fakeBrowser{err: errors.New("no chrome")}
		err := simpleTable(t).Save(context.Background(), filepath.Join(dir, "t.pdf"), gt.WithBrowser(b))
		require.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestChromeBrowserNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	b := &gt.ChromeBrowser{}
	_, err := b.PrintPDF(context.Background(), []byte("<p>x</p>"))
	require.ErrorIs(t, err, gt.ErrNoBrowser)

	err = simpleTable(t).Render(&bytes.Buffer{}, gt.PNG)
	require.ErrorIs(t, err, gt.ErrNoBrowser)
}
