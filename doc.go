// Package gt builds display tables from tabular data and renders them as
// HTML, RTF, LaTeX, Markdown, text, CSV, XLSX, PDF or PNG.
//
// A table is built in three steps: load [Data], create a [Table] with [New],
// then shape it with method calls before rendering it with [Table.Render] or
// [Table.Save]:
//
//	data, _ := gt.ReadCSV(f)
//	t, _ := gt.New(data, gt.WithRowNameCol("row"), gt.WithGroupNameCol("group"))
//	_ = t.TabHeader(gt.Md("**Exibble**"), gt.Plain("a small dataset"))
//	_ = t.ColsMergeRange("low", "high")
//	_ = t.Save(ctx, "exibble.html")
//
// # Table Parts
//
// The stub holds row labels, taken from a column ([WithRowNameCol]) or from
// the data's row names ([WithRowNamesToStub]). Row groups partition the
// body rows; they come from group columns ([WithGroupNameCol]) or from
// explicit row selections ([Table.TabRowGroup]). Column spanners label
// groups of columns ([Table.TabSpanner], [Table.TabSpannerDelim]) and may be
// stacked. The header holds a title and subtitle ([Table.TabHeader]); the
// footer holds source notes ([Table.TabSourceNote]).
//
// Display text is a [Text]: [Plain] text, [Md] Markdown, or raw [HTMLText].
// Markdown and HTML are rendered in HTML output and reduced to plain text
// everywhere else.
//
// # Columns
//
// Column operations take a [Selector]: [Cols], [StartsWith], [EndsWith],
// [Contains], [Matches], [Numeric], [Everything] or [Where]. Columns are
// always addressed by their data name, never by their label.
//
//   - [Table.ColsAlign], [Table.ColsLabel], [Table.ColsWidth]
//   - [Table.ColsMove], [Table.ColsMoveToStart], [Table.ColsMoveToEnd]
//   - [Table.ColsHide], [Table.ColsUnhide]
//   - [Table.ColsMergeRange], [Table.ColsMergeUncert], [Table.ColsMergeNPct],
//     [Table.ColsMerge]
//
// Merges work on formatted text, so formatters registered with
// [Table.FmtNumber] and friends apply before values are merged.
//
// # Output
//
// Every format renders the same layout. PDF and PNG print the HTML output
// through a [Browser]; the default [ChromeBrowser] drives a local headless
// Chrome. Use [WithBrowser] to supply another implementation.
//
// # Recipes
//
// A [Recipe] describes a table build in YAML and is applied with
// [Recipe.Build]. The gt command in cmd/gt renders recipes from the shell.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling, for example:
//
//   - [ErrUnknownColumn]: a column name that is not in the table
//   - [ErrUnsupportedFormat]: unknown format or file extension
//   - [ErrInvalidPattern]: malformed [Table.ColsMerge] pattern
//   - [ErrNoBrowser]: PDF or PNG requested without a headless browser
package gt
