// Command gt renders display tables from CSV, TSV, JSON or XLSX data.
//
//	gt render --data exibble.csv --recipe table.yaml --out table.html
//	gt preview --data exibble.csv --top 3
//	gt formats
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/bjaus/gt"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "gt:", err)
		os.Exit(1)
	}
}

var borders = map[string]gt.BorderStyle{
	"rounded": gt.BorderRounded,
	"none":    gt.BorderNone,
	"ascii":   gt.BorderASCII,
	"heavy":   gt.BorderHeavy,
	"double":  gt.BorderDouble,
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(stderr, cfg)
	if err != nil {
		return err
	}

	app := kingpin.New("gt", "Build display tables from tabular data.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Terminate(nil)

	render := app.Command("render", "Render a table to a file or to stdout.")
	renderData := render.Flag("data", "Input data (.csv, .tsv, .json, .jsonl, .xlsx).").Required().String()
	renderSheet := render.Flag("sheet", "Worksheet of an .xlsx input; default the first.").String()
	renderRecipe := render.Flag("recipe", "YAML recipe describing the table.").String()
	renderOut := render.Flag("out", "Output file; its extension picks the format.").Short('o').String()
	renderFormat := render.Flag("format", "Output format when writing to stdout.").Default("html").String()
	renderComplete := render.Flag("complete", "Write a complete HTML document to stdout.").Bool()
	renderBorder := render.Flag("border", "Border style of text output.").Default("rounded").Enum("rounded", "none", "ascii", "heavy", "double")

	preview := app.Command("preview", "Show the first and last rows of a dataset.")
	previewData := preview.Flag("data", "Input data (.csv, .tsv, .json, .jsonl, .xlsx).").Required().String()
	previewSheet := preview.Flag("sheet", "Worksheet of an .xlsx input; default the first.").String()
	previewTop := preview.Flag("top", "Number of leading rows.").Default("5").Int()
	previewBottom := preview.Flag("bottom", "Number of trailing rows.").Default("1").Int()
	previewNoNums := preview.Flag("no-rownums", "Hide the original row numbers.").Bool()
	previewFormat := preview.Flag("format", "Output format.").Default("text").String()
	previewBorder := preview.Flag("border", "Border style of text output.").Default("rounded").Enum("rounded", "none", "ascii", "heavy", "double")

	formats := app.Command("formats", "List the supported output formats.")

	cmd, err := app.Parse(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	browser := &gt.ChromeBrowser{ExecPath: cfg.ChromePath, Timeout: cfg.Timeout}

	switch cmd {
	case render.FullCommand():
		return doRender(ctx, logger, stdout, renderArgs{
			data:     *renderData,
			sheet:    *renderSheet,
			recipe:   *renderRecipe,
			out:      *renderOut,
			format:   *renderFormat,
			complete: *renderComplete,
			border:   borders[*renderBorder],
			browser:  browser,
		})
	case preview.FullCommand():
		return doPreview(ctx, logger, stdout, previewArgs{
			data:      *previewData,
			sheet:     *previewSheet,
			top:       *previewTop,
			bottom:    *previewBottom,
			noRowNums: *previewNoNums,
			format:    *previewFormat,
			border:    borders[*previewBorder],
			browser:   browser,
		})
	case formats.FullCommand():
		for _, f := range gt.Formats() {
			if _, err := fmt.Fprintln(stdout, f); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

type renderArgs struct {
	data     string
	sheet    string
	recipe   string
	out      string
	format   string
	complete bool
	border   gt.BorderStyle
	browser  gt.Browser
}

func doRender(ctx context.Context, logger *slog.Logger, stdout io.Writer, a renderArgs) error {
	start := time.Now()
	data, err := readData(a.data, a.sheet)
	if err != nil {
		return err
	}
	logger.Debug("loaded data", "path", a.data, "rows", data.Len(), "columns", len(data.Columns()))

	rec := &gt.Recipe{}
	if a.recipe != "" {
		if rec, err = loadRecipe(a.recipe); err != nil {
			return err
		}
	}
	t, err := rec.Build(data)
	if err != nil {
		return err
	}

	opts := []gt.RenderOption{gt.WithBrowser(a.browser), gt.WithBorder(a.border)}
	if a.out != "" {
		if err := t.Save(ctx, a.out, opts...); err != nil {
			return err
		}
		logger.Info("saved table", "path", a.out, "rows", data.Len(), "elapsed", time.Since(start))
		return nil
	}

	f, err := gt.ParseFormat(a.format)
	if err != nil {
		return err
	}
	opts = append(opts, gt.WithCompleteHTML(a.complete))
	if err := t.RenderContext(ctx, stdout, f, opts...); err != nil {
		return err
	}
	logger.Info("rendered table", "format", f, "rows", data.Len(), "elapsed", time.Since(start))
	return nil
}

type previewArgs struct {
	data      string
	sheet     string
	top       int
	bottom    int
	noRowNums bool
	format    string
	border    gt.BorderStyle
	browser   gt.Browser
}

func doPreview(ctx context.Context, logger *slog.Logger, stdout io.Writer, a previewArgs) error {
	if a.top < 1 || a.bottom < 1 {
		return fmt.Errorf("%w: --top and --bottom must be at least 1", gt.ErrInvalidArgument)
	}
	data, err := readData(a.data, a.sheet)
	if err != nil {
		return err
	}
	f, err := gt.ParseFormat(a.format)
	if err != nil {
		return err
	}
	t, err := gt.Preview(data, gt.PreviewOptions{TopN: a.top, BottomN: a.bottom, NoRowNums: a.noRowNums})
	if err != nil {
		return err
	}
	logger.Debug("previewing data", "path", a.data, "rows", data.Len())
	return t.RenderContext(ctx, stdout, f, gt.WithBrowser(a.browser), gt.WithBorder(a.border))
}

func readData(path, sheet string) (*gt.Data, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var data *gt.Data
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		data, err = gt.ReadCSV(fh)
	case ".tsv", ".tab":
		data, err = gt.ReadTSV(fh)
	case ".json":
		data, err = gt.ReadJSON(fh)
	case ".jsonl", ".ndjson":
		data, err = gt.ReadJSONL(fh)
	case ".xlsx":
		data, err = gt.ReadXLSX(fh, sheet)
	default:
		return nil, fmt.Errorf("%w: input extension %q", gt.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func loadRecipe(path string) (*gt.Recipe, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	rec, err := gt.LoadRecipe(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
