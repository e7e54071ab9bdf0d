package gt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type renderConfig struct {
	browser  Browser
	complete bool
	border   BorderStyle
	zoom     float64
	expand   int
}

// RenderOption configures [Table.Render], [Table.RenderContext] and
// [Table.Save].
type RenderOption func(*renderConfig)

// WithBrowser sets the headless browser used for PDF and PNG output.
// The default is a [ChromeBrowser] with default settings.
func WithBrowser(b Browser) RenderOption {
	return func(c *renderConfig) { c.browser = b }
}

// WithCompleteHTML chooses between a full HTML document with an embedded
// stylesheet and a bare <table> fragment. Render defaults to a fragment;
// Save defaults to a full document.
func WithCompleteHTML(complete bool) RenderOption {
	return func(c *renderConfig) { c.complete = complete }
}

// WithBorder sets the border style of text tables. The default is
// [BorderRounded].
func WithBorder(style BorderStyle) RenderOption {
	return func(c *renderConfig) { c.border = style }
}

// WithZoom scales PNG output. The default is 2.
func WithZoom(zoom float64) RenderOption {
	return func(c *renderConfig) { c.zoom = zoom }
}

// WithExpand adds whitespace, in pixels, around PNG output. The default is 5.
func WithExpand(px int) RenderOption {
	return func(c *renderConfig) { c.expand = px }
}

func newRenderConfig(complete bool, opts []RenderOption) (renderConfig, error) {
	cfg := renderConfig{complete: complete, zoom: 2, expand: 5}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.zoom <= 0 {
		return cfg, fmt.Errorf("%w: zoom must be positive", ErrInvalidArgument)
	}
	if cfg.expand < 0 {
		return cfg, fmt.Errorf("%w: negative expand", ErrInvalidArgument)
	}
	return cfg, nil
}

// Render writes the table to w in format f.
func (t *Table) Render(w io.Writer, f Format, opts ...RenderOption) error {
	return t.RenderContext(context.Background(), w, f, opts...)
}

// RenderContext is like [Table.Render] but bounds browser work for PDF and
// PNG output by ctx.
func (t *Table) RenderContext(ctx context.Context, w io.Writer, f Format, opts ...RenderOption) error {
	cfg, err := newRenderConfig(false, opts)
	if err != nil {
		return err
	}
	return t.render(ctx, w, f, cfg)
}

func (t *Table) render(ctx context.Context, w io.Writer, f Format, cfg renderConfig) error {
	l := t.build()
	switch f {
	case HTML:
		return writeHTML(w, l, cfg.complete)
	case RTF:
		return writeRTF(w, l)
	case LaTeX:
		return writeLaTeX(w, l)
	case Markdown:
		return writeMarkdown(w, l)
	case TextTable:
		return writeTextTable(w, l, cfg.border)
	case CSV:
		return writeCSV(w, l)
	case XLSX:
		return writeXLSX(w, l)
	case PDF, PNG:
		return writeBrowser(ctx, w, l, f, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders the table in format f and returns the bytes.
func (t *Table) Marshal(f Format, opts ...RenderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Render(&buf, f, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save renders the table to path, choosing the format from the file
// extension (see [FormatForPath]). The file is written to a temporary file in
// the same directory and renamed into place, so a failed render never leaves
// a partial file behind.
func (t *Table) Save(ctx context.Context, path string, opts ...RenderOption) (err error) {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	cfg, err := newRenderConfig(true, opts)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".gt-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := t.render(ctx, tmp, f, cfg); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
