package gt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Browser prints HTML pages. PDF and PNG output go through a Browser.
type Browser interface {
	// PrintPDF returns the page printed as PDF.
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
	// Screenshot returns a PNG of the element matching selector, scaled by
	// scale.
	Screenshot(ctx context.Context, html []byte, selector string, scale float64) ([]byte, error)
}

// captureID wraps the table in PNG output so padding can be captured.
const captureID = "gt-capture"

func writeBrowser(ctx context.Context, w io.Writer, l *layout, f Format, cfg renderConfig) error {
	b := cfg.browser
	if b == nil {
		b = &ChromeBrowser{}
	}

	var doc bytes.Buffer
	var out []byte
	var err error
	switch f {
	case PDF:
		if err := writeHTML(&doc, l, true); err != nil {
			return err
		}
		out, err = b.PrintPDF(ctx, doc.Bytes())
	default:
		if err := writeCapturePage(&doc, l, cfg.expand); err != nil {
			return err
		}
		out, err = b.Screenshot(ctx, doc.Bytes(), "#"+captureID, cfg.zoom)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", f, err)
	}
	_, err = w.Write(out)
	return err
}

func writeCapturePage(w io.Writer, l *layout, expand int) error {
	var table bytes.Buffer
	if err := writeHTML(&table, l, false); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\nbody { margin: 0; }\n%s</style>\n</head>\n<body>\n<div id=\"%s\" style=\"display: inline-block; padding: %dpx; background: #FFFFFF\">\n%s</div>\n</body>\n</html>\n",
		htmlStyle, captureID, expand, table.String())
	return err
}

// ChromeBrowser drives a local headless Chrome or Chromium through the
// DevTools protocol.
type ChromeBrowser struct {
	// ExecPath is the browser executable. When empty, common Chrome and
	// Chromium names are looked up on PATH.
	ExecPath string
	// Timeout bounds a single print; zero means no limit beyond ctx.
	Timeout time.Duration
}

var chromeNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

func (b *ChromeBrowser) execPath() (string, error) {
	if b.ExecPath != "" {
		return b.ExecPath, nil
	}
	for _, name := range chromeNames {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrNoBrowser
}

func (b *ChromeBrowser) run(ctx context.Context, html []byte, actions ...chromedp.Action) error {
	path, err := b.execPath()
	if err != nil {
		return err
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(path),
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	if b.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		browserCtx, cancelTimeout = context.WithTimeout(browserCtx, b.Timeout)
		defer cancelTimeout()
	}

	load := chromedp.Tasks{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	return chromedp.Run(browserCtx, append(load, actions...)...)
}

// PrintPDF implements [Browser].
func (b *ChromeBrowser) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	var out []byte
	err := b.run(ctx, html, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
		if err != nil {
			return err
		}
		out = data
		return nil
	}))
	return out, err
}

// Screenshot implements [Browser].
func (b *ChromeBrowser) Screenshot(ctx context.Context, html []byte, selector string, scale float64) ([]byte, error) {
	var out []byte
	err := b.run(ctx, html, chromedp.ScreenshotScale(selector, scale, &out, chromedp.ByQuery, chromedp.NodeVisible))
	return out, err
}
