package gt_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"sync"
	"testing"

	"github.com/bjaus/gt"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func mustData(t *testing.T, columns []string, rows ...[]any) *gt.Data {
	t.Helper()
	d, err := gt.NewData(columns, rows)
	require.NoError(t, err)
	return d
}

func mustTable(t *testing.T, d *gt.Data, opts ...gt.Option) *gt.Table {
	t.Helper()
	tbl, err := gt.New(d, opts...)
	require.NoError(t, err)
	return tbl
}

func render(t *testing.T, tbl *gt.Table, f gt.Format, opts ...gt.RenderOption) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf, f, opts...))
	return buf.String()
}

func columnNames(tbl *gt.Table) []string {
	var out []string
	for _, c := range tbl.Columns() {
		out = append(out, c.Name)
	}
	return out
}

func parseHTML(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

// findAll returns the element nodes named tag with every given attribute
// containing the given value.
func findAll(n *html.Node, tag string, attrs map[string]string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && hasAttrs(n, attrs) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func hasAttrs(n *html.Node, attrs map[string]string) bool {
	for k, v := range attrs {
		if !strings.Contains(attr(n, k), v) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// fakeBrowser records what it is asked to print.
type fakeBrowser struct {
	mu       sync.Mutex
	html     []string
	selector string
	scale    float64
	err      error
}

func (b *fakeBrowser) PrintPDF(_ context.Context, page []byte) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.html = append(b.html, string(page))
	if b.err != nil {
		return nil, b.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

func (b *fakeBrowser) Screenshot(_ context.Context, page []byte, selector string, scale float64) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.html = append(b.html, string(page))
	b.selector = selector
	b.scale = scale
	if b.err != nil {
		return nil, b.err
	}
	return []byte("\x89PNG fake"), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func splitCSV(t *testing.T, s string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	require.NoError(t, err)
	return records
}
