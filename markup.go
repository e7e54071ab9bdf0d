package gt

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

type markup int

const (
	markupPlain markup = iota
	markupMarkdown
	markupHTML
)

// Text is a piece of display text: a title, label, spanner, group label or
// note. It remembers whether its content is plain text, Markdown or HTML.
type Text struct {
	s    string
	kind markup
}

// Plain returns text shown as-is and escaped for every output format.
func Plain(s string) Text { return Text{s: s} }

// Md returns Markdown text. HTML output renders it; other formats show its
// plain text.
func Md(s string) Text { return Text{s: s, kind: markupMarkdown} }

// HTMLText returns raw HTML. It is emitted unescaped in HTML output and
// reduced to its text content elsewhere.
func HTMLText(s string) Text { return Text{s: s, kind: markupHTML} }

// String returns the source text.
func (t Text) String() string { return t.s }

// IsZero reports whether the text is empty.
func (t Text) IsZero() bool { return t.s == "" }

// toHTML returns the text as an HTML fragment.
func (t Text) toHTML() string {
	switch t.kind {
	case markupMarkdown:
		return markdownToHTML(t.s)
	case markupHTML:
		return t.s
	default:
		return html.EscapeString(t.s)
	}
}

// toPlain returns the text with all markup removed.
func (t Text) toPlain() string {
	switch t.kind {
	case markupMarkdown:
		return htmlToPlain(markdownToHTML(t.s))
	case markupHTML:
		return htmlToPlain(t.s)
	default:
		return t.s
	}
}

// UnmarshalYAML accepts a scalar (plain text) or a single-key mapping
// {md: ...}, {html: ...} or {text: ...}.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*t = Plain(node.Value)
		return nil
	}
	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("%w: line %d: text mapping needs exactly one of md, html, text", ErrInvalidRecipe, node.Line)
	}
	for k, v := range m {
		switch k {
		case "md", "markdown":
			*t = Md(v)
		case "html":
			*t = HTMLText(v)
		case "text", "plain":
			*t = Plain(v)
		default:
			return fmt.Errorf("%w: line %d: unknown text kind %q", ErrInvalidRecipe, node.Line, k)
		}
	}
	return nil
}

var markdownPolicy = bluemonday.UGCPolicy()

func markdownToHTML(s string) string {
	out := blackfriday.Run([]byte(s), blackfriday.WithExtensions(blackfriday.CommonExtensions))
	res := strings.TrimSpace(string(markdownPolicy.SanitizeBytes(out)))
	// A single paragraph is unwrapped so labels stay inline.
	if strings.Count(res, "<p>") == 1 && strings.HasPrefix(res, "<p>") && strings.HasSuffix(res, "</p>") {
		res = strings.TrimSuffix(strings.TrimPrefix(res, "<p>"), "</p>")
	}
	return res
}

var blockTags = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func htmlToPlain(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				sb.WriteByte(' ')
			}
		}
	}
}
