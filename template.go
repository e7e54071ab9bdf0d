package gt

import (
	"fmt"
	"strings"
	"text/template"
)

// FmtTemplate formats the non-missing values of the selected columns with a
// Go text/template. The value is the template's dot:
//
//	t.FmtTemplate(gt.Cols("temp"), "{{.}} °C")
//
// A value the template fails on keeps its default text.
func (t *Table) FmtTemplate(sel Selector, text string) error {
	tmpl, err := template.New("").Option("missingkey=error").Parse(text)
	if err != nil {
		return fmt.Errorf("%w: template: %v", ErrInvalidArgument, err)
	}
	return t.Fmt(sel, func(v any) string {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, v); err != nil {
			return defaultText(v)
		}
		return sb.String()
	})
}
