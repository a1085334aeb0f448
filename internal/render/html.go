package render

import (
	"fmt"
	"html/template"
	"io"
)

// HTMLEngine renders with html/template, escaping values for the context
// they are inserted into.
type HTMLEngine struct{}

// Render returns the rendered template as a string.
func (e *HTMLEngine) Render(name, text string, bindings map[string]any) (string, error) {
	return renderString(e, name, text, bindings)
}

// RenderTo streams the rendered template to w.
func (e *HTMLEngine) RenderTo(w io.Writer, name, text string, bindings map[string]any) error {
	tmpl, err := template.New(name).Funcs(Funcs()).Option("missingkey=error").Parse(trimTrailingNewline(text))
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	if err := tmpl.Execute(w, bindings); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}
