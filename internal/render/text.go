package render

import (
	"fmt"
	"io"
	"text/template"
)

// TextEngine renders with text/template.
type TextEngine struct{}

// Render returns the rendered template as a string.
func (e *TextEngine) Render(name, text string, bindings map[string]any) (string, error) {
	return renderString(e, name, text, bindings)
}

// RenderTo streams the rendered template to w.
func (e *TextEngine) RenderTo(w io.Writer, name, text string, bindings map[string]any) error {
	tmpl, err := template.New(name).Funcs(Funcs()).Option("missingkey=error").Parse(trimTrailingNewline(text))
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	if err := tmpl.Execute(w, bindings); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}
