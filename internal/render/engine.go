package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Engine renders template text with the given bindings.
type Engine interface {
	Render(name, text string, bindings map[string]any) (string, error)
	RenderTo(w io.Writer, name, text string, bindings map[string]any) error
}

// DefaultEngine is the engine name used when none is configured.
const DefaultEngine = "text"

var engines = map[string]func() Engine{
	"text": func() Engine { return &TextEngine{} },
	"html": func() Engine { return &HTMLEngine{} },
}

// Get returns the engine registered under name.
func Get(name string) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	newEngine, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unsupported template engine: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
	return newEngine(), nil
}

// Names lists the registered engine names.
func Names() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderString(e Engine, name, text string, bindings map[string]any) (string, error) {
	var sb strings.Builder
	if err := e.RenderTo(&sb, name, text, bindings); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// trimTrailingNewline drops a single line break ending the template source,
// so a template file saved with a final newline renders without it.
func trimTrailingNewline(text string) string {
	for _, nl := range []string{"\r\n", "\n", "\r"} {
		if strings.HasSuffix(text, nl) {
			return strings.TrimSuffix(text, nl)
		}
	}
	return text
}
