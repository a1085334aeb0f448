package render

import (
	"fmt"
	"os"
	"strings"
)

// Funcs returns the helper functions available to every template.
func Funcs() map[string]any {
	return map[string]any{
		"default": defaultValue,
		"get":     get,
		"section": section,
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"trim":    strings.TrimSpace,
		"replace": replace,
		"env":     os.Getenv,
	}
}

// defaultValue returns def when v is empty. Argument order allows
// {{ .config.app.name | default "demo" }}.
func defaultValue(def string, v any) string {
	if v == nil {
		return def
	}
	s := fmt.Sprint(v)
	if s == "" {
		return def
	}
	return s
}

// get looks up section/key without failing on a missing entry. The optional
// fallback is returned when the entry is absent.
func get(cfg map[string]map[string]string, section, key string, fallback ...string) (string, error) {
	if len(fallback) > 1 {
		return "", fmt.Errorf("get: at most one fallback, got %d", len(fallback))
	}
	if v, ok := cfg[section][key]; ok {
		return v, nil
	}
	if len(fallback) == 1 {
		return fallback[0], nil
	}
	return "", nil
}

// section returns every key of one section, failing when the section is
// absent so that typos surface like missing keys do.
func section(cfg map[string]map[string]string, name string) (map[string]string, error) {
	keys, ok := cfg[name]
	if !ok {
		return nil, fmt.Errorf("section %q not found", name)
	}
	return keys, nil
}

func replace(old, repl, s string) string {
	return strings.ReplaceAll(s, old, repl)
}
