package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedValue is returned when a YAML source holds a value that is
// not a scalar.
var ErrUnsupportedValue = errors.New("unsupported configuration value")

// Source is anything that can produce a Config.
type Source interface {
	Load() (Config, error)
}

// File is a configuration file on disk. A missing file loads as an empty
// Config; a file that exists but cannot be parsed is an error.
type File string

// Paths converts file paths into sources, preserving order.
func Paths(paths ...string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, File(p))
	}
	return sources
}

// Load reads the file, choosing the parser by extension.
func (f File) Load() (Config, error) {
	path := string(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadINI(path)
	}
}

func loadINI(path string) (Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		Loose:                      true,
		InsensitiveKeys:            true,
		IgnoreInlineComment:        true,
		PreserveSurroundedQuote:    true,
		AllowPythonMultilineValues: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	defaults := make(map[string]string)
	for _, key := range file.Section(ini.DefaultSection).Keys() {
		defaults[key.Name()] = key.Value()
	}

	cfg := make(Config)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		keys := make(map[string]string, len(defaults)+len(section.Keys()))
		for k, v := range defaults {
			keys[k] = v
		}
		for _, key := range section.Keys() {
			keys[key.Name()] = key.Value()
		}
		cfg[section.Name()] = keys
	}
	return cfg, nil
}

func loadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := make(Config, len(raw))
	for section, values := range raw {
		keys := make(map[string]string, len(values))
		for k, v := range values {
			s, err := scalarString(v)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: [%s] %s: %w", path, section, k, err)
			}
			keys[k] = s
		}
		cfg[section] = keys
	}
	return cfg, nil
}

func scalarString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case map[string]any, []any:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	default:
		return fmt.Sprint(val), nil
	}
}
