package merge

import (
	"fmt"
	"io"

	"gopkg.in/ini.v1"
)

// WriteINI writes cfg as an INI document with sections and keys sorted.
func WriteINI(w io.Writer, cfg Config) error {
	file := ini.Empty()
	for _, name := range cfg.Sections() {
		section, err := file.NewSection(name)
		if err != nil {
			return fmt.Errorf("creating section %q: %w", name, err)
		}
		for _, key := range cfg.Keys(name) {
			if _, err := section.NewKey(key, cfg[name][key]); err != nil {
				return fmt.Errorf("creating key %q in section %q: %w", key, name, err)
			}
		}
	}
	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("writing ini: %w", err)
	}
	return nil
}
