package merge

import "sort"

// Config maps a section name to the key/value pairs defined in it.
type Config map[string]map[string]string

// Load returns a copy of c, so an in-memory Config can be passed as a Source.
func (c Config) Load() (Config, error) {
	return c.Clone(), nil
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for section, keys := range c {
		cp := make(map[string]string, len(keys))
		for k, v := range keys {
			cp[k] = v
		}
		out[section] = cp
	}
	return out
}

// Sections returns the section names in sorted order.
func (c Config) Sections() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Keys returns the key names of section in sorted order.
func (c Config) Keys(section string) []string {
	keys := make([]string, 0, len(c[section]))
	for k := range c[section] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get looks up key in section.
func (c Config) Get(section, key string) (string, bool) {
	keys, ok := c[section]
	if !ok {
		return "", false
	}
	v, ok := keys[key]
	return v, ok
}
