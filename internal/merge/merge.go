package merge

import (
	"fmt"

	"dario.cat/mergo"
)

// Merge folds sources left to right into a new Config. Later sources win on
// key conflicts within a section; sections are the union of all sources.
// The sources themselves are not modified.
func Merge(sources ...Source) (Config, error) {
	merged := make(Config)
	for _, src := range sources {
		cfg, err := src.Load()
		if err != nil {
			return nil, err
		}
		if err := mergeInto(merged, cfg); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// MergeFiles is a convenience wrapper around Merge for file paths.
func MergeFiles(paths ...string) (Config, error) {
	return Merge(Paths(paths...)...)
}

func mergeInto(dst, src Config) error {
	for section, keys := range src {
		cur, ok := dst[section]
		if !ok {
			cur = make(map[string]string, len(keys))
			dst[section] = cur
		}
		if err := mergo.Merge(&cur, keys, mergo.WithOverride); err != nil {
			return fmt.Errorf("merging section %q: %w", section, err)
		}
	}
	return nil
}
