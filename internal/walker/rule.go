package walker

import "strings"

// Rule decides which files are templates and what the rendered file is called.
// Match and Rename receive the base name of the file.
type Rule struct {
	Match  func(name string) bool
	Rename func(name string) string
}

// DefaultRule treats every file as a template and keeps its name.
func DefaultRule() Rule {
	return Rule{
		Match:  func(string) bool { return true },
		Rename: func(name string) string { return name },
	}
}

// ExtensionRule treats files ending in ext as templates and strips ext from
// the output name. Other files are assets. An empty ext yields DefaultRule.
func ExtensionRule(ext string) Rule {
	if ext == "" {
		return DefaultRule()
	}
	return Rule{
		Match:  func(name string) bool { return strings.HasSuffix(name, ext) },
		Rename: func(name string) string { return strings.TrimSuffix(name, ext) },
	}
}
