// Package cli wires together the Cobra command tree for the tmplwalk binary.
//
// The root command renders a template tree; subcommands print the merged
// configuration (merge), manage the settings file (config) and report the
// version. Handlers set a process exit code rather than returning errors so
// that usage mistakes and runtime failures can be told apart.
package cli
