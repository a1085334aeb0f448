// Package config loads and merges tmplwalk settings from multiple sources.
//
// These are the tool's own settings (namespace, template extension, output
// root, engine, log level), not the template values, which live in
// package merge.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (TMPLWALK_NAMESPACE, TMPLWALK_EXTENSION,
//     TMPLWALK_OUTPUT, TMPLWALK_ENGINE, TMPLWALK_LOG_LEVEL)
//  3. Settings file ($XDG_CONFIG_HOME/tmplwalk/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain the merged [Settings], [Save] to write the settings
// file, and [SetField] to update a single key.
package config
