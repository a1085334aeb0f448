// Package render evaluates template text against a set of named bindings.
//
// [Engine] is the narrow capability the tree walker depends on. Two engines
// are provided: "text" (text/template) and "html" (html/template, with
// contextual escaping). Both fail on a reference to a missing map key, so a
// template that names a configuration value absent from the merged
// configuration is an error rather than a silent "<no value>".
package render
