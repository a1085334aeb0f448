// Package walker renders a directory tree of templates against a merged
// configuration.
//
// Every file under the source root is classified by a [Rule]. Files the rule
// matches are rendered as templates, with the merged configuration bound
// under the namespace name, and written under the name produced by the rule's
// rename function. All other files are assets and are copied unchanged. The
// subdirectory structure of the source root is mirrored into the output root;
// without an output root, templates are rendered in place and assets are left
// where they are.
//
// A run is all-or-nothing in the sense that the first error aborts the walk.
// Files written before the failure are not rolled back.
package walker
