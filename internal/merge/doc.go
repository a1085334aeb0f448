// Package merge loads template configuration sources and folds them into a
// single section/key/value namespace.
//
// A source is either an in-memory [Config] or a [File] on disk. INI files are
// read with configparser-compatible rules (case-insensitive option names,
// DEFAULT inheritance, missing file treated as empty); files ending in .yaml
// or .yml are read as a two-level mapping.
//
// [Merge] processes sources left to right. The section set of the result is
// the union of all sources' sections, and within a section a key takes the
// value of the last source that defines it.
package merge
