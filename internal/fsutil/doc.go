// Package fsutil holds the file system primitives used by the walker:
// atomic writes through renameio and path containment checks.
package fsutil
