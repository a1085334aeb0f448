package walker

import "errors"

var (
	// ErrInvalidNamespace is returned before any I/O when the namespace is
	// empty or carries leading or trailing whitespace.
	ErrInvalidNamespace = errors.New("invalid namespace")

	// ErrEmptyOutputName is returned when the rename function maps a
	// template to an empty file name.
	ErrEmptyOutputName = errors.New("empty output file name")
)
