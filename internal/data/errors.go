package data

import "errors"

// ErrNotFound is returned when no row matches a lookup. Repositories wrap it
// with context; callers test with errors.Is or IsNotFound.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
