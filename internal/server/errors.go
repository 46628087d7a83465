package server

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain outcomes of repository operations. Store-level error codes never
// cross this boundary; handlers map these onto HTTP statuses.
var (
	// ErrNotFound: the referenced id has no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict: the (from, to, fromHandle, toHandle) tuple already exists.
	ErrConflict = errors.New("link already exists between these endpoints and handles")
	// ErrInvalidReference: a link endpoint does not reference an existing device.
	ErrInvalidReference = errors.New("endpoint does not reference an existing device")
)

// ValidationError describes which payload fields failed and why. The field
// map is returned verbatim to the caller as the 400 body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: fmt.Sprintf(format, args...)}}
}
