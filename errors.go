package omnifs

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by configuration validation, registry lookups and
// routing policy. Callers match them with errors.Is; messages built on top of
// them carry the offending name and, for lookups, the registered names.
var (
	ErrInvalidName     = errors.New("invalid backend name")
	ErrInvalidURL      = errors.New("invalid backend URL")
	ErrInvalidConfig   = errors.New("invalid backend config")
	ErrConnection      = errors.New("backend connection failed")
	ErrBackendNotFound = errors.New("backend not found")
	ErrConfigNotFound  = errors.New("backend config not found")
	ErrNoDefault       = errors.New("no default backend configured")
	ErrReadOnly        = errors.New("backend is read-only")
	ErrDefaultInUse    = errors.New("cannot remove default backend")
)

// OpError wraps a storage driver failure with the operation, backend and
// path it occurred on. The driver error stays reachable via Unwrap.
type OpError struct {
	Op      string
	Backend string
	Path    string
	Err     error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v backend %q: %v", e.Op, e.Backend, e.Err)
	}
	return fmt.Sprintf("%v backend %q path %q: %v", e.Op, e.Backend, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
