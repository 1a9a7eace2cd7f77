package virtual

import "fmt"

// ReloadError indicates that the reconfiguration callback failed to load
// a candidate map.
type ReloadError struct {
	// ID is the zero-based candidate map that was requested
	ID int

	// Err is the error returned by the callback
	Err error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("reconfiguration to map %d failed: %v", e.ID, e.Err)
}

func (e *ReloadError) Unwrap() error { return e.Err }

// UnmappedError indicates that no candidate map holds the field with a
// width sufficient for the value being set.
type UnmappedError struct {
	// Name is the logical field
	Name string

	// Value is the value that could not be placed
	Value uint64
}

func (e *UnmappedError) Error() string {
	return fmt.Sprintf("no candidate map holds %q wide enough for %#x", e.Name, e.Value)
}
