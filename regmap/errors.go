package regmap

import (
	"errors"
	"fmt"
)

// ConfigError indicates a structurally malformed device or field map.
type ConfigError struct {
	// Reason describes what is malformed
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// RangeError indicates a value or index outside its permitted range.
type RangeError struct {
	// What names the out-of-range quantity
	What string

	// Got is the offending value
	Got uint64

	// Max is the largest permitted value
	Max uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s out of range: got %d, max %d", e.What, e.Got, e.Max)
}

// HardwareError indicates a failure signaled by a caller-supplied
// hardware callback.
type HardwareError struct {
	// Op is the operation that failed: "read", "write", "lock", "unlock"
	Op string

	// Reg is the register involved, or -1 when not register-specific
	Reg int

	// Err is the error returned by the callback, if any
	Err error
}

func (e *HardwareError) Error() string {
	if e.Reg < 0 {
		return fmt.Sprintf("hardware %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("hardware %s of register %d failed: %v", e.Op, e.Reg, e.Err)
}

func (e *HardwareError) Unwrap() error { return e.Err }

// LookupError indicates that a field name could not be resolved.
type LookupError struct {
	// Name is the field name that was not found
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// MapError indicates a field map that failed a consistency check.
type MapError struct {
	// Field is the offending field, if the failure is field-specific
	Field string

	// Reason describes the inconsistency
	Reason string
}

func (e *MapError) Error() string {
	if e.Field == "" {
		return "inconsistent field map: " + e.Reason
	}
	return fmt.Sprintf("inconsistent field map: field %q: %s", e.Field, e.Reason)
}

// IsLookup returns true if the error is a LookupError.
func IsLookup(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// IsHardware returns true if the error is a HardwareError.
func IsHardware(err error) bool {
	var he *HardwareError
	return errors.As(err, &he)
}
