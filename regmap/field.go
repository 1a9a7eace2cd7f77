package regmap

import "strings"

// Flags modify how fields (or whole devices) are accessed. Device-level
// flags extend the flags of every field on the device.
type Flags uint8

const (
	// Volatile re-reads the field's registers from the physical device
	// on every Get
	Volatile Flags = 1 << iota

	// NoComm suppresses all physical-device I/O; data moves through the
	// in-memory buffer only. Overrides Volatile.
	NoComm

	// Descend reverses the register order of a multi-register field's
	// layout: less significant bits go to higher-numbered registers
	Descend

	// MSRFirst writes the most significant chunk of a multi-register
	// field to the device first; only write order changes, not layout
	MSRFirst

	// NoReset excludes the field from virtual-device resynchronization
	// after a map reload
	NoReset
)

// ReservedPrefix marks placeholder field names. Reserved names are
// exempt from the map uniqueness rule and from virtual-device
// resynchronization.
const ReservedPrefix = "_"

// Reserved reports whether name is a reserved placeholder.
func Reserved(name string) bool {
	return strings.HasPrefix(name, ReservedPrefix)
}

// Field is one named bit range within a register map.
type Field struct {
	// Name identifies the field; unique within a map unless reserved
	Name string

	// Reg is the starting register index (holds the least significant
	// chunk regardless of direction)
	Reg int

	// Offs is the bit offset within the starting register
	Offs int

	// Width is the field width in bits, 1 through 64
	Width int

	// Flags modify access to this field
	Flags Flags
}

// Map is an ordered field map describing one physical register layout.
// Maps are treated as immutable once installed on a device.
type Map []Field

// Find locates a field by name. The returned pointer references the
// map's backing array and must not be used to modify it.
func (m Map) Find(name string) (*Field, bool) {
	for i := range m {
		if m[i].Name == name {
			return &m[i], true
		}
	}
	return nil, false
}
