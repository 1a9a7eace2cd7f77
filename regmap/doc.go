// Package regmap represents bit-level register layouts of hardware
// devices and operates on them by field name, without manual shifting
// and masking.
//
// # A Simple Example
//
// Define a map with only the fields the application needs (even if the
// underlying device has more):
//
//	devMap := regmap.Map{
//	    // name    reg offs width flags
//	    {"EN_X",   0,  0,   1,    0},
//	    {"FTW",    0,  1,   36,   0},
//	    {"MODE",   1,  5,   27,   0},
//	    // registers 2--4 unused
//	    {"SETP",   5,  0,   32,   0},
//	}
//
// Create a device around the caller's hardware access callbacks and
// check the map once before trusting it:
//
//	dev, err := regmap.New(32, 6, readFn, writeFn, regmap.WithMap(devMap))
//	if err != nil {
//	    // handle the error
//	}
//	if err := dev.Check(); err != nil {
//	    // malformed map: duplicate names, overlap, or partial coverage
//	}
//
// To set the value of a field, update the buffer, and write the affected
// register(s) to the underlying physical device, just call Set:
//
//	if err := dev.Set("MODE", 0x03); err != nil {
//	    // handle the error
//	}
//
// The data has now been transferred to the physical device and is also
// stored in the buffer. To retrieve the value from the buffer:
//
//	val, err := dev.Get("MODE")
//
// To force re-reading a field from the physical device on every Get, set
// the Volatile field or device flag.
//
// # Raw Register Access
//
// ReadReg and WriteReg are not intended to be used with literal register
// numbers, which would duplicate information already present in the
// field map. They exist for programmatic use, such as writing default
// values to all registers in a loop. To keep raw access away from the
// physical device, set the NoComm device flag; values then move through
// the in-memory buffer only.
//
// Multi-register values are stored native-endian; no conversions are
// applied on retrieval.
//
// # Field Maps and Fields
//
// Registers are at most 32 bits wide, fields at most 64. A field can
// therefore span several registers, depending on its width, its offset
// in the starting register, and the register width. Field names within
// one map must be unique; the same name may recur across the candidate
// maps of a virtual device (see package virtual).
//
// Partially defined registers are not allowed: each register must be
// either fully covered by fields or not at all. Gaps spanning entire
// registers are fine, in case none of the fields in those registers are
// needed in the application.
//
// Names beginning with an underscore are reserved placeholders: they are
// exempt from the uniqueness rule and from virtual-device
// resynchronization.
//
// Field lookup is a linear scan. Maps realistically hold up to a couple
// hundred fields, so the search is unlikely to become a bottleneck;
// placing frequently used fields first speeds it up regardless.
//
// # Field and Device Flags
//
// Each field carries zero or more Flags. The same flags can be applied
// to the whole device, where they extend (OR with) the per-field flags
// of every field. Field flags are fixed at map definition; device flags
// may be changed at runtime with SetFlags.
//
//   - Volatile: every Get re-reads the registers holding the field from
//     the physical device.
//   - NoComm: disables all physical-device reading and writing for the
//     field or device it is set on. Overrides Volatile.
//   - MSRFirst: the most significant chunk of a multi-register field is
//     written to the device first. Unlike Descend, only the order of
//     write callbacks is affected, never the register layout.
//   - Descend: reverses the register order of a multi-register field's
//     layout (see below).
//   - NoReset: the field is skipped during virtual-device
//     resynchronization after a map reload.
//
// # Ascending and Descending Fields
//
// By default a field spanning multiple registers keeps its least
// significant bits in lower-numbered registers. With the Descend flag
// the field grows downward instead: less significant bits live in
// higher-numbered registers. Either way the least significant chunk is
// anchored at the field's declared starting register, and bit order
// within a single register is unaffected.
//
// With an 8-bit register width, the map
//
//	regmap.Map{
//	    {"FIELD_UP", 0, 0, 12, 0},
//	    {"X",        1, 4, 4,  0},
//	    {"Y",        2, 4, 4,  0},
//	    {"FIELD_DN", 3, 0, 12, regmap.Descend},
//	}
//
// lays out FIELD_UP as
//
//	reg 0: bits 0 through 7 (total 8 bits) <-- LSB
//	reg 1: bits 0 through 3 (total 4 bits)
//
// and FIELD_DN as
//
//	reg 2: bits 0 through 3 (total 4 bits)
//	reg 3: bits 0 through 7 (total 8 bits) <-- LSB
//
// Unless MSRFirst is set, chunks are written to the physical device
// least significant first: ascending fields write lower registers
// first, descending fields higher ones.
//
// # Consistency Checking
//
// Call Check once for each new or modified field map. It proves, by
// construction, that the map has unique names, no overlapping bit
// ranges, and full-or-empty register coverage. The behavior of field
// access on a map that has not passed Check is undefined; Check itself
// is expected to catch any malformed map and return an error. Check
// clears the device buffer and never touches the physical device.
//
// # Error Handling
//
// All failures surface as error return values; reads additionally return
// a zero value. The typed errors ConfigError, RangeError, HardwareError,
// and LookupError allow callers to branch with errors.As. When a
// diag.Sink is configured (WithDiagnostics), every failure is also
// reported there with call-site context.
package regmap
