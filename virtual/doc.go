// Package virtual multiplexes a logical field namespace over several
// field maps sharing one physical register window.
//
// # Overview
//
// A virtual device extends a physical regmap.Device by allowing more
// named fields to be read and written than the hardware can hold at
// once. When a requested field is not found in the currently loaded
// map, the device invokes a caller-supplied reconfiguration callback to
// load a different candidate map, then replays the previously set field
// values into the new layout.
//
// # Example
//
// Suppose the application needs the five fields
//
//	names := []string{"VAL_A", "VAL_B", "VAL_C", "VAL_P", "VAL_Q"}
//
// but the underlying hardware (perhaps due to space limitations) holds
// only three at a time, so the namespace is split across two candidate
// maps:
//
//	map1 := regmap.Map{
//	    {"VAL_A", 0, 0, 8, 0},
//	    {"VAL_B", 0, 8, 8, 0},
//	    {"VAL_C", 1, 0, 16, 0},
//	}
//	map2 := regmap.Map{
//	    {"VAL_P", 0, 0, 8, 0},
//	    {"VAL_Q", 0, 8, 8, 0},
//	}
//
// Wrap the physical device and verify once:
//
//	vdev := virtual.New(names, []regmap.Map{map1, map2}, reconfigure, base)
//	if err := vdev.Verify(); err != nil {
//	    // malformed namespace, candidate map, or base device
//	}
//
// Data access is then as simple as on a plain device:
//
//	vdev.Adjust("VAL_A", 0x12)
//	vdev.Adjust("VAL_P", 0x7F)
//	val, _ := vdev.Obtain("VAL_A")
//
// Behind the scenes, the device loads map1 to set VAL_A, then
// reconfigures to map2 for VAL_P. Obtain is a pure cache read and never
// touches the hardware.
//
// # Resynchronization
//
// After every reconfiguration the raw register buffer is cleared and
// each field of the newly loaded map is rewritten from the logical
// cache, so previously set fields reappear correctly. Fields flagged
// regmap.NoReset (on the field or the device) and reserved names are
// skipped, except that the field whose Adjust triggered the reload is
// always rewritten. A cached value too wide for the field it maps to in
// the new layout is left uncommitted — neither corrupted nor transferred
// — until a later reload makes it fit again; this is policy, not an
// error.
//
// # Concurrency
//
// The locate → reconfigure → resynchronize sequence of Adjust is not
// atomic. Concurrent Adjust calls on one virtual device are unsafe and
// must be serialized by the caller.
package virtual
