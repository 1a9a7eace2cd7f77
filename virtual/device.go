package virtual

import (
	"fmt"

	"github.com/js216/fw-utils/diag"
	"github.com/js216/fw-utils/regmap"
)

// LoadFunc reconfigures the hardware to the physical layout described by
// candidate map id (its zero-based position in the candidate list).
type LoadFunc func(id int) error

// Unbound is the active-map index of a device whose hardware has not
// been configured yet; the first Adjust lazily loads candidate map 0.
const Unbound = -1

// Device layers a logical field namespace over a set of candidate field
// maps sharing one physical register window. At most one candidate map
// is bound into the embedded device at any time.
//
// A Device is not safe for concurrent use.
type Device struct {
	names  []string
	cache  []uint64
	maps   []regmap.Map
	load   LoadFunc
	base   *regmap.Device
	active int
	diag   *diag.Sink
}

// Option configures a virtual Device.
type Option func(*Device)

// WithDiagnostics routes failure reports to the given sink.
func WithDiagnostics(s *diag.Sink) Option {
	return func(d *Device) {
		d.diag = s
	}
}

// New creates a virtual device exposing the given logical field names
// over the candidate maps, all sharing the base device. The load
// callback is invoked whenever the hardware must switch layouts.
//
// The device must pass Verify before use.
func New(names []string, maps []regmap.Map, load LoadFunc, base *regmap.Device, opts ...Option) *Device {
	d := &Device{
		names:  names,
		cache:  make([]uint64, len(names)),
		maps:   maps,
		load:   load,
		base:   base,
		active: Unbound,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (v *Device) validate() error {
	switch {
	case len(v.names) == 0:
		return &regmap.ConfigError{Reason: "virtual device has no logical fields"}
	case len(v.maps) == 0:
		return &regmap.ConfigError{Reason: "virtual device has no candidate maps"}
	case v.load == nil:
		return &regmap.ConfigError{Reason: "missing reconfiguration callback"}
	case v.base == nil:
		return &regmap.ConfigError{Reason: "missing base device"}
	}
	return nil
}

// Verify checks the virtual device for structural well-formedness: every
// candidate map is temporarily installed into the base device and run
// through the consistency checker, and every non-reserved logical name
// must resolve in at least one candidate map. On success the active map
// is forced back to Unbound, so the first Adjust lazily loads candidate
// map 0.
func (v *Device) Verify() error {
	if err := v.validate(); err != nil {
		v.diag.Report(err.Error())
		return err
	}

	for id, m := range v.maps {
		v.base.SetMap(m)
		if err := v.base.Check(); err != nil {
			return fmt.Errorf("candidate map %d: %w", id, err)
		}
	}

	for _, name := range v.names {
		if regmap.Reserved(name) {
			continue
		}

		if !v.mapped(name) {
			err := &regmap.ConfigError{
				Reason: fmt.Sprintf("logical field %q not found in any candidate map", name),
			}
			v.diag.Report(err.Error())
			return err
		}
	}

	v.base.SetMap(nil)
	v.active = Unbound

	return nil
}

// mapped reports whether any candidate map holds the named field.
func (v *Device) mapped(name string) bool {
	for _, m := range v.maps {
		if _, ok := m.Find(name); ok {
			return true
		}
	}
	return false
}

// Active returns the index of the bound candidate map, or Unbound.
func (v *Device) Active() int { return v.active }

// Obtain returns the cached value of a logical field. It is a pure cache
// read: neither the hardware nor the active map is touched. The value is
// 0 when an error is returned.
func (v *Device) Obtain(name string) (uint64, error) {
	if err := v.validate(); err != nil {
		v.diag.Report(err.Error())
		return 0, err
	}

	for i, n := range v.names {
		if n == name {
			return v.cache[i], nil
		}
	}

	err := &regmap.LookupError{Name: name}
	v.diag.Report(err.Error())
	return 0, err
}

// Adjust sets the value of a logical field. The value is stored in the
// cache unconditionally; for non-reserved names it is then written to
// the hardware, reconfiguring to whichever candidate map holds the field
// with sufficient width if the currently bound map does not.
func (v *Device) Adjust(name string, val uint64) error {
	if err := v.validate(); err != nil {
		v.diag.Report(err.Error())
		return err
	}

	idx := -1
	for i, n := range v.names {
		if n == name {
			idx = i
			break
		}
	}

	if idx < 0 {
		err := &regmap.LookupError{Name: name}
		v.diag.Report(err.Error())
		return err
	}

	v.cache[idx] = val

	// reserved names have no physical backing: we are done
	if regmap.Reserved(name) {
		return nil
	}

	// install the default map, if none is bound yet
	if v.active == Unbound {
		if err := v.bind(0); err != nil {
			return err
		}
	}

	// cheap path: field resident in the bound map and the value fits
	if f, ok := v.maps[v.active].Find(name); ok && regmap.Fits(val, f.Width) {
		return v.base.Set(name, val)
	}

	// scan candidates in declared order for a match that fits
	target := Unbound
	var found *regmap.Field
	for id, m := range v.maps {
		if f, ok := m.Find(name); ok && regmap.Fits(val, f.Width) {
			target, found = id, f
			break
		}
	}

	if found == nil {
		err := &UnmappedError{Name: name, Value: val}
		v.diag.Report(err.Error())
		return err
	}

	if err := v.bind(target); err != nil {
		return err
	}

	return v.resync(found)
}

// bind reconfigures the hardware to candidate map id and installs it
// into the base device.
func (v *Device) bind(id int) error {
	if err := v.load(id); err != nil {
		rerr := &ReloadError{ID: id, Err: err}
		v.diag.Report(rerr.Error())
		return rerr
	}

	v.base.SetMap(v.maps[id])
	v.active = id

	return nil
}

// resync clears the raw register buffer and replays the cached logical
// values into the newly bound map. Reserved names and fields flagged
// NoReset (field- or device-level) are skipped, except the field whose
// Adjust triggered the reload, which is always rewritten. Cached values
// too wide for their field in this layout stay uncommitted.
func (v *Device) resync(except *regmap.Field) error {
	if err := v.base.Load(nil); err != nil {
		return err
	}

	m := v.maps[v.active]
	for i := range m {
		f := &m[i]

		if f != except {
			noReset := f.Flags&regmap.NoReset != 0 || v.base.Flags()&regmap.NoReset != 0
			if noReset || regmap.Reserved(f.Name) {
				continue
			}
		}

		val := v.cached(f.Name)
		if !regmap.Fits(val, f.Width) {
			continue
		}

		if err := v.base.Set(f.Name, val); err != nil {
			return fmt.Errorf("resynchronize %q: %w", f.Name, err)
		}
	}

	return nil
}

// cached returns the cache entry for name, or 0 when the map field has
// no logical counterpart.
func (v *Device) cached(name string) uint64 {
	for i, n := range v.names {
		if n == name {
			return v.cache[i]
		}
	}
	return 0
}
