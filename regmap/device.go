package regmap

import "github.com/js216/fw-utils/diag"

// ReadFunc reads one register from the physical device. The word itself
// carries no error convention; a word wider than the device's register
// width fails the surrounding operation.
type ReadFunc func(reg int) uint32

// WriteFunc writes one register to the physical device.
type WriteFunc func(reg int, val uint32) error

// LockFunc acquires or releases the caller's advisory lock.
type LockFunc func() error

// Device is a fixed-size window of fixed-width registers backed by
// caller-supplied hardware callbacks. The device owns an in-memory
// buffer of one 32-bit word per register, kept in sync with the
// physical device by the field and register operations.
//
// A Device is not safe for concurrent use; the optional lock callbacks
// provide advisory atomicity of field operations with respect to other
// lock-respecting callers, nothing more.
type Device struct {
	regWidth int
	regNum   int
	buf      []uint32
	fields   Map
	read     ReadFunc
	write    WriteFunc
	lockFn   LockFunc
	unlockFn LockFunc
	flags    Flags
	locked   bool
	diag     *diag.Sink
}

// Option configures a Device.
type Option func(*Device)

// WithMap installs the initial field map. The map must pass Check before
// field access is trusted.
func WithMap(m Map) Option {
	return func(d *Device) {
		d.fields = m
	}
}

// WithFlags sets the device-level flags, which extend the flags of every
// field on the device.
func WithFlags(f Flags) Option {
	return func(d *Device) {
		d.flags = f
	}
}

// WithLock installs the advisory lock callbacks. Both must be supplied
// together; New rejects a device with only one of them.
func WithLock(lock, unlock LockFunc) Option {
	return func(d *Device) {
		d.lockFn = lock
		d.unlockFn = unlock
	}
}

// WithDiagnostics routes failure reports to the given sink.
func WithDiagnostics(s *diag.Sink) Option {
	return func(d *Device) {
		d.diag = s
	}
}

// New creates a device of regNum registers, each regWidth bits wide
// (1 through 32), accessed through the given callbacks.
func New(regWidth, regNum int, read ReadFunc, write WriteFunc, opts ...Option) (*Device, error) {
	d := &Device{
		regWidth: regWidth,
		regNum:   regNum,
		read:     read,
		write:    write,
	}

	for _, opt := range opts {
		opt(d)
	}

	if err := d.validate(); err != nil {
		d.diag.Report(err.Error())
		return nil, err
	}

	d.buf = make([]uint32, regNum)

	return d, nil
}

func (d *Device) validate() error {
	switch {
	case d.read == nil:
		return &ConfigError{Reason: "missing read callback"}
	case d.write == nil:
		return &ConfigError{Reason: "missing write callback"}
	case d.regWidth < 1 || d.regWidth > MaxRegBits:
		return &ConfigError{Reason: "register width must be 1 through 32 bits"}
	case d.regNum < 1:
		return &ConfigError{Reason: "device must have at least one register"}
	case (d.lockFn == nil) != (d.unlockFn == nil):
		return &ConfigError{Reason: "lock and unlock callbacks must be supplied together"}
	}
	return nil
}

// Size returns the number of registers in the device window.
func (d *Device) Size() int { return d.regNum }

// RegWidth returns the register width in bits.
func (d *Device) RegWidth() int { return d.regWidth }

// Fields returns the active field map, or nil if none is installed.
func (d *Device) Fields() Map { return d.fields }

// SetMap installs a field map. The map must pass Check before field
// access is trusted.
func (d *Device) SetMap(m Map) { d.fields = m }

// Flags returns the device-level flags.
func (d *Device) Flags() Flags { return d.flags }

// SetFlags replaces the device-level flags. Unlike field flags, device
// flags may be changed at runtime.
func (d *Device) SetFlags(f Flags) { d.flags = f }

// lock acquires the advisory lock, if one is configured, and enforces
// lock/unlock alternation.
func (d *Device) lock() error {
	if d.locked {
		err := &ConfigError{Reason: "device already locked"}
		d.diag.Report(err.Error())
		return err
	}

	if d.lockFn != nil {
		if err := d.lockFn(); err != nil {
			herr := &HardwareError{Op: "lock", Reg: -1, Err: err}
			d.diag.Report(herr.Error())
			return herr
		}
	}

	d.locked = true
	return nil
}

func (d *Device) unlock() error {
	if !d.locked {
		err := &ConfigError{Reason: "device not locked"}
		d.diag.Report(err.Error())
		return err
	}

	if d.unlockFn != nil {
		if err := d.unlockFn(); err != nil {
			herr := &HardwareError{Op: "unlock", Reg: -1, Err: err}
			d.diag.Report(herr.Error())
			return herr
		}
	}

	d.locked = false
	return nil
}

// ReadReg reads one register. Unless the NoComm device flag is set, the
// register is first re-fetched from the physical device into the
// buffer; a fetched word wider than the register width fails the call
// and leaves the buffer unchanged. The value is 0 when an error is
// returned; the error is the only way to tell a failure from a genuine
// zero.
func (d *Device) ReadReg(reg int) (uint32, error) {
	if reg < 0 || reg >= d.regNum {
		err := &RangeError{What: "register index", Got: uint64(uint(reg)), Max: uint64(d.regNum - 1)}
		d.diag.Report(err.Error())
		return 0, err
	}

	if d.flags&NoComm == 0 {
		limit, err := Mask32(0, d.regWidth)
		if err != nil {
			return 0, err
		}

		val := d.read(reg)
		if val&^limit != 0 {
			rerr := &RangeError{What: "fetched word", Got: uint64(val), Max: uint64(limit)}
			d.diag.Report(rerr.Error())
			return 0, rerr
		}

		d.buf[reg] = val
	}

	return d.buf[reg], nil
}

// WriteReg writes one register. The value must fit the register width.
// Unless the NoComm device flag is set, the write callback is invoked
// before the buffer commit; a callback failure aborts the write without
// mutating the buffer.
func (d *Device) WriteReg(reg int, val uint32) error {
	if reg < 0 || reg >= d.regNum {
		err := &RangeError{What: "register index", Got: uint64(uint(reg)), Max: uint64(d.regNum - 1)}
		d.diag.Report(err.Error())
		return err
	}

	limit, err := Mask32(0, d.regWidth)
	if err != nil {
		return err
	}

	if val&^limit != 0 {
		rerr := &RangeError{What: "register value", Got: uint64(val), Max: uint64(limit)}
		d.diag.Report(rerr.Error())
		return rerr
	}

	if d.flags&NoComm == 0 {
		if werr := d.write(reg, val); werr != nil {
			herr := &HardwareError{Op: "write", Reg: reg, Err: werr}
			d.diag.Report(herr.Error())
			return herr
		}
	}

	d.buf[reg] = val
	return nil
}

// Load bulk-imports register data into the device buffer, holding the
// advisory lock for the whole transfer. A nil slice clears the buffer.
// The hardware callbacks are never invoked: after import, all registers
// are assumed to be up to date with the physical device.
func (d *Device) Load(data []uint32) error {
	if data != nil && len(data) < d.regNum {
		err := &ConfigError{Reason: "bulk data shorter than register window"}
		d.diag.Report(err.Error())
		return err
	}

	if err := d.lock(); err != nil {
		return err
	}

	if data == nil {
		d.clearBuf()
	} else {
		copy(d.buf, data[:d.regNum])
	}

	return d.unlock()
}

func (d *Device) clearBuf() {
	for i := range d.buf {
		d.buf[i] = 0
	}
}
