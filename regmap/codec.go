package regmap

// A field value spanning several registers is split into chunks, one per
// register, numbered from 0 for the least significant chunk upward. The
// least significant chunk always lives in the field's declared starting
// register; ascending fields grow toward higher register numbers,
// Descend fields toward lower ones.

// has reports whether fl is set on the device or on the field.
func (d *Device) has(f *Field, fl Flags) bool {
	return d.flags&fl != 0 || f.Flags&fl != 0
}

// lsbSpan returns the number of field bits held by the starting
// register.
func (d *Device) lsbSpan(f *Field) int {
	return min(f.Offs+f.Width, d.regWidth) - f.Offs
}

// chunkCount returns the number of registers the field occupies.
func (d *Device) chunkCount(f *Field) int {
	return cdiv(f.Offs+f.Width, d.regWidth)
}

// chunkReg maps a chunk number to its register index.
func (d *Device) chunkReg(f *Field, n int) int {
	if d.has(f, Descend) {
		return f.Reg - n
	}
	return f.Reg + n
}

// chunkMask returns the mask of register bits occupied by chunk n.
func (d *Device) chunkMask(f *Field, n int) (uint32, error) {
	span := d.lsbSpan(f)

	start, length := 0, 0
	if n == 0 {
		start = f.Offs
		length = span
	} else {
		length = min(f.Width-span-(n-1)*d.regWidth, d.regWidth)
	}

	return Mask32(start, length)
}

// checkSpan verifies that a field's declared geometry fits the device,
// given its direction.
func (d *Device) checkSpan(f *Field) error {
	if f.Width < 1 || f.Width > MaxFieldBits {
		return &RangeError{What: "field width", Got: uint64(uint(f.Width)), Max: MaxFieldBits}
	}

	if f.Offs < 0 || f.Offs >= d.regWidth {
		return &RangeError{What: "field offset", Got: uint64(uint(f.Offs)), Max: uint64(d.regWidth - 1)}
	}

	if f.Reg < 0 || f.Reg >= d.regNum {
		return &RangeError{What: "field register", Got: uint64(uint(f.Reg)), Max: uint64(d.regNum - 1)}
	}

	n := d.chunkCount(f)
	if d.has(f, Descend) {
		if f.Reg+1 < n {
			return &MapError{Field: f.Name, Reason: "descending field runs below register 0"}
		}
	} else {
		if f.Reg+n > d.regNum {
			return &MapError{Field: f.Name, Reason: "ascending field runs past the last register"}
		}
	}

	return nil
}

// getChunk reads chunk n of a field from the buffer, shifted to its
// position in the assembled field value. Volatile fields are re-fetched
// from the physical device first, unless NoComm suppresses I/O.
func (d *Device) getChunk(f *Field, n int) (uint64, error) {
	reg := d.chunkReg(f, n)

	if !d.has(f, NoComm) && d.has(f, Volatile) {
		if _, err := d.ReadReg(reg); err != nil {
			return 0, err
		}
	}

	mask, err := d.chunkMask(f, n)
	if err != nil {
		return 0, err
	}

	chunk := uint64(d.buf[reg] & mask)
	if n == 0 {
		chunk >>= uint(f.Offs)
	} else {
		chunk <<= uint(d.lsbSpan(f) + (n-1)*d.regWidth)
	}

	return chunk, nil
}

// setChunk merges chunk n of val into its register and, unless NoComm
// suppresses I/O, writes the register to the physical device. The buffer
// is committed before the callback runs; a callback failure does not
// roll it back.
func (d *Device) setChunk(f *Field, n int, val uint64) error {
	if n == 0 {
		val <<= uint(f.Offs)
	} else {
		val >>= uint(d.lsbSpan(f) + (n-1)*d.regWidth)
	}

	mask, err := d.chunkMask(f, n)
	if err != nil {
		return err
	}

	reg := d.chunkReg(f, n)
	d.buf[reg] = (d.buf[reg] &^ mask) | (uint32(val) & mask)

	if !d.has(f, NoComm) {
		if werr := d.write(reg, d.buf[reg]); werr != nil {
			herr := &HardwareError{Op: "write", Reg: reg, Err: werr}
			d.diag.Report(herr.Error())
			return herr
		}
	}

	return nil
}

// getField assembles a field value from its chunks.
func (d *Device) getField(f *Field) (uint64, error) {
	if err := d.checkSpan(f); err != nil {
		d.diag.Report(err.Error())
		return 0, err
	}

	var val uint64
	for n := 0; n < d.chunkCount(f); n++ {
		chunk, err := d.getChunk(f, n)
		if err != nil {
			return 0, err
		}
		val |= chunk
	}

	return val, nil
}

// setField validates val against the field width and writes it out chunk
// by chunk. MSRFirst reverses the traversal, affecting only the order of
// write callbacks. A failed chunk aborts the remaining ones; registers
// already written keep their new state.
func (d *Device) setField(f *Field, val uint64) error {
	if err := d.checkSpan(f); err != nil {
		d.diag.Report(err.Error())
		return err
	}

	if !Fits(val, f.Width) {
		err := &RangeError{What: "field value", Got: val, Max: 1<<uint(f.Width) - 1}
		d.diag.Report(err.Error())
		return err
	}

	count := d.chunkCount(f)
	for n := 0; n < count; n++ {
		eff := n
		if d.has(f, MSRFirst) {
			eff = count - n - 1
		}

		if err := d.setChunk(f, eff, val); err != nil {
			return err
		}
	}

	return nil
}

// resolve locates a named field in the active map.
func (d *Device) resolve(name string) (*Field, error) {
	if d.fields == nil {
		err := &ConfigError{Reason: "no field map installed"}
		d.diag.Report(err.Error())
		return nil, err
	}

	f, ok := d.fields.Find(name)
	if !ok {
		err := &LookupError{Name: name}
		d.diag.Report(err.Error())
		return nil, err
	}

	return f, nil
}

// Get returns the value of a named field from the device buffer, holding
// the advisory lock across all of the field's chunks. If the field (or
// device) carries the Volatile flag, the registers holding the field are
// re-read from the physical device first. The value is 0 when an error
// is returned.
func (d *Device) Get(name string) (uint64, error) {
	f, err := d.resolve(name)
	if err != nil {
		return 0, err
	}

	if err := d.lock(); err != nil {
		return 0, err
	}

	val, err := d.getField(f)
	if uerr := d.unlock(); err == nil {
		err = uerr
	}
	if err != nil {
		return 0, err
	}

	return val, nil
}

// Set writes a named field to the buffer and the physical device,
// holding the advisory lock across all of the field's chunks. The value
// must fit the field width; it is validated before any mutation.
func (d *Device) Set(name string, val uint64) error {
	f, err := d.resolve(name)
	if err != nil {
		return err
	}

	if err := d.lock(); err != nil {
		return err
	}

	err = d.setField(f, val)
	if uerr := d.unlock(); err == nil {
		err = uerr
	}

	return err
}

// FieldWidth returns the width of a named field in the active map. The
// second return value is false when the field is absent, which makes
// FieldWidth double as a presence probe; absence is not reported to the
// diagnostic sink.
func (d *Device) FieldWidth(name string) (int, bool) {
	if d.fields == nil {
		return 0, false
	}

	f, ok := d.fields.Find(name)
	if !ok {
		return 0, false
	}

	return f.Width, true
}
