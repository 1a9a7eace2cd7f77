package regmap

import "fmt"

// Check validates the active field map against the device. It proves, by
// construction, that the map has no duplicate names (reserved names
// exempt), no overlapping bit ranges, and full-or-empty register
// coverage.
//
// Physical-device I/O is forced off for the duration: the checks read
// and write the buffer repeatedly but never the underlying device. The
// buffer is cleared before and after, and the advisory lock is held
// throughout. Field access on a map that has not passed Check is
// undefined.
func (d *Device) Check() error {
	if len(d.fields) == 0 {
		err := &ConfigError{Reason: "empty field map"}
		d.diag.Report(err.Error())
		return err
	}

	if err := d.lock(); err != nil {
		return err
	}

	// silence the physical device for the duration of the checks
	saved := d.flags
	d.flags |= NoComm

	err := d.runChecks()

	d.flags = saved
	if uerr := d.unlock(); err == nil {
		err = uerr
	}

	return err
}

func (d *Device) runChecks() error {
	d.clearBuf()
	defer d.clearBuf()

	for i := range d.fields {
		if err := d.checkNames(i); err != nil {
			return err
		}

		if err := d.checkOverlap(i); err != nil {
			return err
		}
	}

	d.clearBuf()

	return d.checkCoverage()
}

// checkNames validates field i's geometry and scans the rest of the map
// for a duplicate of its name. Reserved names may repeat.
func (d *Device) checkNames(i int) error {
	f := &d.fields[i]

	if err := d.checkSpan(f); err != nil {
		d.diag.Report(err.Error())
		return err
	}

	if Reserved(f.Name) {
		return nil
	}

	for j := i + 1; j < len(d.fields); j++ {
		if d.fields[j].Name == f.Name {
			err := &MapError{Field: f.Name, Reason: "duplicate field name"}
			d.diag.Report(err.Error())
			return err
		}
	}

	return nil
}

// checkOverlap writes an all-ones pattern into field i and zero into
// every other non-reserved field, then reads field i back: a mismatch
// means another field's bits intrude into its span. Clearing field i and
// confirming every field reads zero catches the opposite direction.
func (d *Device) checkOverlap(i int) error {
	f := &d.fields[i]

	ones, err := Mask64(0, f.Width)
	if err != nil {
		return err
	}

	if err := d.setField(f, ones); err != nil {
		return err
	}

	for j := range d.fields {
		if j == i || Reserved(d.fields[j].Name) {
			continue
		}

		if err := d.setField(&d.fields[j], 0); err != nil {
			return err
		}
	}

	got, err := d.getField(f)
	if err != nil {
		return err
	}

	if got != ones {
		merr := &MapError{Field: f.Name, Reason: "bits overlap another field"}
		d.diag.Report(merr.Error())
		return merr
	}

	if err := d.setField(f, 0); err != nil {
		return err
	}

	for j := range d.fields {
		got, err := d.getField(&d.fields[j])
		if err != nil {
			return err
		}

		if got != 0 {
			merr := &MapError{Field: d.fields[j].Name, Reason: "bits failed to clear"}
			d.diag.Report(merr.Error())
			return merr
		}
	}

	return nil
}

// checkCoverage writes all-ones to every field and then requires every
// raw register word to be either empty or the full register mask; any
// other value means some bits of that register belong to no field.
func (d *Device) checkCoverage() error {
	for i := range d.fields {
		f := &d.fields[i]

		ones, err := Mask64(0, f.Width)
		if err != nil {
			return err
		}

		if err := d.setField(f, ones); err != nil {
			return err
		}
	}

	for i := range d.fields {
		f := &d.fields[i]

		ones, err := Mask64(0, f.Width)
		if err != nil {
			return err
		}

		got, err := d.getField(f)
		if err != nil {
			return err
		}

		if got != ones {
			merr := &MapError{Field: f.Name, Reason: "did not read back all ones"}
			d.diag.Report(merr.Error())
			return merr
		}
	}

	full, err := Mask32(0, d.regWidth)
	if err != nil {
		return err
	}

	for reg, word := range d.buf {
		if word != 0 && word != full {
			merr := &MapError{Reason: fmt.Sprintf("register %d partially covered by fields", reg)}
			d.diag.Report(merr.Error())
			return merr
		}
	}

	return nil
}
