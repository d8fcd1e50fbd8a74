package reg

import (
	"time"

	"github.com/js216/fw-utils/pkg"
)

// Check certifies that the device's active field map is internally
// consistent: every field has valid geometry, no two non-padding fields
// share a name, no two fields overlap, and no register is left partially
// covered by the fields that touch it.
//
// Check drives the map through itself rather than building a separate
// geometric model of register coverage: it takes the device's lock,
// forces NOCOMM for the duration (no transport traffic), clears the
// buffer, and then writes and reads back every field in turn. The
// buffer is restored to zero and the device's original flags are
// restored before Check returns, whether or not it succeeds.
func (d *Device) Check() error {
	if err := d.validate(); err != nil {
		return err
	}
	if len(d.FieldMap) == 0 {
		pkg.ReportError("device has no field map")
		return pkg.ErrMissingFieldMap
	}
	if (d.LockFn == nil) != (d.UnlockFn == nil) {
		pkg.ReportError("lock_fn and unlock_fn must both be given, or neither")
		return pkg.ErrLockMismatch
	}

	if err := d.lock(); err != nil {
		return err
	}
	defer d.unlock()

	start := time.Now()
	defer func() {
		pkg.LogDebug(pkg.ComponentCheck, "sweep of %d fields took %s", len(d.FieldMap), time.Since(start))
	}()

	savedFlags := d.Flags
	d.Flags |= NOCOMM
	defer func() {
		d.clearBuffer()
		d.Flags = savedFlags
	}()

	d.clearBuffer()

	for i := range d.FieldMap {
		if err := d.checkFieldGeometry(i); err != nil {
			return err
		}
		if err := d.checkFieldOverlap(i); err != nil {
			return err
		}
	}

	d.clearBuffer()

	if err := d.checkPartialCoverage(); err != nil {
		return err
	}

	return nil
}

// checkFieldGeometry validates field i's width/span and, for non-padding
// fields, that no later field in the map shares its name.
func (d *Device) checkFieldGeometry(i int) error {
	f := &d.FieldMap[i]
	if _, err := fieldSpan(d, f); err != nil {
		return err
	}
	if f.IsPadding() {
		return nil
	}
	for j := i + 1; j < len(d.FieldMap); j++ {
		if d.FieldMap[j].Name == f.Name {
			pkg.ReportError("duplicate field name %q", f.Name)
			return pkg.ErrDuplicateName
		}
	}
	return nil
}

// checkFieldOverlap drives field i's bits through the buffer: set it to
// all-ones, clear every other non-padding field to zero, and confirm
// field i still reads back as all-ones (an overlapping field would have
// clobbered some of its bits). Then clear field i and confirm every
// field in the map now reads zero.
func (d *Device) checkFieldOverlap(i int) error {
	f := &d.FieldMap[i]
	allOnes := mask64(0, uint(f.Width))

	if err := d.SetField(f, allOnes); err != nil {
		pkg.ReportError("cannot set field %q", f.Name)
		return err
	}

	for j := range d.FieldMap {
		if j == i || d.FieldMap[j].IsPadding() {
			continue
		}
		if err := d.SetField(&d.FieldMap[j], 0); err != nil {
			pkg.ReportError("cannot clear field %q", d.FieldMap[j].Name)
			return err
		}
	}

	val, err := d.GetField(f)
	if err != nil {
		return err
	}
	if val != allOnes {
		pkg.ReportError("field %q overlaps another field", f.Name)
		return pkg.ErrOverlap
	}

	if err := d.SetField(f, 0); err != nil {
		pkg.ReportError("cannot clear field %q", f.Name)
		return err
	}

	for j := range d.FieldMap {
		v, err := d.GetField(&d.FieldMap[j])
		if err != nil {
			return err
		}
		if v != 0 {
			pkg.ReportError("registers failed to clear after checking field %q", f.Name)
			return pkg.ErrOverlap
		}
	}

	return nil
}

// checkPartialCoverage sets every field to all-ones and confirms each
// register of the device ends up either completely full or completely
// empty: a register left partially set means some bit within it belongs
// to no field.
func (d *Device) checkPartialCoverage() error {
	for i := range d.FieldMap {
		f := &d.FieldMap[i]
		allOnes := mask64(0, uint(f.Width))
		if err := d.SetField(f, allOnes); err != nil {
			pkg.ReportError("cannot set field %q", f.Name)
			return err
		}
	}

	for i := range d.FieldMap {
		f := &d.FieldMap[i]
		allOnes := mask64(0, uint(f.Width))
		val, err := d.GetField(f)
		if err != nil {
			return err
		}
		if val != allOnes {
			pkg.ReportError("field %q did not read back all-ones", f.Name)
			return pkg.ErrOverlap
		}
	}

	full := mask32(0, uint(d.RegWidth))
	for i, word := range d.Data {
		if word != 0 && word != full {
			pkg.ReportError("register %d partially covered by fields", i)
			return pkg.ErrPartialCoverage
		}
	}

	return nil
}
