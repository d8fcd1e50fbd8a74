package reg

import (
	"github.com/js216/fw-utils/pkg"
)

// Field is an immutable descriptor for a contiguous named bit range
// within one or more registers.
//
// Name must be non-empty and unique within a map, except names beginning
// with "_" (reserved/padding), which may repeat and are skipped by the
// public field API (Get, Set, FieldWidth never expose them, and Check
// never flags them as duplicates, though it still rejects a padding field
// that overlaps another field).
type Field struct {
	// Name identifies the field. Leading "_" marks it as padding/reserved.
	Name string
	// Reg is the 0-based index of the register holding the field's LSBs.
	Reg uint32
	// Offs is the bit offset, within register Reg, of the field's LSB.
	Offs uint8
	// Width is the field's total width in bits, 1..64.
	Width uint8
	// Flags are this field's own behavior modifiers.
	Flags Flag
}

// IsPadding reports whether f is a reserved/padding field, skipped by the
// public API and by duplicate-name checking.
func (f *Field) IsPadding() bool {
	return len(f.Name) > 0 && f.Name[0] == '_'
}

// numChunks returns how many registers f spans, given the device's
// register width.
func (f *Field) numChunks(regWidth uint8) uint {
	return cdiv(uint(f.Offs)+uint(f.Width), uint(regWidth))
}

// chunkLen0 returns the number of bits the field's least-significant
// chunk (n=0) occupies within its register.
func (f *Field) chunkLen0(regWidth uint8) uint {
	return minUint(uint(f.Offs)+uint(f.Width), uint(regWidth)) - uint(f.Offs)
}

// chunkMask returns the mask, within a register, of the bits chunk n of
// field f occupies.
func (f *Field) chunkMask(n uint, regWidth uint8) uint32 {
	len0 := f.chunkLen0(regWidth)
	var start, length uint
	if n == 0 {
		start = uint(f.Offs)
		length = len0
	} else {
		start = 0
		length = minUint(uint(f.Width)-len0-(n-1)*uint(regWidth), uint(regWidth))
	}
	return mask32(start, length)
}

// regOf returns the register index holding chunk n of field f, given the
// effective flags (only DESCEND matters here).
func (f *Field) regOf(n uint, effective Flag) uint32 {
	if effective.Has(DESCEND) {
		return f.Reg - uint32(n)
	}
	return f.Reg + uint32(n)
}

// fieldSpan validates f against the device and returns how many registers
// it spans. This is run on every field get/set, not only during Check,
// matching the original implementation's reg_check_field_width.
func fieldSpan(d *Device, f *Field) (uint, error) {
	if f.Width == 0 {
		pkg.ReportError("field %q has zero width", f.Name)
		return 0, pkg.ErrZeroWidth
	}
	if f.Width > maxFieldWidth {
		pkg.ReportError("field %q wider than 64 bits", f.Name)
		return 0, pkg.ErrFieldTooWide
	}
	if f.Reg >= d.regNum() {
		pkg.ReportError("field %q register %d outside device bounds", f.Name, f.Reg)
		return 0, pkg.ErrSpanOverflow
	}

	n := f.numChunks(d.RegWidth)
	effective := effectiveFlags(d.Flags, f.Flags)

	if effective.Has(DESCEND) {
		if uint(f.Reg)+1 < n {
			pkg.ReportError("field %q: too many descending registers", f.Name)
			return 0, pkg.ErrSpanOverflow
		}
	} else if uint64(f.Reg)+uint64(n) > uint64(d.regNum()) {
		pkg.ReportError("field %q: too many ascending registers", f.Name)
		return 0, pkg.ErrSpanOverflow
	}

	return n, nil
}

// getChunk reads chunk n of field f, shifted into its position within the
// assembled 64-bit field value.
func (d *Device) getChunk(f *Field, n uint, effective Flag) (uint64, error) {
	r := f.regOf(n, effective)

	if effective.Has(VOLATILE) && !effective.Has(NOCOMM) {
		if _, err := d.Read(r); err != nil {
			return 0, err
		}
	}

	chunk := uint64(d.Data[r]) & uint64(f.chunkMask(n, d.RegWidth))
	len0 := f.chunkLen0(d.RegWidth)
	if n == 0 {
		chunk >>= uint(f.Offs)
	} else {
		chunk <<= len0 + (n-1)*uint(d.RegWidth)
	}
	return chunk, nil
}

// setChunk writes chunk n of field f from val (the full field value,
// still in its native position) into the buffer and, unless NOCOMM,
// the transport.
func (d *Device) setChunk(f *Field, n uint, val uint64, effective Flag) error {
	len0 := f.chunkLen0(d.RegWidth)
	if n == 0 {
		val <<= uint(f.Offs)
	} else {
		val >>= len0 + (n-1)*uint(d.RegWidth)
	}

	mask := f.chunkMask(n, d.RegWidth)
	chunk := uint32(val) & mask

	r := f.regOf(n, effective)
	d.Data[r] = (d.Data[r] & ^mask) | chunk

	if !effective.Has(NOCOMM) {
		if d.WriteFn == nil {
			pkg.ReportError("missing write_fn")
			return pkg.ErrMissingCallback
		}
		if err := d.WriteFn(d.Arg, r, d.Data[r]); err != nil {
			pkg.ReportError("write_fn(%d, 0x%x) failed for field %q: %v", r, d.Data[r], f.Name, err)
			return pkg.Wrap(pkg.ErrTransportWrite, err.Error())
		}
	}
	return nil
}

// GetField reads the current value of f directly, bypassing name lookup
// and locking. Used internally by Get and by Check, which already hold
// whatever locking discipline is appropriate for their caller.
func (d *Device) GetField(f *Field) (uint64, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}
	if f == nil {
		pkg.ReportError("nil field")
		return 0, pkg.ErrFieldNotFound
	}
	n, err := fieldSpan(d, f)
	if err != nil {
		return 0, err
	}

	effective := effectiveFlags(d.Flags, f.Flags)
	var val uint64
	for i := uint(0); i < n; i++ {
		chunk, err := d.getChunk(f, i, effective)
		if err != nil {
			return 0, err
		}
		val |= chunk
	}
	return val, nil
}

// SetField writes val into f directly, bypassing name lookup and locking.
// Chunks are written in ascending order unless MSR_FIRST is in effect, in
// which case the order is reversed. On the first transport failure,
// writing stops; chunks already written remain on the wire and in the
// buffer (no rollback).
func (d *Device) SetField(f *Field, val uint64) error {
	if err := d.validate(); err != nil {
		return err
	}
	if f == nil {
		pkg.ReportError("nil field")
		return pkg.ErrFieldNotFound
	}
	n, err := fieldSpan(d, f)
	if err != nil {
		return err
	}
	if !fits(val, uint(f.Width)) {
		pkg.ReportError("value 0x%x does not fit field %q (width %d)", val, f.Name, f.Width)
		return pkg.ErrValueTooWide
	}

	effective := effectiveFlags(d.Flags, f.Flags)
	for i := uint(0); i < n; i++ {
		idx := i
		if effective.Has(MSR_FIRST) {
			idx = n - i - 1
		}
		if err := d.setChunk(f, idx, val, effective); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds the first field named name in m. Padding fields (leading
// "_") are matched like any other name by Lookup itself; it is Get/Set/
// FieldWidth that refuse to expose them to callers.
func Lookup(m []Field, name string) (*Field, bool) {
	for i := range m {
		if m[i].Name == name {
			return &m[i], true
		}
	}
	return nil, false
}

func publicLookup(m []Field, name string) (*Field, error) {
	if name == "" {
		pkg.ReportError("empty field name")
		return nil, pkg.ErrEmptyName
	}
	f, ok := Lookup(m, name)
	if !ok || f.IsPadding() {
		pkg.ReportError("field %q not found", name)
		return nil, pkg.ErrFieldNotFound
	}
	return f, nil
}

// Get locks the device, looks up name in the active field map, reads its
// value, and unlocks. Padding fields ("_"-prefixed) are never found.
func (d *Device) Get(name string) (uint64, error) {
	if err := d.lock(); err != nil {
		return 0, err
	}
	defer d.unlock()

	f, err := publicLookup(d.FieldMap, name)
	if err != nil {
		return 0, err
	}
	return d.GetField(f)
}

// Set locks the device, looks up name in the active field map, writes
// val, and unlocks.
func (d *Device) Set(name string, val uint64) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.unlock()

	f, err := publicLookup(d.FieldMap, name)
	if err != nil {
		return err
	}
	return d.SetField(f, val)
}

// FieldWidth returns the width of the named field in the active map,
// without locking. The second return value is false if no such
// (non-padding) field exists; this is not treated as an error, since
// FieldWidth is also used to probe for a field's presence.
func (d *Device) FieldWidth(name string) (uint8, bool) {
	f, ok := Lookup(d.FieldMap, name)
	if !ok || f.IsPadding() {
		return 0, false
	}
	return f.Width, true
}
