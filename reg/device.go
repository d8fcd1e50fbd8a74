package reg

import (
	"github.com/js216/fw-utils/pkg"
)

// ReadFn reads one register from the physical device.
type ReadFn func(arg int, reg uint32) (uint32, error)

// WriteFn writes one register to the physical device. A non-nil error
// aborts the in-progress field or raw write.
type WriteFn func(arg int, reg uint32, val uint32) error

// LockFn acquires a caller-supplied mutual-exclusion primitive.
type LockFn func(mutex any) error

// UnlockFn releases a caller-supplied mutual-exclusion primitive.
type UnlockFn func(mutex any) error

// Device is the software image of a hardware device together with
// everything needed to translate field-level reads and writes into
// register-level transport calls.
//
// The zero value is not usable; construct with RegWidth, Data, and
// FieldMap set, plus ReadFn/WriteFn unless NOCOMM is always set.
type Device struct {
	// RegWidth is the width, in bits, of every register (1..32).
	RegWidth uint8

	// Data is the software image of the hardware: len(Data) registers,
	// each holding at most RegWidth significant bits. Its length is the
	// device's register count.
	Data []uint32

	// FieldMap is the active, certified field map. May be nil for a
	// virtual device's physical context before its first map is loaded.
	FieldMap []Field

	// ReadFn and WriteFn are the transport callbacks. Unused when NOCOMM
	// is set (device-wide or per field).
	ReadFn  ReadFn
	WriteFn WriteFn

	// Arg is passed through, unmodified, to ReadFn/WriteFn/LoadFn. It is
	// the only way those callbacks learn which device instance called
	// them.
	Arg int

	// Flags are device-wide behavior modifiers, OR-ed with each field's
	// own flags to form the effective flags for every operation.
	Flags Flag

	// LockFn/UnlockFn/Mutex implement caller-supplied mutual exclusion
	// around field-level operations (Get, Set, Bulk, Check). Both or
	// neither of LockFn/UnlockFn must be set. If Mutex (or both
	// callbacks) is nil, locking is a no-op but lockCount bookkeeping
	// still runs.
	LockFn   LockFn
	UnlockFn UnlockFn
	Mutex    any

	// lockCount is the non-reentrance guard: it must be 0 before a lock
	// and 1 before an unlock. Nested lock attempts are a programming
	// error (§5).
	lockCount int
}

// regNum returns the device's register count.
func (d *Device) regNum() uint32 {
	return uint32(len(d.Data))
}

// validate checks that the device has the fields every operation needs.
func (d *Device) validate() error {
	if d == nil {
		pkg.ReportError("nil device")
		return pkg.ErrNilDevice
	}
	if d.RegWidth == 0 || d.RegWidth > maxRegWidth {
		pkg.ReportError("reg_width %d out of range", d.RegWidth)
		return pkg.ErrBadRegWidth
	}
	if d.Data == nil {
		pkg.ReportError("device has no data buffer")
		return pkg.ErrNilDevice
	}
	return nil
}

// lock acquires the device's mutual-exclusion primitive, if any, and
// advances the re-entrance guard. Non-reentrant by design: a nested lock
// attempt is a programming error.
func (d *Device) lock() error {
	if err := d.validate(); err != nil {
		return err
	}
	if d.Mutex != nil && d.LockFn != nil {
		if err := d.LockFn(d.Mutex); err != nil {
			pkg.ReportError("lock failed: %v", err)
			return pkg.ErrLockFailed
		}
	}
	if d.lockCount != 0 {
		pkg.ReportError("device already locked")
		return pkg.ErrReentrantLock
	}
	d.lockCount++
	return nil
}

// unlock releases the device's mutual-exclusion primitive, if any, and
// retires the re-entrance guard.
func (d *Device) unlock() error {
	if err := d.validate(); err != nil {
		return err
	}
	if d.Mutex != nil && d.UnlockFn != nil {
		if err := d.UnlockFn(d.Mutex); err != nil {
			pkg.ReportError("unlock failed: %v", err)
			return pkg.ErrUnlockFailed
		}
	}
	if d.lockCount != 1 {
		pkg.ReportError("invalid lock count %d", d.lockCount)
		return pkg.ErrNotLocked
	}
	d.lockCount--
	return nil
}

// flagsSet reports whether every bit in want is present in the device's
// own flags, ignoring any field.
func (d *Device) flagsSet(want Flag) bool {
	return d.Flags.Has(want)
}

// Read reads one register from the physical device (unless NOCOMM is
// set, in which case it returns the buffered value), stores the result in
// Data, and returns it. On any failure it returns 0 and a non-nil error.
func (d *Device) Read(reg uint32) (uint32, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}
	if reg >= d.regNum() {
		pkg.ReportError("register %d outside device bounds", reg)
		return 0, pkg.ErrOutOfRange
	}

	if !d.flagsSet(NOCOMM) {
		if d.ReadFn == nil {
			pkg.ReportError("missing read_fn")
			return 0, pkg.ErrMissingCallback
		}
		val, err := d.ReadFn(d.Arg, reg)
		if err != nil {
			pkg.ReportError("read_fn(%d) failed: %v", reg, err)
			return 0, pkg.Wrap(pkg.ErrTransportRead, err.Error())
		}
		if val&^mask32(0, uint(d.RegWidth)) != 0 {
			pkg.ReportError("read of register %d returned bits outside reg_width", reg)
			return 0, pkg.ErrReadOverflow
		}
		d.Data[reg] = val
	}

	return d.Data[reg], nil
}

// Write writes val to one register on the physical device (unless NOCOMM
// is set) and updates Data. val must fit in RegWidth bits.
func (d *Device) Write(reg uint32, val uint32) error {
	if err := d.validate(); err != nil {
		return err
	}
	if reg >= d.regNum() {
		pkg.ReportError("register %d outside device bounds", reg)
		return pkg.ErrOutOfRange
	}
	if val&^mask32(0, uint(d.RegWidth)) != 0 {
		pkg.ReportError("value 0x%x too large for %d-bit register", val, d.RegWidth)
		return pkg.ErrWriteOverflow
	}

	if !d.flagsSet(NOCOMM) {
		if d.WriteFn == nil {
			pkg.ReportError("missing write_fn")
			return pkg.ErrMissingCallback
		}
		if err := d.WriteFn(d.Arg, reg, val); err != nil {
			pkg.ReportError("write_fn(%d, 0x%x) failed: %v", reg, val, err)
			return pkg.Wrap(pkg.ErrTransportWrite, err.Error())
		}
	}

	d.Data[reg] = val
	return nil
}

// Bulk imports register data directly into the buffer without touching
// the transport. If data is nil, the buffer is cleared to zero; otherwise
// data must supply at least len(Data) words. Bulk takes the device's lock
// for the duration.
func (d *Device) Bulk(data []uint32) error {
	if err := d.validate(); err != nil {
		return err
	}
	if len(d.Data) == 0 {
		return nil
	}
	if err := d.lock(); err != nil {
		return err
	}
	defer d.unlock()

	if data == nil {
		for i := range d.Data {
			d.Data[i] = 0
		}
		return nil
	}
	if len(data) < len(d.Data) {
		pkg.ReportError("bulk data too short: need %d words, got %d", len(d.Data), len(data))
		return pkg.ErrOutOfRange
	}
	copy(d.Data, data)
	return nil
}

// clearBuffer zeroes the device's entire register buffer, without
// touching the transport.
func (d *Device) clearBuffer() {
	for i := range d.Data {
		d.Data[i] = 0
	}
}
