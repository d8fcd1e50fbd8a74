package reg

// Flag is a bitset of per-field or per-device behavior modifiers. Bit
// values are fixed for wire/config stability; do not renumber.
type Flag uint16

// Field and device flags. Effective flags for any operation are the
// bitwise OR of the device's flags and the field's flags (see
// [effectiveFlags]).
const (
	// READONLY is reserved for future use.
	READONLY Flag = 1 << 0
	// WRITEONLY is reserved for future use.
	WRITEONLY Flag = 1 << 1
	// VOLATILE re-reads the underlying registers on each field get.
	VOLATILE Flag = 1 << 2
	// NOCOMM suppresses transport I/O; operations touch the buffer only.
	// Overrides VOLATILE.
	NOCOMM Flag = 1 << 3
	// ALIAS is reserved for future use.
	ALIAS Flag = 1 << 4
	// DESCEND places a multi-register field's LSBs in the highest-indexed
	// register of its span, instead of the lowest (the default).
	DESCEND Flag = 1 << 5
	// MSR_FIRST writes the most-significant chunk of a multi-register
	// field first. Independent of DESCEND: DESCEND flips register
	// layout, MSR_FIRST flips write order.
	MSR_FIRST Flag = 1 << 6
	// NORESET exempts a field from the virtual device's reset pass after
	// a map reload.
	NORESET Flag = 1 << 7
)

// Has reports whether flags contains every bit in want.
func (flags Flag) Has(want Flag) bool {
	return flags&want == want
}

// effectiveFlags returns the OR of device-level and field-level flags,
// computed fresh at the start of every operation (§9: "no mutation").
func effectiveFlags(deviceFlags, fieldFlags Flag) Flag {
	return deviceFlags | fieldFlags
}
