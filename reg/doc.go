// Package reg implements a register-and-field abstraction layer for
// memory-mapped or bus-attached hardware devices.
//
// A device exposes its state as a fixed-width array of registers
// ([Device.Data]); a [Field] names a contiguous bit range within one or
// more of those registers. Application code addresses hardware by field
// name and integer value; this package packs, unpacks, spans, and
// dispatches those accesses to a caller-supplied transport.
//
// # Architecture
//
//   - [Field] is an immutable descriptor: register, bit offset, width,
//     and flags.
//   - [Device] holds the active [Field] map, the software image of the
//     hardware (Data), the transport callbacks, and optional lock
//     callbacks.
//   - [Device.Read], [Device.Write], and [Device.Bulk] are raw,
//     register-addressed I/O that never interpret field structure.
//   - [Device.Get] and [Device.Set] are the field-addressed API: they
//     look up a field by name, take the device's lock, and invoke the
//     field codec ([Device.GetField]/[Device.SetField]) to pack or
//     unpack a value across however many registers the field spans.
//   - [Device.Check] certifies that an installed map has no duplicate
//     names, no overlapping fields, and no partially covered registers,
//     by driving the map through itself rather than building a separate
//     geometric model.
//
// # Multi-register fields
//
// A field wider than one register spans several, in either ascending
// order (the default: higher-order bits live in higher-numbered
// registers) or descending order ([DESCEND]: reversed register layout,
// same bit/byte order within each register). Write order across chunks
// defaults to least-significant-register first; [MSR_FIRST] reverses it
// independently of layout direction.
//
// # Example
//
//	m := []reg.Field{
//	   {Name: "EN_X", Reg: 0, Offs: 0, Width: 1},
//	   {Name: "FTW", Reg: 0, Offs: 1, Width: 36},
//	   {Name: "MODE", Reg: 1, Offs: 5, Width: 27},
//	   {Name: "SETP", Reg: 5, Offs: 0, Width: 32},
//	}
//	d := &reg.Device{
//	   RegWidth: 32,
//	   Data:     make([]uint32, 6),
//	   FieldMap: m,
//	   ReadFn:   hwRead,
//	   WriteFn:  hwWrite,
//	}
//	if err := d.Check(); err != nil {
//	   // malformed map
//	}
//	if err := d.Set("MODE", 0x03); err != nil {
//	   // handle the error
//	}
//	val, err := d.Get("MODE")
//
// For a larger name space multiplexed onto a physical device whose map
// can be swapped at runtime, see the sibling package
// [github.com/js216/fw-utils/virtual].
package reg
