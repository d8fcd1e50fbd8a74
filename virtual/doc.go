// Package virtual multiplexes a field name space larger than any single
// physical register map onto one physical device, by swapping the
// device's active map at runtime.
//
// A [Device] declares a flat list of virtual field names ([Device.Fields])
// backed by a virtual value buffer ([Device.Data]), and a list of
// candidate physical maps ([Device.Maps]) that between them cover every
// non-underscore name. Only one map is active on the physical device
// ([reg.Device.FieldMap]) at a time; [Device.Adjust] transparently
// reloads a different map, via [LoadFn], whenever the requested field
// isn't present (or doesn't fit) in the one currently loaded.
// [Device.Obtain] only reads the virtual buffer and never loads a map.
//
// # Reload semantics
//
// Switching maps clears the physical register buffer and re-materializes
// every field of the newly active map from the virtual buffer, except:
// fields flagged [github.com/js216/fw-utils/reg.NORESET], underscore
// fields, and any field whose current virtual value no longer fits the
// new map's width for that name (left untouched in the virtual buffer,
// picked up again whenever a wide-enough map becomes active). The field
// that triggered the reload is always re-materialized, NORESET
// notwithstanding: it was the reason for the load in the first place.
package virtual
