package virtual

import (
	"github.com/js216/fw-utils/pkg"
	"github.com/js216/fw-utils/reg"
)

// LoadFn reconfigures the physical device to present the map identified
// by id (an index into Device.Maps), e.g. by writing a bank-select
// register or reflashing a configuration. It is called before the
// corresponding map is installed as the device's active FieldMap.
type LoadFn func(arg int, id int) error

// Device multiplexes Maps onto Base, presenting Fields as a single flat
// name space regardless of which map is currently active.
//
// The zero value is not usable; construct with Base, Fields, Data, Maps,
// and LoadFn set, then call Verify before the first Adjust/Obtain.
type Device struct {
	// Base is the physical device. Its FieldMap is owned by Device and
	// starts nil; Device installs one of Maps into it on first use.
	Base reg.Device

	// Fields lists every virtual field name, in no particular order.
	// Names beginning with "_" are non-physical: Adjust records their
	// value in Data but never touches Base.
	Fields []string

	// Data is the virtual value buffer, parallel to Fields: Data[i]
	// holds the last value Adjust(Fields[i], ...) recorded, regardless
	// of whether that value currently fits on the physical device.
	Data []uint64

	// Maps lists the candidate physical field maps, in the order
	// Adjust searches them when the active map lacks a requested field.
	Maps [][]reg.Field

	// LoadFn reconfigures the physical device for a new active map.
	LoadFn LoadFn

	loaded bool
}

func (v *Device) malformed() error {
	if v == nil {
		pkg.ReportError("nil virtual device")
		return pkg.ErrNilDevice
	}
	if len(v.Fields) == 0 {
		pkg.ReportError("virtual device has no fields")
		return pkg.ErrNoFields
	}
	if v.Data == nil {
		pkg.ReportError("virtual device has no data buffer")
		return pkg.ErrNilDevice
	}
	if len(v.Maps) == 0 {
		pkg.ReportError("virtual device has no candidate maps")
		return pkg.ErrNoMaps
	}
	if v.LoadFn == nil {
		pkg.ReportError("missing load_fn")
		return pkg.ErrMissingLoadFunc
	}
	return nil
}

func isPhysical(name string) bool {
	return len(name) == 0 || name[0] != '_'
}

// Verify certifies every candidate map with [reg.Device.Check], confirms
// every non-underscore virtual field name is present in at least one
// map, and resets the active map so the next Adjust installs the first
// one. Call once, after populating Device and before any Adjust/Obtain.
func (v *Device) Verify() error {
	if err := v.malformed(); err != nil {
		return err
	}

	for _, m := range v.Maps {
		v.Base.FieldMap = m
		if err := v.Base.Check(); err != nil {
			pkg.ReportError("bad map or bad device: %v", err)
			return err
		}
	}

	for _, name := range v.Fields {
		if !isPhysical(name) {
			continue
		}
		found := false
		for _, m := range v.Maps {
			if _, ok := reg.Lookup(m, name); ok {
				found = true
				break
			}
		}
		if !found {
			pkg.ReportError("virtual field %q not present in any map", name)
			return pkg.ErrFieldNotMapped
		}
	}

	v.Base.FieldMap = nil
	v.loaded = false
	return nil
}

// Obtain returns the current virtual value of name, regardless of
// whether that value is currently reflected on the physical device.
func (v *Device) Obtain(name string) (uint64, error) {
	if err := v.malformed(); err != nil {
		return 0, err
	}
	for i, n := range v.Fields {
		if n == name {
			return v.Data[i], nil
		}
	}
	pkg.ReportError("virtual field %q not found", name)
	return 0, pkg.ErrFieldNotFound
}

// reset clears the physical buffer and re-materializes every field of
// the currently active map from the virtual buffer, except: fields
// flagged NORESET (on the field or on Base) or underscore-prefixed
// (unless they are except), and
// fields whose virtual value no longer fits. except is always
// re-materialized, since it is the field that triggered this reload.
func (v *Device) reset(except *reg.Field) error {
	if err := v.Base.Bulk(nil); err != nil {
		pkg.ReportError("cannot clear device buffer: %v", err)
		return err
	}

	for i := range v.Base.FieldMap {
		fi := &v.Base.FieldMap[i]

		noReset := (v.Base.Flags | fi.Flags).Has(reg.NORESET)
		skip := fi != except && (noReset || fi.IsPadding())
		if skip {
			continue
		}

		val, err := v.Obtain(fi.Name)
		if err != nil {
			pkg.ReportError("cannot obtain virtual value for field %q", fi.Name)
			return err
		}
		if !reg.Fits(val, fi.Width) {
			continue
		}
		if err := v.Base.SetField(fi, val); err != nil {
			pkg.ReportError("cannot re-set field %q: %v", fi.Name, err)
			return err
		}
	}

	return nil
}

// Adjust records val as the current virtual value of name. If name is
// non-underscore, Adjust also ensures it is reflected on the physical
// device: if the active map already contains name at a width val fits,
// the field is set directly; otherwise Adjust searches Maps in
// declaration order for the first map containing name at a sufficient
// width, invokes LoadFn to switch to it, and re-materializes the fields
// of the new map from the virtual buffer, skipping NORESET fields,
// underscore fields, and fields whose virtual value does not fit.
func (v *Device) Adjust(name string, val uint64) error {
	if err := v.malformed(); err != nil {
		return err
	}

	found := false
	for i, n := range v.Fields {
		if n == name {
			v.Data[i] = val
			found = true
			break
		}
	}
	if !found {
		pkg.ReportError("virtual field %q not found", name)
		return pkg.ErrFieldNotFound
	}

	if !isPhysical(name) {
		return nil
	}

	if !v.loaded {
		if err := v.LoadFn(v.Base.Arg, 0); err != nil {
			pkg.ReportError("cannot load initial device configuration: %v", err)
			return pkg.Wrap(pkg.ErrLoadFailed, err.Error())
		}
		v.Base.FieldMap = v.Maps[0]
		v.loaded = true
	}

	if f, ok := reg.Lookup(v.Base.FieldMap, name); ok && reg.Fits(val, f.Width) {
		return v.Base.SetField(f, val)
	}

	id := -1
	var f *reg.Field
	for i, m := range v.Maps {
		if cand, ok := reg.Lookup(m, name); ok && reg.Fits(val, cand.Width) {
			id, f = i, cand
			break
		}
	}
	if f == nil {
		pkg.ReportError("field %q not found in any map, or value too wide", name)
		return pkg.ErrFitsNoMap
	}

	if err := v.LoadFn(v.Base.Arg, id); err != nil {
		pkg.ReportError("cannot load device configuration %d: %v", id, err)
		return pkg.Wrap(pkg.ErrLoadFailed, err.Error())
	}
	v.Base.FieldMap = v.Maps[id]

	return v.reset(f)
}
