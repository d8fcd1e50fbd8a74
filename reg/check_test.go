package reg

import (
	"testing"

	"github.com/js216/fw-utils/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simDevice(regWidth uint8, nregs int, m []Field) *Device {
	data := make([]uint32, nregs)
	return &Device{
		RegWidth: regWidth,
		Data:     data,
		FieldMap: m,
		ReadFn: func(arg int, reg uint32) (uint32, error) {
			return data[reg], nil
		},
		WriteFn: func(arg int, reg uint32, val uint32) error {
			data[reg] = val
			return nil
		},
	}
}

func TestCheckAcceptsWellFormedMap(t *testing.T) {
	m := []Field{
		{Name: "EN", Reg: 0, Offs: 0, Width: 1},
		{Name: "FTW", Reg: 0, Offs: 1, Width: 31},
		{Name: "MODE", Reg: 1, Offs: 0, Width: 32},
	}
	d := simDevice(32, 2, m)
	require.NoError(t, d.Check())

	for _, v := range d.Data {
		assert.Equal(t, uint32(0), v)
	}
}

func TestCheckRejectsOverlap(t *testing.T) {
	m := []Field{
		{Name: "A", Reg: 0, Offs: 0, Width: 8},
		{Name: "B", Reg: 0, Offs: 4, Width: 8},
	}
	d := simDevice(32, 1, m)
	assert.ErrorIs(t, d.Check(), pkg.ErrOverlap)
}

func TestCheckRejectsOverlapWithPaddingField(t *testing.T) {
	m := []Field{
		{Name: "FOO", Reg: 0, Offs: 0, Width: 6},
		{Name: "_PAD", Reg: 0, Offs: 4, Width: 4},
	}
	d := simDevice(8, 1, m)
	assert.ErrorIs(t, d.Check(), pkg.ErrOverlap)
}

func TestCheckRejectsPartialCoverage(t *testing.T) {
	m := []Field{
		{Name: "A", Reg: 0, Offs: 0, Width: 8},
	}
	d := simDevice(32, 1, m)
	assert.ErrorIs(t, d.Check(), pkg.ErrPartialCoverage)
}

func TestCheckRejectsDuplicateNames(t *testing.T) {
	m := []Field{
		{Name: "A", Reg: 0, Offs: 0, Width: 16},
		{Name: "A", Reg: 0, Offs: 16, Width: 16},
	}
	d := simDevice(32, 1, m)
	assert.ErrorIs(t, d.Check(), pkg.ErrDuplicateName)
}

func TestCheckIgnoresUnderscoreDuplicates(t *testing.T) {
	m := []Field{
		{Name: "_PAD", Reg: 0, Offs: 0, Width: 16},
		{Name: "_PAD", Reg: 0, Offs: 16, Width: 16},
	}
	d := simDevice(32, 1, m)
	require.NoError(t, d.Check())
}

func TestCheckRejectsZeroWidth(t *testing.T) {
	m := []Field{{Name: "A", Reg: 0, Offs: 0, Width: 0}}
	d := simDevice(32, 1, m)
	assert.ErrorIs(t, d.Check(), pkg.ErrZeroWidth)
}

func TestCheckRejectsTooWideField(t *testing.T) {
	m := []Field{{Name: "A", Reg: 0, Offs: 0, Width: 65}}
	d := simDevice(32, 1, m)
	assert.ErrorIs(t, d.Check(), pkg.ErrFieldTooWide)
}

func TestCheckRejectsSpanOverrun(t *testing.T) {
	m := []Field{{Name: "A", Reg: 0, Offs: 16, Width: 32}}
	d := simDevice(32, 1, m)
	assert.ErrorIs(t, d.Check(), pkg.ErrSpanOverflow)
}

func TestCheckUsesNoCommAndRestoresFlags(t *testing.T) {
	m := []Field{
		{Name: "A", Reg: 0, Offs: 0, Width: 32},
	}
	d := simDevice(32, 1, m)

	writes := 0
	d.WriteFn = func(arg int, reg uint32, val uint32) error {
		writes++
		d.Data[reg] = val
		return nil
	}

	require.NoError(t, d.Check())
	assert.Equal(t, 0, writes)
	assert.Equal(t, Flag(0), d.Flags)
}
