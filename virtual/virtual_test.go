package virtual

import (
	"testing"

	"github.com/js216/fw-utils/reg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVirtual(t *testing.T) (*Device, *[]int) {
	t.Helper()

	map1 := []reg.Field{
		{Name: "A", Reg: 0, Offs: 0, Width: 8},
		{Name: "B", Reg: 0, Offs: 8, Width: 8},
		{Name: "C", Reg: 1, Offs: 0, Width: 16},
	}
	map2 := []reg.Field{
		{Name: "P", Reg: 0, Offs: 0, Width: 8},
		{Name: "Q", Reg: 0, Offs: 8, Width: 8, Flags: reg.NORESET},
		{Name: "A", Reg: 1, Offs: 0, Width: 16},
	}

	data := make([]uint32, 2)
	var loads []int

	v := &Device{
		Base: reg.Device{
			RegWidth: 16,
			Data:     data,
			ReadFn: func(arg int, r uint32) (uint32, error) {
				return data[r], nil
			},
			WriteFn: func(arg int, r uint32, val uint32) error {
				data[r] = val
				return nil
			},
		},
		Fields: []string{"A", "B", "C", "P", "Q"},
		Data:   make([]uint64, 5),
		Maps:   [][]reg.Field{map1, map2},
		LoadFn: func(arg int, id int) error {
			loads = append(loads, id)
			return nil
		},
	}

	require.NoError(t, v.Verify())
	return v, &loads
}

// Concrete scenario 6.
func TestVirtualScenario(t *testing.T) {
	v, loads := newVirtual(t)

	require.NoError(t, v.Adjust("A", 0xFF))
	require.NoError(t, v.Adjust("P", 0xFF))
	require.NoError(t, v.Adjust("Q", 0x67))
	require.NoError(t, v.Adjust("B", 0xFF))

	assert.Equal(t, []reg.Field(v.Maps[0]), v.Base.FieldMap)
	assert.Equal(t, []uint64{0xFF, 0xFF, 0, 0xFF, 0x67}, v.Data)
	assert.Equal(t, []uint32{0xFFFF, 0x0000}, v.Base.Data)
	assert.Equal(t, []int{0, 1, 0}, *loads)

	require.NoError(t, v.Adjust("A", 0xFFFF))
	assert.Equal(t, []reg.Field(v.Maps[1]), v.Base.FieldMap)
	assert.Equal(t, []int{0, 1, 0, 1}, *loads)
	// Q is NORESET and was never the triggering field, so it stays
	// cleared; B and C have no place in map2 and are dropped entirely.
	assert.Equal(t, []uint32{0xFF, 0xFFFF}, v.Base.Data)
}

func TestVirtualObtainTracksLatestAdjust(t *testing.T) {
	v, _ := newVirtual(t)

	require.NoError(t, v.Adjust("C", 0x1234))
	val, err := v.Obtain("C")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1234), val)
}

func TestVirtualRejectsUnmappedField(t *testing.T) {
	v := &Device{
		Base: reg.Device{
			RegWidth: 8,
			Data:     make([]uint32, 1),
		},
		Fields: []string{"A", "GHOST"},
		Data:   make([]uint64, 2),
		Maps: [][]reg.Field{
			{{Name: "A", Reg: 0, Offs: 0, Width: 8}},
		},
		LoadFn: func(arg int, id int) error { return nil },
	}
	assert.Error(t, v.Verify())
}

func TestVirtualNonPhysicalFieldNeverTouchesDevice(t *testing.T) {
	v := &Device{
		Base: reg.Device{
			RegWidth: 8,
			Data:     make([]uint32, 1),
		},
		Fields: []string{"A", "_SCRATCH"},
		Data:   make([]uint64, 2),
		Maps: [][]reg.Field{
			{{Name: "A", Reg: 0, Offs: 0, Width: 8}},
		},
		LoadFn: func(arg int, id int) error {
			t.Fatal("load_fn should not be called for a non-physical field")
			return nil
		},
	}
	require.NoError(t, v.Verify())
	require.NoError(t, v.Adjust("_SCRATCH", 42))

	val, err := v.Obtain("_SCRATCH")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), val)
	assert.Nil(t, v.Base.FieldMap)
}
