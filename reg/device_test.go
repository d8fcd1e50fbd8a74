package reg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimDevice(regWidth uint8, nregs int, m []Field) *Device {
	data := make([]uint32, nregs)
	d := &Device{
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
	return d
}

func TestReadWriteRoundTrip(t *testing.T) {
	d := newSimDevice(32, 4, nil)

	require.NoError(t, d.Write(2, 0xdeadbeef))
	val, err := d.Read(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), val)
}

func TestWriteOutOfRange(t *testing.T) {
	d := newSimDevice(32, 2, nil)
	assert.Error(t, d.Write(5, 1))
}

func TestWriteOverflowsRegWidth(t *testing.T) {
	d := newSimDevice(8, 2, nil)
	assert.Error(t, d.Write(0, 0x100))
}

func TestBulkLoadAndClear(t *testing.T) {
	d := newSimDevice(32, 3, nil)

	require.NoError(t, d.Bulk([]uint32{1, 2, 3}))
	assert.Equal(t, []uint32{1, 2, 3}, d.Data)

	require.NoError(t, d.Bulk(nil))
	assert.Equal(t, []uint32{0, 0, 0}, d.Data)
}

func TestBulkShortDataLeavesBufferUntouched(t *testing.T) {
	d := newSimDevice(32, 3, nil)
	require.NoError(t, d.Bulk([]uint32{9, 9, 9}))

	assert.Error(t, d.Bulk([]uint32{1, 2}))
	assert.Equal(t, []uint32{9, 9, 9}, d.Data)
}

func TestReentrantLockRejected(t *testing.T) {
	d := newSimDevice(32, 2, nil)
	require.NoError(t, d.lock())
	assert.Error(t, d.lock())
	require.NoError(t, d.unlock())
}

func TestUnlockWithoutLockRejected(t *testing.T) {
	d := newSimDevice(32, 2, nil)
	assert.Error(t, d.unlock())
}
