package simreg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	b := NewBus(4)

	require.NoError(t, b.WriteFn(0, 2, 0xABCD))
	val, err := b.ReadFn(0, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xABCD), val)

	reads, writes := b.Stats()
	assert.Equal(t, 1, reads)
	assert.Equal(t, 1, writes)
}

func TestInjectedFaultConsumedOnce(t *testing.T) {
	b := NewBus(2)
	boom := errors.New("boom")
	b.FailRead(1, boom)

	_, err := b.ReadFn(0, 1)
	assert.ErrorIs(t, err, boom)

	val, err := b.ReadFn(0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), val)
}

func TestLoadAndSnapshot(t *testing.T) {
	b := NewBus(3)
	b.Load([]uint32{1, 2, 3})
	assert.Equal(t, []uint32{1, 2, 3}, b.Snapshot())

	reads, writes := b.Stats()
	assert.Equal(t, 0, reads)
	assert.Equal(t, 0, writes)
}
