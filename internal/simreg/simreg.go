package simreg

import (
	"fmt"
	"sync"

	"github.com/js216/fw-utils/pkg"
)

// Bus is an in-memory stand-in for a physical register-addressed bus. It
// implements the reg.ReadFn/reg.WriteFn callback shapes via its ReadFn
// and WriteFn methods, and can be told to fail specific register
// accesses on demand.
type Bus struct {
	mu sync.Mutex

	regs []uint32

	readFaults  map[uint32][]error
	writeFaults map[uint32][]error

	reads  int
	writes int
}

// NewBus creates a bus with n registers, all initialized to zero.
func NewBus(n int) *Bus {
	return &Bus{
		regs:        make([]uint32, n),
		readFaults:  make(map[uint32][]error),
		writeFaults: make(map[uint32][]error),
	}
}

// FailRead queues err to be returned by the next ReadFn(arg, reg)
// call for reg, instead of the stored value. Faults are consumed in FIFO
// order, one per matching call.
func (b *Bus) FailRead(reg uint32, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readFaults[reg] = append(b.readFaults[reg], err)
}

// FailWrite queues err to be returned by the next
// WriteFn(arg, reg, val) call for reg.
func (b *Bus) FailWrite(reg uint32, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeFaults[reg] = append(b.writeFaults[reg], err)
}

// ReadFn implements reg.ReadFn. arg is ignored; a Bus models one device.
func (b *Bus) ReadFn(arg int, reg uint32) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reads++
	if err := b.popFault(b.readFaults, reg); err != nil {
		pkg.LogDebug(pkg.ComponentTransport, "injected read fault on register %d: %v", reg, err)
		return 0, err
	}
	if int(reg) >= len(b.regs) {
		return 0, fmt.Errorf("simreg: register %d out of range", reg)
	}
	return b.regs[reg], nil
}

// WriteFn implements reg.WriteFn.
func (b *Bus) WriteFn(arg int, reg uint32, val uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.writes++
	if err := b.popFault(b.writeFaults, reg); err != nil {
		pkg.LogDebug(pkg.ComponentTransport, "injected write fault on register %d: %v", reg, err)
		return err
	}
	if int(reg) >= len(b.regs) {
		return fmt.Errorf("simreg: register %d out of range", reg)
	}
	b.regs[reg] = val
	return nil
}

func (b *Bus) popFault(faults map[uint32][]error, reg uint32) error {
	q := faults[reg]
	if len(q) == 0 {
		return nil
	}
	faults[reg] = q[1:]
	return q[0]
}

// Snapshot returns a copy of the bus's current register contents.
func (b *Bus) Snapshot() []uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]uint32, len(b.regs))
	copy(out, b.regs)
	return out
}

// Load overwrites the bus's register contents from data, without going
// through ReadFn/WriteFn or counting as a transport access.
func (b *Bus) Load(data []uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	copy(b.regs, data)
}

// Stats returns the number of ReadFn/WriteFn calls observed so far,
// including ones that returned an injected fault.
func (b *Bus) Stats() (reads, writes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads, b.writes
}
