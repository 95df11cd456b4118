// Package hwtest provides a simulated register bus for tests.
package hwtest

// Op distinguishes the two bus transaction kinds.
type Op uint8

const (
	Load Op = iota
	Store
)

func (o Op) String() string {
	if o == Load {
		return "load"
	}
	return "store"
}

// Access records one bus transaction as issued by the code under test, with
// the address before any alias decoding.
type Access struct {
	Op    Op
	Addr  uintptr
	Value uint32
}

// aliasSelect covers the RP2040-style alias address bits: bits 12 and 13 of
// a register address select the atomic operation applied by the bus fabric.
const (
	aliasSelect uintptr = 0x3000
	aliasXOR    uintptr = 0x1000
	aliasSet    uintptr = 0x2000
	aliasClear  uintptr = 0x3000
)

// Bus is an in-memory register bus that records every access. With alias
// decoding enabled it applies the RP2040 atomic semantics: a store to
// plain+0x1000 XORs the written mask into the register, plain+0x2000 ORs it
// in and plain+0x3000 clears the masked bits.
type Bus struct {
	mem     map[uintptr]uint32
	log     []Access
	decoded bool
}

// NewBus returns a simulated bus that treats every address as plain memory.
func NewBus() *Bus {
	return &Bus{mem: make(map[uintptr]uint32)}
}

// NewAliasBus returns a simulated bus with RP2040 alias decoding enabled.
func NewAliasBus() *Bus {
	b := NewBus()
	b.decoded = true
	return b
}

func (b *Bus) Load(addr uintptr) uint32 {
	v := b.mem[b.plain(addr)]
	b.log = append(b.log, Access{Op: Load, Addr: addr, Value: v})
	return v
}

func (b *Bus) Store(addr uintptr, v uint32) {
	b.log = append(b.log, Access{Op: Store, Addr: addr, Value: v})
	if !b.decoded {
		b.mem[addr] = v
		return
	}
	plain := b.plain(addr)
	switch addr & aliasSelect {
	case aliasXOR:
		b.mem[plain] ^= v
	case aliasSet:
		b.mem[plain] |= v
	case aliasClear:
		b.mem[plain] &^= v
	default:
		b.mem[plain] = v
	}
}

func (b *Bus) plain(addr uintptr) uintptr {
	if b.decoded {
		return addr &^ aliasSelect
	}
	return addr
}

// Poke sets the raw register content without logging, for test setup.
func (b *Bus) Poke(addr uintptr, v uint32) { b.mem[b.plain(addr)] = v }

// Peek reads the raw register content without logging.
func (b *Bus) Peek(addr uintptr) uint32 { return b.mem[b.plain(addr)] }

// Log returns every access issued since construction or the last ClearLog.
func (b *Bus) Log() []Access { return b.log }

// ClearLog discards the access log but keeps the memory contents.
func (b *Bus) ClearLog() { b.log = b.log[:0] }

// Counts returns the number of loads and stores in the log.
func (b *Bus) Counts() (loads, stores int) {
	for _, a := range b.log {
		if a.Op == Load {
			loads++
		} else {
			stores++
		}
	}
	return
}
