// Package hw provides the bus access layer for memory-mapped registers.
package hw

import (
	"sync/atomic"
	"unsafe"
)

// Bus issues 32-bit loads and stores at absolute addresses. Implementations
// must perform every access exactly once, in program order, without caching
// or coalescing: register reads have side effects and register writes must
// reach the hardware.
type Bus interface {
	Load(addr uintptr) uint32
	Store(addr uintptr, v uint32)
}

// MMIO accesses physical memory-mapped registers. Loads and stores go
// through sync/atomic so the compiler can neither elide nor reorder them,
// which is the closest mainstream Go gets to a volatile access.
type MMIO struct{}

func (MMIO) Load(addr uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (MMIO) Store(addr uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}
