package reg

import (
	"errors"
	"testing"

	"omibyte.io/mmreg/hw/hwtest"
)

const (
	testBase   uintptr = 0x40000000
	testOffset uintptr = 0x10
	testPlain          = testBase + testOffset
)

var rp2040Alias = AtomicAlias{XOR: 0x1000, Set: 0x2000, Clear: 0x3000}

func mustPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panicked with %v, want %v", r, want)
		}
	}()
	fn()
}

func buildRW(t *testing.T, bus *hwtest.Bus, atomic bool, reset uint32, fields ...*Field) *RW {
	t.Helper()
	b := New(testBase, testOffset, bus).Reset(reset).Fields(fields...)
	if atomic {
		b = b.Atomic(rp2040Alias)
	}
	r, err := b.ReadWrite()
	if err != nil {
		t.Fatalf("ReadWrite: %v", err)
	}
	return r
}

func TestGetFieldsScenario(t *testing.T) {
	// Field A bits [0,4) read-write, field B bits [4,8) read-only with
	// reset 0xA. Raw register value 0xA3 decodes to A=0x3, B=0xA.
	a := MustField("A", 0, 4, ReadWrite, 0)
	b := MustField("B", 4, 4, ReadOnly, 0xA)

	bus := hwtest.NewBus()
	r := buildRW(t, bus, false, 0xA0, a, b)
	bus.Poke(testPlain, 0xA3)

	vals := r.GetFields(a, b)
	if got := vals.Must(a); got != 0x3 {
		t.Errorf("A = %#x, want 0x3", got)
	}
	if got := vals.Must(b); got != 0xA {
		t.Errorf("B = %#x, want 0xA", got)
	}
	if loads, stores := bus.Counts(); loads != 1 || stores != 0 {
		t.Errorf("bus traffic = %d loads, %d stores; want exactly one load", loads, stores)
	}
}

func TestGetFieldsSoleFieldUnmasked(t *testing.T) {
	f := MustField("ONLY", 8, 8, ReadOnly, 0)
	bus := hwtest.NewBus()
	b := New(testBase, testOffset, bus).Fields(f)
	r, err := b.ReadOnly()
	if err != nil {
		t.Fatalf("ReadOnly: %v", err)
	}
	bus.Poke(testPlain, 0xAB00)
	if got := r.GetFields(f).Must(f); got != 0xAB {
		t.Errorf("sole field = %#x, want 0xAB", got)
	}
}

func TestSetFieldsPreservesOtherBits(t *testing.T) {
	a := MustField("A", 0, 4, ReadWrite, 0)
	b := MustField("B", 8, 4, ReadWrite, 0)
	c := MustField("C", 16, 8, ReadWrite, 0)

	bus := hwtest.NewBus()
	r := buildRW(t, bus, false, 0, a, b, c)
	bus.Poke(testPlain, 0xDEAD0F0F)

	r.SetFields(a.Value(0x5), b.Value(0xC))

	vals := r.GetFields(a, b)
	if got := vals.Must(a); got != 0x5 {
		t.Errorf("A = %#x, want 0x5", got)
	}
	if got := vals.Must(b); got != 0xC {
		t.Errorf("B = %#x, want 0xC", got)
	}
	// Bits outside A and B keep their previous state.
	want := uint32(0xDEAD0F0F)&^(a.mask|b.mask) | 0x5 | 0xC<<8
	if got := bus.Peek(testPlain); got != want {
		t.Errorf("register = %#x, want %#x", got, want)
	}
}

func TestSetFieldsMasksOversizedValue(t *testing.T) {
	a := MustField("A", 4, 4, ReadWrite, 0)
	pad := MustField("PAD", 8, 4, ReadWrite, 0)
	bus := hwtest.NewBus()
	r := buildRW(t, bus, false, 0, a, pad)

	r.SetFields(a.Value(0x1F5)) // only the low 4 bits land in the field
	if got := bus.Peek(testPlain); got != 0x50 {
		t.Errorf("register = %#x, want 0x50", got)
	}
}

func TestSetFieldsOverwrite(t *testing.T) {
	// Fields not named in the call are synthesized from the reset value,
	// not from the current register state.
	a := MustField("A", 0, 4, ReadWrite, 0x0)
	b := MustField("B", 4, 4, ReadWrite, 0x9)

	bus := hwtest.NewBus()
	r := buildRW(t, bus, false, 0x90, a, b)

	r.SetFieldsOverwrite(a.Value(0x7))
	if got := bus.Peek(testPlain); got != 0x97 {
		t.Errorf("register = %#x, want 0x97", got)
	}
	if loads, stores := bus.Counts(); loads != 0 || stores != 1 {
		t.Errorf("bus traffic = %d loads, %d stores; want a single store", loads, stores)
	}
}

func TestSetBits(t *testing.T) {
	f := MustField("F", 0, 8, ReadWrite, 0)

	t.Run("atomic", func(t *testing.T) {
		bus := hwtest.NewAliasBus()
		r := buildRW(t, bus, true, 0, f)
		r.SetBits(f.Bit(0), f.Bit(3))

		log := bus.Log()
		if len(log) != 1 || log[0].Op != hwtest.Store || log[0].Addr != testPlain+0x2000 {
			t.Fatalf("access log = %v, want one store to the set alias", log)
		}
		if got := bus.Peek(testPlain); got != 0x9 {
			t.Errorf("register = %#x, want 0x9", got)
		}
	})

	t.Run("readModifyWrite", func(t *testing.T) {
		bus := hwtest.NewBus()
		r := buildRW(t, bus, false, 0, f)
		bus.Poke(testPlain, 0x10)
		r.SetBits(f.Bit(0), f.Bit(3))

		if got := bus.Peek(testPlain); got != 0x19 {
			t.Errorf("register = %#x, want 0x19", got)
		}
		if loads, stores := bus.Counts(); loads != 1 || stores != 1 {
			t.Errorf("bus traffic = %d loads, %d stores; want one of each", loads, stores)
		}
	})
}

func TestClearBits(t *testing.T) {
	f := MustField("F", 0, 8, ReadWrite, 0)

	t.Run("atomic", func(t *testing.T) {
		bus := hwtest.NewAliasBus()
		r := buildRW(t, bus, true, 0, f)
		bus.Poke(testPlain, 0xFF)
		r.ClearBits(f.Bit(1), f.Bit(2))

		log := bus.Log()
		if len(log) != 1 || log[0].Addr != testPlain+0x3000 {
			t.Fatalf("access log = %v, want one store to the clear alias", log)
		}
		if got := bus.Peek(testPlain); got != 0xF9 {
			t.Errorf("register = %#x, want 0xF9", got)
		}
	})

	t.Run("readModifyWrite", func(t *testing.T) {
		bus := hwtest.NewBus()
		r := buildRW(t, bus, false, 0, f)
		bus.Poke(testPlain, 0xFF)
		r.ClearBits(f.Bit(1), f.Bit(2))
		if got := bus.Peek(testPlain); got != 0xF9 {
			t.Errorf("register = %#x, want 0xF9", got)
		}
	})
}

func TestToggleBitsSelfInverse(t *testing.T) {
	f := MustField("F", 0, 8, ReadWrite, 0)

	for _, atomic := range []bool{true, false} {
		name := "readModifyWrite"
		bus := hwtest.NewBus()
		if atomic {
			name = "atomic"
			bus = hwtest.NewAliasBus()
		}
		t.Run(name, func(t *testing.T) {
			r := buildRW(t, bus, atomic, 0, f)
			bus.Poke(testPlain, 0xA5)

			r.ToggleBits(f.Bit(0), f.Bit(7))
			if got := bus.Peek(testPlain); got == 0xA5 {
				t.Fatal("toggle had no effect")
			}
			r.ToggleBits(f.Bit(0), f.Bit(7))
			if got := bus.Peek(testPlain); got != 0xA5 {
				t.Errorf("double toggle = %#x, want 0xA5", got)
			}
			if atomic {
				if log := bus.Log(); log[0].Addr != testPlain+0x1000 {
					t.Errorf("store went to %#x, want the xor alias", log[0].Addr)
				}
			}
		})
	}
}

func TestClearFields(t *testing.T) {
	t.Run("writeClearUsesPlainAddress", func(t *testing.T) {
		// A write-clear field is cleared by storing a 1 through the
		// plain address even when an atomic clear alias exists.
		c := MustField("C", 28, 4, WriteClear, 0)
		pad := MustField("PAD", 0, 4, ReadWrite, 0)
		bus := hwtest.NewAliasBus()
		r := buildRW(t, bus, true, 0, c, pad)

		r.ClearFields(c)

		log := bus.Log()
		store := log[len(log)-1]
		if store.Addr != testPlain {
			t.Fatalf("store went to %#x, want the plain address %#x", store.Addr, testPlain)
		}
		if store.Value != 1<<28 {
			t.Errorf("stored %#x, want %#x", store.Value, uint32(1)<<28)
		}
	})

	t.Run("mixedSetRoutesPlain", func(t *testing.T) {
		c := MustField("C", 28, 4, WriteClear, 0)
		d := MustField("D", 0, 4, ReadWrite, 0)
		bus := hwtest.NewAliasBus()
		r := buildRW(t, bus, true, 0, c, d)
		bus.Poke(testPlain, 0xF000000F)

		r.ClearFields(c, d)

		log := bus.Log()
		store := log[len(log)-1]
		if store.Addr != testPlain {
			t.Fatalf("store went to %#x, want the plain address", store.Addr)
		}
		// D cleared with zeros, C written with its clear value of 1.
		if store.Value != 1<<28 {
			t.Errorf("stored %#x, want %#x", store.Value, uint32(1)<<28)
		}
	})

	t.Run("atomicEligible", func(t *testing.T) {
		d := MustField("D", 0, 4, ReadWrite, 0)
		e := MustField("E", 8, 4, ReadWrite, 0)
		bus := hwtest.NewAliasBus()
		r := buildRW(t, bus, true, 0, d, e)
		bus.Poke(testPlain, 0xF0F)

		r.ClearFields(d, e)

		log := bus.Log()
		if len(log) != 1 || log[0].Addr != testPlain+0x3000 {
			t.Fatalf("access log = %v, want one store to the clear alias", log)
		}
		if got := bus.Peek(testPlain); got != 0 {
			t.Errorf("register = %#x, want 0", got)
		}
	})

	t.Run("noAtomicMixed", func(t *testing.T) {
		c := MustField("C", 16, 1, WriteClear, 0)
		d := MustField("D", 0, 8, ReadWrite, 0)
		bus := hwtest.NewBus()
		r := buildRW(t, bus, false, 0, c, d)
		bus.Poke(testPlain, 0x100FF)

		r.ClearFields(c, d)
		if got := bus.Peek(testPlain); got != 0x10000 {
			t.Errorf("register = %#x, want 0x10000", got)
		}
	})
}

func TestReset(t *testing.T) {
	f := MustField("F", 0, 8, ReadWrite, 0x45)
	bus := hwtest.NewBus()
	r := buildRW(t, bus, false, 0x45, f)
	bus.Poke(testPlain, 0xFF)

	r.Reset()
	if got := bus.Peek(testPlain); got != 0x45 {
		t.Errorf("register = %#x, want 0x45", got)
	}
	if loads, stores := bus.Counts(); loads != 0 || stores != 1 {
		t.Errorf("bus traffic = %d loads, %d stores; want a single store", loads, stores)
	}
}

func TestBitPredicates(t *testing.T) {
	f := MustField("F", 0, 8, ReadWrite, 0)
	bus := hwtest.NewBus()
	r := buildRW(t, bus, false, 0, f)
	bus.Poke(testPlain, 0x06)

	if !r.IsAnyBitSet(f.Bit(1), f.Bit(5)) {
		t.Error("IsAnyBitSet = false, want true")
	}
	if r.IsAnyBitSet(f.Bit(0), f.Bit(5)) {
		t.Error("IsAnyBitSet = true, want false")
	}
	if !r.AreAllBitsSet(f.Bit(1), f.Bit(2)) {
		t.Error("AreAllBitsSet = false, want true")
	}
	if r.AreAllBitsSet(f.Bit(1), f.Bit(3)) {
		t.Error("AreAllBitsSet = true, want false")
	}

	// Zero-argument forms look at the whole register.
	if !r.IsAnyBitSet() {
		t.Error("IsAnyBitSet() = false, want true")
	}
	if r.AreAllBitsSet() {
		t.Error("AreAllBitsSet() = true, want false")
	}
	bus.Poke(testPlain, 0xFFFFFFFF)
	if !r.AreAllBitsSet() {
		t.Error("AreAllBitsSet() = false, want true on all-ones")
	}
}

func TestWriteOnlyRegister(t *testing.T) {
	f := MustField("F", 0, 30, WriteOnly, 0)
	bus := hwtest.NewBus()
	r, err := New(testBase, testOffset, bus).Fields(f).WriteOnly()
	if err != nil {
		t.Fatalf("WriteOnly: %v", err)
	}

	r.SetBits(f.Bit(25))
	if got := bus.Peek(testPlain); got != 1<<25 {
		t.Errorf("register = %#x, want %#x", got, uint32(1)<<25)
	}
	if loads, stores := bus.Counts(); loads != 0 || stores != 1 {
		t.Errorf("bus traffic = %d loads, %d stores; want a single plain store", loads, stores)
	}

	r.Set(0xABCD)
	if got := bus.Peek(testPlain); got != 0xABCD {
		t.Errorf("register = %#x, want 0xABCD", got)
	}
}

func TestBuilderValidation(t *testing.T) {
	ro := MustField("RO", 0, 4, ReadOnly, 0)
	rw := MustField("RW", 4, 4, ReadWrite, 0)
	sc := MustField("SC", 8, 1, SelfClearing, 0)
	bus := hwtest.NewBus()

	t.Run("nilBus", func(t *testing.T) {
		if _, err := New(testBase, testOffset, nil).Fields(rw).ReadWrite(); !errors.Is(err, ErrNilBus) {
			t.Errorf("error = %v, want ErrNilBus", err)
		}
	})

	t.Run("noFields", func(t *testing.T) {
		if _, err := New(testBase, testOffset, bus).ReadWrite(); !errors.Is(err, ErrNoFields) {
			t.Errorf("error = %v, want ErrNoFields", err)
		}
	})

	t.Run("duplicateField", func(t *testing.T) {
		if _, err := New(testBase, testOffset, bus).Fields(rw, rw).ReadWrite(); !errors.Is(err, ErrDuplicateField) {
			t.Errorf("error = %v, want ErrDuplicateField", err)
		}
	})

	t.Run("duplicateName", func(t *testing.T) {
		other := MustField("RW", 8, 4, ReadWrite, 0)
		if _, err := New(testBase, testOffset, bus).Fields(rw, other).ReadWrite(); !errors.Is(err, ErrDuplicateField) {
			t.Errorf("error = %v, want ErrDuplicateField", err)
		}
	})

	t.Run("readOnlyRejectsWritable", func(t *testing.T) {
		if _, err := New(testBase, testOffset, bus).Fields(ro, rw).ReadOnly(); !errors.Is(err, ErrRegisterAccess) {
			t.Errorf("error = %v, want ErrRegisterAccess", err)
		}
	})

	t.Run("writeOnlyRejectsReadable", func(t *testing.T) {
		// Self-clearing fields read back, so they cannot live in a
		// write-only register.
		if _, err := New(testBase, testOffset, bus).Fields(sc).WriteOnly(); !errors.Is(err, ErrRegisterAccess) {
			t.Errorf("error = %v, want ErrRegisterAccess", err)
		}
	})

	t.Run("overlapAccepted", func(t *testing.T) {
		// Overlapping ranges model hardware that aliases the same bits
		// under several names.
		alias := MustField("ALIAS", 0, 8, ReadWrite, 0)
		if _, err := New(testBase, testOffset, bus).Fields(ro, rw, alias).ReadWrite(); err != nil {
			t.Errorf("overlapping fields rejected: %v", err)
		}
	})
}

func TestOperationContractPanics(t *testing.T) {
	ro := MustField("RO", 0, 4, ReadOnly, 0)
	rw := MustField("RW", 4, 4, ReadWrite, 0)
	wo := MustField("WO", 8, 4, WriteOnly, 0)
	stranger := MustField("STRANGER", 12, 4, ReadWrite, 0)

	bus := hwtest.NewBus()
	r := buildRW(t, bus, false, 0, ro, rw, wo)

	t.Run("fieldNotInRegister", func(t *testing.T) {
		mustPanic(t, ErrFieldNotInRegister, func() { r.GetFields(stranger) })
		mustPanic(t, ErrFieldNotInRegister, func() { r.SetFields(stranger.Value(1)) })
		mustPanic(t, ErrFieldNotInRegister, func() { r.SetBits(stranger.Bit(0)) })
	})

	t.Run("permissionViolation", func(t *testing.T) {
		mustPanic(t, ErrPermissionViolation, func() { r.GetFields(wo) })
		mustPanic(t, ErrPermissionViolation, func() { r.SetFields(ro.Value(1)) })
		mustPanic(t, ErrPermissionViolation, func() { r.SetBits(ro.Bit(0)) })
		mustPanic(t, ErrPermissionViolation, func() { r.ClearBits(wo.Bit(0)) })
		mustPanic(t, ErrPermissionViolation, func() { r.ToggleBits(wo.Bit(0)) })
		mustPanic(t, ErrPermissionViolation, func() { r.ClearFields(wo) })
	})

	t.Run("duplicate", func(t *testing.T) {
		mustPanic(t, ErrDuplicateField, func() { r.GetFields(ro, ro) })
		mustPanic(t, ErrDuplicateField, func() { r.SetFields(rw.Value(1), rw.Value(2)) })
		mustPanic(t, ErrDuplicateField, func() { r.SetBits(rw.Bit(1), rw.Bit(1)) })
	})
}
