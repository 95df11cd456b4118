package reg

import (
	"fmt"

	"omibyte.io/mmreg/hw"
)

// AtomicAlias holds the address offsets of a register's atomic write
// aliases. A store to plain+XOR toggles the stored mask, plain+Set sets it
// and plain+Clear clears it, all in a single bus transaction. The offsets
// are a property of the target's bus fabric (0x1000/0x2000/0x3000 on the
// RP2040 family) and come from the targets package, not from this one.
type AtomicAlias struct {
	XOR   uintptr
	Set   uintptr
	Clear uintptr
}

// register is the state shared by the RO, WO and RW variants: the resolved
// plain address, the atomic aliases if the target supports them, the reset
// value and the validated field list.
type register struct {
	bus    hw.Bus
	addr   uintptr
	reset  uint32
	atomic bool
	alias  AtomicAlias
	fields []*Field
}

// Addr returns the register's plain address.
func (r *register) Addr() uintptr { return r.addr }

// SupportsAtomicOps reports whether the register has atomic write aliases.
func (r *register) SupportsAtomicOps() bool { return r.atomic }

func (r *register) read() uint32         { return r.bus.Load(r.addr) }
func (r *register) write(v uint32)       { r.bus.Store(r.addr, v) }
func (r *register) writeXOR(mask uint32) { r.bus.Store(r.addr+r.alias.XOR, mask) }
func (r *register) writeSet(mask uint32) { r.bus.Store(r.addr+r.alias.Set, mask) }
func (r *register) writeClr(mask uint32) { r.bus.Store(r.addr+r.alias.Clear, mask) }

func (r *register) hasField(f *Field) bool {
	for _, rf := range r.fields {
		if rf == f {
			return true
		}
	}
	return false
}

// checkFields validates one operation's field arguments: every field must
// belong to the register, appear once, and have the capability the
// operation needs. Violations are definition-time errors and panic.
func (r *register) checkFields(op string, fields []*Field, need func(AccessKind) bool) {
	for i, f := range fields {
		if f == nil || !r.hasField(f) {
			panic(opErr(op, f, ErrFieldNotInRegister))
		}
		if need != nil && !need(f.kind) {
			panic(opErr(op, f, ErrPermissionViolation))
		}
		for j := 0; j < i; j++ {
			if fields[j] == f {
				panic(opErr(op, f, ErrDuplicateField))
			}
		}
	}
}

// checkBits validates bit position arguments the same way and folds them
// into one register bitmask. Two bits resolving to the same register
// position count as a duplicate even when they come from aliasing fields.
func (r *register) checkBits(op string, bits []Bit, need func(AccessKind) bool) uint32 {
	var mask uint32
	for _, b := range bits {
		if b.field == nil || !r.hasField(b.field) {
			panic(opErr(op, b.field, ErrFieldNotInRegister))
		}
		if need != nil && !need(b.field.kind) {
			panic(opErr(op, b.field, ErrPermissionViolation))
		}
		m := uint32(1) << b.position()
		if mask&m != 0 {
			panic(opErr(op, b.field, ErrDuplicateField))
		}
		mask |= m
	}
	return mask
}

func opErr(op string, f *Field, err error) error {
	name := "<nil>"
	if f != nil {
		name = f.name
	}
	return fmt.Errorf("reg: %s: field %q: %w", op, name, err)
}

// Read-side operation bodies shared by RO and RW.

func (r *register) get() uint32 { return r.read() }

func (r *register) isAnyBitSet(op string, bits []Bit) bool {
	if len(bits) == 0 {
		return r.read() != 0
	}
	mask := r.checkBits(op, bits, AccessKind.Readable)
	return r.read()&mask != 0
}

func (r *register) areAllBitsSet(op string, bits []Bit) bool {
	if len(bits) == 0 {
		return r.read() == ^uint32(0)
	}
	mask := r.checkBits(op, bits, AccessKind.Readable)
	return r.read()&mask == mask
}

func (r *register) getFields(op string, fields []*Field) Values {
	if len(fields) > maxFields {
		panic("reg: " + op + ": more fields requested than register bits")
	}
	r.checkFields(op, fields, AccessKind.Readable)
	rv := r.read()
	var vals Values
	// With a single declared field the remaining register bits are
	// reserved and read as zero, so the mask can be skipped.
	sole := len(r.fields) == 1
	for _, f := range fields {
		if sole {
			vals.add(f, f.fromRegisterUnmasked(rv))
		} else {
			vals.add(f, f.fromRegister(rv))
		}
	}
	return vals
}

// Write-side operation bodies shared by WO and RW.

func (r *register) resetOp() { r.write(r.reset) }

func (r *register) setFieldsOverwrite(op string, values []FieldValue) {
	mask, combined := r.combine(op, values)
	r.write((r.reset &^ mask) | combined)
}

func (r *register) combine(op string, values []FieldValue) (mask, combined uint32) {
	for i, v := range values {
		if v.field == nil || !r.hasField(v.field) {
			panic(opErr(op, v.field, ErrFieldNotInRegister))
		}
		if !v.field.kind.Settable() {
			panic(opErr(op, v.field, ErrPermissionViolation))
		}
		for j := 0; j < i; j++ {
			if values[j].field == v.field {
				panic(opErr(op, v.field, ErrDuplicateField))
			}
		}
		mask |= v.field.mask
		combined |= v.field.toRegister(v.value)
	}
	return mask, combined
}
