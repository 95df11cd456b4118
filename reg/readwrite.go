package reg

// RW is a validated register that mixes readable and writable fields. It
// carries the full operation surface.
//
// Operations without an atomic alias fall back to a read-modify-write pair
// of bus transactions. That pair is not safe against an interrupt handler,
// DMA engine or the other core changing the register in between; callers on
// such registers must synchronize externally.
type RW struct {
	register
}

// Get returns the raw register value with a single load.
func (r *RW) Get() uint32 { return r.get() }

// IsAnyBitSet reports whether any of the given bits is set, with a single
// load. With no arguments it reports whether any register bit is set at all.
func (r *RW) IsAnyBitSet(bits ...Bit) bool { return r.isAnyBitSet("IsAnyBitSet", bits) }

// AreAllBitsSet reports whether every given bit is set, with a single load.
// With no arguments it compares the register against all-ones.
func (r *RW) AreAllBitsSet(bits ...Bit) bool { return r.areAllBitsSet("AreAllBitsSet", bits) }

// GetFields decodes the requested fields from one load of the register and
// returns them in request order.
func (r *RW) GetFields(fields ...*Field) Values { return r.getFields("GetFields", fields) }

// SetBits sets the given bits. With atomic support this is one store to the
// set alias; otherwise it is a read-modify-write.
func (r *RW) SetBits(bits ...Bit) {
	mask := r.checkBits("SetBits", bits, AccessKind.Settable)
	if r.atomic {
		r.writeSet(mask)
		return
	}
	r.write(r.read() | mask)
}

// ClearBits clears the given bits. With atomic support this is one store to
// the clear alias; otherwise it is a read-modify-write.
func (r *RW) ClearBits(bits ...Bit) {
	mask := r.checkBits("ClearBits", bits, AccessKind.BitClearable)
	if r.atomic {
		r.writeClr(mask)
		return
	}
	r.write(r.read() &^ mask)
}

// ToggleBits toggles the given bits. With atomic support this is one store
// to the xor alias; otherwise it is a read-modify-write.
func (r *RW) ToggleBits(bits ...Bit) {
	mask := r.checkBits("ToggleBits", bits, AccessKind.BitTogglable)
	if r.atomic {
		r.writeXOR(mask)
		return
	}
	r.write(r.read() ^ mask)
}

// SetFields writes the given field values and preserves the current state
// of every other bit. This is always a read-modify-write: the atomic
// aliases apply plain bitmasks and cannot place multi-bit values.
func (r *RW) SetFields(values ...FieldValue) {
	mask, combined := r.combine("SetFields", values)
	r.write((r.read() &^ mask) | combined)
}

// SetFieldsOverwrite writes the given field values and fills every other
// field from the register's reset value instead of reading the current
// state, in a single store. It is meant for one-shot initialization and
// must not be used while live state outside the given fields has to
// survive; SetFields preserves that state instead.
func (r *RW) SetFieldsOverwrite(values ...FieldValue) {
	r.setFieldsOverwrite("SetFieldsOverwrite", values)
}

// ClearFields clears the given fields using each field's own clear value:
// read-write fields are cleared with zeros, write-clear fields by writing
// ones. The atomic clear alias is only taken when every requested field is
// cleared by zeros, because a store to the clear alias forces bits to zero
// and cannot express write-clear semantics in the same transaction.
func (r *RW) ClearFields(fields ...*Field) {
	r.checkFields("ClearFields", fields, AccessKind.Clearable)
	var mask, clear uint32
	writeClear := false
	for _, f := range fields {
		mask |= f.mask
		clear |= f.toRegister(f.kind.clearValue())
		writeClear = writeClear || f.kind == WriteClear
	}
	if r.atomic && !writeClear {
		r.writeClr(mask)
		return
	}
	r.write((r.read() &^ mask) | clear)
}

// Reset stores the register's reset value, unconditionally.
func (r *RW) Reset() { r.resetOp() }
