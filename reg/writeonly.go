package reg

// WO is a validated register with no readable fields. All of its operations
// are single plain stores: nothing can be read back, and unread bits of a
// well-formed write-only register are zero, so no read-modify-write is ever
// needed.
type WO struct {
	register
}

// Set stores a raw register value. Most callers want SetFieldsOverwrite,
// which spells out which fields the value is made of.
func (r *WO) Set(v uint32) { r.write(v) }

// Reset stores the register's reset value.
func (r *WO) Reset() { r.resetOp() }

// SetBits stores the mask of the given bits. Bits not mentioned are written
// as zero, which on a write-only register leaves them without effect.
func (r *WO) SetBits(bits ...Bit) {
	r.write(r.checkBits("SetBits", bits, AccessKind.Settable))
}

// SetFieldsOverwrite writes the given field values and fills every other
// field with its reset value.
func (r *WO) SetFieldsOverwrite(values ...FieldValue) {
	r.setFieldsOverwrite("SetFieldsOverwrite", values)
}
