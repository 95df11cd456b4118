package reg

// RO is a validated register whose fields are all read-only. It exposes the
// read-side operations and nothing else.
type RO struct {
	register
}

// Get returns the raw register value with a single load.
func (r *RO) Get() uint32 { return r.get() }

// IsAnyBitSet reports whether any of the given bits is set, with a single
// load. With no arguments it reports whether any register bit is set at all.
func (r *RO) IsAnyBitSet(bits ...Bit) bool { return r.isAnyBitSet("IsAnyBitSet", bits) }

// AreAllBitsSet reports whether every given bit is set, with a single load.
// With no arguments it compares the register against all-ones.
func (r *RO) AreAllBitsSet(bits ...Bit) bool { return r.areAllBitsSet("AreAllBitsSet", bits) }

// GetFields decodes the requested fields from one load of the register and
// returns them in request order.
func (r *RO) GetFields(fields ...*Field) Values { return r.getFields("GetFields", fields) }
