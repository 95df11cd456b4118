package reg

import "omibyte.io/mmreg/hw"

// Builder stages a register definition. New collects the address, options
// add the reset value, atomic aliases and fields, and one of the final
// steps (ReadOnly, WriteOnly, ReadWrite) validates the whole definition and
// returns the corresponding register type. An invalid definition never
// produces a usable register.
type Builder struct {
	base   uintptr
	offset uintptr
	bus    hw.Bus
	reset  uint32
	atomic bool
	alias  AtomicAlias
	fields []*Field
}

// New starts a register definition for the register at base+offset,
// accessed through bus.
func New(base, offset uintptr, bus hw.Bus) *Builder {
	return &Builder{base: base, offset: offset, bus: bus}
}

// Reset records the register value after processor reset.
func (b *Builder) Reset(v uint32) *Builder {
	b.reset = v
	return b
}

// Atomic marks the register as reachable through the target's atomic write
// aliases at the given offsets from the plain address.
func (b *Builder) Atomic(alias AtomicAlias) *Builder {
	b.atomic = true
	b.alias = alias
	return b
}

// Fields appends field descriptors to the register definition, in layout
// order.
func (b *Builder) Fields(fields ...*Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// ReadOnly validates the definition and returns a read-only register. Every
// field must be of the read-only kind.
func (b *Builder) ReadOnly() (*RO, error) {
	r, err := b.finalize(func(k AccessKind) bool { return k == ReadOnly })
	if err != nil {
		return nil, err
	}
	return &RO{register: r}, nil
}

// WriteOnly validates the definition and returns a write-only register. No
// field may be readable: unread bits of a well-formed write-only register
// always read back as zero.
func (b *Builder) WriteOnly() (*WO, error) {
	r, err := b.finalize(func(k AccessKind) bool { return !k.Readable() })
	if err != nil {
		return nil, err
	}
	return &WO{register: r}, nil
}

// ReadWrite validates the definition and returns a read-write register,
// which accepts any mix of field kinds.
func (b *Builder) ReadWrite() (*RW, error) {
	r, err := b.finalize(nil)
	if err != nil {
		return nil, err
	}
	return &RW{register: r}, nil
}

// finalize runs the definition-time checks: a usable bus, at least one
// field, pairwise distinct fields, and field kinds admitted by the chosen
// register variant. Overlapping bit ranges between distinct fields are
// accepted on purpose; real register maps alias the same bits under
// several names.
func (b *Builder) finalize(admit func(AccessKind) bool) (register, error) {
	if b.bus == nil {
		return register{}, ErrNilBus
	}
	if len(b.fields) == 0 {
		return register{}, ErrNoFields
	}
	for i, f := range b.fields {
		if f == nil {
			return register{}, opErr("build", f, ErrFieldNotInRegister)
		}
		if admit != nil && !admit(f.kind) {
			return register{}, opErr("build", f, ErrRegisterAccess)
		}
		for j := 0; j < i; j++ {
			if b.fields[j] == f || b.fields[j].name == f.name {
				return register{}, opErr("build", f, ErrDuplicateField)
			}
		}
	}
	fields := make([]*Field, len(b.fields))
	copy(fields, b.fields)
	return register{
		bus:    b.bus,
		addr:   b.base + b.offset,
		reset:  b.reset,
		atomic: b.atomic,
		alias:  b.alias,
		fields: fields,
	}, nil
}

// MustRO panics if err is non-nil, for package-level register definitions.
func MustRO(r *RO, err error) *RO {
	if err != nil {
		panic(err)
	}
	return r
}

// MustWO panics if err is non-nil, for package-level register definitions.
func MustWO(r *WO, err error) *WO {
	if err != nil {
		panic(err)
	}
	return r
}

// MustRW panics if err is non-nil, for package-level register definitions.
func MustRW(r *RW, err error) *RW {
	if err != nil {
		panic(err)
	}
	return r
}
