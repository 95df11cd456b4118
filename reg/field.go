package reg

import "fmt"

// Field describes one contiguous bit range inside a 32-bit register: its
// position, width, access kind and value after reset. A Field is immutable
// once created and models a fixed piece of the hardware layout, so the same
// descriptor is shared by every register operation that touches the field.
type Field struct {
	name  string
	start uint32
	width uint32
	kind  AccessKind
	reset uint32
	mask  uint32
}

// NewField creates a field descriptor covering width bits starting at bit
// position start. The reset value is the field's own value after processor
// reset, already shifted down to bit 0.
func NewField(name string, start, width uint32, kind AccessKind, reset uint32) (*Field, error) {
	if width < 1 || start >= numBits || width > numBits-start {
		return nil, fmt.Errorf("reg: field %q [%d:%d]: %w", name, start, start+width, ErrFieldRange)
	}
	if width < numBits && reset>>width != 0 {
		return nil, fmt.Errorf("reg: field %q reset %#x: %w", name, reset, ErrFieldResetValue)
	}
	return &Field{
		name:  name,
		start: start,
		width: width,
		kind:  kind,
		reset: reset,
		mask:  (^uint32(0) >> (numBits - width)) << start,
	}, nil
}

// MustField is like NewField but panics on error. It is intended for
// package-level register map definitions, usually emitted by regsgen.
func MustField(name string, start, width uint32, kind AccessKind, reset uint32) *Field {
	f, err := NewField(name, start, width, kind, reset)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Field) Name() string     { return f.name }
func (f *Field) Kind() AccessKind { return f.kind }
func (f *Field) StartBit() uint32 { return f.start }
func (f *Field) Width() uint32    { return f.width }

// Reset returns the field value after processor reset.
func (f *Field) Reset() uint32 { return f.reset }

// Bit returns a reference to bit index of the field. The index is relative
// to the field's start bit, so f.Bit(0) is register bit f.StartBit(). Bit
// panics if the index does not fit the field width; known-good positions
// should be named constants in the register map.
func (f *Field) Bit(index uint32) Bit {
	if index >= f.width {
		panic(fmt.Errorf("reg: field %q bit %d: %w", f.name, index, ErrOutOfRangeBitPosition))
	}
	return Bit{field: f, index: index}
}

// Value pairs the field with a value to be written by SetFields or
// SetFieldsOverwrite. Bits of v beyond the field width are masked off when
// the value is applied.
func (f *Field) Value(v uint32) FieldValue {
	return FieldValue{field: f, value: v}
}

// toRegister shifts and masks a field value into its register position.
func (f *Field) toRegister(v uint32) uint32 {
	return (v << f.start) & f.mask
}

// fromRegister extracts the field value from a raw register value.
func (f *Field) fromRegister(rv uint32) uint32 {
	return (rv & f.mask) >> f.start
}

// fromRegisterUnmasked extracts the field value with a plain shift. Valid
// only when the field is the sole field of its register, where all other
// bits are reserved and read as zero.
func (f *Field) fromRegisterUnmasked(rv uint32) uint32 {
	return rv >> f.start
}

// Bit identifies a single bit of a specific field. The zero Bit is invalid;
// Bits are created with Field.Bit.
type Bit struct {
	field *Field
	index uint32
}

// Field returns the field the bit belongs to.
func (b Bit) Field() *Field { return b.field }

// Index returns the bit position relative to the field's start bit.
func (b Bit) Index() uint32 { return b.index }

// position is the absolute bit position inside the register.
func (b Bit) position() uint32 { return b.field.start + b.index }

// FieldValue carries a value together with the field it belongs to, so that
// multi-field writes cannot mix up which value lands in which field.
type FieldValue struct {
	field *Field
	value uint32
}

// Field returns the field the value belongs to.
func (v FieldValue) Field() *Field { return v.field }

// Raw returns the unshifted value as passed to Field.Value.
func (v FieldValue) Raw() uint32 { return v.value }
