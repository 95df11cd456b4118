package reg

import "fmt"

// maxFields caps the number of fields one GetFields call can decode. A
// 32-bit register cannot hold more distinct field requests than bits.
const maxFields = numBits

// Values is an ordered field-value map produced by one batched register
// read. It associates each requested field with the value decoded from that
// single load, in request order. Values is array-backed and lives on the
// caller's stack; it is meant to be consumed right where the read happened.
type Values struct {
	n      int
	fields [maxFields]*Field
	vals   [maxFields]uint32
}

// Len returns the number of decoded fields.
func (v Values) Len() int { return v.n }

// At returns the i-th field and its decoded value, in request order.
func (v Values) At(i int) (*Field, uint32) {
	return v.fields[i], v.vals[i]
}

// Get returns the decoded value of f and whether f was part of the read.
func (v Values) Get(f *Field) (uint32, bool) {
	for i := 0; i < v.n; i++ {
		if v.fields[i] == f {
			return v.vals[i], true
		}
	}
	return 0, false
}

// Must returns the decoded value of f and panics if f was not part of the
// read. Asking for a field that was never requested is a programming error.
func (v Values) Must(f *Field) uint32 {
	val, ok := v.Get(f)
	if !ok {
		panic(fmt.Errorf("reg: values: field %q: %w", f.Name(), ErrFieldNotInRegister))
	}
	return val
}

func (v *Values) add(f *Field, val uint32) {
	v.fields[v.n] = f
	v.vals[v.n] = val
	v.n++
}
