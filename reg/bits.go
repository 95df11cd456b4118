package reg

// numBits is the width of every register handled by this package.
const numBits = 32

// MaskOf returns the bitmask with a 1 at every given register bit position.
// MaskOf panics if a position is not below the register width.
func MaskOf(positions ...uint32) uint32 {
	var mask uint32
	for _, p := range positions {
		if p >= numBits {
			panic("reg: bit position out of range")
		}
		mask |= 1 << p
	}
	return mask
}
