// Package reg models memory-mapped hardware registers as collections of
// named bit-fields with per-field access semantics.
//
// A Field describes one contiguous bit range inside a 32-bit register
// together with its access kind and reset value. Fields are defined once at
// configuration time, typically by generated code (see cmd/regsgen), and are
// never mutated afterwards. Registers are assembled from fields through a
// staged Builder whose final step validates the configuration and returns a
// distinct register type (RO, WO or RW) only on success.
//
// Every register operation issues a bounded number of bus transactions: one
// load, one store, or one load followed by one store. On targets that provide
// atomic set/clear/xor alias addresses the single-store form is preferred.
// Read-modify-write paths are NOT safe against concurrent modification of the
// register by interrupt handlers, DMA engines or other bus masters; callers
// must provide their own synchronization there.
//
// Configuration mistakes (a field that does not belong to the register, an
// operation the field's access kind does not permit, duplicated fields or bit
// positions) are programming errors, not runtime conditions. They are
// rejected at construction where possible and panic otherwise, so a correctly
// configured program never fails inside this package.
package reg
