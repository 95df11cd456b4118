package reg

// AccessKind classifies how a field may be accessed by software.
type AccessKind uint8

const (
	// ReadOnly fields can never be written.
	ReadOnly AccessKind = iota
	// WriteOnly fields can be written but read back as zero.
	WriteOnly
	// ReadWrite fields support every operation.
	ReadWrite
	// SelfClearing fields may be set to trigger an action; the hardware
	// clears them again once the action completes, so software can read
	// and set them but never clear them.
	SelfClearing
	// WriteClear fields are cleared by writing a 1, not a 0.
	WriteClear
)

// Readable reports whether the field value can be loaded from the register.
func (k AccessKind) Readable() bool {
	return k == ReadOnly || k == ReadWrite || k == SelfClearing
}

// Settable reports whether bits of the field can be set by writing a 1.
func (k AccessKind) Settable() bool {
	return k != ReadOnly
}

// Clearable reports whether the field as a whole can be cleared. Write-clear
// fields are clearable by writing a 1, read-write fields by writing a 0.
func (k AccessKind) Clearable() bool {
	return k == ReadWrite || k == WriteClear
}

// BitClearable reports whether individual bits can be cleared by writing a 0.
func (k AccessKind) BitClearable() bool {
	return k == ReadWrite
}

// BitTogglable reports whether individual bits can be toggled.
func (k AccessKind) BitTogglable() bool {
	return k == ReadWrite
}

// clearValue is the field value that clears the field. Write-clear hardware
// wants a 1; everything clearable by software takes a 0.
func (k AccessKind) clearValue() uint32 {
	if k == WriteClear {
		return 1
	}
	return 0
}

func (k AccessKind) String() string {
	switch k {
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	case ReadWrite:
		return "read-write"
	case SelfClearing:
		return "self-clearing"
	case WriteClear:
		return "write-clear"
	}
	return "unknown"
}

// DeriveAccess classifies a register by the capabilities of its fields: a
// register with both readable and settable fields is read-write, one with
// only readable fields is read-only, and everything else is write-only.
// The code generator uses this to pick the register variant to emit.
func DeriveAccess(kinds []AccessKind) AccessKind {
	var readable, settable bool
	for _, k := range kinds {
		readable = readable || k.Readable()
		settable = settable || k.Settable()
	}
	switch {
	case readable && settable:
		return ReadWrite
	case readable:
		return ReadOnly
	default:
		return WriteOnly
	}
}
