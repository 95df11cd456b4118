package reg

import "errors"

var (
	ErrFieldRange            = errors.New("field bit range exceeds the register width")
	ErrFieldResetValue       = errors.New("field reset value does not fit the field width")
	ErrFieldNotInRegister    = errors.New("field is not part of the register")
	ErrPermissionViolation   = errors.New("field access kind does not permit the operation")
	ErrDuplicateField        = errors.New("field or bit position supplied twice")
	ErrOutOfRangeBitPosition = errors.New("bit position lies outside the field")
	ErrNoFields              = errors.New("register declares no fields")
	ErrNilBus                = errors.New("register bus is nil")
	ErrRegisterAccess        = errors.New("field access kinds do not match the register variant")
)
