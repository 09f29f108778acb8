package onewire

import "github.com/go-onewire/onewire/pkg/wire"

// Error, ErrorKind and the four error kinds are re-exported from pkg/wire
// so callers of this package never need to import pkg/wire directly just
// to use errors.As/errors.Is against onewire.Error.
type (
	Error     = wire.Error
	ErrorKind = wire.ErrorKind
)

const (
	WireNotHigh        = wire.WireNotHigh
	CrcMismatch        = wire.CrcMismatch
	FamilyCodeMismatch = wire.FamilyCodeMismatch
	Debug              = wire.Debug
)
