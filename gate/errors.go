package gate

import "errors"

// Sentinel errors returned by Authorize.
var (
	ErrForbidden         = errors.New("forbidden")
	ErrUnknownCapability = errors.New("unknown capability")
)
