package services

import (
	"errors"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/store"
)

// Error kinds reported per item by AssignMany and used as metric labels.
const (
	KindForbidden        = "forbidden"
	KindNotFound         = "not_found"
	KindInvalidReference = "invalid_reference"
	KindInternal         = "internal"
)

// ErrorKind classifies err into one of the Kind constants.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, gate.ErrForbidden), errors.Is(err, gate.ErrUnknownCapability):
		return KindForbidden
	case errors.Is(err, store.ErrInvalidReference):
		return KindInvalidReference
	case errors.Is(err, store.ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
