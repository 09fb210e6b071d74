package store

import "errors"

// Sentinel errors returned by the stores.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	// ErrResponsibleOnCreate rejects leads created with an owner: ownership
	// only changes through the assignment service so it is always logged.
	ErrResponsibleOnCreate = errors.New("lead must be created unassigned")
)
