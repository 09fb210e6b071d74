// Package store persists users, leads and the assignment log with gorm.
// Stores hold no policy: callers decide who may do what.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// notFound translates gorm's record-not-found into ErrNotFound.
func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}
