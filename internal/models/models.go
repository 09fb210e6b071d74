// Package models holds the gorm models of the lead pipeline: users and their
// access groups, leads (stored as companies), pipeline stages and the
// assignment history log.
package models

import "github.com/google/uuid"

// newID returns a fresh opaque identifier for string primary keys.
func newID() string {
	return uuid.NewString()
}
