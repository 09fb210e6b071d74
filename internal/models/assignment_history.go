package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrHistoryImmutable is returned when something tries to rewrite the log.
var ErrHistoryImmutable = errors.New("assignment history is append-only")

// LeadAssignmentHistory records one change of a lead's responsible.
// NewUserID is nil when the lead was unassigned.
type LeadAssignmentHistory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CompanyID    string    `gorm:"size:36;not null;index" json:"company_id"`
	NewUserID    *string   `gorm:"size:36;index" json:"new_user_id"`
	AssignedByID string    `gorm:"size:36;not null;index" json:"assigned_by_id"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
}

func (h *LeadAssignmentHistory) BeforeUpdate(tx *gorm.DB) error {
	return ErrHistoryImmutable
}

func (h *LeadAssignmentHistory) BeforeDelete(tx *gorm.DB) error {
	return ErrHistoryImmutable
}

// IsUnassignment reports whether the row marks a lead becoming unassigned.
func (h *LeadAssignmentHistory) IsUnassignment() bool {
	return h.NewUserID == nil
}
