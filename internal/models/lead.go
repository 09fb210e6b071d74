package models

import (
	"time"

	"gorm.io/gorm"
)

// LeadStatus is the coarse pipeline state of a lead.
// Legacy rows may carry free-text values outside the known set; they are
// kept as-is and treated as opaque strings.
type LeadStatus string

const (
	LeadStatusActive   LeadStatus = "ACTIVE"
	LeadStatusTriage   LeadStatus = "TRIAGE"
	LeadStatusArchived LeadStatus = "ARCHIVED"
)

// Known reports whether s is one of the current enumerated statuses.
func (s LeadStatus) Known() bool {
	switch s {
	case LeadStatusActive, LeadStatusTriage, LeadStatusArchived:
		return true
	}
	return false
}

// Lead is a prospective business tracked through the sales pipeline.
// It is stored in the companies table.
type Lead struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name   string     `gorm:"size:255;not null" json:"name"`
	Status LeadStatus `gorm:"size:50;not null;default:'TRIAGE';index" json:"status"`
	// StageID points into the ordered pipeline stages. Orphaned references
	// from older data are tolerated, so there is no foreign key.
	StageID *string `gorm:"size:36;index" json:"stage_id,omitempty"`

	// ResponsibleID is the current owner. Only the assignment service writes it.
	ResponsibleID *string `gorm:"size:36;index" json:"responsible_id,omitempty"`
	Responsible   *User   `gorm:"foreignKey:ResponsibleID" json:"responsible,omitempty"`

	FolderID *string `gorm:"size:36;index" json:"folder_id,omitempty"`

	Phone    string  `gorm:"size:50" json:"phone,omitempty"`
	Address  string  `gorm:"size:500" json:"address,omitempty"`
	Website  string  `gorm:"size:255" json:"website,omitempty"`
	Category string  `gorm:"size:100" json:"category,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
}

// TableName keeps the historical table name.
func (Lead) TableName() string {
	return "companies"
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = newID()
	}
	if l.Status == "" {
		l.Status = LeadStatusTriage
	}
	return nil
}

// GetResponsibleID returns the owner id, or "" when unassigned.
func (l *Lead) GetResponsibleID() string {
	if l.ResponsibleID == nil {
		return ""
	}
	return *l.ResponsibleID
}

// IsOwnedBy reports whether userID is the current responsible.
func (l *Lead) IsOwnedBy(userID string) bool {
	return userID != "" && l.ResponsibleID != nil && *l.ResponsibleID == userID
}

// IsAssigned returns true if the lead has a responsible.
func (l *Lead) IsAssigned() bool {
	return l.ResponsibleID != nil
}
