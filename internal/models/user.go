package models

import (
	"time"

	"github.com/diewo77/lead-hunter/gate"
	"gorm.io/gorm"
)

// User is an authenticated member of the sales team.
type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name      string         `gorm:"size:255" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Role      gate.Role      `gorm:"size:20;not null;default:'USER'" json:"role"`
	// AccessGroupID links the user to a permission bundle.
	// A nil value means role-only checks apply.
	AccessGroupID *string      `gorm:"size:36;index" json:"access_group_id,omitempty"`
	AccessGroup   *AccessGroup `gorm:"foreignKey:AccessGroupID" json:"access_group,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.Role == "" {
		u.Role = gate.RoleUser
	}
	return nil
}

// SubjectID implements gate.Subject.
func (u *User) SubjectID() string {
	if u == nil {
		return ""
	}
	return u.ID
}

// SubjectRole implements gate.Subject.
func (u *User) SubjectRole() gate.Role {
	if u == nil {
		return ""
	}
	return u.Role
}

// SubjectProfile implements gate.Subject. It needs AccessGroup.Permission
// preloaded; without it the user is treated as having no group.
func (u *User) SubjectProfile() gate.Profile {
	if u == nil || u.AccessGroup == nil {
		return nil
	}
	return u.AccessGroup.Profile()
}
