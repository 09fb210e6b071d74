package models

import (
	"time"

	"github.com/diewo77/lead-hunter/gate"
	"gorm.io/gorm"
)

// AccessGroup is a named permission bundle shared by several users.
// Every group owns exactly one Permission row.
type AccessGroup struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Name        string      `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string      `gorm:"size:500" json:"description,omitempty"`
	Permission  *Permission `gorm:"foreignKey:AccessGroupID;constraint:OnDelete:CASCADE" json:"permission,omitempty"`
}

func (g *AccessGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = newID()
	}
	return nil
}

// Profile adapts the group to gate.Profile. A group whose permission row
// was not loaded (or is missing) yields nil: no granular capabilities.
func (g *AccessGroup) Profile() gate.Profile {
	if g == nil || g.Permission == nil {
		return nil
	}
	return groupProfile{group: g}
}

// Permission holds the granular capability flags of one access group.
type Permission struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	AccessGroupID string    `gorm:"uniqueIndex;size:36;not null" json:"access_group_id"`

	CanViewAllLeads  bool `gorm:"not null;default:false" json:"canViewAllLeads"`
	CanViewOwnLeads  bool `gorm:"not null;default:false" json:"canViewOwnLeads"`
	CanManageLeads   bool `gorm:"not null;default:false" json:"canManageLeads"`
	CanAssignLeads   bool `gorm:"not null;default:false" json:"canAssignLeads"`
	CanManageUsers   bool `gorm:"not null;default:false" json:"canManageUsers"`
	CanManageGroups  bool `gorm:"not null;default:false" json:"canManageGroups"`
	CanManageFolders bool `gorm:"not null;default:false" json:"canManageFolders"`
	CanViewCRM       bool `gorm:"not null;default:false" json:"canViewCRM"`
	CanViewDashboard bool `gorm:"not null;default:false" json:"canViewDashboard"`
	CanViewCosts     bool `gorm:"not null;default:false" json:"canViewCosts"`
	CanViewChat      bool `gorm:"not null;default:false" json:"canViewChat"`
	CanSearchLeads   bool `gorm:"not null;default:false" json:"canSearchLeads"`
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

// flag returns a pointer to the column backing c, or nil for unknown names.
func (p *Permission) flag(c gate.Capability) *bool {
	switch c {
	case gate.ViewAllLeads:
		return &p.CanViewAllLeads
	case gate.ViewOwnLeads:
		return &p.CanViewOwnLeads
	case gate.ManageLeads:
		return &p.CanManageLeads
	case gate.AssignLeads:
		return &p.CanAssignLeads
	case gate.ManageUsers:
		return &p.CanManageUsers
	case gate.ManageGroups:
		return &p.CanManageGroups
	case gate.ManageFolders:
		return &p.CanManageFolders
	case gate.ViewCRM:
		return &p.CanViewCRM
	case gate.ViewDashboard:
		return &p.CanViewDashboard
	case gate.ViewCosts:
		return &p.CanViewCosts
	case gate.ViewChat:
		return &p.CanViewChat
	case gate.SearchLeads:
		return &p.CanSearchLeads
	}
	return nil
}

// Has returns the value of flag c; unknown flags are false.
func (p *Permission) Has(c gate.Capability) bool {
	if f := p.flag(c); f != nil {
		return *f
	}
	return false
}

// Set changes flag c and reports whether c is a known flag.
func (p *Permission) Set(c gate.Capability, v bool) bool {
	f := p.flag(c)
	if f == nil {
		return false
	}
	*f = v
	return true
}

// NewPermission builds a bundle with the given flags enabled.
func NewPermission(caps ...gate.Capability) *Permission {
	p := &Permission{}
	for _, c := range caps {
		p.Set(c, true)
	}
	return p
}

type groupProfile struct {
	group *AccessGroup
}

func (a groupProfile) ID() string   { return a.group.ID }
func (a groupProfile) Name() string { return a.group.Name }

func (a groupProfile) Allows(c gate.Capability) bool {
	return a.group.Permission.Has(c)
}

func (a groupProfile) Capabilities() []gate.Capability {
	var out []gate.Capability
	for _, c := range gate.Capabilities() {
		if a.group.Permission.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
