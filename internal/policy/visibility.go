// Package policy decides which leads a user may see and loads the acting
// user for the capability checks in gate.
package policy

import (
	"slices"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/diewo77/lead-hunter/internal/store"
	"gorm.io/gorm"
)

// Ownable is a record with a single responsible user.
type Ownable interface {
	IsOwnedBy(userID string) bool
}

// CanViewLead reports whether user may see one lead: everything with
// canViewAllLeads, only their own with canViewOwnLeads, nothing otherwise.
func CanViewLead(user gate.Subject, lead Ownable) bool {
	if lead == nil {
		return false
	}
	if gate.CanViewAllLeads(user) {
		return true
	}
	if !gate.Can(user, gate.ViewOwnLeads) {
		return false
	}
	return lead.IsOwnedBy(user.SubjectID())
}

// VisibleLeads filters leads down to what user may see, keeping order.
// The result never shares its backing array with leads.
func VisibleLeads(user gate.Subject, leads []models.Lead) []models.Lead {
	if gate.CanViewAllLeads(user) {
		return slices.Clone(leads)
	}
	out := make([]models.Lead, 0)
	if !gate.Can(user, gate.ViewOwnLeads) {
		return out
	}
	for i := range leads {
		if CanViewLead(user, &leads[i]) {
			out = append(out, leads[i])
		}
	}
	return out
}

// VisibilityScope is VisibleLeads as a query scope, for read paths that
// filter in SQL.
func VisibilityScope(user gate.Subject) store.Scope {
	return func(db *gorm.DB) *gorm.DB {
		if gate.CanViewAllLeads(user) {
			return db
		}
		if gate.Can(user, gate.ViewOwnLeads) && user.SubjectID() != "" {
			return db.Where("responsible_id = ?", user.SubjectID())
		}
		return db.Where("1 = 0")
	}
}
