package services

import (
	"context"

	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/diewo77/lead-hunter/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Drift is a lead whose responsible does not match its latest history row.
type Drift struct {
	LeadID        string
	LeadName      string
	ResponsibleID *string
	// HistoryUserID is the newUserId of the latest history row; nil with
	// HasHistory false means the lead has an owner but no log at all.
	HistoryUserID *string
	HasHistory    bool
}

// AuditService reports data-integrity problems. It never repairs them.
type AuditService struct {
	leads   *store.LeadStore
	history *store.HistoryStore
	groups  *store.GroupStore
	log     *zap.Logger
}

func NewAuditService(db *gorm.DB, log *zap.Logger) *AuditService {
	return &AuditService{
		leads:   store.NewLeadStore(db),
		history: store.NewHistoryStore(db),
		groups:  store.NewGroupStore(db),
		log:     log,
	}
}

// FindOwnershipDrift lists leads whose responsible was changed outside the
// assignment engine. Unassigned leads without history are consistent.
func (s *AuditService) FindOwnershipDrift(ctx context.Context) ([]Drift, error) {
	leads, err := s.leads.All(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.history.LatestPerLead(ctx)
	if err != nil {
		return nil, err
	}

	drift := make([]Drift, 0)
	for _, l := range leads {
		h, ok := latest[l.ID]
		if !ok {
			if l.IsAssigned() {
				drift = append(drift, Drift{LeadID: l.ID, LeadName: l.Name, ResponsibleID: l.ResponsibleID})
			}
			continue
		}
		if !sameID(l.ResponsibleID, h.NewUserID) {
			drift = append(drift, Drift{
				LeadID:        l.ID,
				LeadName:      l.Name,
				ResponsibleID: l.ResponsibleID,
				HistoryUserID: h.NewUserID,
				HasHistory:    true,
			})
		}
	}
	if len(drift) > 0 {
		s.log.Warn("ownership drift detected", zap.Int("leads", len(drift)))
	}
	return drift, nil
}

// GroupsWithoutPermissions lists access groups missing their permission row.
// Users in such groups resolve to no granular capabilities.
func (s *AuditService) GroupsWithoutPermissions(ctx context.Context) ([]models.AccessGroup, error) {
	groups, err := s.groups.ListWithoutPermission(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) > 0 {
		s.log.Warn("access groups without permission row", zap.Int("groups", len(groups)))
	}
	return groups, nil
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
