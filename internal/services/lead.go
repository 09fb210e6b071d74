package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/diewo77/lead-hunter/internal/policy"
	"github.com/diewo77/lead-hunter/internal/store"
	"gorm.io/gorm"
)

// LeadService serves lead reads filtered by what the actor may see.
type LeadService struct {
	leads   *store.LeadStore
	users   *store.UserStore
	history *store.HistoryStore
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{
		leads:   store.NewLeadStore(db),
		users:   store.NewUserStore(db),
		history: store.NewHistoryStore(db),
	}
}

// ListVisible returns the leads actor may see, by name.
func (s *LeadService) ListVisible(ctx context.Context, actor gate.Subject) ([]models.Lead, error) {
	return s.leads.List(ctx, policy.VisibilityScope(actor))
}

// Get returns one lead. Leads the actor may not see are reported as
// store.ErrNotFound so their existence is not leaked.
func (s *LeadService) Get(ctx context.Context, actor gate.Subject, id string) (*models.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewLead(actor, lead) {
		return nil, fmt.Errorf("lead %s: %w", id, store.ErrNotFound)
	}
	return lead, nil
}

// History returns the assignment log of a visible lead, newest first.
func (s *LeadService) History(ctx context.Context, actor gate.Subject, id string) ([]models.LeadAssignmentHistory, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.history.ListByLead(ctx, id)
}

// WorkloadRow is the number of visible leads one user is responsible for.
// The unassigned row has ResponsibleID store.UnassignedBucket and no name.
type WorkloadRow struct {
	ResponsibleID string
	Name          string
	Email         string
	Leads         int64
}

// Workload counts the actor's visible leads per responsible, busiest first.
// It needs canViewDashboard.
func (s *LeadService) Workload(ctx context.Context, actor gate.Subject) ([]WorkloadRow, error) {
	if err := gate.Authorize(actor, gate.ViewDashboard); err != nil {
		return nil, fmt.Errorf("workload: %w", err)
	}
	counts, err := s.leads.CountByResponsible(ctx, policy.VisibilityScope(actor))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		if id != store.UnassignedBucket {
			ids = append(ids, id)
		}
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]WorkloadRow, 0, len(counts))
	for id, n := range counts {
		row := WorkloadRow{ResponsibleID: id, Leads: n}
		if u, ok := users[id]; ok {
			row.Name = u.Name
			row.Email = u.Email
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Leads != rows[j].Leads {
			return rows[i].Leads > rows[j].Leads
		}
		return rows[i].ResponsibleID < rows[j].ResponsibleID
	})
	return rows, nil
}
