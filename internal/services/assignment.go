// Package services holds the operations callers use: the assignment engine,
// visibility-aware lead reads and the ownership audit.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/metrics"
	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/diewo77/lead-hunter/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// AssignmentService is the only writer of a lead's responsible. Every change
// is stored together with one history row in a single transaction.
type AssignmentService struct {
	db          *gorm.DB
	leads       *store.LeadStore
	history     *store.HistoryStore
	log         *zap.Logger
	concurrency int
}

// NewAssignmentService builds the engine. concurrency bounds AssignMany;
// values below 1 mean one item at a time.
func NewAssignmentService(db *gorm.DB, log *zap.Logger, concurrency int) *AssignmentService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AssignmentService{
		db:          db,
		leads:       store.NewLeadStore(db),
		history:     store.NewHistoryStore(db),
		log:         log,
		concurrency: concurrency,
	}
}

// Assign makes newResponsibleID the owner of the lead (nil unassigns it) and
// optionally moves it to newStatus. It fails with gate.ErrForbidden when the
// actor may not assign leads, store.ErrNotFound for an unknown lead and
// store.ErrInvalidReference for an unknown target user. On failure nothing
// is written.
func (s *AssignmentService) Assign(ctx context.Context, actor gate.Subject, leadID string, newResponsibleID *string, newStatus *models.LeadStatus) (*models.Lead, error) {
	start := time.Now()
	lead, err := s.assign(ctx, actor, leadID, newResponsibleID, newStatus)
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = ErrorKind(err)
	}
	metrics.ObserveAssignment(outcome, time.Since(start))
	if err != nil {
		s.log.Warn("lead assignment failed",
			zap.String("lead_id", leadID),
			zap.String("assigned_by", subjectID(actor)),
			zap.String("kind", outcome),
			zap.Error(err),
		)
		return nil, err
	}
	s.log.Info("lead assigned",
		zap.String("lead_id", leadID),
		zap.String("responsible_id", lead.GetResponsibleID()),
		zap.String("assigned_by", actor.SubjectID()),
	)
	return lead, nil
}

func (s *AssignmentService) assign(ctx context.Context, actor gate.Subject, leadID string, newResponsibleID *string, newStatus *models.LeadStatus) (*models.Lead, error) {
	if err := gate.Authorize(actor, gate.AssignLeads); err != nil {
		return nil, fmt.Errorf("assign lead %s: %w", leadID, err)
	}

	var lead *models.Lead
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		leads := s.leads.WithTx(tx)
		if _, err := leads.GetForUpdate(ctx, leadID); err != nil {
			return err
		}
		if newStatus != nil {
			if err := leads.SetStatus(ctx, leadID, *newStatus); err != nil {
				return err
			}
		}
		updated, err := leads.SetResponsible(ctx, leadID, newResponsibleID)
		if err != nil {
			return err
		}
		if _, err := s.history.WithTx(tx).Append(ctx, leadID, newResponsibleID, actor.SubjectID(), time.Now()); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		lead = updated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assign lead %s: %w", leadID, err)
	}
	return lead, nil
}

// Unassign clears the lead's responsible and logs a history row with no new
// user.
func (s *AssignmentService) Unassign(ctx context.Context, actor gate.Subject, leadID string) (*models.Lead, error) {
	return s.Assign(ctx, actor, leadID, nil, nil)
}

// BatchFailure is one lead AssignMany could not update.
type BatchFailure struct {
	ID   string
	Kind string
	Err  error
}

// BatchResult is the outcome of AssignMany, each list in input order.
// A non-empty Failed list is a partial failure, not an error.
type BatchResult struct {
	Succeeded []models.Lead
	Failed    []BatchFailure
}

// AssignMany runs Assign for every id, each in its own transaction and at
// most concurrency at a time. One item failing does not roll back the others.
func (s *AssignmentService) AssignMany(ctx context.Context, actor gate.Subject, leadIDs []string, newResponsibleID *string) BatchResult {
	type outcome struct {
		lead *models.Lead
		err  error
	}
	results := make([]outcome, len(leadIDs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range leadIDs {
		g.Go(func() error {
			lead, err := s.Assign(ctx, actor, id, newResponsibleID, nil)
			results[i] = outcome{lead: lead, err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := BatchResult{
		Succeeded: make([]models.Lead, 0, len(leadIDs)),
		Failed:    make([]BatchFailure, 0),
	}
	for i, r := range results {
		if r.err != nil {
			kind := ErrorKind(r.err)
			metrics.ObserveBulkItem(kind)
			res.Failed = append(res.Failed, BatchFailure{ID: leadIDs[i], Kind: kind, Err: r.err})
			continue
		}
		metrics.ObserveBulkItem(metrics.OutcomeOK)
		res.Succeeded = append(res.Succeeded, *r.lead)
	}
	s.log.Info("bulk assignment done",
		zap.Int("succeeded", len(res.Succeeded)),
		zap.Int("failed", len(res.Failed)),
		zap.String("assigned_by", subjectID(actor)),
	)
	return res
}

func subjectID(s gate.Subject) string {
	if s == nil {
		return ""
	}
	return s.SubjectID()
}
