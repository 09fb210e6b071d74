package store

import (
	"context"
	"fmt"
	"time"

	"github.com/diewo77/lead-hunter/internal/models"
	"gorm.io/gorm"
)

// HistoryStore appends to and reads the lead assignment log.
// It offers no update or delete.
type HistoryStore struct {
	db *gorm.DB
}

func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// WithTx returns a store bound to tx.
func (s *HistoryStore) WithTx(tx *gorm.DB) *HistoryStore {
	return &HistoryStore{db: tx}
}

// Append writes one row. newUserID nil records an unassignment.
func (s *HistoryStore) Append(ctx context.Context, companyID string, newUserID *string, assignedByID string, at time.Time) (*models.LeadAssignmentHistory, error) {
	row := &models.LeadAssignmentHistory{
		CompanyID:    companyID,
		NewUserID:    newUserID,
		AssignedByID: assignedByID,
		CreatedAt:    at,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// ListByLead returns the rows of one lead, newest first.
func (s *HistoryStore) ListByLead(ctx context.Context, companyID string) ([]models.LeadAssignmentHistory, error) {
	var rows []models.LeadAssignmentHistory
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// Latest returns the most recent row of a lead or ErrNotFound.
func (s *HistoryStore) Latest(ctx context.Context, companyID string) (*models.LeadAssignmentHistory, error) {
	var row models.LeadAssignmentHistory
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		return nil, notFound(err, "history of lead", companyID)
	}
	return &row, nil
}

// LatestPerLead returns the most recent row of every lead that has history.
func (s *HistoryStore) LatestPerLead(ctx context.Context) (map[string]models.LeadAssignmentHistory, error) {
	latestIDs := s.db.Model(&models.LeadAssignmentHistory{}).
		Select("MAX(id)").
		Group("company_id")
	var rows []models.LeadAssignmentHistory
	if err := s.db.WithContext(ctx).Where("id IN (?)", latestIDs).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("latest history: %w", err)
	}
	out := make(map[string]models.LeadAssignmentHistory, len(rows))
	for _, r := range rows {
		out[r.CompanyID] = r
	}
	return out, nil
}

// Count returns the number of rows of a lead.
func (s *HistoryStore) Count(ctx context.Context, companyID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.LeadAssignmentHistory{}).
		Where("company_id = ?", companyID).
		Count(&n).Error
	return n, err
}
