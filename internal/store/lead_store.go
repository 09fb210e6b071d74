package store

import (
	"context"
	"fmt"

	"github.com/diewo77/lead-hunter/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UnassignedBucket is the CountByResponsible key for leads without owner.
const UnassignedBucket = "unassigned"

// Scope narrows a lead query.
type Scope = func(*gorm.DB) *gorm.DB

// LeadStore persists leads (the companies table).
type LeadStore struct {
	db    *gorm.DB
	users *UserStore
}

func NewLeadStore(db *gorm.DB) *LeadStore {
	return &LeadStore{db: db, users: NewUserStore(db)}
}

// WithTx returns a store bound to tx.
func (s *LeadStore) WithTx(tx *gorm.DB) *LeadStore {
	return &LeadStore{db: tx, users: s.users.WithTx(tx)}
}

// Create inserts a new, unassigned lead.
func (s *LeadStore) Create(ctx context.Context, lead *models.Lead) error {
	if lead.ResponsibleID != nil {
		return ErrResponsibleOnCreate
	}
	return s.db.WithContext(ctx).Create(lead).Error
}

// GetByID returns the lead or ErrNotFound.
func (s *LeadStore) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "lead", id)
	}
	return &lead, nil
}

// GetForUpdate is GetByID taking a row lock (SELECT ... FOR UPDATE) so
// concurrent writers of the same lead queue behind the current transaction.
// SQLite has no row locks; there the single-writer pool serializes instead.
func (s *LeadStore) GetForUpdate(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "lead", id)
	}
	return &lead, nil
}

// SetResponsible writes responsible_id and nothing else: no authorization,
// no history. userID nil unassigns the lead.
func (s *LeadStore) SetResponsible(ctx context.Context, id string, userID *string) (*models.Lead, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if userID != nil {
		ok, err := s.users.Exists(ctx, *userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("responsible %s: %w", *userID, ErrInvalidReference)
		}
	}
	err := s.db.WithContext(ctx).Model(&models.Lead{}).
		Where("id = ?", id).
		Update("responsible_id", userID).Error
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// SetStatus writes the pipeline status verbatim.
func (s *LeadStore) SetStatus(ctx context.Context, id string, status models.LeadStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Lead{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListByResponsible returns the leads owned by userID, by name.
func (s *LeadStore) ListByResponsible(ctx context.Context, userID string) ([]models.Lead, error) {
	var leads []models.Lead
	err := s.db.WithContext(ctx).
		Where("responsible_id = ?", userID).
		Order("name").
		Find(&leads).Error
	return leads, err
}

// List returns leads narrowed by scopes, by name.
func (s *LeadStore) List(ctx context.Context, scopes ...Scope) ([]models.Lead, error) {
	var leads []models.Lead
	err := s.db.WithContext(ctx).Scopes(scopes...).Order("name").Find(&leads).Error
	return leads, err
}

// All returns every lead.
func (s *LeadStore) All(ctx context.Context) ([]models.Lead, error) {
	return s.List(ctx)
}

// CountByResponsible returns lead counts per owner id. Leads without owner
// are counted under UnassignedBucket. Status and stage are not looked at,
// so legacy values count like any other.
func (s *LeadStore) CountByResponsible(ctx context.Context, scopes ...Scope) (map[string]int64, error) {
	var rows []struct {
		ResponsibleID *string
		Count         int64
	}
	err := s.db.WithContext(ctx).Model(&models.Lead{}).
		Scopes(scopes...).
		Select("responsible_id, COUNT(*) AS count").
		Group("responsible_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		key := UnassignedBucket
		if r.ResponsibleID != nil {
			key = *r.ResponsibleID
		}
		out[key] += r.Count
	}
	return out, nil
}
