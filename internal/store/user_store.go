package store

import (
	"context"
	"fmt"

	"github.com/diewo77/lead-hunter/internal/models"
	"gorm.io/gorm"
)

// UserStore reads users with their access group and permission bundle.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// WithTx returns a store bound to tx.
func (s *UserStore) WithTx(tx *gorm.DB) *UserStore {
	return &UserStore{db: tx}
}

// GetByID loads a user with AccessGroup.Permission preloaded.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Preload("AccessGroup.Permission").First(&u, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

// GetByEmail loads a user by email with AccessGroup.Permission preloaded.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Preload("AccessGroup.Permission").First(&u, "email = ?", email).Error
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return &u, nil
}

// Exists reports whether id resolves to a live (not soft-deleted) user.
func (s *UserStore) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a user. Registration and role edits live outside this module;
// this is used by seeding and tests.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

// ListByIDs returns the users among ids that exist, keyed by id.
func (s *UserStore) ListByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// IDByEmail returns the id of the live user with email.
func (s *UserStore) IDByEmail(ctx context.Context, email string) (string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return ids[0], nil
}
