package store

import (
	"context"

	"github.com/diewo77/lead-hunter/internal/models"
	"gorm.io/gorm"
)

// GroupStore reads access groups.
type GroupStore struct {
	db *gorm.DB
}

func NewGroupStore(db *gorm.DB) *GroupStore {
	return &GroupStore{db: db}
}

// List returns every group with its permission row, by name.
func (s *GroupStore) List(ctx context.Context) ([]models.AccessGroup, error) {
	var groups []models.AccessGroup
	err := s.db.WithContext(ctx).Preload("Permission").Order("name").Find(&groups).Error
	return groups, err
}

// ListWithoutPermission returns the groups that have no permission row.
func (s *GroupStore) ListWithoutPermission(ctx context.Context) ([]models.AccessGroup, error) {
	var groups []models.AccessGroup
	err := s.db.WithContext(ctx).
		Joins("LEFT JOIN permissions ON permissions.access_group_id = access_groups.id").
		Where("permissions.id IS NULL").
		Order("access_groups.name").
		Find(&groups).Error
	return groups, err
}
