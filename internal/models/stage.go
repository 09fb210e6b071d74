package models

import (
	"time"

	"gorm.io/gorm"
)

// PipelineStage is one user-defined step of the sales pipeline.
// Stages are ordered by Position.
type PipelineStage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Position  int       `gorm:"not null;default:0" json:"position"`
}

func (PipelineStage) TableName() string {
	return "stages"
}

func (s *PipelineStage) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = newID()
	}
	return nil
}
