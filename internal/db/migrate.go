// Package db opens the database, applies the schema and seeds reference data.
package db

import (
	"errors"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/models"
	"gorm.io/gorm"
)

// Migrate runs AutoMigrate for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity & access
		&models.AccessGroup{},
		&models.Permission{},
		&models.User{},
		// Pipeline
		&models.PipelineStage{},
		&models.Lead{},
		&models.LeadAssignmentHistory{},
	)
}

// Seed initializes reference data. It is idempotent.
func Seed(db *gorm.DB) error {
	if err := SeedAccessGroups(db); err != nil {
		return err
	}
	return SeedStages(db)
}

var defaultGroups = []struct {
	Name        string
	Description string
	Caps        []gate.Capability
}{
	{
		Name:        "manager",
		Description: "Sees and distributes the whole pipeline",
		Caps: []gate.Capability{
			gate.ViewAllLeads, gate.ViewOwnLeads, gate.ManageLeads, gate.AssignLeads,
			gate.ManageFolders, gate.ViewCRM, gate.ViewDashboard, gate.ViewChat, gate.SearchLeads,
		},
	},
	{
		Name:        "seller",
		Description: "Works the leads assigned to them",
		Caps: []gate.Capability{
			gate.ViewOwnLeads, gate.ViewCRM, gate.ViewChat, gate.SearchLeads,
		},
	},
	{
		Name:        "viewer",
		Description: "Read-only access to the pipeline and dashboard",
		Caps: []gate.Capability{
			gate.ViewAllLeads, gate.ViewCRM, gate.ViewDashboard,
		},
	},
}

// SeedAccessGroups creates the default groups with their permission rows.
// Existing groups keep their flags; a group missing its row gets one.
func SeedAccessGroups(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, g := range defaultGroups {
			var group models.AccessGroup
			err := tx.Preload("Permission").Where("name = ?", g.Name).First(&group).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				group = models.AccessGroup{Name: g.Name, Description: g.Description}
				if err := tx.Create(&group).Error; err != nil {
					return err
				}
			}
			if group.Permission != nil {
				continue
			}
			perm := models.NewPermission(g.Caps...)
			perm.AccessGroupID = group.ID
			if err := tx.Create(perm).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var defaultStages = []string{"prospecting", "approach", "negotiation", "closing"}

// SeedStages creates the default pipeline stages in order.
func SeedStages(db *gorm.DB) error {
	for i, name := range defaultStages {
		stage := models.PipelineStage{Name: name, Position: i}
		if err := db.Where("name = ?", name).FirstOrCreate(&stage).Error; err != nil {
			return err
		}
	}
	return nil
}
