package db

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/config"
	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, SingleWriter(d))
	require.NoError(t, Migrate(d))
	return d
}

func TestSeedIdempotent(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, Seed(d))
	require.NoError(t, Seed(d))

	var groups, perms, stages int64
	d.Model(&models.AccessGroup{}).Count(&groups)
	d.Model(&models.Permission{}).Count(&perms)
	d.Model(&models.PipelineStage{}).Count(&stages)
	assert.EqualValues(t, len(defaultGroups), groups)
	assert.EqualValues(t, len(defaultGroups), perms, "one permission row per group")
	assert.EqualValues(t, len(defaultStages), stages)
}

func TestSeedAccessGroups_Flags(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, SeedAccessGroups(d))

	var seller models.AccessGroup
	require.NoError(t, d.Preload("Permission").Where("name = ?", "seller").First(&seller).Error)
	require.NotNil(t, seller.Permission)
	assert.True(t, seller.Permission.Has(gate.ViewOwnLeads))
	assert.False(t, seller.Permission.Has(gate.ViewAllLeads))
	assert.False(t, seller.Permission.Has(gate.AssignLeads))

	var manager models.AccessGroup
	require.NoError(t, d.Preload("Permission").Where("name = ?", "manager").First(&manager).Error)
	assert.True(t, manager.Permission.Has(gate.AssignLeads))
}

func TestSeedAccessGroups_RepairsMissingPermission(t *testing.T) {
	d := openTestDB(t)
	broken := models.AccessGroup{Name: "viewer"}
	require.NoError(t, d.Create(&broken).Error)

	require.NoError(t, SeedAccessGroups(d))

	var perm models.Permission
	require.NoError(t, d.Where("access_group_id = ?", broken.ID).First(&perm).Error)
	assert.True(t, perm.CanViewAllLeads)
}

func TestSeedStages_Order(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, SeedStages(d))

	var stages []models.PipelineStage
	require.NoError(t, d.Order("position").Find(&stages).Error)
	require.Len(t, stages, len(defaultStages))
	for i, s := range stages {
		assert.Equal(t, defaultStages[i], s.Name)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestOpen_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.db")
	d, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: path}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, Migrate(d))

	sqlDB, err := d.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}
