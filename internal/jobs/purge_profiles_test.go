package jobs

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/patronbase/backend/internal/database"
	"github.com/patronbase/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestPurgeDeletedProfiles(t *testing.T) {
	db := setupTestDB(t)

	old := models.Profile{
		Email:     "old@x.com",
		DeletedAt: gorm.DeletedAt{Time: time.Now().AddDate(0, 0, -60), Valid: true},
	}
	recent := models.Profile{
		Email:     "recent@x.com",
		DeletedAt: gorm.DeletedAt{Time: time.Now().AddDate(0, 0, -5), Valid: true},
	}
	live := models.Profile{Email: "live@x.com"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)
	require.NoError(t, db.Create(&live).Error)

	require.NoError(t, PurgeDeletedProfiles(db, 30))

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "only the profile past retention is purged")

	var remaining []models.Profile
	require.NoError(t, db.Unscoped().Order("email").Find(&remaining).Error)
	assert.Equal(t, "live@x.com", remaining[0].Email)
	assert.Equal(t, "recent@x.com", remaining[1].Email)
}

func TestPurgeDeletedProfilesNothingToDo(t *testing.T) {
	db := setupTestDB(t)

	live := models.Profile{Email: "live@x.com"}
	require.NoError(t, db.Create(&live).Error)

	require.NoError(t, PurgeDeletedProfiles(db, 30))

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
