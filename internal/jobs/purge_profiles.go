package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/patronbase/backend/internal/models"
	"gorm.io/gorm"
)

// SchedulePurgeDeletedProfiles registers a daily job that removes
// soft-deleted profiles once they are past the retention window.
func SchedulePurgeDeletedProfiles(scheduler *gocron.Scheduler, db *gorm.DB, retentionDays int) error {
	_, err := scheduler.Every(1).Day().At("03:00").Do(func() {
		if err := PurgeDeletedProfiles(db, retentionDays); err != nil {
			log.Printf("profile purge failed: %v", err)
		}
	})
	return err
}

// PurgeDeletedProfiles hard-deletes profiles whose soft-delete timestamp is
// older than retentionDays.
func PurgeDeletedProfiles(db *gorm.DB, retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	result := db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("purged %d soft-deleted profiles", result.RowsAffected)
	}
	return nil
}
