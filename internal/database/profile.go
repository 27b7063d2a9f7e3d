package database

import (
	"github.com/google/uuid"
	"github.com/patronbase/backend/internal/models"
	"gorm.io/gorm"
)

// GetProfileByUserID returns the profile attached to a user, or
// gorm.ErrRecordNotFound when the user has no profile row.
func GetProfileByUserID(db *gorm.DB, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByEmail returns the profile with the given email.
func GetProfileByEmail(db *gorm.DB, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
