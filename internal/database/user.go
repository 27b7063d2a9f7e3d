package database

import (
	"github.com/google/uuid"
	"github.com/patronbase/backend/internal/models"
	"gorm.io/gorm"
)

// GetUserByID returns the user with the given id, or gorm.ErrRecordNotFound.
func GetUserByID(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns the user with the given username.
func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail resolves a user through its profile's email. Email is a
// profile column, so the lookup joins profiles to users.
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.email = ? AND profiles.deleted_at IS NULL", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserWithProfile persists a user and its profile in one transaction.
// A failure on either row rolls back both.
func CreateUserWithProfile(db *gorm.DB, user *models.User, profile *models.Profile) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = &user.ID
		return tx.Create(profile).Error
	})
}

// DeleteUser removes a user together with its addresses and profile.
// The cascade runs in one transaction so a failure leaves everything intact.
func DeleteUser(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserAddress{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})
}
