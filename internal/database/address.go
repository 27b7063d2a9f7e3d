package database

import (
	"github.com/google/uuid"
	"github.com/patronbase/backend/internal/models"
	"gorm.io/gorm"
)

// CreateAddress persists a new address. All location links may be unset.
func CreateAddress(db *gorm.DB, address *models.UserAddress) error {
	return db.Create(address).Error
}

// GetAddressesByUser returns all addresses belonging to a user.
func GetAddressesByUser(db *gorm.DB, userID uuid.UUID) ([]models.UserAddress, error) {
	var addresses []models.UserAddress
	err := db.Where("user_id = ?", userID).
		Preload("Country").Preload("State").Preload("City").
		Order("created_at").
		Find(&addresses).Error
	return addresses, err
}

// GetAddressByID returns a single address scoped to its owner.
func GetAddressByID(db *gorm.DB, userID, addressID uuid.UUID) (*models.UserAddress, error) {
	var address models.UserAddress
	err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// UpdateAddress saves changes to an existing address row.
func UpdateAddress(db *gorm.DB, address *models.UserAddress) error {
	return db.Save(address).Error
}

// DeleteAddress removes an address scoped to its owner. Returns
// gorm.ErrRecordNotFound when the row does not exist or belongs to
// someone else.
func DeleteAddress(db *gorm.DB, userID, addressID uuid.UUID) error {
	result := db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.UserAddress{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
