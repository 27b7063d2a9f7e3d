package database

import (
	"github.com/google/uuid"
	"github.com/patronbase/backend/internal/models"
	"gorm.io/gorm"
)

// Reference-table reads. The rows are static lookup data seeded out of band.

// ListCountries returns all countries ordered by title.
func ListCountries(db *gorm.DB) ([]models.Country, error) {
	var countries []models.Country
	err := db.Order("title").Find(&countries).Error
	return countries, err
}

// ListStates returns all states ordered by title.
func ListStates(db *gorm.DB) ([]models.State, error) {
	var states []models.State
	err := db.Order("title").Find(&states).Error
	return states, err
}

// ListCities returns all cities ordered by title.
func ListCities(db *gorm.DB) ([]models.City, error) {
	var cities []models.City
	err := db.Order("title").Find(&cities).Error
	return cities, err
}

// Reference-table deletes cascade to the addresses referencing the deleted
// row. Removing a city removes every address that used it, not just the
// link. That is the current schema policy; the transaction below keeps the
// behavior identical on stores that do not enforce the FK cascade.

// DeleteCountry removes a country and the addresses referencing it.
func DeleteCountry(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("country_id = ?", id).Delete(&models.UserAddress{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Country{}).Error
	})
}

// DeleteState removes a state and the addresses referencing it.
func DeleteState(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("state_id = ?", id).Delete(&models.UserAddress{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.State{}).Error
	})
}

// DeleteCity removes a city and the addresses referencing it.
func DeleteCity(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("city_id = ?", id).Delete(&models.UserAddress{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.City{}).Error
	})
}
