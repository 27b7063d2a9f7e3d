package models

import "github.com/google/uuid"

// UserAddress belongs to a user. Every location link is optional, so an
// address may be partially specified. Deleting a referenced Country, State
// or City deletes the addresses pointing at it (current schema policy).
type UserAddress struct {
	Base
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	AddressLine1 *string `gorm:"type:varchar(255)" json:"address_line1,omitempty"`
	AddressLine2 *string `gorm:"type:varchar(255)" json:"address_line2,omitempty"`
	PostalCode   *string `gorm:"type:varchar(20)" json:"postal_code,omitempty"`

	CountryID *uuid.UUID `gorm:"type:uuid" json:"country_id,omitempty"`
	Country   *Country   `gorm:"constraint:OnDelete:CASCADE" json:"country,omitempty"`
	StateID   *uuid.UUID `gorm:"type:uuid" json:"state_id,omitempty"`
	State     *State     `gorm:"constraint:OnDelete:CASCADE" json:"state,omitempty"`
	CityID    *uuid.UUID `gorm:"type:uuid" json:"city_id,omitempty"`
	City      *City      `gorm:"constraint:OnDelete:CASCADE" json:"city,omitempty"`
}
