package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds a user's contact, billing and social-login details.
//
// UserID is nullable because the current schema allows a profile row to
// exist before it is attached to a user. CreatedBy and ModifiedBy reference
// other profile rows by id only; they are never preloaded, so the
// self-reference cannot form an ownership cycle.
type Profile struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User          *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	EmailVerified bool       `gorm:"default:false" json:"email_verified"`
	DOB           time.Time  `gorm:"type:date" json:"dob"`

	// External billing reference, stored but not integrated.
	StripeID     *string `gorm:"type:varchar(255)" json:"stripe_id,omitempty"`
	ProfileImage *string `gorm:"type:text" json:"profile_image,omitempty"`

	// Social-login columns exist in the schema; no exchange flow is wired.
	IsSocial           bool    `gorm:"default:false" json:"is_social"`
	GoogleLoginToken   *string `gorm:"type:varchar(255)" json:"-"`
	FacebookLoginToken *string `gorm:"type:varchar(255)" json:"-"`

	CreatedAt  time.Time      `json:"created_at"`
	CreatedBy  *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	ModifiedAt time.Time      `gorm:"column:modified_at;autoUpdateTime" json:"modified_at"`
	ModifiedBy *uuid.UUID     `gorm:"type:uuid" json:"modified_by,omitempty"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
