package models

// User represents an account holder. It carries credentials and display
// names only; contact and billing details live on Profile.
type User struct {
	Base
	Username  string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	FirstName string `gorm:"type:varchar(255)" json:"first_name"`
	LastName  string `gorm:"type:varchar(255)" json:"last_name"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
}
