package models

// Country, State and City are flat reference tables populated out of band.
// There is no hierarchy between them in the current schema: a State does not
// reference a Country, so addresses link each level independently.

// Country is a lookup row with a display title and a short code.
type Country struct {
	Base
	Title string `gorm:"type:varchar(255);not null" json:"title"`
	Code  string `gorm:"type:varchar(3);not null" json:"code"`
}

// State is a lookup row for a state or province.
type State struct {
	Base
	Title string `gorm:"type:varchar(255);not null" json:"title"`
	Code  string `gorm:"type:varchar(3);not null" json:"code"`
}

// City is a lookup row for a city.
type City struct {
	Base
	Title string `gorm:"type:varchar(255);not null" json:"title"`
	Code  string `gorm:"type:varchar(3);not null" json:"code"`
}
