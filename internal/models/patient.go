package models

import "time"

// Patient is registered by the front desk and never deleted while it has
// appointments.
type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName   string     `gorm:"size:50;not null" json:"first_name"`
	LastName    string     `gorm:"size:50;not null" json:"last_name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	Gender      string     `gorm:"size:10" json:"gender"`
	Phone       string     `gorm:"size:20;not null" json:"phone"`
	Address     string     `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
