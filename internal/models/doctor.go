package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`

	SpecialtyID uint      `json:"specialty_id"`
	Specialty   Specialty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"specialty"`

	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`

	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// UserID links a login to this doctor.
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
