package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`

	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:30;not null" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
}
