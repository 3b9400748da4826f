package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"index;not null" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient"`

	DoctorID uint   `gorm:"not null;uniqueIndex:idx_appointments_active_slot,priority:1,where:status <> 'cancelled'" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctor"`

	// Date and Time together with DoctorID form the slot.
	Date string `gorm:"column:appointment_date;size:10;not null;uniqueIndex:idx_appointments_active_slot,priority:2" json:"date"`
	Time string `gorm:"column:appointment_time;size:5;not null;uniqueIndex:idx_appointments_active_slot,priority:3" json:"time"`

	Status string `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
