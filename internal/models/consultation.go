package models

import "time"

type Consultation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`

	Symptoms  string `gorm:"type:text" json:"symptoms"`
	Diagnosis string `gorm:"type:text;not null" json:"diagnosis"`
	Notes     string `gorm:"type:text" json:"notes"`

	Prescriptions []Prescription `gorm:"constraint:OnDelete:CASCADE;" json:"prescriptions"`

	CreatedAt time.Time `json:"created_at"`
}

type Prescription struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ConsultationID uint `gorm:"index;not null" json:"consultation_id"`

	Medication string `gorm:"size:100;not null" json:"medication"`
	Dosage     string `gorm:"size:100" json:"dosage"`
	Duration   string `gorm:"size:100" json:"duration"`

	CreatedAt time.Time `json:"created_at"`
}
