package dto

import "github.com/clinicops/clinic-scheduler/internal/models"

// VisitResultDTO is what a completed visit produced.
type VisitResultDTO struct {
	Appointment  *models.Appointment  `json:"appointment"`
	Consultation *models.Consultation `json:"consultation"`
	Invoice      *models.Invoice      `json:"invoice"`
}
