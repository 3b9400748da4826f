package appointment

import (
	"context"

	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/slot"
)

type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. Returning an error rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Appointment (create / conflict) --------
	// FindActiveInSlot returns the non-cancelled appointment holding s, or nil.
	FindActiveInSlot(
		ctx context.Context,
		s slot.Slot,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// SaveTransition persists ap's new status only if the stored row is still
	// in status from.
	SaveTransition(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// -------- Consultation / Billing --------
	CreateConsultation(
		ctx context.Context,
		c *models.Consultation,
	) error

	CreatePrescription(
		ctx context.Context,
		p *models.Prescription,
	) error

	CreateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	GetConsultationByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Consultation, error)

	GetInvoiceByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Invoice, error)

	// -------- Listing --------
	ListByDoctorDate(
		ctx context.Context,
		doctorID uint,
		date string,
	) ([]models.Appointment, error)

	ListByPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	ListByStatus(
		ctx context.Context,
		status Status,
		offset int,
		limit int,
	) ([]models.Appointment, int64, error)
}
