package directory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/clinicops/clinic-scheduler/internal/models"
)

// Store is the read side the scheduling core depends on. Missing rows are
// reported as apperr not_found, store failures as apperr persistence.
type Store interface {
	GetDoctor(ctx context.Context, id uint) (*models.Doctor, error)
	GetPatient(ctx context.Context, id uint) (*models.Patient, error)
}

// Registry is the full directory used by registration and reference reads.
type Registry interface {
	Store

	CreatePatient(ctx context.Context, p *models.Patient) error
	ListPatients(ctx context.Context, search string, limit int) ([]models.Patient, error)

	CreateSpecialty(ctx context.Context, s *models.Specialty) error
	GetSpecialty(ctx context.Context, id uint) (*models.Specialty, error)
	ListSpecialties(ctx context.Context) ([]models.Specialty, error)

	CreateDoctor(ctx context.Context, d *models.Doctor) error
	ListDoctors(ctx context.Context, specialtyID uint) ([]models.Doctor, error)
	UpdateDoctorFee(ctx context.Context, id uint, fee decimal.Decimal) (*models.Doctor, error)

	// LinkDoctorUser binds a login to a doctor record. A user maps to at most
	// one doctor.
	LinkDoctorUser(ctx context.Context, doctorID, userID uint) (*models.Doctor, error)
	GetDoctorByUserID(ctx context.Context, userID uint) (*models.Doctor, error)
}
