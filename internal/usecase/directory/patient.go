package directory

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/audit"
	"github.com/clinicops/clinic-scheduler/internal/domain/directory"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
	"github.com/clinicops/clinic-scheduler/internal/slot"
)

const DefaultPatientLimit = 50

var genders = map[string]bool{"Male": true, "Female": true, "Other": true}

type PatientInput struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Gender      string
	Phone       string
	Address     string
}

func (in PatientInput) toModel() (*models.Patient, error) {
	p := &models.Patient{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Gender:    strings.TrimSpace(in.Gender),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}

	if p.FirstName == "" || p.LastName == "" {
		return nil, apperr.Validation("name_required", "first and last name are required")
	}
	if p.Phone == "" {
		return nil, apperr.Validation("phone_required", "phone is required")
	}
	if p.Gender != "" && !genders[p.Gender] {
		return nil, apperr.Validation("invalid_gender", "gender must be Male, Female or Other")
	}

	if dob := strings.TrimSpace(in.DateOfBirth); dob != "" {
		d, err := time.Parse(slot.DateLayout, dob)
		if err != nil {
			return nil, apperr.Validation("invalid_date_of_birth", "date of birth must be YYYY-MM-DD")
		}
		p.DateOfBirth = &d
	}
	return p, nil
}

// ======================================================
// PATIENTS
// ======================================================

type Patients struct {
	registry directory.Registry
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewPatients(registry directory.Registry, audit *audit.Dispatcher, log zerolog.Logger) *Patients {
	return &Patients{registry: registry, audit: audit, log: log}
}

func (uc *Patients) Register(
	ctx context.Context,
	sess session.Session,
	in PatientInput,
) (*models.Patient, error) {

	p, err := in.toModel()
	if err != nil {
		return nil, err
	}

	if err := uc.registry.CreatePatient(ctx, p); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("patient_id", p.ID).
		Msg("patient registered")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "patient_registered",
		Entity:    "patient",
		EntityID:  &p.ID,
		RequestID: sess.RequestID,
	})

	return p, nil
}

func (uc *Patients) Get(ctx context.Context, id uint) (*models.Patient, error) {
	return uc.registry.GetPatient(ctx, id)
}

// List matches search against names and phone.
func (uc *Patients) List(ctx context.Context, search string, limit int) ([]models.Patient, error) {
	if limit <= 0 || limit > DefaultPatientLimit {
		limit = DefaultPatientLimit
	}
	return uc.registry.ListPatients(ctx, search, limit)
}
