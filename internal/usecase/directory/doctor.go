package directory

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/audit"
	"github.com/clinicops/clinic-scheduler/internal/cache"
	"github.com/clinicops/clinic-scheduler/internal/domain/directory"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
)

type DoctorInput struct {
	FirstName       string
	LastName        string
	SpecialtyID     uint
	ConsultationFee decimal.Decimal
	Phone           string
	Email           string
}

type Doctors struct {
	registry directory.Registry
	cache    *cache.ReadThrough
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewDoctors(
	registry directory.Registry,
	cache *cache.ReadThrough,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *Doctors {
	return &Doctors{registry: registry, cache: cache, audit: audit, log: log}
}

func validFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return apperr.Validation("invalid_fee", "consultation fee cannot be negative")
	}
	return nil
}

func (uc *Doctors) Register(
	ctx context.Context,
	sess session.Session,
	in DoctorInput,
) (*models.Doctor, error) {

	d := &models.Doctor{
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		SpecialtyID:     in.SpecialtyID,
		ConsultationFee: in.ConsultationFee.Round(2),
		Phone:           strings.TrimSpace(in.Phone),
		Email:           strings.TrimSpace(in.Email),
	}

	if d.FirstName == "" || d.LastName == "" {
		return nil, apperr.Validation("name_required", "first and last name are required")
	}
	if err := validFee(d.ConsultationFee); err != nil {
		return nil, err
	}

	specialty, err := uc.registry.GetSpecialty(ctx, in.SpecialtyID)
	if err != nil {
		return nil, err
	}

	if err := uc.registry.CreateDoctor(ctx, d); err != nil {
		return nil, err
	}
	d.Specialty = *specialty
	uc.invalidate(ctx, d.SpecialtyID)

	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("doctor_id", d.ID).
		Msg("doctor registered")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "doctor_registered",
		Entity:    "doctor",
		EntityID:  &d.ID,
		RequestID: sess.RequestID,
	})

	return d, nil
}

func (uc *Doctors) Get(ctx context.Context, id uint) (*models.Doctor, error) {
	return uc.registry.GetDoctor(ctx, id)
}

// List returns all doctors, or those of one specialty when specialtyID is set.
// The result may be up to the cache TTL old.
func (uc *Doctors) List(ctx context.Context, specialtyID uint) ([]models.Doctor, error) {
	return cache.Load(ctx, uc.cache, keyDoctors(specialtyID), func(ctx context.Context) ([]models.Doctor, error) {
		return uc.registry.ListDoctors(ctx, specialtyID)
	})
}

// UpdateFee changes the fee billed by future completions. Issued invoices keep
// their amount.
func (uc *Doctors) UpdateFee(
	ctx context.Context,
	sess session.Session,
	id uint,
	fee decimal.Decimal,
) (*models.Doctor, error) {

	fee = fee.Round(2)
	if err := validFee(fee); err != nil {
		return nil, err
	}

	d, err := uc.registry.UpdateDoctorFee(ctx, id, fee)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, d.SpecialtyID)

	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("doctor_id", d.ID).
		Str("fee", fee.StringFixed(2)).
		Msg("doctor fee updated")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "doctor_fee_updated",
		Entity:    "doctor",
		EntityID:  &d.ID,
		RequestID: sess.RequestID,
		Metadata:  map[string]string{"fee": fee.StringFixed(2)},
	})

	return d, nil
}

// LinkUser binds a Doctor login to this doctor record.
func (uc *Doctors) LinkUser(
	ctx context.Context,
	sess session.Session,
	doctorID uint,
	user *models.User,
) (*models.Doctor, error) {

	if session.Role(user.Role) != session.RoleDoctor {
		return nil, apperr.Validation("user_not_doctor", "only users with the Doctor role can be linked")
	}

	d, err := uc.registry.LinkDoctorUser(ctx, doctorID, user.ID)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, d.SpecialtyID)

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "doctor_user_linked",
		Entity:    "doctor",
		EntityID:  &d.ID,
		RequestID: sess.RequestID,
		Metadata:  map[string]uint{"user_id": user.ID},
	})

	return d, nil
}

// ForUser returns the doctor linked to userID.
func (uc *Doctors) ForUser(ctx context.Context, userID uint) (*models.Doctor, error) {
	return uc.registry.GetDoctorByUserID(ctx, userID)
}

func (uc *Doctors) invalidate(ctx context.Context, specialtyID uint) {
	uc.cache.Invalidate(ctx, keyDoctors(0), keyDoctors(specialtyID))
}
