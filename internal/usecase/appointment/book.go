package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/audit"
	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/domain/directory"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
	"github.com/clinicops/clinic-scheduler/internal/slot"
	"github.com/clinicops/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	PatientID uint
	DoctorID  uint
	Date      string
	Time      string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo      domain.Repository
	directory directory.Store
	locks     *slot.Locker
	audit     *audit.Dispatcher
	log       zerolog.Logger
	timezone  string
	now       func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	dir directory.Store,
	locks *slot.Locker,
	audit *audit.Dispatcher,
	log zerolog.Logger,
	tz string,
) *BookAppointment {
	return &BookAppointment{
		repo:      repo,
		directory: dir,
		locks:     locks,
		audit:     audit,
		log:       log,
		timezone:  tz,
		now:       time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	sess session.Session,
	in BookInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Slot in the clinic timezone
	// --------------------------------------------------
	loc := timezone.Location(uc.timezone)

	s, start, err := slot.Parse(in.DoctorID, in.Date, in.Time, loc)
	if errors.Is(err, slot.ErrNonexistentTime) {
		return nil, apperr.Validation("nonexistent_time", "time is skipped by a clock change in the clinic timezone")
	}
	if err != nil {
		return nil, apperr.Validation("invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
	}

	// --------------------------------------------------
	// 2. Not in the past
	// --------------------------------------------------
	today := timezone.StartOfDay(uc.now().In(loc))
	if timezone.StartOfDay(start).Before(today) {
		return nil, apperr.Validation("date_in_past", "appointment date is in the past")
	}

	// --------------------------------------------------
	// 3. Directory references
	// --------------------------------------------------
	patient, err := uc.directory.GetPatient(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.directory.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Check-then-insert, serialized per slot
	// --------------------------------------------------
	unlock, err := uc.locks.Lock(ctx, s)
	if err != nil {
		return nil, typed(err, "wait for slot")
	}
	defer unlock()

	ap := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      s.Date,
		Time:      s.Time,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		existing, err := tx.FindActiveInSlot(ctx, s)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict(s)
		}
		return tx.CreateAppointment(ctx, ap)
	})
	err = typed(err, "book appointment")

	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			uc.log.Info().
				Str("request_id", sess.RequestID).
				Str("slot", s.Key()).
				Msg("booking rejected, slot taken")

			uc.audit.Dispatch(audit.Event{
				UserID:    sess.UserRef(),
				Action:    "appointment_conflict",
				Entity:    "appointment",
				RequestID: sess.RequestID,
				Metadata:  s,
			})
		}
		return nil, err
	}

	ap.Patient = *patient
	ap.Doctor = *doctor

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("appointment_id", ap.ID).
		Str("slot", s.Key()).
		Msg("appointment booked")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "appointment_booked",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: sess.RequestID,
	})

	return ap, nil
}
