package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicops/clinic-scheduler/internal/audit"
	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

// Execute cancels a scheduled appointment, which frees its slot.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	sess session.Session,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)
	if err := domain.Cancel(ap, uc.now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveTransition(ctx, ap, from); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("appointment_id", ap.ID).
		Msg("appointment cancelled")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: sess.RequestID,
	})

	return ap, nil
}
