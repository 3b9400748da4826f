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

type MarkNoShow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
	now   func() time.Time
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	sess session.Session,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)
	if err := domain.MarkNoShow(ap, uc.now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveTransition(ctx, ap, from); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("appointment_id", ap.ID).
		Msg("appointment marked no-show")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "appointment_no_show",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: sess.RequestID,
	})

	return ap, nil
}
