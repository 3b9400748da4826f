package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicops/clinic-scheduler/internal/audit"
	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/domain/billing"
	"github.com/clinicops/clinic-scheduler/internal/domain/consultation"
	"github.com/clinicops/clinic-scheduler/internal/domain/directory"
	"github.com/clinicops/clinic-scheduler/internal/dto"
	"github.com/clinicops/clinic-scheduler/internal/session"
)

// CompleteVisit records the consultation of a scheduled appointment and bills
// it. Consultation, prescription, status change and invoice commit together.
type CompleteVisit struct {
	repo      domain.Repository
	directory directory.Store
	audit     *audit.Dispatcher
	log       zerolog.Logger
	now       func() time.Time
}

func NewCompleteVisit(
	repo domain.Repository,
	dir directory.Store,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *CompleteVisit {
	return &CompleteVisit{
		repo:      repo,
		directory: dir,
		audit:     audit,
		log:       log,
		now:       time.Now,
	}
}

func (uc *CompleteVisit) Execute(
	ctx context.Context,
	sess session.Session,
	in consultation.Visit,
) (*dto.VisitResultDTO, error) {

	// --------------------------------------------------
	// 1. Clinical input
	// --------------------------------------------------
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Source state
	// --------------------------------------------------
	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanComplete(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Fee as of now, not as of booking
	// --------------------------------------------------
	doctor, err := uc.directory.GetDoctor(ctx, ap.DoctorID)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	result := &dto.VisitResultDTO{}

	// --------------------------------------------------
	// 4. All effects in one transaction
	// --------------------------------------------------
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetAppointment(ctx, ap.ID)
		if err != nil {
			return err
		}

		from := domain.Status(current.Status)
		if err := domain.Complete(current, now); err != nil {
			return err
		}

		c := in.Consultation()
		if err := tx.CreateConsultation(ctx, c); err != nil {
			return err
		}

		if p := in.PrescriptionFor(c.ID); p != nil {
			if err := tx.CreatePrescription(ctx, p); err != nil {
				return err
			}
			c.Prescriptions = append(c.Prescriptions, *p)
		}

		if err := tx.SaveTransition(ctx, current, from); err != nil {
			return err
		}

		inv := billing.GenerateInvoice(current.ID, doctor.ConsultationFee, now)
		if err := tx.CreateInvoice(ctx, inv); err != nil {
			return err
		}

		result.Appointment = current
		result.Consultation = c
		result.Invoice = inv
		return nil
	})
	err = typed(err, "complete visit")
	if err != nil {
		uc.log.Warn().
			Err(err).
			Str("request_id", sess.RequestID).
			Uint("appointment_id", in.AppointmentID).
			Msg("visit completion rolled back")
		return nil, err
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("appointment_id", ap.ID).
		Uint("invoice_id", result.Invoice.ID).
		Str("amount", result.Invoice.Amount.StringFixed(2)).
		Msg("visit completed")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "visit_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: sess.RequestID,
		Metadata: map[string]any{
			"invoice_id": result.Invoice.ID,
			"amount":     result.Invoice.Amount.StringFixed(2),
		},
	})

	return result, nil
}
