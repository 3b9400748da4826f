package appointment

import (
	"context"

	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/models"
)

type GetConsultation struct {
	repo domain.Repository
}

func NewGetConsultation(repo domain.Repository) *GetConsultation {
	return &GetConsultation{repo: repo}
}

// Execute returns the consultation of an appointment with its prescriptions.
func (uc *GetConsultation) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Consultation, error) {

	if _, err := uc.repo.GetAppointment(ctx, appointmentID); err != nil {
		return nil, err
	}
	return uc.repo.GetConsultationByAppointment(ctx, appointmentID)
}

type GetInvoice struct {
	repo domain.Repository
}

func NewGetInvoice(repo domain.Repository) *GetInvoice {
	return &GetInvoice{repo: repo}
}

func (uc *GetInvoice) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Invoice, error) {

	if _, err := uc.repo.GetAppointment(ctx, appointmentID); err != nil {
		return nil, err
	}
	return uc.repo.GetInvoiceByAppointment(ctx, appointmentID)
}
