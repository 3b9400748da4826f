package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinicops/clinic-scheduler/internal/models"
)

const PaymentMethodPending = "Pending"

// GenerateInvoice builds the single invoice of a completed appointment. It
// must only be called from the completion transaction.
func GenerateInvoice(appointmentID uint, amount decimal.Decimal, now time.Time) *models.Invoice {
	return &models.Invoice{
		AppointmentID: appointmentID,
		Amount:        amount.Round(2),
		PaymentMethod: PaymentMethodPending,
		CreatedAt:     now,
	}
}
