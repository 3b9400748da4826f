package consultation

import (
	"strings"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/models"
)

type PrescriptionInput struct {
	Medication string
	Dosage     string
	Duration   string
}

// IsEmpty reports whether nothing was prescribed. A prescription without a
// medication counts as none.
func (p *PrescriptionInput) IsEmpty() bool {
	return p == nil || strings.TrimSpace(p.Medication) == ""
}

type Visit struct {
	AppointmentID uint
	Symptoms      string
	Diagnosis     string
	Notes         string
	Prescription  *PrescriptionInput
}

// Validate checks the clinical input. Diagnosis is the only mandatory field.
func (v Visit) Validate() error {
	if strings.TrimSpace(v.Diagnosis) == "" {
		return apperr.Validation("diagnosis_required", "diagnosis is required")
	}
	return nil
}

func (v Visit) Consultation() *models.Consultation {
	return &models.Consultation{
		AppointmentID: v.AppointmentID,
		Symptoms:      strings.TrimSpace(v.Symptoms),
		Diagnosis:     strings.TrimSpace(v.Diagnosis),
		Notes:         strings.TrimSpace(v.Notes),
	}
}

// PrescriptionFor returns the prescription row for consultationID, or nil
// when nothing was prescribed.
func (v Visit) PrescriptionFor(consultationID uint) *models.Prescription {
	if v.Prescription.IsEmpty() {
		return nil
	}
	return &models.Prescription{
		ConsultationID: consultationID,
		Medication:     strings.TrimSpace(v.Prescription.Medication),
		Dosage:         strings.TrimSpace(v.Prescription.Dosage),
		Duration:       strings.TrimSpace(v.Prescription.Duration),
	}
}
