package dto

import "github.com/clinicops/clinic-scheduler/internal/models"

type AppointmentListDTO struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	PatientID   uint   `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorID    uint   `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	Notes       string `json:"notes"`
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Date,
			Time:        ap.Time,
			Status:      ap.Status,
			PatientID:   ap.PatientID,
			PatientName: ap.Patient.FullName(),
			DoctorID:    ap.DoctorID,
			DoctorName:  ap.Doctor.FullName(),
			Notes:       ap.Notes,
		})
	}
	return out
}
