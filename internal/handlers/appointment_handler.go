package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/domain/consultation"
	"github.com/clinicops/clinic-scheduler/internal/httperr"
	"github.com/clinicops/clinic-scheduler/internal/httpresp"
	"github.com/clinicops/clinic-scheduler/internal/middleware"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/policy"
	"github.com/clinicops/clinic-scheduler/internal/slot"
	ucAppointment "github.com/clinicops/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type appointmentFinder interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}

type AppointmentHandler struct {
	appointments    appointmentFinder
	book            *ucAppointment.BookAppointment
	cancel          *ucAppointment.CancelAppointment
	noShow          *ucAppointment.MarkNoShow
	complete        *ucAppointment.CompleteVisit
	byDoctorDate    *ucAppointment.ListByDoctorDate
	byPatient       *ucAppointment.ListByPatient
	byStatus        *ucAppointment.ListByStatus
	availability    *ucAppointment.GetAvailability
	getConsultation *ucAppointment.GetConsultation
	getInvoice      *ucAppointment.GetInvoice
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	cancel *ucAppointment.CancelAppointment,
	noShow *ucAppointment.MarkNoShow,
	complete *ucAppointment.CompleteVisit,
	byDoctorDate *ucAppointment.ListByDoctorDate,
	byPatient *ucAppointment.ListByPatient,
	byStatus *ucAppointment.ListByStatus,
	availability *ucAppointment.GetAvailability,
	getConsultation *ucAppointment.GetConsultation,
	getInvoice *ucAppointment.GetInvoice,
	appointments appointmentFinder,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointments:    appointments,
		book:            book,
		cancel:          cancel,
		noShow:          noShow,
		complete:        complete,
		byDoctorDate:    byDoctorDate,
		byPatient:       byPatient,
		byStatus:        byStatus,
		availability:    availability,
		getConsultation: getConsultation,
		getInvoice:      getInvoice,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	PatientID uint   `json:"patient_id" binding:"required"`
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required,ymd"`
	Time      string `json:"time" binding:"required,hhmm"`
	Notes     string `json:"notes" binding:"max=255"`
}

type PrescriptionRequest struct {
	Medication string `json:"medication" binding:"max=100"`
	Dosage     string `json:"dosage" binding:"max=100"`
	Duration   string `json:"duration" binding:"max=100"`
}

// Diagnosis is checked by the usecase so a blank diagnosis reports
// diagnosis_required rather than a binding error.
type CompleteVisitRequest struct {
	Symptoms     string               `json:"symptoms"`
	Diagnosis    string               `json:"diagnosis"`
	Notes        string               `json:"notes"`
	Prescription *PrescriptionRequest `json:"prescription"`
}

// assigned stops a doctor from acting on another doctor's appointment.
func (h *AppointmentHandler) assigned(c *gin.Context, id uint) bool {
	ap, err := h.appointments.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return false
	}
	if err := policy.AssignedTo(middleware.Session(c), ap.DoctorID); err != nil {
		httperr.Forbidden(c, "not_assigned_doctor", err.Error())
		return false
	}
	return true
}

// ======================================================
// WRITE
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), middleware.Session(c), ucAppointment.BookInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.Session(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if !h.assigned(c, id) {
		return
	}

	ap, err := h.noShow.Execute(c.Request.Context(), middleware.Session(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CompleteVisitRequest
	if !bindJSON(c, &req) {
		return
	}
	if !h.assigned(c, id) {
		return
	}

	in := consultation.Visit{
		AppointmentID: id,
		Symptoms:      req.Symptoms,
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
	}
	if req.Prescription != nil {
		in.Prescription = &consultation.PrescriptionInput{
			Medication: req.Prescription.Medication,
			Dosage:     req.Prescription.Dosage,
			Duration:   req.Prescription.Duration,
		}
	}

	res, err := h.complete.Execute(c.Request.Context(), middleware.Session(c), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, res)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) ListByStatus(c *gin.Context) {
	page, err := h.byStatus.Execute(
		c.Request.Context(),
		c.Query("status"),
		queryInt(c, "page", 1),
		queryInt(c, "limit", ucAppointment.DefaultListLimit),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *AppointmentHandler) ListByDoctorDate(c *gin.Context) {
	doctorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "date_required", "date query parameter is required")
		return
	}

	list, err := h.byDoctorDate.Execute(c.Request.Context(), doctorID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	patientID, ok := idParam(c, "id")
	if !ok {
		return
	}

	list, err := h.byPatient.Execute(c.Request.Context(), patientID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	doctorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	date, err := time.Parse(slot.DateLayout, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		DoctorID: doctorID,
		Date:     date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"doctor_id": doctorID,
		"date":      date.Format(slot.DateLayout),
		"slots":     slots,
	})
}

func (h *AppointmentHandler) Consultation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if !h.assigned(c, id) {
		return
	}

	res, err := h.getConsultation.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *AppointmentHandler) Invoice(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	res, err := h.getInvoice.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, res)
}
