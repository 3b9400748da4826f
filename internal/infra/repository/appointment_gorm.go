package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/db"
	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/slot"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) FindActiveInSlot(
	ctx context.Context,
	s slot.Slot,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx)
	// sqlite has no row locks; its writer lock already serializes the tx
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var aps []models.Appointment
	if err := q.
		Where(
			"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			s.DoctorID,
			s.Date,
			s.Time,
			string(domain.StatusCancelled),
		).
		Limit(1).
		Find(&aps).Error; err != nil {
		return nil, apperr.Persistence("find slot", err)
	}

	if len(aps) == 0 {
		return nil, nil
	}
	return &aps[0], nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error

	if db.IsUniqueViolation(err) {
		return apperr.Conflict(slot.Slot{DoctorID: ap.DoctorID, Date: ap.Date, Time: ap.Time})
	}
	return translate(err, "appointment", "create appointment")
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err, "appointment", "get appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) SaveTransition(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"no_show_at":   ap.NoShowAt,
		})
	if res.Error != nil {
		return apperr.Persistence("update appointment", res.Error)
	}

	if res.RowsAffected == 0 {
		// someone else moved it first
		current, err := r.GetAppointment(ctx, ap.ID)
		if err != nil {
			return err
		}
		return apperr.InvalidState("appointment", current.Status, "change")
	}
	return nil
}

// --------------------------------------------------
// Consultation / Billing
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateConsultation(
	ctx context.Context,
	c *models.Consultation,
) error {

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(c).Error

	if db.IsUniqueViolation(err) {
		return apperr.InvalidState("appointment", string(domain.StatusCompleted), "complete")
	}
	return translate(err, "consultation", "create consultation")
}

func (r *AppointmentGormRepository) CreatePrescription(
	ctx context.Context,
	p *models.Prescription,
) error {
	return translate(
		r.db.WithContext(ctx).Create(p).Error,
		"prescription",
		"create prescription",
	)
}

func (r *AppointmentGormRepository) CreateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {

	err := r.db.WithContext(ctx).Create(inv).Error

	if db.IsUniqueViolation(err) {
		return apperr.InvalidState("appointment", "invoiced", "bill")
	}
	return translate(err, "invoice", "create invoice")
}

func (r *AppointmentGormRepository) GetConsultationByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Consultation, error) {

	var c models.Consultation
	if err := r.db.WithContext(ctx).
		Preload("Prescriptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("appointment_id = ?", appointmentID).
		First(&c).Error; err != nil {
		return nil, translate(err, "consultation", "get consultation")
	}
	return &c, nil
}

func (r *AppointmentGormRepository) GetInvoiceByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&inv).Error; err != nil {
		return nil, translate(err, "invoice", "get invoice")
	}
	return &inv, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListByDoctorDate(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, apperr.Persistence("list appointments", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListByPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&apps).Error; err != nil {
		return nil, apperr.Persistence("list appointments", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
	offset int,
	limit int,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Persistence("count appointments", err)
	}

	var apps []models.Appointment
	if err := q.
		Preload("Patient").
		Preload("Doctor").
		Order("appointment_date DESC, appointment_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, apperr.Persistence("list appointments", err)
	}
	return apps, total, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
