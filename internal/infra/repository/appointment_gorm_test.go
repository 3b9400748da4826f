package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/db/dbtest"
	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/slot"
)

func newAppointment(f fixture, date, tod string) *models.Appointment {
	return &models.Appointment{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		Date:      date,
		Time:      tod,
		Status:    string(domain.StatusScheduled),
	}
}

func TestFindActiveInSlot_IgnoresCancelled(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	f := seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	s := slot.Slot{DoctorID: f.doctor.ID, Date: "2024-06-01", Time: "09:00"}

	cancelled := newAppointment(f, s.Date, s.Time)
	cancelled.Status = string(domain.StatusCancelled)
	if err := repo.CreateAppointment(ctx, cancelled); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindActiveInSlot(ctx, s)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != nil {
		t.Fatalf("cancelled appointment must not hold the slot, got %+v", got)
	}

	active := newAppointment(f, s.Date, s.Time)
	if err := repo.CreateAppointment(ctx, active); err != nil {
		t.Fatalf("create active: %v", err)
	}

	got, err = repo.FindActiveInSlot(ctx, s)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || got.ID != active.ID {
		t.Fatalf("expected appointment %d, got %+v", active.ID, got)
	}
}

func TestCreateAppointment_DuplicateSlotIsConflict(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	f := seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	if err := repo.CreateAppointment(ctx, newAppointment(f, "2024-06-01", "09:00")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := repo.CreateAppointment(ctx, newAppointment(f, "2024-06-01", "09:00"))
	e, ok := apperr.As(err)
	if !ok || e.Kind != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if e.Slot == nil || e.Slot.Time != "09:00" || e.Slot.DoctorID != f.doctor.ID {
		t.Fatalf("expected slot on conflict, got %+v", e.Slot)
	}
}

func TestGetAppointment_NotFound(t *testing.T) {
	repo := NewAppointmentGormRepository(dbtest.New(t))

	_, err := repo.GetAppointment(context.Background(), 999)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSaveTransition_IsConditional(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	f := seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	ap := newAppointment(f, "2024-06-01", "10:00")
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}

	first := *ap
	if err := domain.Cancel(&first, time.Now()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := repo.SaveTransition(ctx, &first, domain.StatusScheduled); err != nil {
		t.Fatalf("save: %v", err)
	}

	// a stale copy still believes the appointment is scheduled
	stale := *ap
	if err := domain.Complete(&stale, time.Now()); err != nil {
		t.Fatalf("complete: %v", err)
	}
	err := repo.SaveTransition(ctx, &stale, domain.StatusScheduled)
	if !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}

	stored, err := repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != string(domain.StatusCancelled) || stored.CancelledAt == nil {
		t.Fatalf("unexpected stored appointment %+v", stored)
	}
}

func TestTransaction_RollsBack(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	f := seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.CreateAppointment(ctx, newAppointment(f, "2024-06-02", "09:00")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int64
	gdb.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected rollback, found %d appointments", count)
	}
}

func TestConsultationAndInvoiceReads(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	f := seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	ap := newAppointment(f, "2024-06-01", "11:00")
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}

	c := &models.Consultation{AppointmentID: ap.ID, Diagnosis: "flu"}
	if err := repo.CreateConsultation(ctx, c); err != nil {
		t.Fatalf("consultation: %v", err)
	}
	for _, med := range []string{"paracetamol", "vitamin c"} {
		if err := repo.CreatePrescription(ctx, &models.Prescription{ConsultationID: c.ID, Medication: med}); err != nil {
			t.Fatalf("prescription: %v", err)
		}
	}

	got, err := repo.GetConsultationByAppointment(ctx, ap.ID)
	if err != nil {
		t.Fatalf("get consultation: %v", err)
	}
	if got.Diagnosis != "flu" || len(got.Prescriptions) != 2 || got.Prescriptions[0].Medication != "paracetamol" {
		t.Fatalf("unexpected consultation %+v", got)
	}

	if err := repo.CreateConsultation(ctx, &models.Consultation{AppointmentID: ap.ID, Diagnosis: "again"}); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state for second consultation, got %v", err)
	}

	if _, err := repo.GetInvoiceByAppointment(ctx, ap.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected invoice not found, got %v", err)
	}
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	f := seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	for _, tod := range []string{"11:00", "09:00", "10:00"} {
		if err := repo.CreateAppointment(ctx, newAppointment(f, "2024-06-01", tod)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	other := newAppointment(f, "2024-06-02", "09:00")
	other.Status = string(domain.StatusNoShow)
	if err := repo.CreateAppointment(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	day, err := repo.ListByDoctorDate(ctx, f.doctor.ID, "2024-06-01")
	if err != nil {
		t.Fatalf("by doctor/date: %v", err)
	}
	if len(day) != 3 || day[0].Time != "09:00" || day[2].Time != "11:00" {
		t.Fatalf("unexpected day listing %+v", day)
	}
	if day[0].Patient.FirstName != "Mona" || day[0].Doctor.LastName != "Hassan" {
		t.Fatalf("expected preloaded names, got %+v", day[0])
	}

	byPatient, err := repo.ListByPatient(ctx, f.patient.ID)
	if err != nil {
		t.Fatalf("by patient: %v", err)
	}
	if len(byPatient) != 4 || byPatient[0].Date != "2024-06-02" {
		t.Fatalf("expected newest first, got %+v", byPatient)
	}

	scheduled, total, err := repo.ListByStatus(ctx, domain.StatusScheduled, 0, 2)
	if err != nil {
		t.Fatalf("by status: %v", err)
	}
	if total != 3 || len(scheduled) != 2 {
		t.Fatalf("expected 2 of 3 scheduled, got %d of %d", len(scheduled), total)
	}

	all, total, err := repo.ListByStatus(ctx, "", 0, 100)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if total != 4 || len(all) != 4 {
		t.Fatalf("expected all 4, got %d of %d", len(all), total)
	}
}
