package appointment

import (
	"context"
	"time"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/domain/directory"
	"github.com/clinicops/clinic-scheduler/internal/dto"
	"github.com/clinicops/clinic-scheduler/internal/slot"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ======================================================
// BY DOCTOR + DATE
// ======================================================

type ListByDoctorDate struct {
	repo      domain.Repository
	directory directory.Store
}

func NewListByDoctorDate(repo domain.Repository, dir directory.Store) *ListByDoctorDate {
	return &ListByDoctorDate{repo: repo, directory: dir}
}

func (uc *ListByDoctorDate) Execute(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := time.Parse(slot.DateLayout, date)
	if err != nil {
		return nil, apperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}

	if _, err := uc.directory.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListByDoctorDate(ctx, doctorID, day.Format(slot.DateLayout))
	if err != nil {
		return nil, err
	}
	return dto.AppointmentList(aps), nil
}

// ======================================================
// BY PATIENT
// ======================================================

type ListByPatient struct {
	repo      domain.Repository
	directory directory.Store
}

func NewListByPatient(repo domain.Repository, dir directory.Store) *ListByPatient {
	return &ListByPatient{repo: repo, directory: dir}
}

func (uc *ListByPatient) Execute(
	ctx context.Context,
	patientID uint,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.directory.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return dto.AppointmentList(aps), nil
}

// ======================================================
// BY STATUS
// ======================================================

type ListByStatus struct {
	repo domain.Repository
}

func NewListByStatus(repo domain.Repository) *ListByStatus {
	return &ListByStatus{repo: repo}
}

// Execute lists appointments newest first. An empty status lists all of them.
func (uc *ListByStatus) Execute(
	ctx context.Context,
	status string,
	page int,
	limit int,
) (dto.Page[dto.AppointmentListDTO], error) {

	st := domain.Status(status)
	if status != "" && !st.Valid() {
		return dto.Page[dto.AppointmentListDTO]{}, apperr.Validation("invalid_status", "unknown appointment status")
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	aps, total, err := uc.repo.ListByStatus(ctx, st, (page-1)*limit, limit)
	if err != nil {
		return dto.Page[dto.AppointmentListDTO]{}, err
	}

	return dto.NewPage(dto.AppointmentList(aps), page, limit, total), nil
}
