package appointment

import (
	"context"
	"time"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/domain/directory"
	"github.com/clinicops/clinic-scheduler/internal/slot"
	"github.com/clinicops/clinic-scheduler/internal/timezone"
)

// GetAvailability lists the grid times a doctor still has free on a date.
type GetAvailability struct {
	repo      domain.Repository
	directory directory.Store
	day       domain.WorkingDay
	timezone  string
	now       func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	dir directory.Store,
	day domain.WorkingDay,
	tz string,
) *GetAvailability {
	return &GetAvailability{
		repo:      repo,
		directory: dir,
		day:       day,
		timezone:  tz,
		now:       time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if _, err := uc.directory.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	loc := timezone.Location(uc.timezone)
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	if date.Before(timezone.StartOfDay(uc.now().In(loc))) {
		return []domain.TimeSlot{}, nil
	}

	grid, err := uc.day.Slots(date)
	if err != nil {
		return nil, apperr.Validation("invalid_working_day", err.Error())
	}

	appointments, err := uc.repo.ListByDoctorDate(ctx, in.DoctorID, date.Format(slot.DateLayout))
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(appointments))
	for _, ap := range appointments {
		if domain.Status(ap.Status).OccupiesSlot() {
			taken[ap.Time] = true
		}
	}

	free := make([]domain.TimeSlot, 0, len(grid))
	for _, ts := range grid {
		if !taken[ts.Start] {
			free = append(free, ts)
		}
	}
	return free, nil
}
