package appointment

import (
	"testing"
	"time"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/models"
)

func TestTransitionsOnlyFromScheduled(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	actions := map[string]func(*models.Appointment, time.Time) error{
		"cancel":   Cancel,
		"no-show":  MarkNoShow,
		"complete": Complete,
	}
	want := map[string]Status{
		"cancel":   StatusCancelled,
		"no-show":  StatusNoShow,
		"complete": StatusCompleted,
	}

	for name, act := range actions {
		t.Run(name+" from scheduled", func(t *testing.T) {
			ap := &models.Appointment{Status: string(StatusScheduled)}
			if err := act(ap, now); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if Status(ap.Status) != want[name] {
				t.Fatalf("expected %s, got %s", want[name], ap.Status)
			}
		})

		for _, from := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
			t.Run(name+" from "+string(from), func(t *testing.T) {
				ap := &models.Appointment{Status: string(from)}
				err := act(ap, now)
				if !apperr.Is(err, apperr.KindInvalidState) {
					t.Fatalf("expected invalid state, got %v", err)
				}
				if Status(ap.Status) != from {
					t.Fatalf("status changed to %s on rejected transition", ap.Status)
				}
			})
		}
	}
}

func TestTransitionTimestamps(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	_ = Cancel(ap, now)
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Fatalf("expected cancelled_at %s, got %v", now, ap.CancelledAt)
	}

	ap = &models.Appointment{Status: string(StatusScheduled)}
	_ = MarkNoShow(ap, now)
	if ap.NoShowAt == nil {
		t.Fatal("expected no_show_at to be set")
	}

	ap = &models.Appointment{Status: string(StatusScheduled)}
	_ = Complete(ap, now)
	if ap.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}
}

func TestStatusProperties(t *testing.T) {
	tests := []struct {
		status   Status
		valid    bool
		terminal bool
		occupies bool
	}{
		{StatusScheduled, true, false, true},
		{StatusCompleted, true, true, true},
		{StatusNoShow, true, true, true},
		{StatusCancelled, true, true, false},
		{Status("archived"), false, true, true},
	}

	for _, tt := range tests {
		if tt.status.Valid() != tt.valid {
			t.Errorf("%s: Valid() = %v", tt.status, tt.status.Valid())
		}
		if tt.status.IsTerminal() != tt.terminal {
			t.Errorf("%s: IsTerminal() = %v", tt.status, tt.status.IsTerminal())
		}
		if tt.status.OccupiesSlot() != tt.occupies {
			t.Errorf("%s: OccupiesSlot() = %v", tt.status, tt.status.OccupiesSlot())
		}
	}

	if InitialStatus() != StatusScheduled {
		t.Fatalf("unexpected initial status %s", InitialStatus())
	}
}
