package appointment

import (
	"context"
	"testing"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	domain "github.com/clinicops/clinic-scheduler/internal/domain/appointment"
)

func TestCancel_FromScheduled(t *testing.T) {
	e := newEnv(t)

	ap := e.mustBook(t, e.patient.ID, "2024-06-03", "10:00")

	got, err := e.cancel.Execute(context.Background(), sess(), ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) || got.CancelledAt == nil {
		t.Fatalf("expected cancelled with timestamp, got %+v", got)
	}
}

func TestMarkNoShow_FromScheduled(t *testing.T) {
	e := newEnv(t)

	ap := e.mustBook(t, e.patient.ID, "2024-06-03", "10:00")

	got, err := e.noShow.Execute(context.Background(), sess(), ap.ID)
	if err != nil {
		t.Fatalf("no-show: %v", err)
	}
	if got.Status != string(domain.StatusNoShow) || got.NoShowAt == nil {
		t.Fatalf("expected no_show with timestamp, got %+v", got)
	}
}

func TestTransitions_FromTerminalStatesAreRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	completed := e.mustBook(t, e.patient.ID, "2024-06-03", "09:00")
	if _, err := e.complete.Execute(ctx, sess(), visit(completed.ID)); err != nil {
		t.Fatalf("complete: %v", err)
	}
	cancelled := e.mustBook(t, e.patient.ID, "2024-06-03", "09:30")
	if _, err := e.cancel.Execute(ctx, sess(), cancelled.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	noShow := e.mustBook(t, e.patient.ID, "2024-06-03", "10:00")
	if _, err := e.noShow.Execute(ctx, sess(), noShow.ID); err != nil {
		t.Fatalf("no-show: %v", err)
	}

	tests := []struct {
		name string
		run  func(id uint) error
	}{
		{"cancel", func(id uint) error { _, err := e.cancel.Execute(ctx, sess(), id); return err }},
		{"no-show", func(id uint) error { _, err := e.noShow.Execute(ctx, sess(), id); return err }},
	}

	for _, tt := range tests {
		for _, id := range []uint{completed.ID, cancelled.ID, noShow.ID} {
			if err := tt.run(id); !apperr.Is(err, apperr.KindInvalidState) {
				t.Fatalf("%s on appointment %d: expected invalid_state, got %v", tt.name, id, err)
			}
		}
	}

	stored, _ := e.repo.GetAppointment(ctx, completed.ID)
	if stored.Status != string(domain.StatusCompleted) {
		t.Fatalf("completed appointment changed to %s", stored.Status)
	}
}

func TestTransitions_UnknownAppointment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.cancel.Execute(ctx, sess(), 777)
	wantKind(t, err, apperr.KindNotFound)

	_, err = e.noShow.Execute(ctx, sess(), 777)
	wantKind(t, err, apperr.KindNotFound)
}
