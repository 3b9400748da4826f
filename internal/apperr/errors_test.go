package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/clinicops/clinic-scheduler/internal/slot"
)

func TestKinds(t *testing.T) {
	s := slot.Slot{DoctorID: 4, Date: "2024-06-01", Time: "09:00"}
	cause := errors.New("connection refused")

	tests := []struct {
		name      string
		err       error
		kind      Kind
		code      string
		retryable bool
	}{
		{"validation", Validation("diagnosis_required", "diagnosis is required"), KindValidation, "diagnosis_required", false},
		{"conflict", Conflict(s), KindConflict, "slot_taken", false},
		{"not found", NotFound("appointment"), KindNotFound, "appointment_not_found", false},
		{"invalid state", InvalidState("appointment", "completed", "complete"), KindInvalidState, "invalid_state", false},
		{"persistence", Persistence("create appointment", cause), KindPersistence, "persistence_failure", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("usecase: %w", tt.err)

			if !Is(wrapped, tt.kind) {
				t.Fatalf("expected kind %s, got %s", tt.kind, KindOf(wrapped))
			}
			e, ok := As(wrapped)
			if !ok {
				t.Fatal("expected *Error in chain")
			}
			if e.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, e.Code)
			}
			if Retryable(wrapped) != tt.retryable {
				t.Fatalf("Retryable = %v, want %v", Retryable(wrapped), tt.retryable)
			}
		})
	}
}

func TestConflictCarriesSlot(t *testing.T) {
	s := slot.Slot{DoctorID: 4, Date: "2024-06-01", Time: "09:00"}
	e, ok := As(Conflict(s))
	if !ok || e.Slot == nil {
		t.Fatal("expected slot on conflict error")
	}
	if *e.Slot != s {
		t.Fatalf("unexpected slot %+v", *e.Slot)
	}
}

func TestPersistenceUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("create invoice", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through errors.Is")
	}
}

func TestPlainErrorHasNoKind(t *testing.T) {
	if KindOf(errors.New("boom")) != "" {
		t.Fatal("plain errors must not report a kind")
	}
}
