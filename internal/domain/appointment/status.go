package appointment

import "github.com/clinicops/clinic-scheduler/internal/apperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s != StatusScheduled
}

// OccupiesSlot reports whether an appointment in this status blocks its slot.
func (s Status) OccupiesSlot() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	return fromScheduled(current, "cancel")
}

func CanMarkNoShow(current Status) error {
	return fromScheduled(current, "mark as no-show")
}

func CanComplete(current Status) error {
	return fromScheduled(current, "complete")
}

func fromScheduled(current Status, action string) error {
	if current.IsTerminal() {
		return apperr.InvalidState("appointment", string(current), action)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
