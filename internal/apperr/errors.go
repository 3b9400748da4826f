package apperr

import (
	"errors"
	"fmt"

	"github.com/clinicops/clinic-scheduler/internal/slot"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindPersistence  Kind = "persistence"
)

// Error is the single error type surfaced by the scheduling core.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	// Slot is set on conflicts so callers can offer another time.
	Slot *slot.Slot

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Conflict(s slot.Slot) error {
	return &Error{
		Kind:    KindConflict,
		Code:    "slot_taken",
		Message: fmt.Sprintf("%s is already booked", s),
		Slot:    &s,
	}
}

func NotFound(entity string) error {
	return &Error{
		Kind:    KindNotFound,
		Code:    entity + "_not_found",
		Message: entity + " not found",
	}
}

func InvalidState(entity, from, action string) error {
	return &Error{
		Kind:    KindInvalidState,
		Code:    "invalid_state",
		Message: fmt.Sprintf("cannot %s %s in status %s", action, entity, from),
	}
}

func Persistence(op string, err error) error {
	return &Error{
		Kind:    KindPersistence,
		Code:    "persistence_failure",
		Message: op,
		Err:     err,
	}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Retryable reports whether the caller may retry. Only store failures are.
func Retryable(err error) bool {
	return Is(err, KindPersistence)
}
