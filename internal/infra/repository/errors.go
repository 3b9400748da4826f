package repository

import (
	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/db"
)

// translate maps driver errors onto the core taxonomy. Not-found becomes
// entity_not_found and everything unrecognised becomes a persistence error.
func translate(err error, entity, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if db.IsNotFound(err) {
		return apperr.NotFound(entity)
	}
	return apperr.Persistence(op, err)
}
