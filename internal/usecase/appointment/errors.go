package appointment

import "github.com/clinicops/clinic-scheduler/internal/apperr"

// typed makes sure nothing untyped leaves the core. Errors from BEGIN, COMMIT
// or a cancelled context arrive raw from gorm and are store failures.
func typed(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Persistence(op, err)
}
