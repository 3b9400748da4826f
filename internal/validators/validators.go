package validators

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/clinicops/clinic-scheduler/internal/slot"
)

// Register adds the clinic's custom tags to gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validators: unexpected binding engine")
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"ymd":    isDate,
		"hhmm":   isTimeOfDay,
		"gender": isGender,
		"role":   isRole,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validators: register %s: %w", tag, err)
		}
	}
	return nil
}

func isDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(slot.DateLayout, fl.Field().String())
	return err == nil
}

func isTimeOfDay(fl validator.FieldLevel) bool {
	_, err := time.Parse(slot.TimeLayout, fl.Field().String())
	return err == nil
}

func isGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "Male", "Female", "Other":
		return true
	}
	return false
}

func isRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Admin", "Doctor", "Secretary":
		return true
	}
	return false
}

// Describe turns binding errors into a short message for the client.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "malformed request body"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
