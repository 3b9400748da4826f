package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/slot"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := slot.Slot{DoctorID: 3, Date: "2024-06-03", Time: "10:00"}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Validation("diagnosis_required", "diagnosis is required"), http.StatusBadRequest, "diagnosis_required"},
		{"conflict", apperr.Conflict(s), http.StatusConflict, "slot_taken"},
		{"not found", apperr.NotFound("doctor"), http.StatusNotFound, "doctor_not_found"},
		{"invalid state", apperr.InvalidState("appointment", "completed", "cancel"), http.StatusConflict, "invalid_state"},
		{"persistence", apperr.Persistence("book appointment", errors.New("connection reset")), http.StatusServiceUnavailable, "persistence_failure"},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}

			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, body.Code)
			}
			if tt.name == "conflict" && (body.Slot == nil || *body.Slot != s) {
				t.Fatalf("expected slot in body, got %+v", body.Slot)
			}
			if tt.name == "persistence" && body.Message != "storage unavailable, try again" {
				t.Fatalf("driver details leaked: %s", body.Message)
			}
		})
	}
}
