package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
)

// Status maps an error kind to its HTTP status.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict, apperr.KindInvalidState:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindPersistence:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// FromError writes err as a JSON error response. Store details are logged by
// the request logger, never sent to the client.
func FromError(c *gin.Context, err error) {
	_ = c.Error(err)

	e, ok := apperr.As(err)
	if !ok {
		Internal(c, "internal_error", "unexpected error")
		return
	}

	body := HTTPError{Code: e.Code, Message: e.Message, Slot: e.Slot}
	if e.Kind == apperr.KindPersistence {
		body.Message = "storage unavailable, try again"
	}
	c.JSON(Status(e.Kind), body)
}
