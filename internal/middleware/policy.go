package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicops/clinic-scheduler/internal/httperr"
	"github.com/clinicops/clinic-scheduler/internal/policy"
)

// Require rejects callers the gate does not allow to perform op.
func Require(gate policy.Gate, op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(Session(c), op); err != nil {
			httperr.Forbidden(c, "forbidden", "not allowed to "+string(op))
			c.Abort()
			return
		}
		c.Next()
	}
}
