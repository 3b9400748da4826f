package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicops/clinic-scheduler/internal/httperr"
	"github.com/clinicops/clinic-scheduler/internal/httpresp"
	"github.com/clinicops/clinic-scheduler/internal/middleware"
	"github.com/clinicops/clinic-scheduler/internal/slot"
	"github.com/clinicops/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/clinicops/clinic-scheduler/internal/usecase/appointment"
	ucDirectory "github.com/clinicops/clinic-scheduler/internal/usecase/directory"
	ucUser "github.com/clinicops/clinic-scheduler/internal/usecase/user"
)

type MeHandler struct {
	users        *ucUser.Users
	doctors      *ucDirectory.Doctors
	byDoctorDate *ucAppointment.ListByDoctorDate
	timezone     string
}

func NewMeHandler(
	users *ucUser.Users,
	doctors *ucDirectory.Doctors,
	byDoctorDate *ucAppointment.ListByDoctorDate,
	tz string,
) *MeHandler {
	return &MeHandler{
		users:        users,
		doctors:      doctors,
		byDoctorDate: byDoctorDate,
		timezone:     tz,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	sess := middleware.Session(c)

	user, err := h.users.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := gin.H{"user": userView(user, sess.DoctorID)}

	if sess.DoctorID != nil {
		d, err := h.doctors.Get(c.Request.Context(), *sess.DoctorID)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		out["doctor"] = d
	}

	httpresp.OK(c, out)
}

// Appointments lists the linked doctor's day, today by default.
func (h *MeHandler) Appointments(c *gin.Context) {
	sess := middleware.Session(c)
	if sess.DoctorID == nil {
		httperr.Forbidden(c, "no_linked_doctor", "user is not linked to a doctor")
		return
	}

	date := c.DefaultQuery("date", timezone.NowIn(h.timezone).Format(slot.DateLayout))

	list, err := h.byDoctorDate.Execute(c.Request.Context(), *sess.DoctorID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}
