package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/clinicops/clinic-scheduler/internal/httperr"
	"github.com/clinicops/clinic-scheduler/internal/httpresp"
	"github.com/clinicops/clinic-scheduler/internal/middleware"
	ucDirectory "github.com/clinicops/clinic-scheduler/internal/usecase/directory"
	ucUser "github.com/clinicops/clinic-scheduler/internal/usecase/user"
)

type DirectoryHandler struct {
	patients    *ucDirectory.Patients
	doctors     *ucDirectory.Doctors
	specialties *ucDirectory.Specialties
	users       *ucUser.Users
}

func NewDirectoryHandler(
	patients *ucDirectory.Patients,
	doctors *ucDirectory.Doctors,
	specialties *ucDirectory.Specialties,
	users *ucUser.Users,
) *DirectoryHandler {
	return &DirectoryHandler{
		patients:    patients,
		doctors:     doctors,
		specialties: specialties,
		users:       users,
	}
}

// --------- Requests ---------

type CreatePatientRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,ymd"`
	Gender      string `json:"gender" binding:"gender"`
	Phone       string `json:"phone" binding:"required,max=20"`
	Address     string `json:"address" binding:"max=255"`
}

type CreateDoctorRequest struct {
	FirstName       string           `json:"first_name" binding:"required,max=50"`
	LastName        string           `json:"last_name" binding:"required,max=50"`
	SpecialtyID     uint             `json:"specialty_id" binding:"required"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" binding:"required"`
	Phone           string           `json:"phone" binding:"max=20"`
	Email           string           `json:"email" binding:"omitempty,email,max=100"`
}

type UpdateFeeRequest struct {
	ConsultationFee *decimal.Decimal `json:"consultation_fee" binding:"required"`
}

type CreateSpecialtyRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

type LinkUserRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// --------- Patients ---------

func (h *DirectoryHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patients.Register(c.Request.Context(), middleware.Session(c), ucDirectory.PatientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *DirectoryHandler) ListPatients(c *gin.Context) {
	list, err := h.patients.List(
		c.Request.Context(),
		c.Query("search"),
		queryInt(c, "limit", ucDirectory.DefaultPatientLimit),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *DirectoryHandler) GetPatient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, err := h.patients.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}

// --------- Specialties ---------

func (h *DirectoryHandler) CreateSpecialty(c *gin.Context) {
	var req CreateSpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.specialties.Register(c.Request.Context(), middleware.Session(c), req.Name, req.Description)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *DirectoryHandler) ListSpecialties(c *gin.Context) {
	list, err := h.specialties.List(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

// --------- Doctors ---------

func (h *DirectoryHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctors.Register(c.Request.Context(), middleware.Session(c), ucDirectory.DoctorInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		SpecialtyID:     req.SpecialtyID,
		ConsultationFee: *req.ConsultationFee,
		Phone:           req.Phone,
		Email:           req.Email,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, d)
}

func (h *DirectoryHandler) ListDoctors(c *gin.Context) {
	specialtyID := queryInt(c, "specialty_id", 0)
	if specialtyID < 0 {
		specialtyID = 0
	}

	list, err := h.doctors.List(c.Request.Context(), uint(specialtyID))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *DirectoryHandler) GetDoctor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	d, err := h.doctors.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DirectoryHandler) UpdateFee(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateFeeRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctors.UpdateFee(c.Request.Context(), middleware.Session(c), id, *req.ConsultationFee)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DirectoryHandler) LinkUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req LinkUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Get(c.Request.Context(), req.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	d, err := h.doctors.LinkUser(c.Request.Context(), middleware.Session(c), id, u)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, d)
}
