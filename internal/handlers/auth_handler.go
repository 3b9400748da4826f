package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/config"
	"github.com/clinicops/clinic-scheduler/internal/httperr"
	"github.com/clinicops/clinic-scheduler/internal/httpresp"
	"github.com/clinicops/clinic-scheduler/internal/middleware"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
	ucDirectory "github.com/clinicops/clinic-scheduler/internal/usecase/directory"
	ucUser "github.com/clinicops/clinic-scheduler/internal/usecase/user"
)

type AuthHandler struct {
	users   *ucUser.Users
	doctors *ucDirectory.Doctors
	config  *config.Config
}

func NewAuthHandler(users *ucUser.Users, doctors *ucDirectory.Doctors, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, doctors: doctors, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	FullName string `json:"full_name" binding:"max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,role"`
}

func userView(u *models.User, doctorID *uint) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"full_name": u.FullName,
		"role":      u.Role,
		"doctor_id": doctorID,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ucUser.ErrInvalidCredentials) {
			httperr.Unauthorized(c, "invalid_credentials", "invalid username or password")
			return
		}
		httperr.FromError(c, err)
		return
	}

	doctorID, err := h.linkedDoctor(c, user)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	token, err := middleware.NewToken(h.config, user, doctorID, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not issue token")
		return
	}

	httpresp.OK(c, gin.H{
		"user":  userView(user, doctorID),
		"token": token,
	})
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), middleware.Session(c), ucUser.CreateInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Role:     session.Role(req.Role),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, userView(user, nil))
}

// linkedDoctor resolves the doctor record bound to a Doctor login.
func (h *AuthHandler) linkedDoctor(c *gin.Context, user *models.User) (*uint, error) {
	if session.Role(user.Role) != session.RoleDoctor {
		return nil, nil
	}

	d, err := h.doctors.ForUser(c.Request.Context(), user.ID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d.ID, nil
}
