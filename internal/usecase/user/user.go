package user

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/audit"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
)

const MinPasswordLength = 8

// ErrInvalidCredentials is returned for unknown users and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type CreateInput struct {
	Username string
	FullName string
	Password string
	Role     session.Role
}

type Users struct {
	repo  Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
	cost  int
}

func NewUsers(repo Repository, audit *audit.Dispatcher, log zerolog.Logger) *Users {
	return &Users{repo: repo, audit: audit, log: log, cost: bcrypt.DefaultCost}
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (uc *Users) Create(
	ctx context.Context,
	sess session.Session,
	in CreateInput,
) (*models.User, error) {

	username := normalize(in.Username)
	if username == "" {
		return nil, apperr.Validation("username_required", "username is required")
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("invalid_role", "role must be Admin, Doctor or Secretary")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperr.Validation("weak_password", "password is too short")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, apperr.Validation("invalid_password", err.Error())
	}

	u := &models.User{
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hashed),
		Role:         string(in.Role),
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("user_id", u.ID).
		Str("role", u.Role).
		Msg("user created")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "user_created",
		Entity:    "user",
		EntityID:  &u.ID,
		RequestID: sess.RequestID,
		Metadata:  map[string]string{"role": u.Role},
	})

	return u, nil
}

// Authenticate checks a username and password pair.
func (uc *Users) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := uc.repo.GetUserByUsername(ctx, normalize(username))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (uc *Users) Get(ctx context.Context, id uint) (*models.User, error) {
	return uc.repo.GetUser(ctx, id)
}
