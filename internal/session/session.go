package session

import "context"

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleDoctor    Role = "Doctor"
	RoleSecretary Role = "Secretary"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleSecretary:
		return true
	}
	return false
}

// Session identifies the caller of a core operation. It is built once per
// request and passed explicitly; nothing about it is kept between calls.
type Session struct {
	UserID    uint
	Username  string
	Role      Role
	DoctorID  *uint
	RequestID string
}

// System is used by CLI commands that act without a logged-in user.
func System(requestID string) Session {
	return Session{Username: "system", Role: RoleAdmin, RequestID: requestID}
}

// UserRef returns the user id for audit rows, nil for system sessions.
func (s Session) UserRef() *uint {
	if s.UserID == 0 {
		return nil
	}
	id := s.UserID
	return &id
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
