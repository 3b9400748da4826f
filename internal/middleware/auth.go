package middleware

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicops/clinic-scheduler/internal/config"
	"github.com/clinicops/clinic-scheduler/internal/httperr"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
)

const ContextSession = "session"

// Claims carries the caller identity. DoctorID is the explicit user-to-doctor
// link and is set only for users linked to a doctor record.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	DoctorID *uint  `json:"doctorId,omitempty"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 token for user.
func NewToken(cfg *config.Config, user *models.User, doctorID *uint, now time.Time) (string, error) {
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		DoctorID: doctorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func parseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AuthMiddleware turns the bearer token into a session.Session stored on the
// gin context and on the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
			c.Abort()
			return
		}

		claims, err := parseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "token is invalid or expired")
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		role := session.Role(claims.Role)
		if err != nil || userID == 0 || !role.Valid() {
			httperr.Unauthorized(c, "invalid_token_payload", "token payload is invalid")
			c.Abort()
			return
		}

		sess := session.Session{
			UserID:    uint(userID),
			Username:  claims.Username,
			Role:      role,
			DoctorID:  claims.DoctorID,
			RequestID: c.GetString(ContextRequestID),
		}

		c.Set(ContextSession, sess)
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))

		c.Next()
	}
}

// Session returns the caller session set by AuthMiddleware.
func Session(c *gin.Context) session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if s, ok := v.(session.Session); ok {
			return s
		}
	}
	return session.Session{RequestID: c.GetString(ContextRequestID)}
}
