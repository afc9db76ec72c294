package services

import (
	"errors"
	"time"

	"farmpanel/internal/config"
	"farmpanel/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionClaims is the signed state carried in the session cookie.
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionService issues and validates the signed session cookie. The
// cookie is the only session state; nothing is stored server-side, and
// claims are not re-checked against the users table on validation, so a
// session outlives its user for the remainder of the cookie TTL.
type SessionService struct {
	cfg *config.Config
}

func NewSessionService(cfg *config.Config) *SessionService {
	return &SessionService{cfg: cfg}
}

// CookieName returns the configured session cookie name
func (s *SessionService) CookieName() string {
	return s.cfg.Session.CookieName
}

// TTL returns the configured session lifetime
func (s *SessionService) TTL() time.Duration {
	return s.cfg.Session.TTL()
}

// Issue signs a new session token for the user
func (s *SessionService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Session.TTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Session.Issuer,
			Subject:   user.Username,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Session.Secret))
}

// Validate parses and verifies a session token and returns its claims
func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Session.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
