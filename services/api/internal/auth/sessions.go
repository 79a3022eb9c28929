// Package auth manages the admin operator's session as an explicit signed
// credential checked per request, rather than process-global state.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/danacastroman/app-vestidos/services/api/internal/clock"
	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// CookieName is the admin session cookie set on login and cleared on logout.
const CookieName = "admin_session"

const sessionSubject = "admin"

// Sessions issues and verifies admin session tokens. The operator password is
// held only as a bcrypt hash.
type Sessions struct {
	user         string
	passwordHash []byte
	secret       []byte
	clock        clock.Clock
	ttl          time.Duration
}

func NewSessions(user, password, secret string, clk clock.Clock) (*Sessions, error) {
	if user == "" || password == "" || secret == "" {
		return nil, fmt.Errorf("auth: user, password and secret are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Sessions{
		user:         user,
		passwordHash: hash,
		secret:       []byte(secret),
		clock:        clk,
		ttl:          12 * time.Hour,
	}, nil
}

// Login checks the operator credentials and returns a signed session token.
func (s *Sessions) Login(user, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.user)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	if !userOK || !passOK {
		return "", domain.ErrUnauthorized
	}

	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify reports whether the token is a live admin session. It never errors;
// callers map false to an unauthorized response.
func (s *Sessions) Verify(token string) bool {
	if token == "" {
		return false
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return false
	}
	return claims.Subject == sessionSubject
}
