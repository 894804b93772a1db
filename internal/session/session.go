package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrTokenExpired     = errors.New("session token expired")
)

// Session is the single source of truth for the bearer token. Every API call
// reads the token from here, and a 401 from the backend invalidates it here,
// so "is authenticated" has exactly one answer at any point in time.
type Session struct {
	mu        sync.RWMutex
	token     string
	userID    string
	email     string
	expiresAt time.Time
}

func New() *Session {
	return &Session{}
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SetToken stores a bearer token issued by the backend. Claims are read
// without signature verification: the backend is the verifier, the client
// only needs the expiry and identity fields for display and gating.
func (s *Session) SetToken(token string) error {
	claims := &tokenClaims{}
	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(token, claims)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.userID = claims.UserID
	s.email = claims.Email
	if claims.ExpiresAt != nil {
		s.expiresAt = claims.ExpiresAt.Time
	} else {
		s.expiresAt = time.Time{}
	}
	return nil
}

// Token returns the bearer token to attach to a request.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", ErrTokenExpired
	}
	return s.token, nil
}

// Authenticated reports whether a non-expired token is held.
func (s *Session) Authenticated() bool {
	_, err := s.Token()
	return err == nil
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// Invalidate drops the token. Called on logout and on any 401 response.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.userID = ""
	s.email = ""
	s.expiresAt = time.Time{}
}
