package auth

import (
	"errors"
	"fmt"
	"time"

	"dogslife-quiz/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	issuer    = "dogslife-quiz"
)

// Claims carried by admin tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service checks the admin password and issues short-lived bearer tokens.
type Service struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewService(passwordHash, secret string, ttl time.Duration) *Service {
	return NewServiceWithClock(passwordHash, secret, ttl, time.Now)
}

// NewServiceWithClock is used by tests to control token expiry.
func NewServiceWithClock(passwordHash, secret string, ttl time.Duration, now func() time.Time) *Service {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Service{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          now,
	}
}

// Enabled reports whether admin login is configured at all.
func (s *Service) Enabled() bool {
	return len(s.passwordHash) > 0 && len(s.secret) > 0
}

// Login compares password against the configured bcrypt hash and returns a signed token.
func (s *Service) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: admin login disabled", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return s.issue()
}

func (s *Service) issue() (string, error) {
	now := s.now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   RoleAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a token and checks it grants the admin role.
func (s *Service) Verify(token string) (*Claims, error) {
	if !s.Enabled() {
		return nil, domain.ErrUnauthorized
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if claims.Role != RoleAdmin {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// HashPassword produces the bcrypt hash stored in the config file.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
