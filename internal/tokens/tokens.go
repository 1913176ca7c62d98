package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/onenotebe/onenotebe/internal/models"
)

type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service issues and verifies stateless HS256 session tokens. The secret is
// fixed for the process lifetime and must never be logged.
type Service struct {
	Secret   []byte
	Lifetime time.Duration
}

func New(secret []byte, lifetime time.Duration) *Service {
	return &Service{Secret: secret, Lifetime: lifetime}
}

func (s *Service) Issue(subject, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.Lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify fails closed: it returns false on malformed input, a signature or
// algorithm mismatch, an expired token or a subject mismatch.
func (s *Service) Verify(tokenStr, expectedSubject string) bool {
	claims, err := s.parse(tokenStr)
	if err != nil || claims == nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// ExtractSubject decodes the subject claim without checking the signature.
// Callers must Verify first before trusting the result.
func (s *Service) ExtractSubject(tokenStr string) (string, error) {
	claims, err := decode(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractRole decodes the role claim without checking the signature,
// defaulting to USER when the claim is absent or the token is unreadable.
func (s *Service) ExtractRole(tokenStr string) string {
	claims, err := decode(tokenStr)
	if err != nil || claims.Role == "" {
		return models.RoleUser
	}
	return claims.Role
}

func (s *Service) parse(tokenStr string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, err
	}
	return &claims, nil
}

func decode(tokenStr string) (*Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}
