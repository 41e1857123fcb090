// Package credential handles password hashing and bearer-token issuance.
package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the policy applied at registration. The hash itself
// accepts anything; the validation layer enforces this constant.
const MinPasswordLength = 8

// MinSecretLength is the smallest signing secret accepted at startup. There
// is deliberately no fallback secret: a missing or weak secret aborts boot.
const MinSecretLength = 32

// TokenTTL bounds how long an issued token stays valid.
const TokenTTL = 30 * 24 * time.Hour

var (
	ErrWeakSecret   = errors.New("signing secret missing or shorter than 32 bytes")
	ErrInvalidToken = errors.New("invalid token")
)

// HashPassword produces a salted one-way digest of the plaintext.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// Manager issues and parses signed bearer tokens carrying a business ID.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager fails when the secret does not meet the length policy.
func NewManager(secret string) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &Manager{secret: []byte(secret), ttl: TokenTTL}, nil
}

// Secret exposes the raw signing key for the token middleware.
func (m *Manager) Secret() []byte { return m.secret }

// IssueToken signs a token whose subject is the given business ID.
func (m *Manager) IssueToken(subjectID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Subject verifies a token string and returns the business ID it carries.
func (m *Manager) Subject(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
