package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid or expired token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenService issues and validates the bearer tokens that stand in for
// sessions. Tokens are self-contained HS256 JWTs; on top of the stateless
// scheme sits a server-side revocation set keyed by token id, so logout can
// invalidate a token before its expiry.
type TokenService interface {
	// Issue creates a signed token for the given user code.
	Issue(userID string) (string, error)
	// Validate checks signature, expiry and revocation, and returns the
	// embedded user code.
	Validate(token string) (string, error)
	// Revoke invalidates the given token until its natural expiry. Revoking
	// an already-invalid token is not an error.
	Revoke(token string)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &tokenService{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

func (s *tokenService) Issue(userID string) (string, error) {
	jti, err := newTokenID()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Validate(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.pruneLocked()
	_, isRevoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if isRevoked {
		return "", ErrTokenRevoked
	}

	return claims.Subject, nil
}

func (s *tokenService) Revoke(tokenString string) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return
	}
	expiry := s.now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	s.pruneLocked()
	s.revoked[claims.ID] = expiry
	s.mu.Unlock()
}

// parse verifies signature and expiry. golang-jwt compares signatures in
// constant time, so a forged signature cannot be probed byte by byte.
func (s *tokenService) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// pruneLocked drops revocation entries whose tokens have expired anyway.
// Callers must hold s.mu.
func (s *tokenService) pruneLocked() {
	now := s.now()
	for jti, expiry := range s.revoked {
		if expiry.Before(now) {
			delete(s.revoked, jti)
		}
	}
}

func newTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
