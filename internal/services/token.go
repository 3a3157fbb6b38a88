package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Token verification failures. Verify never returns HTTP semantics; the
// session resolver decides what each failure means for the request.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
)

// DefaultTokenTTL keeps browser sessions alive for a week.
const DefaultTokenTTL = 7 * 24 * time.Hour

// IdentityClaim is the verified content of a session credential.
type IdentityClaim struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies HMAC-signed session credentials with
// claims {sub, iat, exp}. It is stateless and side-effect free.
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewTokenService(secret string, defaultTTL time.Duration) *TokenService {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &TokenService{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
	}
}

// Issue produces a signed token asserting the given identity. A
// non-positive ttl uses the service default.
func (s *TokenService) Issue(identity string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   identity,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature and expiry and returns the identity claim.
// Tampering yields ErrTokenSignatureInvalid; a stale exp on an otherwise
// valid token yields ErrTokenExpired; anything unparseable is
// ErrTokenMalformed.
func (s *TokenService) Verify(raw string) (*IdentityClaim, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenMalformed
		}
	}

	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	claim := &IdentityClaim{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		claim.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		claim.ExpiresAt = claims.ExpiresAt.Time
	}
	return claim, nil
}
