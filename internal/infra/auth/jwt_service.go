// Package auth provides HS256 bearer tokens for local development and service accounts.
package auth

import (
	"context"
	"time"

	"fuelflow/config"
	"fuelflow/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or subject checks.
var ErrInvalidToken = errors.New("invalid token")

// JWTService signs and verifies HS256 tokens whose subject is the admin uid.
type JWTService struct {
	secret []byte
}

// NewJWTService is the constructor for JWTService.
func NewJWTService(cfg *config.AuthConfig) (*JWTService, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &JWTService{secret: []byte(cfg.JWTSecret)}, nil
}

var _ service.TokenVerifier = (*JWTService)(nil)

// IssueToken creates a token for uid valid for ttl.
func (s *JWTService) IssueToken(uid, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// VerifyToken implements service.TokenVerifier.
func (s *JWTService) VerifyToken(_ context.Context, token string) (*service.TokenClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.Wrap(ErrInvalidToken, "missing subject")
	}
	email, _ := claims["email"].(string)

	return &service.TokenClaims{UID: sub, Email: email}, nil
}
