package service

import (
	"context"
)

// TokenClaims are the identity fields extracted from a verified bearer token.
type TokenClaims struct {
	UID   string
	Email string
}

// TokenVerifier checks bearer tokens presented by admins.
type TokenVerifier interface {
	// VerifyToken validates the token and returns its claims.
	VerifyToken(ctx context.Context, token string) (*TokenClaims, error)
}
