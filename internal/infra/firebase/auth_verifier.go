package firebase

import (
	"context"
	"fmt"

	"fuelflow/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

type idTokenVerifier struct {
	client *auth.Client
}

// NewTokenVerifier creates a verifier for Firebase Auth ID tokens.
func NewTokenVerifier(ctx context.Context, app *firebase.App) (service.TokenVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	return &idTokenVerifier{client: client}, nil
}

func (v *idTokenVerifier) VerifyToken(ctx context.Context, token string) (*service.TokenClaims, error) {
	verified, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	email, _ := verified.Claims["email"].(string)

	return &service.TokenClaims{UID: verified.UID, Email: email}, nil
}
