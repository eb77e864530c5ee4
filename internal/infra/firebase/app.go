// Package firebase adapts the Firebase Admin SDK to the domain interfaces.
package firebase

import (
	"context"
	"fmt"

	"fuelflow/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewApp initialises the Firebase app from config. An empty credentials path
// falls back to application default credentials.
func NewApp(ctx context.Context, cfg *config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.ProjectID,
		DatabaseURL: cfg.DatabaseURL,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	return app, nil
}
