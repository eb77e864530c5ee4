package repository

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// SettingsRepository keeps per-admin preferences.
type SettingsRepository interface {
	// Get returns the admin's settings, or the defaults when none are stored.
	Get(ctx context.Context, adminID string) (entity.Settings, error)

	// Save stores the admin's settings without expiry.
	Save(ctx context.Context, adminID string, settings entity.Settings) error
}
