package cache

import (
	"context"
	"encoding/json"
	"sync"

	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "fuelflow:settings:"

// settingsRepository stores admin settings in Redis without expiry, or in
// process memory when Redis is unavailable.
type settingsRepository struct {
	client    *redis.Client
	namespace string

	mu       sync.RWMutex
	fallback map[string]entity.Settings
}

// NewSettingsRepository creates the settings repository. client may be nil.
func NewSettingsRepository(client *redis.Client, namespace string) repository.SettingsRepository {
	return &settingsRepository{
		client:    client,
		namespace: namespace,
		fallback:  map[string]entity.Settings{},
	}
}

func (r *settingsRepository) key(adminID string) string {
	return settingsKeyPrefix + r.namespace + adminID
}

func (r *settingsRepository) Get(ctx context.Context, adminID string) (entity.Settings, error) {
	if r.client == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()

		if s, ok := r.fallback[adminID]; ok {
			return s, nil
		}

		return entity.DefaultSettings(), nil
	}

	raw, err := r.client.Get(ctx, r.key(adminID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		return entity.Settings{}, errors.Wrap(err, "read settings")
	}

	// Unknown fields keep their defaults.
	settings := entity.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return entity.Settings{}, errors.Wrap(err, "decode settings")
	}

	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, adminID string, settings entity.Settings) error {
	if r.client == nil {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.fallback[adminID] = settings

		return nil
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}

	return errors.Wrap(r.client.Set(ctx, r.key(adminID), raw, 0).Err(), "write settings")
}
