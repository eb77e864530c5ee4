// Package persistence assembles the document store used by every repository.
package persistence

import (
	"context"
	"log/slog"
	"strings"

	"fuelflow/config"
	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/lifecycle"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/infra/cache"
	infrafirebase "fuelflow/internal/infra/firebase"
	"fuelflow/internal/infra/metrics"
	"fuelflow/internal/infra/persistence/memory"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Roots cached in Redis. These are small and read on every session start.
var sessionRoots = []string{
	constants.PathCustomers,
	constants.PathDeliveryPersons,
	constants.PathTags,
	constants.PathAttendance,
}

// StoreParams defines the parameters required for the document store
type StoreParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	App     *firebase.App `optional:"true"`
	Redis   *redis.Client `optional:"true"`
	Metrics *metrics.Metrics
}

// NewDocumentStore builds the backend named by store.provider and layers the
// path prefix, the snapshot cache and the operation counters on top.
func NewDocumentStore(params StoreParams) (repository.DocumentStore, error) {
	var backend repository.DocumentStore

	switch params.Config.Store.Provider {
	case constants.StoreProviderFirebase:
		if params.App == nil {
			return nil, errors.New("firebase store requires firebase configuration")
		}
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		store, err := infrafirebase.NewRTDBStore(ctx, params.App)
		if err != nil {
			return nil, err
		}
		backend = store
	case constants.StoreProviderMemory, "":
		params.Logger.Warn("Using in-memory document store, data is lost on restart")
		backend = memory.NewStore()
	default:
		return nil, errors.Errorf("unknown store provider: %s", params.Config.Store.Provider)
	}

	prefix := params.Config.Store.PathPrefix
	store := NewPrefixedStore(backend, prefix)
	store = cache.NewCachedStore(store, params.Redis, prefix, params.Config.Redis.SnapshotTTL, sessionRoots, params.Metrics, params.Logger)

	params.Logger.Info("Document store initialized",
		slog.String("provider", params.Config.Store.Provider),
		slog.String("path_prefix", prefix),
		slog.Bool("snapshot_cache", params.Redis != nil),
	)

	return metrics.InstrumentStore(store, params.Metrics), nil
}

type prefixedStore struct {
	next   repository.DocumentStore
	prefix string
}

// NewPrefixedStore prepends prefix to every path. An empty prefix returns next.
func NewPrefixedStore(next repository.DocumentStore, prefix string) repository.DocumentStore {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return next
	}

	return &prefixedStore{next: next, prefix: prefix + "/"}
}

func (s *prefixedStore) path(p string) string {
	return s.prefix + strings.TrimPrefix(p, "/")
}

func (s *prefixedStore) Get(ctx context.Context, path string, dest any) error {
	return s.next.Get(ctx, s.path(path), dest)
}

func (s *prefixedStore) Set(ctx context.Context, path string, value any) error {
	return s.next.Set(ctx, s.path(path), value)
}

func (s *prefixedStore) Delete(ctx context.Context, path string) error {
	return s.next.Delete(ctx, s.path(path))
}
