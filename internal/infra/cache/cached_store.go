package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"fuelflow/internal/domain/repository"
	"fuelflow/internal/infra/metrics"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	snapshotKeyPrefix   = "fuelflow:snapshot:"
	generationKeyPrefix = "fuelflow:snapshotgen:"
)

// errSnapshotStale marks a fetched root that a write overtook.
var errSnapshotStale = errors.New("snapshot overtaken by a write")

// CachedStore keeps whole-root snapshots of selected roots in Redis. Reads of
// a root are served from the snapshot; any write below a root drops it and
// bumps the root's generation. A snapshot is only stored if the generation
// seen before the backend fetch is still current.
type CachedStore struct {
	next      repository.DocumentStore
	client    *redis.Client
	roots     []string
	namespace string
	ttl       time.Duration
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewCachedStore wraps next. A nil client returns next unchanged.
func NewCachedStore(
	next repository.DocumentStore,
	client *redis.Client,
	namespace string,
	ttl time.Duration,
	roots []string,
	m *metrics.Metrics,
	logger *slog.Logger,
) repository.DocumentStore {
	if client == nil {
		return next
	}

	return &CachedStore{
		next:      next,
		client:    client,
		roots:     roots,
		namespace: namespace,
		ttl:       ttl,
		metrics:   m,
		logger:    logger,
	}
}

func (s *CachedStore) key(root string) string {
	return snapshotKeyPrefix + s.namespace + root
}

func (s *CachedStore) generationKey(root string) string {
	return generationKeyPrefix + s.namespace + root
}

func (s *CachedStore) generation(ctx context.Context, root string) (int64, error) {
	gen, err := s.client.Get(ctx, s.generationKey(root)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return gen, err
}

// rootOf returns the cached root that path equals or lies under.
func (s *CachedStore) rootOf(path string) (string, bool) {
	path = strings.Trim(path, "/")
	for _, root := range s.roots {
		if path == root || strings.HasPrefix(path, root+"/") {
			return root, true
		}
	}

	return "", false
}

func (s *CachedStore) Get(ctx context.Context, path string, dest any) error {
	root, ok := s.rootOf(path)
	if !ok || strings.Trim(path, "/") != root {
		return s.next.Get(ctx, path, dest)
	}

	cached, err := s.client.Get(ctx, s.key(root)).Bytes()
	switch {
	case err == nil:
		s.metrics.ObserveCache(root, true)

		return errors.Wrapf(json.Unmarshal(cached, dest), "decode cached %s", root)
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("snapshot cache read failed", slog.String("root", root), slog.Any("error", err))
	}
	s.metrics.ObserveCache(root, false)

	gen, genErr := s.generation(ctx, root)

	var raw json.RawMessage
	if err := s.next.Get(ctx, path, &raw); err != nil {
		return err
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if genErr != nil {
		s.logger.Warn("snapshot generation read failed", slog.String("root", root), slog.Any("error", genErr))
	} else {
		s.storeSnapshot(ctx, root, gen, raw)
	}

	return errors.Wrapf(json.Unmarshal(raw, dest), "decode %s", root)
}

// storeSnapshot writes raw unless the root's generation moved past gen while
// it was being fetched.
func (s *CachedStore) storeSnapshot(ctx context.Context, root string, gen int64, raw json.RawMessage) {
	genKey := s.generationKey(root)
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errSnapshotStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key(root), []byte(raw), s.ttl)

			return nil
		})

		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errSnapshotStale), errors.Is(err, redis.TxFailedErr):
		s.logger.Debug("snapshot skipped, root changed during fetch", slog.String("root", root))
	default:
		s.logger.Warn("snapshot cache write failed", slog.String("root", root), slog.Any("error", err))
	}
}

func (s *CachedStore) Set(ctx context.Context, path string, value any) error {
	if err := s.next.Set(ctx, path, value); err != nil {
		return err
	}
	s.invalidate(ctx, path)

	return nil
}

func (s *CachedStore) Delete(ctx context.Context, path string) error {
	if err := s.next.Delete(ctx, path); err != nil {
		return err
	}
	s.invalidate(ctx, path)

	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, path string) {
	root, ok := s.rootOf(path)
	if !ok {
		return
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, s.generationKey(root))
		pipe.Del(ctx, s.key(root))

		return nil
	})
	if err != nil {
		s.logger.Warn("snapshot cache invalidation failed", slog.String("root", root), slog.Any("error", err))
	}
}
