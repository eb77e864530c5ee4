package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
	"fuelflow/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type syncService struct {
	loaders  []repository.Loader
	byTopic  map[string]repository.Loader
	notifier service.ChangeNotifier
	logger   *slog.Logger
}

// NewSyncService creates the repository sync usecase over loaders, kept in
// the given order for Status.
func NewSyncService(notifier service.ChangeNotifier, logger *slog.Logger, loaders ...repository.Loader) usecase.SyncUsecase {
	byTopic := make(map[string]repository.Loader, len(loaders))
	for _, l := range loaders {
		byTopic[l.Topic()] = l
	}

	return &syncService{
		loaders:  loaders,
		byTopic:  byTopic,
		notifier: notifier,
		logger:   logger,
	}
}

func (srv *syncService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *syncService) LoadAll(ctx context.Context) error {
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range srv.loaders {
		g.Go(func() error {
			return errors.Wrapf(l.Load(gctx), "failed to load %s", l.Topic())
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	srv.log(ctx).Info("Repositories loaded",
		slog.Int("repositories", len(srv.loaders)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

func (srv *syncService) Refresh(ctx context.Context, topic string) error {
	l, ok := srv.byTopic[topic]
	if !ok {
		return errors.WithStack(domainerrors.ErrNotFound.WithDetails("unknown topic " + topic))
	}
	if err := l.Refresh(ctx); err != nil {
		return errors.Wrapf(err, "failed to refresh %s", topic)
	}
	srv.log(ctx).Info("Repository refreshed", slog.String("topic", topic), slog.Int("count", l.Count()))

	return nil
}

func (srv *syncService) ApplyRemoteChange(ctx context.Context, event *entity.ChangeEvent) (bool, error) {
	if event.Origin != "" && event.Origin == srv.notifier.Origin() {
		return false, nil
	}
	if err := srv.Refresh(ctx, event.Topic); err != nil {
		return false, err
	}

	return true, nil
}

func (srv *syncService) Status() []usecase.RepositoryStatus {
	out := make([]usecase.RepositoryStatus, 0, len(srv.loaders))
	for _, l := range srv.loaders {
		out = append(out, usecase.RepositoryStatus{
			Topic:         l.Topic(),
			Count:         l.Count(),
			LastRefreshed: l.LastRefreshed(),
		})
	}

	return out
}
