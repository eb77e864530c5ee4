package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fuelflow/config"
	"fuelflow/internal/delivery"
	"fuelflow/internal/delivery/api"
	"fuelflow/internal/delivery/api/middleware"
	"fuelflow/internal/delivery/api/router/handler"
	"fuelflow/internal/delivery/worker"
	workerhandler "fuelflow/internal/delivery/worker/handler"
	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
	"fuelflow/internal/infra/ai"
	"fuelflow/internal/infra/auth"
	"fuelflow/internal/infra/broadcast"
	"fuelflow/internal/infra/cache"
	"fuelflow/internal/infra/export"
	infrafirebase "fuelflow/internal/infra/firebase"
	logs "fuelflow/internal/infra/log"
	"fuelflow/internal/infra/metrics"
	"fuelflow/internal/infra/persistence"
	"fuelflow/internal/infra/persistence/document"
	"fuelflow/internal/infra/pubsub"
	"fuelflow/internal/usecase"
	"fuelflow/internal/usecase/impl"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			registerHooks,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
		cache.NewClient,
		newFirebaseApp,
		persistence.NewDocumentStore,
	)
}

// newFirebaseApp creates the Firebase app when either the store or the
// token verifier needs it.
func newFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	if cfg.Store.Provider != constants.StoreProviderFirebase && cfg.Auth.Provider != constants.AuthProviderFirebase {
		return nil, nil
	}

	return infrafirebase.NewApp(ctx, cfg.Firebase)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			document.NewCustomerRepository,
			document.NewDeliveryPersonRepository,
			document.NewProductRepository,
			document.NewTagRepository,
			document.NewAdminRepository,
			document.NewAttendanceRepository,
			document.NewEntryRepository,
			document.NewDepositRepository,
			document.NewMoveHistoryRepository,
			newSettingsRepository,
		),
	)
}

func newSettingsRepository(client *redis.Client, cfg *config.Config) repository.SettingsRepository {
	return cache.NewSettingsRepository(client, cfg.Store.PathPrefix)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			broadcast.NewHub,
			func(hub *broadcast.Hub) service.ChangeNotifier { return hub },
			newTokenVerifier,
			ai.NewChatModel,
			export.NewRenderer,
			export.NewSpreadsheetReader,
		),
	)
}

// newTokenVerifier picks the ID token verifier named by auth.provider
func newTokenVerifier(ctx context.Context, cfg *config.Config, app *firebase.App) (service.TokenVerifier, error) {
	switch cfg.Auth.Provider {
	case constants.AuthProviderJWT:
		return auth.NewJWTService(cfg.Auth)
	case constants.AuthProviderFirebase:
		verifier, err := infrafirebase.NewTokenVerifier(ctx, app)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firebase token verifier: %w", err)
		}

		return verifier, nil
	default:
		return nil, fmt.Errorf("unknown auth provider: %s", cfg.Auth.Provider)
	}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAdminService,
			impl.NewAttendanceService,
			impl.NewSettingsService,
			impl.NewProductService,
			impl.NewTagService,
			impl.NewCustomerService,
			impl.NewDeliveryPersonService,
			impl.NewDepositService,
			impl.NewEntryService,
			impl.NewExportService,
			impl.NewImportService,
			impl.NewInventoryService,
			impl.NewMoveService,
			impl.NewStatisticsService,
			impl.NewChatService,
			newSyncService,
		),
	)
}

type syncServiceParams struct {
	fx.In

	Notifier        service.ChangeNotifier
	Logger          *slog.Logger
	Customers       repository.CustomerRepository
	DeliveryPersons repository.DeliveryPersonRepository
	Products        repository.ProductRepository
	Tags            repository.TagRepository
	Admins          repository.AdminRepository
	Attendance      repository.AttendanceRepository
	Entries         repository.EntryRepository
	Deposits        repository.DepositRepository
	Moves           repository.MoveHistoryRepository
}

func newSyncService(params syncServiceParams) usecase.SyncUsecase {
	return impl.NewSyncService(params.Notifier, params.Logger,
		params.Customers,
		params.DeliveryPersons,
		params.Products,
		params.Tags,
		params.Admins,
		params.Attendance,
		params.Entries,
		params.Deposits,
		params.Moves,
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCustomerHandler,
			handler.NewDeliveryPersonHandler,
			handler.NewCatalogHandler,
			handler.NewAdminHandler,
			handler.NewEntryHandler,
			handler.NewReportHandler,
			handler.NewChatHandler,
			handler.NewSyncHandler,
			handler.NewEventsHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				newWorkerServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// newWorkerServer serves the Pub/Sub push endpoint only when the worker is enabled
func newWorkerServer(params worker.ServerParams) (delivery.Delivery, error) {
	if !params.Cfg.Worker.Enabled {
		return nil, nil
	}

	return worker.NewServer(params)
}

// registerHooks loads every repository before the servers accept traffic and
// waits for in-flight event forwarding on shutdown.
func registerHooks(lc fx.Lifecycle, syncUC usecase.SyncUsecase, hub *broadcast.Hub, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Loading repositories")

			return syncUC.LoadAll(ctx)
		},
		OnStop: func(context.Context) error {
			hub.Wait()

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		if delivery == nil {
			continue
		}

		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
