package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/usecase"
	"fuelflow/internal/util"

	"github.com/pkg/errors"
)

type deliveryPersonService struct {
	personRepo repository.DeliveryPersonRepository
	entryRepo  repository.EntryRepository
	logger     *slog.Logger
	now        clock
}

// NewDeliveryPersonService creates the delivery person usecase.
func NewDeliveryPersonService(
	personRepo repository.DeliveryPersonRepository,
	entryRepo repository.EntryRepository,
	logger *slog.Logger,
) usecase.DeliveryPersonUsecase {
	return &deliveryPersonService{
		personRepo: personRepo,
		entryRepo:  entryRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (srv *deliveryPersonService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *deliveryPersonService) List(ctx context.Context) ([]*entity.DeliveryPerson, error) {
	persons, err := srv.personRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list delivery persons")
	}

	return persons, nil
}

func (srv *deliveryPersonService) Get(ctx context.Context, id string) (*entity.DeliveryPerson, error) {
	person, err := srv.personRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, repository.ErrDeliveryPersonNotFound, "delivery person")
	}

	return person, nil
}

func (srv *deliveryPersonService) Save(ctx context.Context, person *entity.DeliveryPerson, adminID string) (*entity.DeliveryPerson, error) {
	person.Data.FullName = strings.TrimSpace(person.Data.FullName)
	if person.Data.FullName == "" {
		return nil, validationError([]string{"fullName"})
	}

	if person.Data.UserID == "" {
		person.Data.UserID = util.UserID()
		person.Others = entity.Audit{
			CreatedBy:   adminID,
			CreatedTime: util.EpochMillis(srv.now()),
		}
	} else if existing, err := srv.personRepo.FindByID(ctx, person.Data.UserID); err == nil {
		person.Others = existing.Others
	} else if !errors.Is(err, repository.ErrDeliveryPersonNotFound) {
		return nil, errors.Wrap(err, "failed to find delivery person")
	}

	if err := srv.personRepo.Save(ctx, person); err != nil {
		return nil, errors.Wrap(err, "failed to save delivery person")
	}
	srv.log(ctx).Info("Delivery person saved", slog.String("user_id", person.Data.UserID))

	return person, nil
}

func (srv *deliveryPersonService) Delete(ctx context.Context, id string) error {
	inUse, err := srv.entryRepo.DeliveryPersonHasData(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to check delivery person transactions")
	}
	if inUse {
		return errors.WithStack(domainerrors.ErrDeliveryPersonInUse)
	}

	if err := srv.personRepo.Delete(ctx, id); err != nil {
		return notFound(err, repository.ErrDeliveryPersonNotFound, "delivery person")
	}
	srv.log(ctx).Info("Delivery person deleted", slog.String("user_id", id))

	return nil
}

func (srv *deliveryPersonService) FindByNames(ctx context.Context, names string) ([]entity.UserData, error) {
	var out []entity.UserData
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		person, err := srv.personRepo.FindByName(ctx, name)
		switch {
		case err == nil:
			out = append(out, person.UserData())
		case errors.Is(err, repository.ErrDeliveryPersonNotFound):
			out = append(out, entity.UserData{FullName: name})
		default:
			return nil, errors.Wrap(err, "failed to find delivery person")
		}
	}

	return out, nil
}
