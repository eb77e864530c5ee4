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

type customerService struct {
	customerRepo repository.CustomerRepository
	entryRepo    repository.EntryRepository
	logger       *slog.Logger
	now          clock
}

// NewCustomerService creates the customer usecase.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	entryRepo repository.EntryRepository,
	logger *slog.Logger,
) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: customerRepo,
		entryRepo:    entryRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (srv *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *customerService) List(ctx context.Context) ([]*entity.Customer, error) {
	customers, err := srv.customerRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return customers, nil
}

func (srv *customerService) Get(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, repository.ErrCustomerNotFound, "customer")
	}

	return customer, nil
}

func (srv *customerService) Save(ctx context.Context, customer *entity.Customer, adminID string) (*entity.Customer, error) {
	customer.Data.FullName = strings.TrimSpace(customer.Data.FullName)
	if customer.Data.FullName == "" {
		return nil, validationError([]string{"fullName"})
	}

	if customer.Data.UserID == "" {
		customer.Data.UserID = util.UserID()
		customer.Others = entity.Audit{
			CreatedBy:   adminID,
			CreatedTime: util.EpochMillis(srv.now()),
		}
	} else if existing, err := srv.customerRepo.FindByID(ctx, customer.Data.UserID); err == nil {
		customer.Others = existing.Others
	} else if !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, errors.Wrap(err, "failed to find customer")
	}

	if err := srv.customerRepo.Save(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to save customer")
	}
	srv.log(ctx).Info("Customer saved", slog.String("user_id", customer.Data.UserID))

	return customer, nil
}

func (srv *customerService) Delete(ctx context.Context, id string) error {
	inUse, err := srv.entryRepo.CustomerHasData(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to check customer transactions")
	}
	if inUse {
		return errors.WithStack(domainerrors.ErrCustomerInUse)
	}

	if err := srv.customerRepo.Delete(ctx, id); err != nil {
		return notFound(err, repository.ErrCustomerNotFound, "customer")
	}
	srv.log(ctx).Info("Customer deleted", slog.String("user_id", id))

	return nil
}

func (srv *customerService) AddShippingAddress(ctx context.Context, id, address string) (*entity.Customer, error) {
	customer, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	address = strings.TrimSpace(address)
	if address == "" || customer.HasShippingAddress(address) {
		return customer, nil
	}

	customer.Data.ShippingAddress = append(customer.Data.ShippingAddress, address)
	if err := srv.customerRepo.Save(ctx, customer); err != nil {
		return nil, errors.Wrap(withSupportCode(err, domainerrors.CodeAddress), "failed to add shipping address")
	}

	return customer, nil
}

func (srv *customerService) SetUpdateStatus(ctx context.Context, id string, updated bool) error {
	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return notFound(err, repository.ErrCustomerNotFound, "customer")
		}

		return withSupportCode(err, domainerrors.CodeCustomerStatusRead)
	}
	if customer.Data.IsUpdated == updated {
		return nil
	}

	customer.Data.IsUpdated = updated
	if err := srv.customerRepo.Save(ctx, customer); err != nil {
		return errors.Wrap(withSupportCode(err, domainerrors.CodeCustomerStatus), "failed to set customer status")
	}

	return nil
}

func (srv *customerService) Name(ctx context.Context, id, fallback string) string {
	if id == "" {
		return fallback
	}
	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		return fallback
	}

	return customer.Data.FullName
}

func (srv *customerService) Address(ctx context.Context, id string) (string, error) {
	customer, err := srv.Get(ctx, id)
	if err != nil {
		return "", err
	}

	return customer.Data.Address, nil
}
