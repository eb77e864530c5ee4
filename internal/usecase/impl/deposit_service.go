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

type depositService struct {
	depositRepo  repository.DepositRepository
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
	now          clock
}

// NewDepositService creates the deposit usecase.
func NewDepositService(
	depositRepo repository.DepositRepository,
	customerRepo repository.CustomerRepository,
	logger *slog.Logger,
) usecase.DepositUsecase {
	return &depositService{
		depositRepo:  depositRepo,
		customerRepo: customerRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (srv *depositService) List(ctx context.Context) ([]*entity.DepositEntry, error) {
	deposits, err := srv.depositRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list deposits")
	}

	return deposits, nil
}

func (srv *depositService) ListForCustomer(ctx context.Context, customerID string) ([]*entity.DepositEntry, error) {
	deposits, err := srv.depositRepo.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer deposits")
	}

	return deposits, nil
}

func (srv *depositService) Save(ctx context.Context, deposit *entity.DepositEntry, adminID string) (*entity.DepositEntry, error) {
	deposit = deposit.Clone()
	deposit.Data.Date = strings.TrimSpace(deposit.Data.Date)

	var missing []string
	date, err := entity.ParseEntryDate(deposit.Data.Date)
	if deposit.Data.Date == "" {
		missing = append(missing, "date")
	} else if err != nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidDate.WithDetails(deposit.Data.Date))
	}
	if deposit.Data.Customer.UserID == "" {
		missing = append(missing, "customer")
	}
	var units int
	for _, line := range deposit.Data.SelectedProducts {
		units += line.SentUnits + line.RecievedUnits
	}
	if units == 0 && deposit.Data.PaymentAmt == 0 && deposit.Data.ReturnAmt == 0 {
		missing = append(missing, "selectedProducts")
	}
	if len(missing) > 0 {
		return nil, validationError(missing)
	}

	customer, err := srv.customerRepo.FindByID(ctx, deposit.Data.Customer.UserID)
	if err != nil {
		return nil, notFound(err, repository.ErrCustomerNotFound, "customer")
	}
	deposit.Data.Customer = customer.UserData()
	deposit.Data.Date = date.Format(entity.EntryDateLayout)

	now := srv.now()
	nowMillis := util.EpochMillis(now)
	if deposit.Data.TransactionID == "" {
		deposit.Data.TransactionID = util.TransactionID(date, now)
		deposit.Others = entity.Audit{CreatedBy: adminID, CreatedTime: nowMillis}
	} else {
		// The stored audit wins over whatever the client sent back
		stored, err := srv.depositRepo.FindByID(ctx, customer.Data.UserID, deposit.ID())
		if err != nil {
			return nil, notFound(err, repository.ErrDepositNotFound, "deposit")
		}
		deposit.Others = stored.Others.Clone()
	}
	deposit.Others.EditedBy = adminID
	deposit.Others.EditedTime = nowMillis

	if err := srv.depositRepo.Save(ctx, deposit); err != nil {
		return nil, errors.Wrap(err, "failed to save deposit")
	}
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Deposit saved",
		slog.String("customer_id", deposit.Data.Customer.UserID),
		slog.String("transaction_id", deposit.ID()),
	)

	return deposit, nil
}

func (srv *depositService) Delete(ctx context.Context, customerID, id string) error {
	if err := srv.depositRepo.Delete(ctx, customerID, id); err != nil {
		return notFound(err, repository.ErrDepositNotFound, "deposit")
	}

	return nil
}
