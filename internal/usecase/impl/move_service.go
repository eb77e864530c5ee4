package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/usecase"
	"fuelflow/internal/util"

	"github.com/pkg/errors"
)

type moveService struct {
	entryRepo    repository.EntryRepository
	customerRepo repository.CustomerRepository
	historyRepo  repository.MoveHistoryRepository
	logger       *slog.Logger
	now          clock
}

// NewMoveService creates the move entries usecase.
func NewMoveService(
	entryRepo repository.EntryRepository,
	customerRepo repository.CustomerRepository,
	historyRepo repository.MoveHistoryRepository,
	logger *slog.Logger,
) usecase.MoveUsecase {
	return &moveService{
		entryRepo:    entryRepo,
		customerRepo: customerRepo,
		historyRepo:  historyRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (srv *moveService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// MoveEntries has no rollback: entries that were written stay moved even
// when others or the history record fail.
func (srv *moveService) MoveEntries(ctx context.Context, req *usecase.MoveEntriesRequest) (*usecase.MoveEntriesResult, error) {
	if req.FromUserID == req.ToUserID {
		return nil, errors.WithStack(domainerrors.ErrSameCustomer)
	}
	if len(req.TransactionIDs) == 0 {
		return nil, validationError([]string{"transactionIdList"})
	}

	target, err := srv.customerRepo.FindByID(ctx, req.ToUserID)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, errors.Wrap(err, "failed to find target customer")
	}

	now := srv.now()
	nowMillis := util.EpochMillis(now)
	moveID := util.MoveID(now)
	result := &usecase.MoveEntriesResult{MoveID: moveID}

	moved := make([]*entity.EntryTransaction, 0, len(req.TransactionIDs))
	for _, id := range req.TransactionIDs {
		entry, err := srv.entryRepo.FindByID(ctx, id)
		if err != nil {
			srv.log(ctx).Warn("Transaction to move not found", slog.String("transaction_id", id), slog.Any("error", err))
			result.FailureCount++

			continue
		}

		entry.Data.Customer = movedCustomer(entry.Data.Customer, target, req.ToUserID)
		entry.Others.MovedBy = req.MovedBy
		entry.Others.MovedTime = nowMillis
		entry.Others.MoveIDs = append(entry.Others.MoveIDs, moveID)
		moved = append(moved, entry)
	}

	if len(moved) > 0 {
		saved, failed := srv.entryRepo.SaveEach(ctx, moved)
		result.SuccessCount = len(saved)
		result.FailureCount += len(failed)
		for id, err := range failed {
			srv.log(ctx).Error("Failed to move transaction", slog.String("transaction_id", id), slog.Any("error", err))
		}
	}

	payload := &entity.MoveEntryPayload{
		MoveID:            moveID,
		FromUserID:        req.FromUserID,
		ToUserID:          req.ToUserID,
		TransactionIDList: slices.Clone(req.TransactionIDs),
		MoveTime:          nowMillis,
		MovedBy:           req.MovedBy,
		ExtraNote:         req.ExtraNote,
	}
	if err := srv.historyRepo.Append(ctx, payload); err != nil {
		srv.log(ctx).Error("Failed to write move history", slog.String("move_id", moveID), slog.Any("error", err))
		result.HistoryFailed = true
	}

	result.Severity = entity.SeverityFor(result.SuccessCount, result.FailureCount)
	srv.log(ctx).Info("Transactions moved",
		slog.String("move_id", moveID),
		slog.Int("success", result.SuccessCount),
		slog.Int("failure", result.FailureCount),
	)

	return result, nil
}

// movedCustomer prefers the target's profile and falls back to the snapshot
// the entry already carries.
func movedCustomer(source entity.UserData, target *entity.Customer, targetID string) entity.UserData {
	out := entity.UserData{
		FullName:    source.FullName,
		PhoneNumber: source.PhoneNumber,
		UserID:      targetID,
	}
	if target == nil {
		return out
	}
	if target.Data.FullName != "" {
		out.FullName = target.Data.FullName
	}
	if target.Data.PhoneNumber != "" {
		out.PhoneNumber = target.Data.PhoneNumber
	}

	return out
}

func (srv *moveService) History(ctx context.Context) ([]*entity.MoveEntryPayload, error) {
	history, err := srv.historyRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list move history")
	}

	return history, nil
}

func (srv *moveService) HistoryEntries(ctx context.Context, moveID string) ([]*entity.EntryTransaction, error) {
	payload, err := srv.historyRepo.FindByID(ctx, moveID)
	if err != nil {
		return nil, notFound(err, repository.ErrMoveNotFound, "move")
	}

	entries := make([]*entity.EntryTransaction, 0, len(payload.TransactionIDList))
	for _, id := range payload.TransactionIDList {
		entry, err := srv.entryRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrEntryNotFound) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find transaction")
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
