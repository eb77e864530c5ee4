package impl

import (
	"context"
	"log/slog"
	"slices"
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

type entryService struct {
	entryRepo    repository.EntryRepository
	customerRepo repository.CustomerRepository
	tagRepo      repository.TagRepository
	settingsRepo repository.SettingsRepository
	logger       *slog.Logger
	now          clock
}

// NewEntryService creates the entry usecase.
func NewEntryService(
	entryRepo repository.EntryRepository,
	customerRepo repository.CustomerRepository,
	tagRepo repository.TagRepository,
	settingsRepo repository.SettingsRepository,
	logger *slog.Logger,
) usecase.EntryUsecase {
	return &entryService{
		entryRepo:    entryRepo,
		customerRepo: customerRepo,
		tagRepo:      tagRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (srv *entryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *entryService) Get(ctx context.Context, id string) (*entity.EntryTransaction, error) {
	entry, err := srv.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, repository.ErrEntryNotFound, "transaction")
	}

	return entry, nil
}

func (srv *entryService) Delete(ctx context.Context, id string) error {
	if err := srv.entryRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete transaction")
	}
	srv.log(ctx).Info("Transaction deleted", slog.String("transaction_id", id))

	return nil
}

// savePlan is everything decided before the first store write.
type savePlan struct {
	entry          *entity.EntryTransaction
	customer       *entity.Customer
	newCustomer    bool
	addAddress     bool
	oldID          string
	deleteOld      bool
	newTags        []*entity.Tag
	customerChange bool
}

// Save reconciles, validates and derives the entry, resolves the prompts,
// and only then writes: customer, new tags, the entry, and the old entry delete.
func (srv *entryService) Save(ctx context.Context, req *usecase.SaveEntryRequest) (*usecase.SaveEntryResult, error) {
	if req.Entry == nil {
		return nil, validationError([]string{"entry"})
	}
	entry := req.Entry.Clone()
	normalizeEntry(entry)

	// Units are reconciled first so an entry without delivery assignments
	// reports the unbalanced products rather than the missing list.
	if mismatched := reconcileUnits(entry); len(mismatched) > 0 {
		return nil, errors.WithStack(domainerrors.ErrUnitsMismatch.WithDetails(strings.Join(mismatched, ", ")))
	}
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	settings, err := srv.settingsRepo.Get(ctx, req.AdminID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get settings")
	}

	plan, err := srv.plan(ctx, req, entry, settings)
	if err != nil {
		return nil, err
	}

	return srv.apply(ctx, plan)
}

func (srv *entryService) plan(ctx context.Context, req *usecase.SaveEntryRequest, entry *entity.EntryTransaction, settings entity.Settings) (*savePlan, error) {
	now := srv.now()
	nowMillis := util.EpochMillis(now)
	entryDate, _ := entry.Time()
	plan := &savePlan{entry: entry}

	var original *entity.EntryTransaction
	if req.Mode == usecase.SaveModeEdit {
		id := req.OriginalID
		if id == "" {
			id = entry.ID()
		}
		found, err := srv.entryRepo.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, repository.ErrEntryNotFound, "transaction")
		}
		original = found
	}

	switch {
	case original != nil:
		entry.Data.TransactionID = original.ID()
		entry.Others = original.Others.Clone()
		if original.Data.Date != entry.Data.Date {
			entry.Data.TransactionID = util.TransactionID(entryDate, now)
			plan.oldID = original.ID()

			deleteOld, needsPrompt := settings.OldEntryWhenDateEdited.Resolve(req.DeleteOldOnDateEdit)
			if needsPrompt {
				return nil, errors.WithStack(domainerrors.ErrConfirmationRequired.WithDetails(usecase.PromptOldEntryWhenDateEdited))
			}
			plan.deleteOld = deleteOld
		}
	case req.Mode == usecase.SaveModeNew:
		entry.Data.TransactionID = util.TransactionID(entryDate, now)
		entry.Others = entity.Audit{CreatedBy: req.AdminID, CreatedTime: nowMillis}
	default:
		// Duplicates and imports are new records that keep move history.
		moved := entry.Others
		entry.Data.TransactionID = util.TransactionID(entryDate, now)
		entry.Others = entity.Audit{
			CreatedBy:   req.AdminID,
			CreatedTime: nowMillis,
			MovedBy:     moved.MovedBy,
			MovedTime:   moved.MovedTime,
			MoveIDs:     slices.Clone(moved.MoveIDs),
		}
	}
	entry.Others.EditedBy = req.AdminID
	entry.Others.EditedTime = nowMillis
	entry.Data.Total = entryTotal(entry)
	entry.Data.ImportIndex = nil

	if err := srv.planCustomer(ctx, req, plan, settings, nowMillis); err != nil {
		return nil, err
	}

	for _, data := range req.NewTags {
		if strings.TrimSpace(data.Name) == "" {
			continue
		}
		data.TagID = util.TagID(now)
		plan.newTags = append(plan.newTags, &entity.Tag{
			Data:   data,
			Others: entity.Audit{CreatedBy: req.AdminID, CreatedTime: nowMillis, EditedBy: req.AdminID, EditedTime: nowMillis},
		})
		entry.Data.Tags = append(entry.Data.Tags, data.TagID)
	}

	return plan, nil
}

// planCustomer links the entry to an existing customer or prepares a new one,
// and decides whether the entry's address joins the customer's list.
func (srv *entryService) planCustomer(ctx context.Context, req *usecase.SaveEntryRequest, plan *savePlan, settings entity.Settings, nowMillis int64) error {
	snapshot := plan.entry.Data.Customer

	var customer *entity.Customer
	if snapshot.UserID != "" {
		found, err := srv.customerRepo.FindByID(ctx, snapshot.UserID)
		if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
			return errors.Wrap(err, "failed to find customer")
		}
		customer = found
	}
	if customer == nil {
		found, err := srv.customerRepo.FindByName(ctx, snapshot.FullName)
		if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
			return errors.Wrap(err, "failed to find customer")
		}
		customer = found
	}

	if customer == nil {
		id := snapshot.UserID
		if id == "" {
			id = util.UserID()
		}
		customer = &entity.Customer{
			Data: entity.CustomerData{
				UserID:      id,
				FullName:    snapshot.FullName,
				PhoneNumber: snapshot.PhoneNumber,
			},
			Others: entity.Audit{CreatedBy: req.AdminID, CreatedTime: nowMillis},
		}
		plan.newCustomer = true
		plan.customerChange = true
	}
	plan.customer = customer
	plan.entry.Data.Customer = entity.UserData{
		FullName:    snapshot.FullName,
		PhoneNumber: snapshot.PhoneNumber,
		UserID:      customer.Data.UserID,
	}

	address := plan.entry.Data.ShippingAddress
	if customer.HasShippingAddress(address) {
		return nil
	}
	add, needsPrompt := settings.AskForConfirmationOnNewAddress.Resolve(req.AddNewAddress)
	if needsPrompt {
		return errors.WithStack(domainerrors.ErrConfirmationRequired.WithDetails(usecase.PromptNewAddress))
	}
	if add {
		customer.Data.ShippingAddress = append(customer.Data.ShippingAddress, address)
		plan.addAddress = true
		plan.customerChange = true
	}

	return nil
}

func (srv *entryService) apply(ctx context.Context, plan *savePlan) (*usecase.SaveEntryResult, error) {
	if plan.customerChange {
		if err := srv.customerRepo.Save(ctx, plan.customer); err != nil {
			if !plan.newCustomer {
				err = withSupportCode(err, domainerrors.CodeAddress)
			}

			return nil, errors.Wrap(err, "failed to save customer")
		}
	}

	for _, tag := range plan.newTags {
		if err := srv.tagRepo.Save(ctx, tag); err != nil {
			return nil, errors.Wrap(err, "failed to save tag")
		}
	}

	if err := srv.entryRepo.Save(ctx, plan.entry); err != nil {
		return nil, errors.Wrap(err, "failed to save transaction")
	}

	result := &usecase.SaveEntryResult{
		Entry:           plan.entry,
		CustomerCreated: plan.newCustomer,
		AddressAdded:    plan.addAddress,
	}

	if plan.oldID != "" && plan.deleteOld {
		if err := srv.entryRepo.Delete(ctx, plan.oldID); err != nil {
			srv.log(ctx).Error("Failed to delete old transaction after date edit",
				slog.String("old_id", plan.oldID),
				slog.String("new_id", plan.entry.ID()),
				slog.Any("error", err),
			)
		} else {
			result.OldEntryDeleted = true
		}
	}

	srv.log(ctx).Info("Transaction saved",
		slog.String("transaction_id", plan.entry.ID()),
		slog.String("customer_id", plan.entry.Data.Customer.UserID),
	)

	return result, nil
}

// normalizeEntry trims text fields and drops product lines that move nothing.
func normalizeEntry(entry *entity.EntryTransaction) {
	entry.Data.Date = strings.TrimSpace(entry.Data.Date)
	entry.Data.Customer.FullName = strings.TrimSpace(entry.Data.Customer.FullName)
	entry.Data.ShippingAddress = strings.TrimSpace(entry.Data.ShippingAddress)
	entry.Data.SelectedProducts = slices.DeleteFunc(entry.Data.SelectedProducts, entity.ProductQuantity.IsEmpty)

	if t, err := entity.ParseEntryDate(entry.Data.Date); err == nil {
		entry.Data.Date = t.Format(entity.EntryDateLayout)
	}
}

func validateEntry(entry *entity.EntryTransaction) error {
	var missing []string
	if entry.Data.Date == "" {
		missing = append(missing, "date")
	} else if _, err := entry.Time(); err != nil {
		return errors.WithStack(domainerrors.ErrInvalidDate.WithDetails(entry.Data.Date))
	}
	if entry.Data.Customer.FullName == "" {
		missing = append(missing, "customer")
	}
	if entry.Data.ShippingAddress == "" {
		missing = append(missing, "shippingAddress")
	}
	if len(entry.Data.SelectedProducts) == 0 {
		missing = append(missing, "selectedProducts")
	}
	if len(entry.Data.DeliveryBoyList) == 0 {
		missing = append(missing, "deliveryBoyList")
	}
	if len(missing) > 0 {
		return validationError(missing)
	}

	return nil
}

// reconcileUnits returns the product ids whose delivery units do not balance
// the product lines: what the delivery persons took out must equal what was
// sent, and what they brought back must equal what was received.
func reconcileUnits(entry *entity.EntryTransaction) []string {
	balance := map[string]int{}
	for _, person := range entry.Data.DeliveryBoyList {
		for _, units := range person.DeliveryDone {
			balance[units.ProductID] += units.SentUnits - units.RecievedUnits
		}
	}
	for _, line := range entry.Data.SelectedProducts {
		balance[line.ProductData.ProductID] += line.RecievedUnits - line.SentUnits
	}

	var mismatched []string
	for productID, sum := range balance {
		if sum != 0 {
			mismatched = append(mismatched, productID)
		}
	}
	slices.Sort(mismatched)

	return mismatched
}

func entryTotal(entry *entity.EntryTransaction) float64 {
	var total float64
	for _, line := range entry.Data.SelectedProducts {
		total += float64(line.SentUnits) * line.ProductData.Rate
	}

	return total
}
