package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
	"fuelflow/internal/usecase"

	"github.com/pkg/errors"
)

type inventoryService struct {
	entryRepo    repository.EntryRepository
	customerRepo repository.CustomerRepository
	tagRepo      repository.TagRepository
	depositRepo  repository.DepositRepository
	notifier     service.ChangeNotifier
	logger       *slog.Logger

	mu      sync.Mutex
	version uint64
	rows    []*usecase.InventoryRow // newest first
	built   bool
}

// NewInventoryService creates the inventory view usecase.
func NewInventoryService(
	entryRepo repository.EntryRepository,
	customerRepo repository.CustomerRepository,
	tagRepo repository.TagRepository,
	depositRepo repository.DepositRepository,
	notifier service.ChangeNotifier,
	logger *slog.Logger,
) usecase.InventoryUsecase {
	return &inventoryService{
		entryRepo:    entryRepo,
		customerRepo: customerRepo,
		tagRepo:      tagRepo,
		depositRepo:  depositRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

func (srv *inventoryService) Rows(ctx context.Context, filter *usecase.InventoryFilter) ([]*usecase.InventoryRow, error) {
	match, err := newRowMatcher(filter)
	if err != nil {
		return nil, err
	}

	rows, err := srv.view(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*usecase.InventoryRow, 0, len(rows))
	for _, row := range rows {
		if match(row) {
			copied := *row
			out = append(out, &copied)
		}
	}

	return out, nil
}

// view returns the cached rows, rebuilding them when the change version moved.
func (srv *inventoryService) view(ctx context.Context) ([]*usecase.InventoryRow, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	version := srv.notifier.Version()
	if srv.built && version == srv.version {
		return srv.rows, nil
	}

	entries, err := srv.entryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}
	transform, err := srv.transformer(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*usecase.InventoryRow, len(entries))
	for i, entry := range entries {
		rows[len(entries)-1-i] = transform(entry)
	}

	srv.rows = rows
	srv.version = version
	srv.built = true
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Inventory view rebuilt",
		slog.Int("rows", len(rows)),
		slog.Uint64("version", version),
	)

	return rows, nil
}

func (srv *inventoryService) CustomerRows(ctx context.Context, customerID string) ([]*usecase.InventoryRow, error) {
	entries, err := srv.entryRepo.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer transactions")
	}

	return srv.runningRows(ctx, entries)
}

func (srv *inventoryService) DeliveryPersonRows(ctx context.Context, personID string) ([]*usecase.InventoryRow, error) {
	entries, err := srv.entryRepo.ListForDeliveryPerson(ctx, personID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list delivery person transactions")
	}

	return srv.runningRows(ctx, entries)
}

// runningRows orders entries oldest first and accumulates dueAmt across them.
func (srv *inventoryService) runningRows(ctx context.Context, entries []*entity.EntryTransaction) ([]*usecase.InventoryRow, error) {
	transform, err := srv.transformer(ctx)
	if err != nil {
		return nil, err
	}

	entries = slices.Clone(entries)
	entity.SortByID(entries)

	rows := make([]*usecase.InventoryRow, len(entries))
	var due float64
	for i, entry := range entries {
		row := transform(entry)
		due += row.DueAmt
		row.DueAmt = due
		rows[i] = row
	}

	return rows, nil
}

func (srv *inventoryService) DepositRows(ctx context.Context, customerID string) ([]*usecase.DepositRow, error) {
	deposits, err := srv.depositRepo.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer deposits")
	}

	deposits = slices.Clone(deposits)
	slices.SortStableFunc(deposits, func(a, b *entity.DepositEntry) int {
		return strings.Compare(a.ID(), b.ID())
	})

	rows := make([]*usecase.DepositRow, len(deposits))
	var balance float64
	for i, deposit := range deposits {
		balance += deposit.NetAmount()
		rows[i] = &usecase.DepositRow{DepositEntry: deposit, DueAmt: balance}
	}

	return rows, nil
}

// transformer snapshots the customer and tag repositories and returns the
// entry to row conversion over them.
func (srv *inventoryService) transformer(ctx context.Context) (func(*entity.EntryTransaction) *usecase.InventoryRow, error) {
	customers, err := srv.customerRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}
	tags, err := srv.tagRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	customerByID := make(map[string]*entity.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.Data.UserID] = c
	}
	colorByTag := make(map[string]string, len(tags))
	for _, t := range tags {
		colorByTag[t.Data.TagID] = t.Data.ColorCode
	}

	return func(entry *entity.EntryTransaction) *usecase.InventoryRow {
		return toInventoryRow(entry, customerByID, colorByTag)
	}, nil
}

func toInventoryRow(entry *entity.EntryTransaction, customers map[string]*entity.Customer, tagColors map[string]string) *usecase.InventoryRow {
	data := entry.Data

	row := &usecase.InventoryRow{
		ID:              data.TransactionID,
		Date:            data.Date,
		DisplayDate:     data.Date,
		Customer:        data.Customer,
		DeliveryBoyList: data.DeliveryBoyList,
		ShippingAddress: data.ShippingAddress,
		Total:           data.Total,
		Payment:         data.Payment,
		DueAmt:          entry.DueAmount(),
		HighlightColor:  constants.HighlightNoTag,
		HasSecondRow:    data.ExtraDetails != "" || len(data.Tags) > 0 || data.Status != "",
		Tags:            data.Tags,
		ExtraDetails:    data.ExtraDetails,
		Status:          data.Status,
		Others:          entry.Others,
	}
	if t, err := entry.Time(); err == nil {
		row.DisplayDate = t.Format(entity.DisplayDateLayout)
	}
	if c, ok := customers[data.Customer.UserID]; ok {
		row.Customer.FullName = c.Data.FullName
		if c.Data.PhoneNumber != "" {
			row.Customer.PhoneNumber = c.Data.PhoneNumber
		}
	}

	names := make([]string, 0, len(data.DeliveryBoyList))
	for _, d := range data.DeliveryBoyList {
		names = append(names, d.FullName)
	}
	row.DeliveryNames = strings.Join(names, ", ")

	row.Products = make([]usecase.ProductLine, 0, len(data.SelectedProducts))
	for _, q := range data.SelectedProducts {
		row.Products = append(row.Products, usecase.ProductLine{
			ProductID:  q.ProductData.ProductID,
			Name:       q.ProductData.Name,
			Rate:       q.ProductData.Rate,
			Returnable: q.ProductData.ProductReturnable,
			Sent:       q.SentUnits,
			Received:   q.RecievedUnits,
			Pending:    q.PendingUnits(),
			PaymentAmt: q.PaymentAmt,
		})
	}

	if len(data.Tags) > 0 {
		if color, ok := tagColors[data.Tags[0]]; ok {
			row.HighlightColor = color
		} else {
			row.HighlightColor = constants.HighlightUnknownTag
		}
	}

	return row
}

// newRowMatcher compiles the filter. A nil filter matches every row.
func newRowMatcher(filter *usecase.InventoryFilter) (func(*usecase.InventoryRow) bool, error) {
	if filter == nil {
		return func(*usecase.InventoryRow) bool { return true }, nil
	}

	var from, to time.Time
	if filter.From != "" {
		t, err := entity.ParseEntryDate(filter.From)
		if err != nil {
			return nil, errors.WithStack(domainerrors.ErrInvalidDate.WithDetails(filter.From))
		}
		from = t
	}
	if filter.To != "" {
		t, err := entity.ParseEntryDate(filter.To)
		if err != nil {
			return nil, errors.WithStack(domainerrors.ErrInvalidDate.WithDetails(filter.To))
		}
		to = t
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	return func(row *usecase.InventoryRow) bool {
		if filter.CustomerID != "" && row.Customer.UserID != filter.CustomerID {
			return false
		}
		if len(filter.ShippingAddresses) > 0 && !slices.Contains(filter.ShippingAddresses, row.ShippingAddress) {
			return false
		}
		if len(filter.ProductIDs) > 0 && !slices.ContainsFunc(row.Products, func(p usecase.ProductLine) bool {
			return slices.Contains(filter.ProductIDs, p.ProductID)
		}) {
			return false
		}
		if len(filter.TagIDs) > 0 && !slices.ContainsFunc(row.Tags, func(id string) bool {
			return slices.Contains(filter.TagIDs, id)
		}) {
			return false
		}
		if !from.IsZero() || !to.IsZero() {
			date, err := entity.ParseEntryDate(row.Date)
			if err != nil {
				return false
			}
			if !from.IsZero() && date.Before(from) {
				return false
			}
			if !to.IsZero() && date.After(to) {
				return false
			}
		}
		if search != "" && !rowContains(row, search) {
			return false
		}

		return true
	}, nil
}

func rowContains(row *usecase.InventoryRow, search string) bool {
	fields := []string{
		row.Date,
		row.DisplayDate,
		row.Customer.FullName,
		row.Customer.PhoneNumber,
		row.ShippingAddress,
		row.ExtraDetails,
	}
	for _, d := range row.DeliveryBoyList {
		fields = append(fields, d.FullName, d.PhoneNumber)
	}
	for _, p := range row.Products {
		fields = append(fields, p.Name)
	}

	return slices.ContainsFunc(fields, func(f string) bool {
		return strings.Contains(strings.ToLower(f), search)
	})
}
