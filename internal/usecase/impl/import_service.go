package impl

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
	"fuelflow/internal/usecase"

	"github.com/pkg/errors"
)

// Import sheet columns.
const (
	colDate     = "Date"
	colCustomer = "Customer"
	colAddress  = "Address"
	colDelivery = "Delivery Person"
	colProduct  = "Product"
	colSent     = "Sent"
	colReceived = "Receieved"
	colRate     = "Rate/Unit"
	colTotal    = "Total Amount"
	colPaid     = "Paid Amount"
	colNote     = "Extra Note"
	colStatus   = "Status"
)

// importDateLayouts are tried in order. Spreadsheet tools tend to reformat
// dates, so the common variants are accepted next to the canonical one.
var importDateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"2/1/2006",
	"2-Jan-2006",
	"2-Jan-06",
	"1-2-06",
	"2006-01-02",
}

type importService struct {
	reader       service.SpreadsheetReader
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	persons      usecase.DeliveryPersonUsecase
	logger       *slog.Logger
}

// NewImportService creates the bulk import usecase.
func NewImportService(
	reader service.SpreadsheetReader,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	persons usecase.DeliveryPersonUsecase,
	logger *slog.Logger,
) usecase.ImportUsecase {
	return &importService{
		reader:       reader,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		persons:      persons,
		logger:       logger,
	}
}

func (srv *importService) SheetNames(_ context.Context, data []byte) ([]string, error) {
	names, err := srv.reader.SheetNames(bytes.NewReader(data))
	if err != nil {
		return nil, validationError([]string{"file"})
	}

	return names, nil
}

func (srv *importService) Preview(ctx context.Context, data []byte, sheet string) ([]*entity.EntryTransaction, error) {
	rows, err := srv.reader.Rows(bytes.NewReader(data), sheet)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Warn("Failed to read import sheet",
			slog.String("sheet", sheet),
			slog.Any("error", err),
		)

		return nil, validationError([]string{"sheet"})
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns[colCustomer]; !ok {
		return nil, validationError([]string{colCustomer})
	}

	var drafts []*entity.EntryTransaction
	for i, cells := range rows[1:] {
		r := importRow{cells: cells, columns: columns}

		if r.productOnly() {
			if len(drafts) > 0 {
				if err := srv.appendProduct(ctx, drafts[len(drafts)-1], r); err != nil {
					return nil, err
				}
			}

			continue
		}
		if r.get(colCustomer) == "" {
			continue
		}

		draft, err := srv.draft(ctx, r, i+1)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	return drafts, nil
}

func (srv *importService) draft(ctx context.Context, r importRow, index int) (*entity.EntryTransaction, error) {
	name := r.get(colCustomer)
	customer := entity.UserData{FullName: name}
	found, err := srv.customerRepo.FindByName(ctx, name)
	switch {
	case err == nil:
		customer = found.UserData()
	case !errors.Is(err, repository.ErrCustomerNotFound):
		return nil, errors.Wrap(err, "failed to find customer")
	}

	entry := &entity.EntryTransaction{
		Data: entity.EntryData{
			Date:            parseImportDate(r.get(colDate)),
			Customer:        customer,
			ShippingAddress: r.get(colAddress),
			ExtraDetails:    r.get(colNote),
			Status:          r.get(colStatus),
			Payment:         r.number(colPaid),
			ImportIndex:     &index,
		},
	}

	if names := r.get(colDelivery); names != "" {
		persons, err := srv.persons.FindByNames(ctx, names)
		if err != nil {
			return nil, err
		}
		for _, p := range persons {
			entry.Data.DeliveryBoyList = append(entry.Data.DeliveryBoyList, entity.DeliveryDone{UserData: p})
		}
	}

	if err := srv.appendProduct(ctx, entry, r); err != nil {
		return nil, err
	}
	if total := r.number(colTotal); total != 0 {
		entry.Data.Total = total
	}

	return entry, nil
}

// appendProduct adds the row's product line to entry. The units are credited
// to the first delivery person so the draft reconciles.
func (srv *importService) appendProduct(ctx context.Context, entry *entity.EntryTransaction, r importRow) error {
	name := r.get(colProduct)
	if name == "" {
		return nil
	}

	snapshot := entity.ProductSnapshot{Name: name}
	product, err := srv.productRepo.FindByName(ctx, name)
	switch {
	case err == nil:
		snapshot = product.Snapshot()
	case !errors.Is(err, repository.ErrProductNotFound):
		return errors.Wrap(err, "failed to find product")
	}
	if rate := r.number(colRate); rate != 0 {
		snapshot.Rate = rate
	}

	line := entity.ProductQuantity{
		ProductData:   snapshot,
		SentUnits:     r.units(colSent),
		RecievedUnits: r.units(colReceived),
	}
	entry.Data.SelectedProducts = append(entry.Data.SelectedProducts, line)
	entry.Data.Total += float64(line.SentUnits) * snapshot.Rate

	if len(entry.Data.DeliveryBoyList) > 0 {
		first := &entry.Data.DeliveryBoyList[0]
		first.DeliveryDone = append(first.DeliveryDone, entity.DeliveryUnits{
			ProductID:     snapshot.ProductID,
			SentUnits:     line.SentUnits,
			RecievedUnits: line.RecievedUnits,
		})
	}

	return nil
}

type importRow struct {
	cells   []string
	columns map[string]int
}

func (r importRow) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.cells) {
		return ""
	}

	return strings.TrimSpace(r.cells[i])
}

func (r importRow) number(column string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(r.get(column), ",", ""), 64)
	if err != nil {
		return 0
	}

	return v
}

func (r importRow) units(column string) int {
	return int(math.Round(r.number(column)))
}

// productOnly reports a continuation row that only names another product.
func (r importRow) productOnly() bool {
	return r.get(colProduct) != "" &&
		r.get(colDate) == "" &&
		r.get(colCustomer) == "" &&
		r.get(colDelivery) == "" &&
		r.get(colTotal) == "" &&
		r.get(colPaid) == ""
}

// parseImportDate converts a sheet date to DD/MM/YYYY, or returns "" when
// no layout matches so the save form asks for it.
func parseImportDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range importDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Format(entity.EntryDateLayout)
		}
	}

	return ""
}
