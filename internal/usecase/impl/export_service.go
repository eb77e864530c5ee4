package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/service"
	"fuelflow/internal/usecase"
	"fuelflow/internal/util"

	"github.com/pkg/errors"
)

const (
	defaultExportPrefix = "Inventory"
	pendingExportPrefix = "Pending Returns"
	fullDataSheet       = "Full Data"
	allTotalSheet       = "All Total"
	maxSheetName        = 30
	cutSheetName        = 25
)

var inventoryColumns = []string{
	"Date", "Customer", "Address", "Delivery Person", "Product", "Sent", "Receieved", "Pending",
	"Rate/Unit", "Total Amount", "Paid Amount", "Due Amount", "Extra Note", "Status",
}

var sheetNameReplacer = strings.NewReplacer("/", "-", "\\", "-", "?", "", "*", "", "[", "(", "]", ")", ":", "-")

type exportService struct {
	inventory  usecase.InventoryUsecase
	statistics usecase.StatisticsUsecase
	renderer   service.DocumentRenderer
	logger     *slog.Logger
	now        clock
}

// NewExportService creates the export usecase.
func NewExportService(
	inventory usecase.InventoryUsecase,
	statistics usecase.StatisticsUsecase,
	renderer service.DocumentRenderer,
	logger *slog.Logger,
) usecase.ExportUsecase {
	return &exportService{
		inventory:  inventory,
		statistics: statistics,
		renderer:   renderer,
		logger:     logger,
		now:        time.Now,
	}
}

func (srv *exportService) Inventory(ctx context.Context, req *usecase.ExportRequest) (*usecase.ExportFile, error) {
	rows, err := srv.inventory.Rows(ctx, &req.Filter)
	if err != nil {
		return nil, err
	}
	slices.Reverse(rows)

	format := req.Format
	if format == "" {
		format = service.FormatXLSX
	}
	prefix := req.FilePrefix
	if prefix == "" {
		prefix = defaultExportPrefix
	}
	now := srv.now()

	table := newInventoryTable(!req.HideCustomer)
	sheets := []service.Sheet{table.sheet(fullDataSheet, rows, nil)}

	switch {
	case req.CustomerPerSheet:
		for _, group := range groupRows(rows, func(r *usecase.InventoryRow) string { return r.Customer.FullName }) {
			var total *rowTotals
			if req.AllTotal {
				total = sumRows(group.rows)
			}
			sheets = append(sheets, table.sheet(group.name, group.rows, total))
		}
	case req.AddressPerSheet:
		for _, group := range groupRows(rows, func(r *usecase.InventoryRow) string { return r.ShippingAddress }) {
			sheets = append(sheets, table.sheet(group.name, group.rows, nil))
		}
	}
	if req.AllTotal {
		sheets = append(sheets, customerTotalsSheet(rows))
	}

	data, err := srv.renderer.Render(format, &service.Workbook{Title: prefix, GeneratedAt: now, Sheets: sheets})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render inventory export")
	}
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Inventory exported",
		slog.String("format", string(format)),
		slog.Int("rows", len(rows)),
		slog.Int("sheets", len(sheets)),
	)

	return &usecase.ExportFile{
		Name:        util.ExportFileName(prefix, now, string(format)),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func (srv *exportService) PendingReturns(ctx context.Context, adminID string) (*usecase.ExportFile, error) {
	dashboard, err := srv.statistics.Dashboard(ctx, adminID)
	if err != nil {
		return nil, err
	}
	pending := dashboard.Customers.PendingExport

	var products []string
	for _, row := range pending {
		for _, p := range row.Products {
			if !slices.Contains(products, p.Name) {
				products = append(products, p.Name)
			}
		}
	}

	sheet := service.Sheet{
		Name:   pendingExportPrefix,
		Header: append([]string{"Customer Name", "Total Pending"}, products...),
	}
	var totalPending int
	productTotals := make([]float64, len(products))
	for _, row := range pending {
		cells := []any{row.CustomerName, row.TotalPending}
		for i, name := range products {
			idx := slices.IndexFunc(row.Products, func(v usecase.NamedValue) bool { return v.Name == name })
			if idx < 0 {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, row.Products[idx].Value)
			productTotals[i] += row.Products[idx].Value
		}
		totalPending += row.TotalPending
		sheet.Rows = append(sheet.Rows, cells)
	}
	totalRow := []any{"Total", totalPending}
	for _, v := range productTotals {
		totalRow = append(totalRow, v)
	}
	sheet.Rows = append(sheet.Rows, []any{}, totalRow)

	now := srv.now()
	data, err := srv.renderer.Render(service.FormatXLSX, &service.Workbook{Title: pendingExportPrefix, GeneratedAt: now, Sheets: []service.Sheet{sheet}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render pending returns export")
	}

	return &usecase.ExportFile{
		Name:        util.ExportFileName(pendingExportPrefix, now, string(service.FormatXLSX)),
		ContentType: service.FormatXLSX.ContentType(),
		Data:        data,
	}, nil
}

// inventoryTable lays rows out one line per product.
type inventoryTable struct {
	withCustomer bool
}

func newInventoryTable(withCustomer bool) inventoryTable {
	return inventoryTable{withCustomer: withCustomer}
}

func (t inventoryTable) header() []string {
	if t.withCustomer {
		return slices.Clone(inventoryColumns)
	}

	return slices.DeleteFunc(slices.Clone(inventoryColumns), func(c string) bool { return c == "Customer" })
}

// line builds one table row from the full column set, dropping Customer when hidden.
func (t inventoryTable) line(cells []any) []any {
	if t.withCustomer {
		return cells
	}

	return append(cells[:1:1], cells[2:]...)
}

// sheet renders rows followed by a blank line and a Total line. When
// allTotal is set, an All Total line closes the sheet.
func (t inventoryTable) sheet(name string, rows []*usecase.InventoryRow, allTotal *rowTotals) service.Sheet {
	sheet := service.Sheet{Name: name, Header: t.header()}
	totals := &rowTotals{}

	for _, row := range rows {
		if len(row.Products) == 0 {
			sheet.Rows = append(sheet.Rows, t.line([]any{
				row.Date, row.Customer.FullName, row.ShippingAddress, row.DeliveryNames,
				"", "", "", "", "",
				0.0, row.Payment, -row.Payment,
				row.ExtraDetails, row.Status,
			}))
			totals.paid += row.Payment
			totals.due -= row.Payment

			continue
		}

		for i, p := range row.Products {
			cells := []any{"", "", "", "", p.Name, p.Sent, "", "", p.Rate, "", "", "", row.ExtraDetails, ""}
			if p.Returnable {
				cells[6] = p.Received
				cells[7] = *p.Pending
				totals.sent += p.Sent
				totals.received += p.Received
				totals.pending += *p.Pending
			}
			if i == 0 {
				cells[0], cells[1], cells[2], cells[3] = row.Date, row.Customer.FullName, row.ShippingAddress, row.DeliveryNames
				cells[9], cells[10], cells[11] = row.Total, row.Payment, row.Total-row.Payment
				cells[13] = row.Status
				totals.total += row.Total
				totals.paid += row.Payment
				totals.due += row.Total - row.Payment
			}
			sheet.Rows = append(sheet.Rows, t.line(cells))
		}
	}

	sheet.Rows = append(sheet.Rows, []any{}, t.line(totals.cells("Total")))
	if allTotal != nil {
		sheet.Rows = append(sheet.Rows, t.line(allTotal.cells(allTotalSheet)))
	}

	return sheet
}

// rowTotals sums a set of rows. Unit totals count returnable products only.
type rowTotals struct {
	sent     int
	received int
	pending  int
	total    float64
	paid     float64
	due      float64
}

func sumRows(rows []*usecase.InventoryRow) *rowTotals {
	totals := &rowTotals{}
	for _, row := range rows {
		for _, p := range row.Products {
			if p.Returnable {
				totals.sent += p.Sent
				totals.received += p.Received
				totals.pending += *p.Pending
			}
		}
		if len(row.Products) > 0 {
			totals.total += row.Total
			totals.due += row.Total
		}
		totals.paid += row.Payment
		totals.due -= row.Payment
	}

	return totals
}

func (r *rowTotals) cells(label string) []any {
	return []any{"", "", "", "", label, r.sent, r.received, r.pending, "", r.total, r.paid, r.due, "", ""}
}

func customerTotalsSheet(rows []*usecase.InventoryRow) service.Sheet {
	sheet := service.Sheet{
		Name:   allTotalSheet,
		Header: []string{"Customer", "Sent", "Receieved", "Pending", "Total Amount", "Paid Amount", "Due Amount"},
	}
	for _, group := range groupRows(rows, func(r *usecase.InventoryRow) string { return r.Customer.FullName }) {
		t := sumRows(group.rows)
		sheet.Rows = append(sheet.Rows, []any{group.name, t.sent, t.received, t.pending, t.total, t.paid, t.due})
	}

	return sheet
}

type rowGroup struct {
	name string
	rows []*usecase.InventoryRow
}

// groupRows splits rows by a sheet-safe key, keeping first-seen order.
func groupRows(rows []*usecase.InventoryRow, key func(*usecase.InventoryRow) string) []*rowGroup {
	var groups []*rowGroup
	byName := map[string]*rowGroup{}
	for _, row := range rows {
		name := sheetName(key(row))
		g, ok := byName[name]
		if !ok {
			g = &rowGroup{name: name}
			byName[name] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, row)
	}

	return groups
}

// sheetName fits a name into the spreadsheet limits.
func sheetName(name string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	if name == "" {
		return "Unknown"
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:cutSheetName]) + "..."
	}

	return name
}
