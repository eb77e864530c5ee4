package impl

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Leaderboard sizes.
const (
	topCustomersByUnits   = 6
	topDepositCustomers   = 8
	topPayingCustomers    = 8
	topDeliveryMonths     = 7
	topDeliveryPersons    = 7
	topLocations          = 10
	pendingReturnsPreview = 5
)

var currencyPrinter = message.NewPrinter(language.MustParse("en-IN"))

type statisticsService struct {
	customerRepo repository.CustomerRepository
	personRepo   repository.DeliveryPersonRepository
	tagRepo      repository.TagRepository
	entryRepo    repository.EntryRepository
	depositRepo  repository.DepositRepository
	settingsRepo repository.SettingsRepository
	logger       *slog.Logger
	now          clock
}

// NewStatisticsService creates the dashboard usecase.
func NewStatisticsService(
	customerRepo repository.CustomerRepository,
	personRepo repository.DeliveryPersonRepository,
	tagRepo repository.TagRepository,
	entryRepo repository.EntryRepository,
	depositRepo repository.DepositRepository,
	settingsRepo repository.SettingsRepository,
	logger *slog.Logger,
) usecase.StatisticsUsecase {
	return &statisticsService{
		customerRepo: customerRepo,
		personRepo:   personRepo,
		tagRepo:      tagRepo,
		entryRepo:    entryRepo,
		depositRepo:  depositRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// PercentChange is the change from prev to cur in percent. Growth from
// nothing counts as 100.
func PercentChange(prev, cur float64) float64 {
	switch {
	case prev == 0 && cur == 0:
		return 0
	case prev == 0:
		return 100
	default:
		return (cur - prev) / prev * 100
	}
}

// FormatCurrency groups digits the Indian way, and shows -- for zero.
func FormatCurrency(v float64) string {
	if v == 0 {
		return "--"
	}

	return currencyPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// statsSource is one consistent read of every repository the cards use.
type statsSource struct {
	customers []*entity.Customer
	persons   []*entity.DeliveryPerson
	tags      []*entity.Tag
	entries   []*entity.EntryTransaction
	deposits  []*entity.DepositEntry
	settings  entity.Settings
}

func (srv *statisticsService) load(ctx context.Context, adminID string) (*statsSource, error) {
	src := &statsSource{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		src.customers, err = srv.customerRepo.List(gctx)
		return errors.Wrap(err, "failed to list customers")
	})
	g.Go(func() (err error) {
		src.persons, err = srv.personRepo.List(gctx)
		return errors.Wrap(err, "failed to list delivery persons")
	})
	g.Go(func() (err error) {
		src.tags, err = srv.tagRepo.List(gctx)
		return errors.Wrap(err, "failed to list tags")
	})
	g.Go(func() (err error) {
		src.entries, err = srv.entryRepo.List(gctx)
		return errors.Wrap(err, "failed to list transactions")
	})
	g.Go(func() (err error) {
		src.deposits, err = srv.depositRepo.List(gctx)
		return errors.Wrap(err, "failed to list deposits")
	})
	g.Go(func() (err error) {
		src.settings, err = srv.settingsRepo.Get(gctx, adminID)
		return errors.Wrap(err, "failed to get settings")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return src, nil
}

func (srv *statisticsService) Dashboard(ctx context.Context, adminID string) (*usecase.Dashboard, error) {
	src, err := srv.load(ctx, adminID)
	if err != nil {
		return nil, err
	}

	now := srv.now()
	cur, prev := monthKey(now), monthKey(now.AddDate(0, 0, -now.Day()))

	dashboard := &usecase.Dashboard{
		Customers:    customerStats(src, cur, prev),
		Products:     productStats(src, cur, prev),
		Deposits:     depositStats(src, cur, prev),
		Transactions: transactionStats(src),
		Delivery:     deliveryStats(src, cur, prev),
		Tags:         tagStats(src),
	}
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Dashboard computed",
		slog.Int("transactions", len(src.entries)),
		slog.Int("deposits", len(src.deposits)),
	)

	return dashboard, nil
}

func customerStats(src *statsSource, cur, prev string) usecase.CustomerStats {
	stats := usecase.CustomerStats{TotalCustomers: len(src.customers)}

	var lastMonth int
	names := make(map[string]string, len(src.customers))
	for _, c := range src.customers {
		names[c.Data.UserID] = c.Data.FullName
		if c.Others.CreatedTime == 0 {
			continue
		}
		switch monthKey(time.UnixMilli(c.Others.CreatedTime)) {
		case cur:
			stats.NewCustomers++
		case prev:
			lastMonth++
		}
	}
	percent := decimal.NewFromFloat(PercentChange(float64(lastMonth), float64(stats.NewCustomers)))
	stats.NewCustomersPercent = decimal.Min(percent, decimal.NewFromInt(100)).Round(2).InexactFloat64()

	pending := newLeaderboard()
	top := newLeaderboard()
	for _, e := range src.entries {
		customer := e.Data.Customer
		name := customer.FullName
		if live, ok := names[customer.UserID]; ok {
			name = live
		}
		p := pending.entry(customer.UserID, name)
		t := top.entry(customer.UserID, name)
		for _, q := range e.Data.SelectedProducts {
			if !q.ProductData.ProductReturnable {
				continue
			}
			units := *q.PendingUnits()
			p.add(q.ProductData.ProductID, q.ProductData.Name, float64(units))
			t.add(q.ProductData.ProductID, q.ProductData.Name, float64(q.SentUnits))
		}
	}

	keep := func(v float64) bool { return v > 0 }
	if src.settings.ShowNegativePending() {
		keep = func(v float64) bool { return v != 0 }
	}
	stats.PendingReturns = pending.top(0, keep)
	for _, item := range stats.PendingReturns {
		stats.PendingReturnsTotal += int(item.Value)
		stats.PendingExport = append(stats.PendingExport, &usecase.PendingReturnRow{
			CustomerID:   item.ID,
			CustomerName: item.Title,
			TotalPending: int(item.Value),
			Products:     item.Products,
		})
	}
	stats.CanExpand = len(stats.PendingReturns) > pendingReturnsPreview
	stats.TopCustomers = top.top(topCustomersByUnits, nil)

	return stats
}

func productStats(src *statsSource, cur, prev string) usecase.ProductStats {
	var stats usecase.ProductStats

	sales := newLeaderboard()
	months := map[string]map[string]int{}
	for _, e := range src.entries {
		month := entryMonthKey(e.Data.Date)
		for _, q := range e.Data.SelectedProducts {
			id := q.ProductData.ProductID
			sales.entry(id, q.ProductData.Name).item.Value += float64(q.SentUnits)
			stats.TotalUnitsSold += q.SentUnits

			if months[month] == nil {
				months[month] = map[string]int{}
			}
			months[month][id] += q.SentUnits
		}
	}

	for _, s := range sales.entries() {
		stats.Sales = append(stats.Sales, usecase.NamedValue{ID: s.item.ID, Name: s.item.Title, Value: s.item.Value})

		current := float64(months[cur][s.item.ID])
		change := math.Round(PercentChange(float64(months[prev][s.item.ID]), current))
		stats.MonthlyDemand = append(stats.MonthlyDemand, usecase.StatItem{
			ID:           s.item.ID,
			Title:        s.item.Title,
			Value:        current,
			PercentValue: &change,
		})
	}

	stats.TotalUnitsDisplay = FormatCurrency(float64(stats.TotalUnitsSold))
	if len(months) > 0 {
		stats.AverageMonthlySales = decimal.NewFromInt(int64(stats.TotalUnitsSold)).
			Div(decimal.NewFromInt(int64(len(months)))).
			Round(2).
			InexactFloat64()
	}

	return stats
}

func depositStats(src *statsSource, cur, prev string) usecase.DepositStats {
	var stats usecase.DepositStats

	products := newLeaderboard()
	customers := newLeaderboard()
	sentByMonth := map[string]int{}
	for _, d := range src.deposits {
		customer := customers.entry(d.Data.Customer.UserID, d.Data.Customer.FullName)
		month := entryMonthKey(d.Data.Date)
		for _, q := range d.Data.SelectedProducts {
			net := q.SentUnits - q.RecievedUnits
			stats.NetUnits += net
			products.entry(q.ProductData.ProductID, q.ProductData.Name).item.Value += float64(net)
			customer.add(q.ProductData.ProductID, q.ProductData.Name, float64(net))
			sentByMonth[month] += q.SentUnits
		}
		stats.TotalAmount += d.NetAmount()
	}

	for _, p := range products.entries() {
		if p.item.Value > 0 {
			stats.ProductNet = append(stats.ProductNet, usecase.NamedValue{ID: p.item.ID, Name: p.item.Title, Value: p.item.Value})
		}
	}
	stats.NewDepositUnits = sentByMonth[cur]
	stats.NewDepositPercent = math.Round(PercentChange(float64(sentByMonth[prev]), float64(sentByMonth[cur])))
	stats.TotalAmountDisplay = FormatCurrency(stats.TotalAmount)
	stats.TopCustomers = customers.top(topDepositCustomers, nil)

	return stats
}

func transactionStats(src *statsSource) usecase.TransactionStats {
	stats := usecase.TransactionStats{Count: len(src.entries)}

	payers := newLeaderboard()
	for _, e := range src.entries {
		stats.PendingPayment += e.DueAmount()
		stats.Revenue += e.Data.Payment
		payers.entry(e.Data.Customer.UserID, e.Data.Customer.FullName).item.Value += e.Data.Payment
	}
	stats.PendingPaymentDisplay = FormatCurrency(stats.PendingPayment)
	stats.RevenueDisplay = FormatCurrency(stats.Revenue)
	stats.TopCustomers = payers.top(topPayingCustomers, nil)

	return stats
}

func deliveryStats(src *statsSource, cur, prev string) usecase.DeliveryStats {
	stats := usecase.DeliveryStats{DeliveryPersons: len(src.persons)}

	locations := newLeaderboard()
	perMonth := newLeaderboard()
	persons := newLeaderboard()
	for _, e := range src.entries {
		if len(e.Data.DeliveryBoyList) == 0 {
			continue
		}
		stats.Completed++

		if addr := e.Data.ShippingAddress; addr != "" {
			locations.entry(addr, addr).item.Value++
		}

		key := entryMonthKey(e.Data.Date)
		month := perMonth.entry(key, monthLabel(key))
		month.item.Value++
		for _, q := range e.Data.SelectedProducts {
			if q.ProductData.ProductReturnable {
				month.addProduct(q.ProductData.ProductID, q.ProductData.Name, 1)
			}
		}

		for _, d := range e.Data.DeliveryBoyList {
			persons.entry(d.UserID, d.FullName).item.Value++
		}
	}

	var last, current float64
	if m, ok := perMonth.byKey[prev]; ok {
		last = m.item.Value
	}
	if m, ok := perMonth.byKey[cur]; ok {
		current = m.item.Value
	}
	stats.CompletedPercent = math.Round(PercentChange(last, current))

	months := perMonth.entries()
	slices.SortStableFunc(months, func(a, b *leaderEntry) int {
		return cmp.Compare(b.item.ID, a.item.ID)
	})
	for _, m := range months[:min(len(months), topDeliveryMonths)] {
		stats.PerMonth = append(stats.PerMonth, m.finish())
	}

	stats.TopDeliveryPersons = persons.top(topDeliveryPersons, nil)

	for _, l := range sortByValue(locations.entries(), topLocations) {
		stats.TopLocations = append(stats.TopLocations, usecase.LocationCount{Location: l.item.Title, Delivery: int(l.item.Value)})
	}
	slices.Reverse(stats.TopLocations)

	return stats
}

func tagStats(src *statsSource) usecase.TagStats {
	stats := usecase.TagStats{TagCount: len(src.tags)}

	names := make(map[string]string, len(src.tags))
	for _, t := range src.tags {
		names[t.Data.TagID] = t.Data.Name
	}

	usage := newLeaderboard()
	for _, e := range src.entries {
		stats.TotalUsed += len(e.Data.Tags)
		for _, id := range e.Data.Tags {
			if name, ok := names[id]; ok {
				usage.entry(id, name).item.Value++
			}
		}
	}
	for _, u := range usage.entries() {
		stats.Usage = append(stats.Usage, usecase.NamedValue{ID: u.item.ID, Name: u.item.Title, Value: u.item.Value})
	}

	return stats
}

func (srv *statisticsService) Sales(ctx context.Context, query *usecase.SalesQuery) ([]usecase.SalesBucket, error) {
	entries, err := srv.entryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	now := srv.now()
	q := usecase.SalesQuery{Frequency: usecase.FrequencyMonthly, Year: now.Year(), Month: int(now.Month())}
	if query != nil {
		if query.Frequency != "" {
			q.Frequency = query.Frequency
		}
		if query.Year != 0 {
			q.Year = query.Year
		}
		if query.Month != 0 {
			q.Month = query.Month
		}
	}

	buckets := map[string]*usecase.SalesBucket{}
	products := map[string]*leaderboard{}
	for _, e := range entries {
		t, err := e.Time()
		if err != nil {
			continue
		}

		var key, label string
		switch q.Frequency {
		case usecase.FrequencyYearly:
			key = t.Format("2006")
			label = key
		case usecase.FrequencyDaily:
			if t.Year() != q.Year || int(t.Month()) != q.Month {
				continue
			}
			key = t.Format("20060102")
			label = strconv.Itoa(t.Day())
		default:
			if t.Year() != q.Year {
				continue
			}
			key = t.Format("200601")
			label = t.Month().String()
		}

		bucket, ok := buckets[key]
		if !ok {
			bucket = &usecase.SalesBucket{Key: key, Label: label}
			buckets[key] = bucket
			products[key] = newLeaderboard()
		}
		for _, line := range e.Data.SelectedProducts {
			bucket.Units += line.SentUnits
			products[key].entry(line.ProductData.Name, line.ProductData.Name).item.Value += float64(line.SentUnits)
		}
	}

	out := make([]usecase.SalesBucket, 0, len(buckets))
	for key, bucket := range buckets {
		for _, p := range products[key].entries() {
			bucket.Products = append(bucket.Products, usecase.NamedValue{Name: p.item.Title, Value: p.item.Value})
		}
		out = append(out, *bucket)
	}
	slices.SortFunc(out, func(a, b usecase.SalesBucket) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return out, nil
}

// monthKey formats YYYYMM.
func monthKey(t time.Time) string {
	return t.Format("200601")
}

// entryMonthKey is the YYYYMM of a DD/MM/YYYY date. Unparseable dates fall
// into the epoch month so they still count towards totals.
func entryMonthKey(date string) string {
	t, err := entity.ParseEntryDate(date)
	if err != nil {
		return "197001"
	}

	return monthKey(t)
}

func monthLabel(key string) string {
	t, err := time.Parse("200601", key)
	if err != nil {
		return key
	}

	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}

// leaderboard accumulates stat items in first-seen order.
type leaderboard struct {
	order []*leaderEntry
	byKey map[string]*leaderEntry
}

type leaderEntry struct {
	item     usecase.StatItem
	products []usecase.NamedValue
	index    map[string]int
}

func newLeaderboard() *leaderboard {
	return &leaderboard{byKey: map[string]*leaderEntry{}}
}

func (l *leaderboard) entry(id, title string) *leaderEntry {
	if e, ok := l.byKey[id]; ok {
		return e
	}
	e := &leaderEntry{item: usecase.StatItem{ID: id, Title: title}, index: map[string]int{}}
	l.byKey[id] = e
	l.order = append(l.order, e)

	return e
}

func (l *leaderboard) entries() []*leaderEntry {
	return slices.Clone(l.order)
}

// sortByValue stable-sorts entries by value, highest first, and keeps n (all when n <= 0).
func sortByValue(entries []*leaderEntry, n int) []*leaderEntry {
	slices.SortStableFunc(entries, func(a, b *leaderEntry) int {
		return cmp.Compare(b.item.Value, a.item.Value)
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}

	return entries
}

// top returns the n highest items that pass keep.
func (l *leaderboard) top(n int, keep func(float64) bool) []usecase.StatItem {
	entries := l.entries()
	if keep != nil {
		entries = slices.DeleteFunc(entries, func(e *leaderEntry) bool { return !keep(e.item.Value) })
	}

	entries = sortByValue(entries, n)
	out := make([]usecase.StatItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.finish())
	}

	return out
}

// add credits v to the entry and to its product breakdown.
func (e *leaderEntry) add(productID, name string, v float64) {
	e.item.Value += v
	e.addProduct(productID, name, v)
}

// addProduct credits v to the product breakdown only.
func (e *leaderEntry) addProduct(productID, name string, v float64) {
	i, ok := e.index[productID]
	if !ok {
		i = len(e.products)
		e.index[productID] = i
		e.products = append(e.products, usecase.NamedValue{ID: productID, Name: name})
	}
	e.products[i].Value += v
}

func (e *leaderEntry) finish() usecase.StatItem {
	item := e.item
	item.Products = slices.Clone(e.products)

	return item
}
