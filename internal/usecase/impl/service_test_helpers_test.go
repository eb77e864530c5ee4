package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/infra/broadcast"
	"fuelflow/internal/infra/cache"
	"fuelflow/internal/infra/persistence/document"
	"fuelflow/internal/infra/persistence/memory"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// testRepos wires every document repository over one in-memory store.
type testRepos struct {
	store      *memory.Store
	hub        *broadcast.Hub
	customers  repository.CustomerRepository
	persons    repository.DeliveryPersonRepository
	products   repository.ProductRepository
	tags       repository.TagRepository
	admins     repository.AdminRepository
	attendance repository.AttendanceRepository
	entries    repository.EntryRepository
	deposits   repository.DepositRepository
	moves      repository.MoveHistoryRepository
	settings   repository.SettingsRepository
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()

	store := memory.NewStore()
	hub := broadcast.NewHub(nil, nil, discardLogger())

	return &testRepos{
		store:      store,
		hub:        hub,
		customers:  document.NewCustomerRepository(store, hub),
		persons:    document.NewDeliveryPersonRepository(store, hub),
		products:   document.NewProductRepository(store, hub),
		tags:       document.NewTagRepository(store, hub),
		admins:     document.NewAdminRepository(store, hub),
		attendance: document.NewAttendanceRepository(store, hub),
		entries:    document.NewEntryRepository(store, hub),
		deposits:   document.NewDepositRepository(store, hub),
		moves:      document.NewMoveHistoryRepository(store, hub),
		settings:   cache.NewSettingsRepository(nil, ""),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// errorDetails returns the details of the domain error wrapped in err.
func errorDetails(t *testing.T, err error) string {
	t.Helper()

	var baseErr *domainerrors.BaseError
	require.True(t, errors.As(err, &baseErr), "not a domain error: %v", err)

	return baseErr.Details()
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}

var (
	cylinder  = entity.ProductSnapshot{ProductID: "P-CYL", Name: "Cylinder 14KG", Rate: 500, ProductReturnable: true}
	regulator = entity.ProductSnapshot{ProductID: "P-REG", Name: "Regulator", Rate: 100}
	sweta     = entity.UserData{UserID: "D1", FullName: "Sweta", PhoneNumber: "900"}
)

func (r *testRepos) addCustomer(t *testing.T, id, name string, addresses ...string) *entity.Customer {
	t.Helper()

	c := &entity.Customer{Data: entity.CustomerData{UserID: id, FullName: name, ShippingAddress: addresses}}
	require.NoError(t, r.customers.Save(context.Background(), c))

	return c
}

func (r *testRepos) addPerson(t *testing.T, person entity.UserData) {
	t.Helper()

	require.NoError(t, r.persons.Save(context.Background(), &entity.DeliveryPerson{Data: entity.DeliveryPersonData{
		UserID:      person.UserID,
		FullName:    person.FullName,
		PhoneNumber: person.PhoneNumber,
	}}))
}

func (r *testRepos) addProduct(t *testing.T, p entity.ProductSnapshot) {
	t.Helper()

	require.NoError(t, r.products.Save(context.Background(), &entity.Product{Data: entity.ProductData{
		ProductID:         p.ProductID,
		Name:              p.Name,
		Rate:              p.Rate,
		ProductReturnable: p.ProductReturnable,
	}}))
}

func (r *testRepos) addEntry(t *testing.T, entry *entity.EntryTransaction) {
	t.Helper()

	require.NoError(t, r.entries.Save(context.Background(), entry))
}

// line builds one product line of an entry.
func line(p entity.ProductSnapshot, sent, received int) entity.ProductQuantity {
	return entity.ProductQuantity{ProductData: p, SentUnits: sent, RecievedUnits: received}
}

// draftEntry builds an entry whose delivery units balance its product lines.
func draftEntry(id, date string, customer entity.UserData, address string, lines ...entity.ProductQuantity) *entity.EntryTransaction {
	done := entity.DeliveryDone{UserData: sweta}
	var total float64
	for _, l := range lines {
		done.DeliveryDone = append(done.DeliveryDone, entity.DeliveryUnits{
			ProductID:     l.ProductData.ProductID,
			SentUnits:     l.SentUnits,
			RecievedUnits: l.RecievedUnits,
		})
		total += float64(l.SentUnits) * l.ProductData.Rate
	}

	return &entity.EntryTransaction{Data: entity.EntryData{
		TransactionID:    id,
		Date:             date,
		Customer:         customer,
		ShippingAddress:  address,
		DeliveryBoyList:  []entity.DeliveryDone{done},
		SelectedProducts: lines,
		Total:            total,
	}}
}
