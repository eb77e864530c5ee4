package impl

import (
	"context"
	"testing"
	"time"

	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customerServiceFixtures struct {
	repos   *testRepos
	service usecase.CustomerUsecase
	persons usecase.DeliveryPersonUsecase
}

func createTestCustomerService(t *testing.T) *customerServiceFixtures {
	t.Helper()

	repos := newTestRepos(t)
	svc := NewCustomerService(repos.customers, repos.entries, discardLogger())
	svc.(*customerService).now = fixedClock(time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local))

	return &customerServiceFixtures{
		repos:   repos,
		service: svc,
		persons: NewDeliveryPersonService(repos.persons, repos.entries, discardLogger()),
	}
}

func TestCustomerService_Save_New(t *testing.T) {
	fx := createTestCustomerService(t)

	saved, err := fx.service.Save(context.Background(), &entity.Customer{Data: entity.CustomerData{FullName: "  Ravi "}}, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, "Ravi", saved.Data.FullName)
	assert.NotEmpty(t, saved.Data.UserID)
	assert.Equal(t, "admin-1", saved.Others.CreatedBy)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local).UnixMilli(), saved.Others.CreatedTime)
}

func TestCustomerService_Save_KeepsAudit(t *testing.T) {
	fx := createTestCustomerService(t)
	ctx := context.Background()

	existing := fx.repos.addCustomer(t, "C1", "Ravi")
	existing.Others.CreatedBy = "admin-0"
	require.NoError(t, fx.repos.customers.Save(ctx, existing))

	saved, err := fx.service.Save(ctx, &entity.Customer{Data: entity.CustomerData{UserID: "C1", FullName: "Ravi K"}}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "admin-0", saved.Others.CreatedBy)
}

func TestCustomerService_Save_NameRequired(t *testing.T) {
	fx := createTestCustomerService(t)

	_, err := fx.service.Save(context.Background(), &entity.Customer{}, "admin-1")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCustomerService_Delete_InUse(t *testing.T) {
	fx := createTestCustomerService(t)
	ctx := context.Background()

	ravi := fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")
	fx.repos.addCustomer(t, "C2", "Meena")
	fx.repos.addEntry(t, draftEntry("20240301_090000_AAAAA", "01/03/2024", ravi.UserData(), "Main Road", line(cylinder, 1, 0)))

	err := fx.service.Delete(ctx, "C1")
	require.ErrorIs(t, err, domainerrors.ErrCustomerInUse)

	require.NoError(t, fx.service.Delete(ctx, "C2"))
	_, err = fx.service.Get(ctx, "C2")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCustomerService_AddShippingAddress(t *testing.T) {
	fx := createTestCustomerService(t)
	ctx := context.Background()

	fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")

	customer, err := fx.service.AddShippingAddress(ctx, "C1", " Depot ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Road", "Depot"}, customer.Data.ShippingAddress)

	customer, err = fx.service.AddShippingAddress(ctx, "C1", "Main Road")
	require.NoError(t, err)
	assert.Len(t, customer.Data.ShippingAddress, 2)
}

func TestCustomerService_Name(t *testing.T) {
	fx := createTestCustomerService(t)
	ctx := context.Background()

	fx.repos.addCustomer(t, "C1", "Ravi")

	assert.Equal(t, "Ravi", fx.service.Name(ctx, "C1", "snapshot"))
	assert.Equal(t, "snapshot", fx.service.Name(ctx, "C9", "snapshot"))
	assert.Equal(t, "snapshot", fx.service.Name(ctx, "", "snapshot"))
}

func TestCustomerService_SetUpdateStatus(t *testing.T) {
	fx := createTestCustomerService(t)
	ctx := context.Background()

	fx.repos.addCustomer(t, "C1", "Ravi")
	require.NoError(t, fx.service.SetUpdateStatus(ctx, "C1", true))

	customer, err := fx.service.Get(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, customer.Data.IsUpdated)

	assert.ErrorIs(t, fx.service.SetUpdateStatus(ctx, "C9", true), domainerrors.ErrNotFound)
}

func TestDeliveryPersonService_Delete_InUse(t *testing.T) {
	fx := createTestCustomerService(t)
	ctx := context.Background()

	fx.repos.addPerson(t, sweta)
	ravi := fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")
	fx.repos.addEntry(t, draftEntry("20240301_090000_AAAAA", "01/03/2024", ravi.UserData(), "Main Road", line(cylinder, 1, 0)))

	err := fx.persons.Delete(ctx, sweta.UserID)
	assert.ErrorIs(t, err, domainerrors.ErrDeliveryPersonInUse)
}

func TestDeliveryPersonService_FindByNames(t *testing.T) {
	fx := createTestCustomerService(t)

	fx.repos.addPerson(t, sweta)

	found, err := fx.persons.FindByNames(context.Background(), "Sweta, Arjun ,")
	require.NoError(t, err)
	assert.Equal(t, []entity.UserData{sweta, {FullName: "Arjun"}}, found)
}
