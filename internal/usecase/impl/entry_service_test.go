package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entryServiceFixtures struct {
	repos   *testRepos
	service usecase.EntryUsecase
}

func createTestEntryService(t *testing.T) *entryServiceFixtures {
	t.Helper()

	repos := newTestRepos(t)
	svc := NewEntryService(repos.entries, repos.customers, repos.tags, repos.settings, discardLogger())
	svc.(*entryService).now = fixedClock(time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local))

	return &entryServiceFixtures{repos: repos, service: svc}
}

func confirmationPrompt(t *testing.T, err error) string {
	t.Helper()

	require.ErrorIs(t, err, domainerrors.ErrConfirmationRequired)

	return errorDetails(t, err)
}

func TestEntryService_Save_NewEntryCreatesCustomer(t *testing.T) {
	fx := createTestEntryService(t)
	ctx := context.Background()

	entry := draftEntry("", " 5/3/2024 ", entity.UserData{FullName: " Ravi "}, "Main Road", line(cylinder, 10, 4))

	result, err := fx.service.Save(ctx, &usecase.SaveEntryRequest{Entry: entry, Mode: usecase.SaveModeNew, AdminID: "admin-1"})
	require.NoError(t, err)

	assert.True(t, result.CustomerCreated)
	assert.True(t, result.AddressAdded)
	assert.True(t, strings.HasPrefix(result.Entry.ID(), "20240305_103000_"))
	assert.Equal(t, "05/03/2024", result.Entry.Data.Date)
	assert.Equal(t, 5000.0, result.Entry.Data.Total)
	assert.Equal(t, "admin-1", result.Entry.Others.CreatedBy)
	assert.Equal(t, "admin-1", result.Entry.Others.EditedBy)
	assert.NotZero(t, result.Entry.Others.EditedTime)

	customer, err := fx.repos.customers.FindByName(ctx, "Ravi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Road"}, customer.Data.ShippingAddress)
	assert.Equal(t, customer.Data.UserID, result.Entry.Data.Customer.UserID)

	stored, err := fx.repos.entries.FindByID(ctx, result.Entry.ID())
	require.NoError(t, err)
	assert.Equal(t, "Ravi", stored.Data.Customer.FullName)
}

func TestEntryService_Save_DropsEmptyLines(t *testing.T) {
	fx := createTestEntryService(t)
	ctx := context.Background()

	entry := draftEntry("", "05/03/2024", entity.UserData{FullName: "Ravi"}, "Main Road", line(cylinder, 2, 0))
	entry.Data.SelectedProducts = append(entry.Data.SelectedProducts, line(regulator, 0, 0))

	result, err := fx.service.Save(ctx, &usecase.SaveEntryRequest{Entry: entry, Mode: usecase.SaveModeNew})
	require.NoError(t, err)
	require.Len(t, result.Entry.Data.SelectedProducts, 1)
	assert.Equal(t, cylinder.ProductID, result.Entry.Data.SelectedProducts[0].ProductData.ProductID)
}

func TestEntryService_Save_UnitsMismatch(t *testing.T) {
	fx := createTestEntryService(t)
	ctx := context.Background()

	entry := draftEntry("", "05/03/2024", entity.UserData{FullName: "Ravi"}, "Main Road", line(cylinder, 10, 4))
	entry.Data.DeliveryBoyList[0].DeliveryDone[0].SentUnits = 8

	_, err := fx.service.Save(ctx, &usecase.SaveEntryRequest{Entry: entry, Mode: usecase.SaveModeNew})
	require.ErrorIs(t, err, domainerrors.ErrUnitsMismatch)

	entries, err := fx.repos.entries.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = fx.repos.customers.FindByName(ctx, "Ravi")
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
}

func TestEntryService_Save_UnitsMismatch_NoDelivery(t *testing.T) {
	fx := createTestEntryService(t)
	ctx := context.Background()

	entry := draftEntry("", "05/03/2024", entity.UserData{FullName: "Ravi"}, "Main Road", line(cylinder, 10, 4))
	entry.Data.DeliveryBoyList = nil

	_, err := fx.service.Save(ctx, &usecase.SaveEntryRequest{Entry: entry, Mode: usecase.SaveModeNew})
	require.ErrorIs(t, err, domainerrors.ErrUnitsMismatch)
	assert.NotErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Equal(t, cylinder.ProductID, errorDetails(t, err))

	entries, err := fx.repos.entries.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryService_Save_ValidationFailed(t *testing.T) {
	fx := createTestEntryService(t)

	_, err := fx.service.Save(context.Background(), &usecase.SaveEntryRequest{
		Entry: &entity.EntryTransaction{},
		Mode:  usecase.SaveModeNew,
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Contains(t, errorDetails(t, err), "selectedProducts")
}

func TestEntryService_Save_InvalidDate(t *testing.T) {
	fx := createTestEntryService(t)

	entry := draftEntry("", "31/02/2024", entity.UserData{FullName: "Ravi"}, "Main Road", line(cylinder, 1, 0))

	_, err := fx.service.Save(context.Background(), &usecase.SaveEntryRequest{Entry: entry, Mode: usecase.SaveModeNew})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDate)
}

func TestEntryService_Save_DateEditAsksBeforeDeletingOldEntry(t *testing.T) {
	fx := createTestEntryService(t)
	ctx := context.Background()

	customer := fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")
	old := draftEntry("20240301_090000_AAAAA", "01/03/2024", customer.UserData(), "Main Road", line(cylinder, 2, 0))
	old.Others = entity.Audit{CreatedBy: "admin-0", CreatedTime: 1}
	fx.repos.addEntry(t, old)

	edited := old.Clone()
	edited.Data.Date = "02/03/2024"
	req := &usecase.SaveEntryRequest{Entry: edited, Mode: usecase.SaveModeEdit, OriginalID: old.ID(), AdminID: "admin-1"}

	_, err := fx.service.Save(ctx, req)
	assert.Equal(t, usecase.PromptOldEntryWhenDateEdited, confirmationPrompt(t, err))

	entries, err := fx.repos.entries.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	yes := true
	req.DeleteOldOnDateEdit = &yes
	result, err := fx.service.Save(ctx, req)
	require.NoError(t, err)

	assert.True(t, result.OldEntryDeleted)
	assert.True(t, strings.HasPrefix(result.Entry.ID(), "20240302_"))
	assert.Equal(t, "admin-0", result.Entry.Others.CreatedBy)
	assert.Equal(t, "admin-1", result.Entry.Others.EditedBy)

	_, err = fx.repos.entries.FindByID(ctx, old.ID())
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)
}

func TestEntryService_Save_EditKeepsID(t *testing.T) {
	fx := createTestEntryService(t)
	ctx := context.Background()

	customer := fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")
	old := draftEntry("20240301_090000_AAAAA", "01/03/2024", customer.UserData(), "Main Road", line(cylinder, 2, 0))
	fx.repos.addEntry(t, old)

	edited := old.Clone()
	edited.Data.Payment = 1000

	result, err := fx.service.Save(ctx, &usecase.SaveEntryRequest{Entry: edited, Mode: usecase.SaveModeEdit})
	require.NoError(t, err)
	assert.Equal(t, old.ID(), result.Entry.ID())
	assert.False(t, result.OldEntryDeleted)

	stored, err := fx.repos.entries.FindByID(ctx, old.ID())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.Data.Payment)
}

func TestEntryService_Save_NewAddressPrompt(t *testing.T) {
	fx := createTestEntryService(t)
	ctx := context.Background()

	settings := entity.DefaultSettings()
	settings.AskForConfirmationOnNewAddress = entity.PolicyAsk
	require.NoError(t, fx.repos.settings.Save(ctx, "admin-1", settings))

	customer := fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")
	entry := draftEntry("", "05/03/2024", customer.UserData(), "Depot", line(cylinder, 1, 0))
	req := &usecase.SaveEntryRequest{Entry: entry, Mode: usecase.SaveModeNew, AdminID: "admin-1"}

	_, err := fx.service.Save(ctx, req)
	assert.Equal(t, usecase.PromptNewAddress, confirmationPrompt(t, err))

	no := false
	req.AddNewAddress = &no
	result, err := fx.service.Save(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.AddressAdded)
	assert.False(t, result.CustomerCreated)

	stored, err := fx.repos.customers.FindByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Road"}, stored.Data.ShippingAddress)
}

func TestEntryService_Save_CreatesNewTags(t *testing.T) {
	fx := createTestEntryService(t)
	ctx := context.Background()

	entry := draftEntry("", "05/03/2024", entity.UserData{FullName: "Ravi"}, "Main Road", line(cylinder, 1, 0))

	result, err := fx.service.Save(ctx, &usecase.SaveEntryRequest{
		Entry:   entry,
		Mode:    usecase.SaveModeNew,
		NewTags: []entity.TagData{{Name: "Urgent", ColorCode: "r"}, {Name: "  "}},
	})
	require.NoError(t, err)
	require.Len(t, result.Entry.Data.Tags, 1)

	tag, err := fx.repos.tags.FindByID(ctx, result.Entry.Data.Tags[0])
	require.NoError(t, err)
	assert.Equal(t, "Urgent", tag.Data.Name)
}

func TestEntryService_Get_NotFound(t *testing.T) {
	fx := createTestEntryService(t)

	_, err := fx.service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
