package impl

import (
	"context"
	"testing"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminServiceFixtures struct {
	repos      *testRepos
	service    usecase.AdminUsecase
	attendance usecase.AttendanceUsecase
	settings   usecase.SettingsUsecase
}

func createTestAdminService(t *testing.T) *adminServiceFixtures {
	t.Helper()

	repos := newTestRepos(t)
	require.NoError(t, repos.store.Set(context.Background(), constants.PathAccessKey, "open-sesame"))

	return &adminServiceFixtures{
		repos:      repos,
		service:    NewAdminService(repos.admins, discardLogger()),
		attendance: NewAttendanceService(repos.attendance, repos.persons),
		settings:   NewSettingsService(repos.settings),
	}
}

func TestAdminService_Register_WrongKey(t *testing.T) {
	fx := createTestAdminService(t)

	_, err := fx.service.Register(context.Background(), "uid-1", &usecase.RegisterAdminRequest{AccessKey: "guess", FullName: "Asha"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAccessKey)
}

func TestAdminService_RegisterThenAuthorize(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	admin, err := fx.service.Register(ctx, "uid-1", &usecase.RegisterAdminRequest{AccessKey: "open-sesame", FullName: " Asha "})
	require.NoError(t, err)
	assert.Equal(t, "Asha", admin.Data.FullName)
	assert.False(t, admin.Data.Permission.Verified)

	_, err = fx.service.Authorize(ctx, "uid-1")
	require.ErrorIs(t, err, domainerrors.ErrAdminNotVerified)

	admin.Data.Permission.Verified = true
	require.NoError(t, fx.repos.admins.Save(ctx, admin))

	authorized, err := fx.service.Authorize(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", authorized.Data.UserID)
	assert.Equal(t, "Asha", fx.service.Name(ctx, "uid-1"))
}

func TestAdminService_Authorize_Unregistered(t *testing.T) {
	fx := createTestAdminService(t)

	_, err := fx.service.Authorize(context.Background(), "stranger")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Equal(t, constants.UnknownName, fx.service.Name(context.Background(), "stranger"))
}

func TestAttendanceService_Set(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	fx.repos.addPerson(t, sweta)

	require.NoError(t, fx.attendance.Set(ctx, sweta.UserID, "20240305", true))
	attendance, err := fx.attendance.Get(ctx)
	require.NoError(t, err)
	assert.True(t, attendance["20240305"][sweta.UserID])

	assert.ErrorIs(t, fx.attendance.Set(ctx, sweta.UserID, "05/03/2024", true), domainerrors.ErrInvalidDate)
	assert.ErrorIs(t, fx.attendance.Set(ctx, "nobody", "20240305", true), domainerrors.ErrNotFound)
}

func TestSettingsService_Save(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	settings, err := fx.settings.Get(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), settings)

	settings.OldEntryWhenDateEdited = entity.PolicyAlwaysNo
	_, err = fx.settings.Save(ctx, "admin-1", settings)
	require.NoError(t, err)

	stored, err := fx.settings.Get(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PolicyAlwaysNo, stored.OldEntryWhenDateEdited)

	settings.ShowNegativePendingReturns = "maybe"
	settings.DefaultDateOnNewEntry = entity.EntryDateCustom
	_, err = fx.settings.Save(ctx, "admin-1", settings)
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Equal(t, "customDate, showNegativePendingReturns", errorDetails(t, err))
}
