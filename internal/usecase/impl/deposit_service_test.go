package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type depositServiceFixtures struct {
	repos   *testRepos
	service usecase.DepositUsecase
	now     time.Time
}

func createTestDepositService(t *testing.T) *depositServiceFixtures {
	t.Helper()

	repos := newTestRepos(t)
	now := time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local)
	svc := NewDepositService(repos.deposits, repos.customers, discardLogger())
	svc.(*depositService).now = fixedClock(now)

	return &depositServiceFixtures{repos: repos, service: svc, now: now}
}

func TestDepositService_Save_New(t *testing.T) {
	fx := createTestDepositService(t)
	fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")

	saved, err := fx.service.Save(context.Background(), &entity.DepositEntry{Data: entity.DepositData{
		Date:       "5/3/2024",
		Customer:   entity.UserData{UserID: "C1"},
		PaymentAmt: 1000,
	}}, "admin-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(saved.ID(), "20240305_103000_"))
	assert.Equal(t, "05/03/2024", saved.Data.Date)
	assert.Equal(t, "Ravi", saved.Data.Customer.FullName)
	assert.Equal(t, "admin-1", saved.Others.CreatedBy)
	assert.Equal(t, fx.now.UnixMilli(), saved.Others.CreatedTime)
}

func TestDepositService_Save_EditKeepsStoredAudit(t *testing.T) {
	fx := createTestDepositService(t)
	ctx := context.Background()
	fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")

	stored := &entity.DepositEntry{
		Data: entity.DepositData{
			TransactionID: "20240301_090000_AAAAA",
			Date:          "01/03/2024",
			Customer:      entity.UserData{UserID: "C1", FullName: "Ravi"},
			PaymentAmt:    500,
		},
		Others: entity.Audit{CreatedBy: "admin-0", CreatedTime: 1709283600000, MoveIDs: []string{"M1"}},
	}
	require.NoError(t, fx.repos.deposits.Save(ctx, stored))

	// The client sends the deposit back without its audit block
	edited := &entity.DepositEntry{Data: stored.Data}
	edited.Data.PaymentAmt = 800

	saved, err := fx.service.Save(ctx, edited, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "admin-0", saved.Others.CreatedBy)
	assert.Equal(t, int64(1709283600000), saved.Others.CreatedTime)
	assert.Equal(t, []string{"M1"}, saved.Others.MoveIDs)
	assert.Equal(t, "admin-1", saved.Others.EditedBy)

	got, err := fx.repos.deposits.FindByID(ctx, "C1", stored.ID())
	require.NoError(t, err)
	assert.Equal(t, 800.0, got.Data.PaymentAmt)
	assert.Equal(t, "admin-0", got.Others.CreatedBy)
}

func TestDepositService_Save_EditUnknownDeposit(t *testing.T) {
	fx := createTestDepositService(t)
	fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")

	_, err := fx.service.Save(context.Background(), &entity.DepositEntry{Data: entity.DepositData{
		TransactionID: "20240301_090000_ZZZZZ",
		Date:          "01/03/2024",
		Customer:      entity.UserData{UserID: "C1"},
		PaymentAmt:    100,
	}}, "admin-1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
