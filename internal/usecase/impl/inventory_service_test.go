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

type inventoryServiceFixtures struct {
	repos   *testRepos
	service usecase.InventoryUsecase
}

func createTestInventoryService(t *testing.T) *inventoryServiceFixtures {
	t.Helper()

	repos := newTestRepos(t)
	svc := NewInventoryService(repos.entries, repos.customers, repos.tags, repos.deposits, repos.hub, discardLogger())

	return &inventoryServiceFixtures{repos: repos, service: svc}
}

// seedInventory stores three entries of one customer, oldest first.
func seedInventory(t *testing.T, repos *testRepos) {
	t.Helper()

	ravi := repos.addCustomer(t, "C1", "Ravi", "Main Road")
	require.NoError(t, repos.tags.Save(context.Background(), &entity.Tag{Data: entity.TagData{TagID: "T1", Name: "Urgent", ColorCode: "r"}}))

	first := draftEntry("20240301_090000_AAAAA", "01/03/2024", ravi.UserData(), "Main Road", line(cylinder, 2, 0))
	first.Data.Payment = 1000
	first.Data.Tags = []string{"T1"}

	second := draftEntry("20240302_090000_BBBBB", "02/03/2024", ravi.UserData(), "Depot", line(regulator, 3, 0))
	second.Data.Payment = 150
	second.Data.Tags = []string{"gone"}

	third := draftEntry("20240303_090000_CCCCC", "03/03/2024", ravi.UserData(), "Main Road", line(cylinder, 0, 2))
	third.Data.ExtraDetails = "empties back"

	for _, e := range []*entity.EntryTransaction{first, second, third} {
		repos.addEntry(t, e)
	}
}

func rowIDs(rows []*usecase.InventoryRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	return ids
}

func TestInventoryService_Rows_NewestFirst(t *testing.T) {
	fx := createTestInventoryService(t)
	seedInventory(t, fx.repos)

	rows, err := fx.service.Rows(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"20240303_090000_CCCCC", "20240302_090000_BBBBB", "20240301_090000_AAAAA"}, rowIDs(rows))

	third, second, first := rows[0], rows[1], rows[2]
	assert.Equal(t, "r", first.HighlightColor)
	assert.Equal(t, constants.HighlightUnknownTag, second.HighlightColor)
	assert.Equal(t, constants.HighlightNoTag, third.HighlightColor)

	assert.Equal(t, "01 March 2024", first.DisplayDate)
	assert.Equal(t, "Sweta", first.DeliveryNames)
	assert.True(t, first.HasSecondRow)
	assert.True(t, third.HasSecondRow)

	require.NotNil(t, first.Products[0].Pending)
	assert.Equal(t, 2, *first.Products[0].Pending)
	assert.Nil(t, second.Products[0].Pending)
	assert.Equal(t, -2, *third.Products[0].Pending)
}

func TestInventoryService_Rows_Filter(t *testing.T) {
	fx := createTestInventoryService(t)
	seedInventory(t, fx.repos)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter usecase.InventoryFilter
		want   []string
	}{
		{
			name:   "address",
			filter: usecase.InventoryFilter{ShippingAddresses: []string{"Depot"}},
			want:   []string{"20240302_090000_BBBBB"},
		},
		{
			name:   "product",
			filter: usecase.InventoryFilter{ProductIDs: []string{cylinder.ProductID}},
			want:   []string{"20240303_090000_CCCCC", "20240301_090000_AAAAA"},
		},
		{
			name:   "tag",
			filter: usecase.InventoryFilter{TagIDs: []string{"T1", "other"}},
			want:   []string{"20240301_090000_AAAAA"},
		},
		{
			name:   "inclusive date range",
			filter: usecase.InventoryFilter{From: "2/3/2024", To: "03/03/2024"},
			want:   []string{"20240303_090000_CCCCC", "20240302_090000_BBBBB"},
		},
		{
			name:   "search is case insensitive",
			filter: usecase.InventoryFilter{Search: "EMPTIES"},
			want:   []string{"20240303_090000_CCCCC"},
		},
		{
			name:   "search delivery person",
			filter: usecase.InventoryFilter{Search: "swe", CustomerID: "C1"},
			want:   []string{"20240303_090000_CCCCC", "20240302_090000_BBBBB", "20240301_090000_AAAAA"},
		},
		{
			name:   "other customer",
			filter: usecase.InventoryFilter{CustomerID: "C2"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := fx.service.Rows(ctx, &tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rowIDs(rows))
		})
	}
}

func TestInventoryService_Rows_InvalidDate(t *testing.T) {
	fx := createTestInventoryService(t)

	_, err := fx.service.Rows(context.Background(), &usecase.InventoryFilter{From: "March"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDate)
}

func TestInventoryService_Rows_RebuildsAfterChange(t *testing.T) {
	fx := createTestInventoryService(t)
	seedInventory(t, fx.repos)
	ctx := context.Background()

	rows, err := fx.service.Rows(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", rows[0].Customer.FullName)

	customer, err := fx.repos.customers.FindByID(ctx, "C1")
	require.NoError(t, err)
	customer.Data.FullName = "Ravi Kumar"
	require.NoError(t, fx.repos.customers.Save(ctx, customer))

	rows, err = fx.service.Rows(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", rows[0].Customer.FullName)
}

func TestInventoryService_CustomerRows_RunningDue(t *testing.T) {
	fx := createTestInventoryService(t)
	seedInventory(t, fx.repos)

	rows, err := fx.service.CustomerRows(context.Background(), "C1")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// 1000-1000, then 300-150, then 0-0.
	assert.Equal(t, []float64{0, 150, 150}, []float64{rows[0].DueAmt, rows[1].DueAmt, rows[2].DueAmt})
}

func TestInventoryService_DeliveryPersonRows(t *testing.T) {
	fx := createTestInventoryService(t)
	seedInventory(t, fx.repos)

	rows, err := fx.service.DeliveryPersonRows(context.Background(), sweta.UserID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = fx.service.DeliveryPersonRows(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInventoryService_DepositRows_RunningBalance(t *testing.T) {
	fx := createTestInventoryService(t)
	ctx := context.Background()

	for _, d := range []*entity.DepositEntry{
		{Data: entity.DepositData{TransactionID: "20240302_1", Customer: entity.UserData{UserID: "C1"}, ReturnAmt: 300}},
		{Data: entity.DepositData{TransactionID: "20240301_1", Customer: entity.UserData{UserID: "C1"}, PaymentAmt: 1000}},
	} {
		require.NoError(t, fx.repos.deposits.Save(ctx, d))
	}

	rows, err := fx.service.DepositRows(ctx, "C1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "20240301_1", rows[0].ID())
	assert.Equal(t, 1000.0, rows[0].DueAmt)
	assert.Equal(t, 700.0, rows[1].DueAmt)
}
