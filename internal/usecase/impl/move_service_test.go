package impl

import (
	"context"
	"testing"
	"time"

	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/infra/persistence/document"
	mockRepo "fuelflow/internal/mocks/repository"
	"fuelflow/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type moveServiceFixtures struct {
	repos   *testRepos
	service usecase.MoveUsecase
}

func createTestMoveService(t *testing.T) *moveServiceFixtures {
	t.Helper()

	repos := newTestRepos(t)
	svc := NewMoveService(repos.entries, repos.customers, repos.moves, discardLogger())
	svc.(*moveService).now = fixedClock(time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local))

	return &moveServiceFixtures{repos: repos, service: svc}
}

func TestMoveService_MoveEntries_PartialFailure(t *testing.T) {
	fx := createTestMoveService(t)
	ctx := context.Background()

	from := fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")
	to := fx.repos.addCustomer(t, "C2", "Meena", "Depot")
	to.Data.PhoneNumber = "777"
	require.NoError(t, fx.repos.customers.Save(ctx, to))

	entry := draftEntry("20240301_090000_AAAAA", "01/03/2024", from.UserData(), "Main Road", line(cylinder, 2, 0))
	fx.repos.addEntry(t, entry)

	result, err := fx.service.MoveEntries(ctx, &usecase.MoveEntriesRequest{
		FromUserID:     "C1",
		ToUserID:       "C2",
		TransactionIDs: []string{entry.ID(), "missing"},
		ExtraNote:      "wrong customer",
		MovedBy:        "admin-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, entity.SeverityYellow, result.Severity)
	assert.False(t, result.HistoryFailed)
	assert.Equal(t, "05032024_103000_", result.MoveID[:16])

	moved, err := fx.repos.entries.FindByID(ctx, entry.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.UserData{FullName: "Meena", PhoneNumber: "777", UserID: "C2"}, moved.Data.Customer)
	assert.Equal(t, "admin-1", moved.Others.MovedBy)
	assert.Equal(t, []string{result.MoveID}, moved.Others.MoveIDs)

	history, err := fx.service.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "wrong customer", history[0].ExtraNote)
	assert.Equal(t, []string{entry.ID(), "missing"}, history[0].TransactionIDList)

	entries, err := fx.service.HistoryEntries(ctx, result.MoveID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID(), entries[0].ID())
}

func TestMoveService_MoveEntries_UnknownTargetKeepsSnapshot(t *testing.T) {
	fx := createTestMoveService(t)
	ctx := context.Background()

	from := fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")
	entry := draftEntry("20240301_090000_AAAAA", "01/03/2024", from.UserData(), "Main Road", line(cylinder, 2, 0))
	fx.repos.addEntry(t, entry)

	result, err := fx.service.MoveEntries(ctx, &usecase.MoveEntriesRequest{
		FromUserID:     "C1",
		ToUserID:       "C9",
		TransactionIDs: []string{entry.ID()},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SeverityGreen, result.Severity)

	moved, err := fx.repos.entries.FindByID(ctx, entry.ID())
	require.NoError(t, err)
	assert.Equal(t, "Ravi", moved.Data.Customer.FullName)
	assert.Equal(t, "C9", moved.Data.Customer.UserID)
}

func TestMoveService_MoveEntries_SameCustomer(t *testing.T) {
	fx := createTestMoveService(t)

	_, err := fx.service.MoveEntries(context.Background(), &usecase.MoveEntriesRequest{
		FromUserID:     "C1",
		ToUserID:       "C1",
		TransactionIDs: []string{"x"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrSameCustomer)
}

func TestMoveService_MoveEntries_NothingSelected(t *testing.T) {
	fx := createTestMoveService(t)

	_, err := fx.service.MoveEntries(context.Background(), &usecase.MoveEntriesRequest{FromUserID: "C1", ToUserID: "C2"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestMoveService_MoveEntries_HistoryWriteFails(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	historyStore := mockRepo.NewMockDocumentStore(t)
	historyStore.EXPECT().
		Set(mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("permission denied"))
	history := document.NewMoveHistoryRepository(historyStore, repos.hub)

	from := repos.addCustomer(t, "C1", "Ravi", "Main Road")
	entry := draftEntry("20240301_090000_AAAAA", "01/03/2024", from.UserData(), "Main Road", line(cylinder, 2, 0))
	repos.addEntry(t, entry)

	svc := NewMoveService(repos.entries, repos.customers, history, discardLogger())
	result, err := svc.MoveEntries(ctx, &usecase.MoveEntriesRequest{
		FromUserID:     "C1",
		ToUserID:       "C2",
		TransactionIDs: []string{entry.ID()},
	})
	require.NoError(t, err)

	assert.True(t, result.HistoryFailed)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, entity.SeverityGreen, result.Severity)
}

func TestMoveService_HistoryEntries_NotFound(t *testing.T) {
	fx := createTestMoveService(t)

	_, err := fx.service.HistoryEntries(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
