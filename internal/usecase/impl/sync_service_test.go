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

type syncServiceFixtures struct {
	repos   *testRepos
	service usecase.SyncUsecase
}

func createTestSyncService(t *testing.T) *syncServiceFixtures {
	t.Helper()

	repos := newTestRepos(t)
	svc := NewSyncService(repos.hub, discardLogger(), repos.customers, repos.entries)

	return &syncServiceFixtures{repos: repos, service: svc}
}

func TestSyncService_LoadAllAndStatus(t *testing.T) {
	fx := createTestSyncService(t)
	ctx := context.Background()

	require.NoError(t, fx.repos.store.Set(ctx, constants.PathCustomers+"/C1", &entity.Customer{Data: entity.CustomerData{UserID: "C1", FullName: "Ravi"}}))
	require.NoError(t, fx.service.LoadAll(ctx))

	status := fx.service.Status()
	require.Len(t, status, 2)
	assert.Equal(t, constants.TopicCustomers, status[0].Topic)
	assert.Equal(t, 1, status[0].Count)
	assert.False(t, status[0].LastRefreshed.IsZero())
	assert.Equal(t, constants.TopicTransactions, status[1].Topic)
	assert.Equal(t, 0, status[1].Count)
}

func TestSyncService_Refresh_UnknownTopic(t *testing.T) {
	fx := createTestSyncService(t)

	err := fx.service.Refresh(context.Background(), "nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSyncService_ApplyRemoteChange(t *testing.T) {
	fx := createTestSyncService(t)
	ctx := context.Background()

	require.NoError(t, fx.service.LoadAll(ctx))
	require.NoError(t, fx.repos.store.Set(ctx, constants.PathCustomers+"/C5", &entity.Customer{Data: entity.CustomerData{UserID: "C5", FullName: "Remote"}}))

	applied, err := fx.service.ApplyRemoteChange(ctx, &entity.ChangeEvent{Topic: constants.TopicCustomers, Origin: fx.repos.hub.Origin()})
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = fx.repos.customers.FindByID(ctx, "C5")
	assert.Error(t, err)

	applied, err = fx.service.ApplyRemoteChange(ctx, &entity.ChangeEvent{Topic: constants.TopicCustomers, Origin: "other-instance"})
	require.NoError(t, err)
	assert.True(t, applied)

	customer, err := fx.repos.customers.FindByID(ctx, "C5")
	require.NoError(t, err)
	assert.Equal(t, "Remote", customer.Data.FullName)
}
