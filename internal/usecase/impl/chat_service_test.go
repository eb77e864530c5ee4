package impl

import (
	"context"
	"testing"
	"time"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/service"
	mockService "fuelflow/internal/mocks/service"
	"fuelflow/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type chatServiceFixtures struct {
	repos   *testRepos
	model   *mockService.MockChatModel
	session *mockService.MockChatSession
	service usecase.ChatUsecase
}

func createTestChatService(t *testing.T) *chatServiceFixtures {
	t.Helper()

	repos := newTestRepos(t)
	model := mockService.NewMockChatModel(t)
	session := mockService.NewMockChatSession(t)
	syncer := NewSyncService(repos.hub, discardLogger(), repos.customers, repos.persons, repos.products, repos.admins)

	svc := NewChatService(model, repos.customers, repos.persons, repos.products, repos.admins, repos.entries, syncer, discardLogger())
	svc.(*chatService).now = fixedClock(time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local))

	return &chatServiceFixtures{repos: repos, model: model, session: session, service: svc}
}

// expectCall makes the model answer message with one function call.
func (fx *chatServiceFixtures) expectCall(message, name string, args map[string]any) {
	fx.model.EXPECT().
		StartChat(mock.Anything, mock.Anything, mock.Anything).
		Return(fx.session, nil)
	fx.session.EXPECT().
		SendText(mock.Anything, message).
		Return(&service.ChatReply{Calls: []service.FunctionCall{{ID: "call-1", Name: name, Args: args}}}, nil)
}

func (fx *chatServiceFixtures) seed(t *testing.T) {
	t.Helper()

	fx.repos.addCustomer(t, "C1", "Ravi", "Main Road")
	fx.repos.addPerson(t, sweta)
	fx.repos.addProduct(t, cylinder)
}

func TestChatService_Chat_Disabled(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewChatService(nil, repos.customers, repos.persons, repos.products, repos.admins, repos.entries, nil, discardLogger())

	_, err := svc.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, domainerrors.ErrChatUnavailable)
}

func TestChatService_Chat_TextReply(t *testing.T) {
	fx := createTestChatService(t)

	fx.model.EXPECT().StartChat(mock.Anything, mock.Anything, mock.Anything).Return(fx.session, nil)
	fx.session.EXPECT().SendText(mock.Anything, "hello").Return(&service.ChatReply{Text: "Hi!"}, nil)

	resp, err := fx.service.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi!", resp.Response)
}

func TestChatService_Chat_ModelError(t *testing.T) {
	fx := createTestChatService(t)

	fx.model.EXPECT().StartChat(mock.Anything, mock.Anything, mock.Anything).Return(fx.session, nil)
	fx.session.EXPECT().SendText(mock.Anything, "hello").Return(nil, errors.New("quota exceeded"))

	resp, err := fx.service.Chat(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, "SYSTEM ERROR: quota exceeded", resp.Warning.Text)
	assert.Equal(t, usecase.ChatActionCallAdmin, resp.Warning.Action)
}

func TestChatService_Chat_ProcessTransaction(t *testing.T) {
	fx := createTestChatService(t)
	fx.seed(t)
	ctx := context.Background()

	fx.expectCall("Sweta gave Ravi 2 cylinders", toolProcessTransaction, map[string]any{
		"customer_name":     "ravi",
		"delivery_boy_name": "Sweta",
		"product_name":      "cylinder",
		"sent_units":        2.0,
		"received_units":    1.0,
		"payment_amount":    600.0,
	})

	resp, err := fx.service.Chat(ctx, "Sweta gave Ravi 2 cylinders")
	require.NoError(t, err)
	require.Nil(t, resp.Warning)
	assert.Equal(t, "SUCCESS: Logged entry for Ravi.", resp.Response)

	entries, err := fx.repos.entries.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "05/03/2024", entry.Data.Date)
	assert.Equal(t, "C1", entry.Data.Customer.UserID)
	assert.Equal(t, "Main Road", entry.Data.ShippingAddress)
	assert.Equal(t, 1000.0, entry.Data.Total)
	assert.Equal(t, 600.0, entry.Data.Payment)
	assert.Equal(t, "Pending", entry.Data.Status)
	assert.Equal(t, constants.AIAgentAuthor, entry.Others.CreatedBy)
	assert.Empty(t, reconcileUnits(entry))
}

func TestChatService_Chat_ProcessTransaction_Ambiguous(t *testing.T) {
	fx := createTestChatService(t)
	fx.seed(t)
	fx.repos.addCustomer(t, "C2", "Ravi Kumar")
	ctx := context.Background()

	fx.expectCall("log it", toolProcessTransaction, map[string]any{
		"customer_name":     "Ravi",
		"delivery_boy_name": "Sweta",
		"product_name":      "Cylinder",
		"sent_units":        1.0,
	})

	resp, err := fx.service.Chat(ctx, "log it")
	require.NoError(t, err)
	assert.Equal(t, "2 Customers found. Please provide full name to be specific!", resp.Response)
	assert.Equal(t, usecase.ChatActionRedirect, resp.Action)
	assert.Len(t, resp.ObjectArray, 2)

	entries, err := fx.repos.entries.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestChatService_Chat_ProcessTransaction_UnknownProduct(t *testing.T) {
	fx := createTestChatService(t)
	fx.seed(t)

	fx.expectCall("log it", toolProcessTransaction, map[string]any{
		"customer_name":     "Ravi",
		"delivery_boy_name": "Sweta",
		"product_name":      "Oxygen",
	})

	resp, err := fx.service.Chat(context.Background(), "log it")
	require.NoError(t, err)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, "No product named 'Oxygen'. Hence cant proceed!", resp.Warning.Text)
}

func TestChatService_Chat_CustomerDetails(t *testing.T) {
	fx := createTestChatService(t)
	fx.seed(t)

	fx.expectCall("who is ravi", toolCustomerDetails, map[string]any{"customer_name": "Ravi"})
	fx.session.EXPECT().
		SendFunctionResults(mock.Anything, mock.MatchedBy(func(results []service.FunctionResult) bool {
			return len(results) == 1 && results[0].ID == "call-1" && results[0].Name == toolCustomerDetails
		})).
		Return(&service.ChatReply{Text: "Ravi lives on Main Road."}, nil)

	resp, err := fx.service.Chat(context.Background(), "who is ravi")
	require.NoError(t, err)
	assert.Equal(t, "Ravi lives on Main Road.", resp.Response)
	assert.Equal(t, entity.CustomerData{UserID: "C1", FullName: "Ravi", ShippingAddress: []string{"Main Road"}}, resp.Context)
}

func TestChatService_Chat_DetailsNotFound(t *testing.T) {
	fx := createTestChatService(t)
	fx.seed(t)

	fx.expectCall("who is zed", toolDeliveryDetails, map[string]any{"delivery_boy_name": "Zed"})

	resp, err := fx.service.Chat(context.Background(), "who is zed")
	require.NoError(t, err)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, "Nothing named 'Zed' found.", resp.Warning.Text)
}

func TestChatService_Chat_RefreshMemory(t *testing.T) {
	fx := createTestChatService(t)

	fx.expectCall("reload", toolRefreshMemory, nil)

	resp, err := fx.service.Chat(context.Background(), "reload")
	require.NoError(t, err)
	assert.Equal(t, "Memory Refreshed! Please ask me what you need again.", resp.Response)
}
