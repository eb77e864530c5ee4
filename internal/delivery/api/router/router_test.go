package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fuelflow/config"
	apimiddleware "fuelflow/internal/delivery/api/middleware"
	"fuelflow/internal/delivery/api/router/handler"
	"fuelflow/internal/delivery/api/validator"
	"fuelflow/internal/delivery/middleware"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/infra/auth"
	"fuelflow/internal/infra/broadcast"
	"fuelflow/internal/infra/cache"
	"fuelflow/internal/infra/export"
	"fuelflow/internal/infra/metrics"
	"fuelflow/internal/infra/persistence/document"
	"fuelflow/internal/infra/persistence/memory"
	"fuelflow/internal/usecase"
	"fuelflow/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixtures struct {
	echo   *echo.Echo
	tokens *auth.JWTService
	admins repository.AdminRepository
	store  *memory.Store
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func createTestAPI(t *testing.T) *apiFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"}}

	store := memory.NewStore()
	hub := broadcast.NewHub(nil, nil, logger)
	customers := document.NewCustomerRepository(store, hub)
	persons := document.NewDeliveryPersonRepository(store, hub)
	products := document.NewProductRepository(store, hub)
	tags := document.NewTagRepository(store, hub)
	admins := document.NewAdminRepository(store, hub)
	attendance := document.NewAttendanceRepository(store, hub)
	entries := document.NewEntryRepository(store, hub)
	deposits := document.NewDepositRepository(store, hub)
	moves := document.NewMoveHistoryRepository(store, hub)
	settings := cache.NewSettingsRepository(nil, "")

	syncUC := impl.NewSyncService(hub, logger, customers, persons, products, tags, admins, attendance, entries, deposits, moves)
	adminUC := impl.NewAdminService(admins, logger)
	customerUC := impl.NewCustomerService(customers, entries, logger)
	personUC := impl.NewDeliveryPersonService(persons, entries, logger)
	inventoryUC := impl.NewInventoryService(entries, customers, tags, deposits, hub, logger)
	statisticsUC := impl.NewStatisticsService(customers, persons, tags, entries, deposits, settings, logger)

	tokens, err := auth.NewJWTService(&config.AuthConfig{JWTSecret: "test-secret"})
	require.NoError(t, err)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Use(middleware.NewRequestIDMiddleware(logger).Process)

	r := NewRouter(RouterParams{
		CustomerHandler: handler.NewCustomerHandler(handler.CustomerHandlerParams{
			CustomerUC: customerUC, InventoryUC: inventoryUC, Logger: logger,
		}),
		DeliveryPersonHandler: handler.NewDeliveryPersonHandler(handler.DeliveryPersonHandlerParams{
			DeliveryPersonUC: personUC, InventoryUC: inventoryUC,
		}),
		CatalogHandler: handler.NewCatalogHandler(handler.CatalogHandlerParams{
			ProductUC: impl.NewProductService(products, logger), TagUC: impl.NewTagService(tags),
		}),
		AdminHandler: handler.NewAdminHandler(handler.AdminHandlerParams{
			AdminUC:      adminUC,
			AttendanceUC: impl.NewAttendanceService(attendance, persons),
			SettingsUC:   impl.NewSettingsService(settings),
		}),
		EntryHandler: handler.NewEntryHandler(handler.EntryHandlerParams{
			EntryUC:     impl.NewEntryService(entries, customers, tags, settings, logger),
			InventoryUC: inventoryUC,
			MoveUC:      impl.NewMoveService(entries, customers, moves, logger),
			DepositUC:   impl.NewDepositService(deposits, customers, logger),
		}),
		ReportHandler: handler.NewReportHandler(handler.ReportHandlerParams{
			StatisticsUC: statisticsUC,
			ExportUC:     impl.NewExportService(inventoryUC, statisticsUC, export.NewRenderer(), logger),
			ImportUC:     impl.NewImportService(export.NewSpreadsheetReader(), customers, products, personUC, logger),
		}),
		ChatHandler: handler.NewChatHandler(handler.ChatHandlerParams{
			ChatUC: impl.NewChatService(nil, customers, persons, products, admins, entries, syncUC, logger),
		}),
		SyncHandler:    handler.NewSyncHandler(handler.SyncHandlerParams{SyncUC: syncUC}),
		EventsHandler:  handler.NewEventsHandler(handler.EventsHandlerParams{Notifier: hub}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{Verifier: tokens, AdminUC: adminUC}),
		Metrics:        metrics.New(),
		Config:         cfg,
	})
	r.RegisterRoutes(e)

	return &apiFixtures{echo: e, tokens: tokens, admins: admins, store: store}
}

// addAdmin stores an admin and returns a bearer token for it.
func (f *apiFixtures) addAdmin(t *testing.T, uid string, verified bool) string {
	t.Helper()

	require.NoError(t, f.admins.Save(context.Background(), &entity.Admin{Data: entity.AdminData{
		UserID:     uid,
		FullName:   "Admin " + uid,
		Permission: entity.Permission{Verified: verified},
	}}))

	return f.token(t, uid)
}

func (f *apiFixtures) token(t *testing.T, uid string) string {
	t.Helper()

	token, err := f.tokens.IssueToken(uid, uid+"@example.com", time.Hour)
	require.NoError(t, err)

	return token
}

func (f *apiFixtures) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, &env
}

func TestRouter_HealthIsPublic(t *testing.T) {
	f := createTestAPI(t)

	rec, env := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, env.Meta.RequestID)

	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Len(t, health.Repositories, 9)
}

func TestRouter_Authentication(t *testing.T) {
	f := createTestAPI(t)
	unverified := f.addAdmin(t, "pending", false)

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{name: "missing token", token: "", wantCode: http.StatusUnauthorized},
		{name: "garbage token", token: "not-a-jwt", wantCode: http.StatusUnauthorized},
		{name: "unregistered admin", token: f.token(t, "stranger"), wantCode: http.StatusForbidden},
		{name: "unverified admin", token: unverified, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := f.do(t, http.MethodGet, "/api/v1/customers", tt.token, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			require.NotNil(t, env.Error)
			assert.Empty(t, env.Error.Details)
		})
	}
}

func TestRouter_RegisterNeedsAccessKey(t *testing.T) {
	f := createTestAPI(t)
	require.NoError(t, f.store.Set(context.Background(), "others/accessKey", "open-sesame"))
	token := f.token(t, "newcomer")

	rec, env := f.do(t, http.MethodPost, "/api/v1/admins/register", token, usecase.RegisterAdminRequest{
		AccessKey: "wrong", FullName: "New Comer",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INVALID_ACCESS_KEY", env.Error.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/admins/register", token, usecase.RegisterAdminRequest{
		AccessKey: "open-sesame", FullName: "New Comer",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Registered but not yet verified.
	rec, _ = f.do(t, http.MethodGet, "/api/v1/admins/me", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_SaveEntryAndReadViews(t *testing.T) {
	f := createTestAPI(t)
	token := f.addAdmin(t, "admin-1", true)

	cylinder := entity.ProductSnapshot{ProductID: "P-CYL", Name: "Cylinder 14KG", Rate: 500, ProductReturnable: true}
	entry := &entity.EntryTransaction{Data: entity.EntryData{
		Date:            "05/03/2024",
		Customer:        entity.UserData{FullName: "Ravi"},
		ShippingAddress: "Main Road",
		Payment:         1000,
		SelectedProducts: []entity.ProductQuantity{
			{ProductData: cylinder, SentUnits: 3, RecievedUnits: 1},
		},
		DeliveryBoyList: []entity.DeliveryDone{{
			UserData:     entity.UserData{UserID: "D1", FullName: "Sweta"},
			DeliveryDone: []entity.DeliveryUnits{{ProductID: "P-CYL", SentUnits: 3, RecievedUnits: 1}},
		}},
	}}

	rec, env := f.do(t, http.MethodPost, "/api/v1/entries", token, usecase.SaveEntryRequest{Entry: entry, Mode: usecase.SaveModeNew})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result usecase.SaveEntryResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.CustomerCreated)
	assert.Equal(t, "admin-1", result.Entry.Others.CreatedBy)
	customerID := result.Entry.Data.Customer.UserID

	rec, env = f.do(t, http.MethodGet, "/api/v1/entries?address=Main+Road", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []*usecase.InventoryRow
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 500.0, rows[0].DueAmt)

	rec, env = f.do(t, http.MethodGet, "/api/v1/customers/"+customerID+"/entries", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)

	rec, env = f.do(t, http.MethodDelete, "/api/v1/customers/"+customerID, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CUSTOMER_IN_USE", env.Error.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/exports/inventory?format=csv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".csv")
	assert.Contains(t, rec.Body.String(), "Ravi")
}

func TestRouter_ValidationDetails(t *testing.T) {
	f := createTestAPI(t)
	token := f.addAdmin(t, "admin-1", true)

	rec, env := f.do(t, http.MethodPost, "/api/v1/moves", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "fromUserId")
	assert.Contains(t, env.Error.Details, "transactionIdList")
}

func TestRouter_ChatUnavailable(t *testing.T) {
	f := createTestAPI(t)
	token := f.addAdmin(t, "admin-1", true)

	rec, env := f.do(t, http.MethodPost, "/api/v1/chat", token, handler.ChatRequest{Message: "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "CHAT_UNAVAILABLE", env.Error.Code)
}

func TestRouter_RefreshUnknownTopic(t *testing.T) {
	f := createTestAPI(t)
	token := f.addAdmin(t, "admin-1", true)

	rec, _ := f.do(t, http.MethodPost, "/api/v1/refresh/customers", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/api/v1/refresh/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown topic nope", env.Error.Details)
}

func TestRouter_Metrics(t *testing.T) {
	f := createTestAPI(t)

	rec, _ := f.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
