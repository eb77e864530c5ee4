// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fuelflow/config"
	"fuelflow/internal/delivery/api/middleware"
	"fuelflow/internal/delivery/api/router/handler"
	"fuelflow/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CustomerHandler       *handler.CustomerHandler
	DeliveryPersonHandler *handler.DeliveryPersonHandler
	CatalogHandler        *handler.CatalogHandler
	AdminHandler          *handler.AdminHandler
	EntryHandler          *handler.EntryHandler
	ReportHandler         *handler.ReportHandler
	ChatHandler           *handler.ChatHandler
	SyncHandler           *handler.SyncHandler
	EventsHandler         *handler.EventsHandler
	AuthMiddleware        *middleware.AuthMiddleware
	Metrics               *metrics.Metrics
	Config                *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	customerHandler       *handler.CustomerHandler
	deliveryPersonHandler *handler.DeliveryPersonHandler
	catalogHandler        *handler.CatalogHandler
	adminHandler          *handler.AdminHandler
	entryHandler          *handler.EntryHandler
	reportHandler         *handler.ReportHandler
	chatHandler           *handler.ChatHandler
	syncHandler           *handler.SyncHandler
	eventsHandler         *handler.EventsHandler
	authMiddleware        *middleware.AuthMiddleware
	metrics               *metrics.Metrics
	config                *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		customerHandler:       params.CustomerHandler,
		deliveryPersonHandler: params.DeliveryPersonHandler,
		catalogHandler:        params.CatalogHandler,
		adminHandler:          params.AdminHandler,
		entryHandler:          params.EntryHandler,
		reportHandler:         params.ReportHandler,
		chatHandler:           params.ChatHandler,
		syncHandler:           params.SyncHandler,
		eventsHandler:         params.EventsHandler,
		authMiddleware:        params.AuthMiddleware,
		metrics:               params.Metrics,
		config:                params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.syncHandler.HealthCheck)

	if r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require a verified token

	// Self-registration only needs a token; the admin record does not exist yet
	apiV1.POST("/admins/register", r.adminHandler.Register)

	admin := apiV1.Group("")
	admin.Use(r.authMiddleware.RequireAdmin)

	customersGroup := admin.Group("/customers")
	{
		customersGroup.GET("", r.customerHandler.ListCustomers)
		customersGroup.POST("", r.customerHandler.SaveCustomer)
		customersGroup.GET("/:id", r.customerHandler.GetCustomer)
		customersGroup.DELETE("/:id", r.customerHandler.DeleteCustomer)
		customersGroup.GET("/:id/entries", r.customerHandler.GetCustomerEntries)
		customersGroup.GET("/:id/deposits", r.customerHandler.GetCustomerDeposits)
		customersGroup.POST("/:id/addresses", r.customerHandler.AddShippingAddress)
		customersGroup.PUT("/:id/status", r.customerHandler.SetUpdateStatus)
	}

	personsGroup := admin.Group("/delivery-persons")
	{
		personsGroup.GET("", r.deliveryPersonHandler.ListDeliveryPersons)
		personsGroup.POST("", r.deliveryPersonHandler.SaveDeliveryPerson)
		personsGroup.GET("/:id", r.deliveryPersonHandler.GetDeliveryPerson)
		personsGroup.DELETE("/:id", r.deliveryPersonHandler.DeleteDeliveryPerson)
		personsGroup.GET("/:id/entries", r.deliveryPersonHandler.GetDeliveryPersonEntries)
	}

	productsGroup := admin.Group("/products")
	{
		productsGroup.GET("", r.catalogHandler.ListProducts)
		productsGroup.POST("", r.catalogHandler.SaveProduct)
		productsGroup.GET("/:id", r.catalogHandler.GetProduct)
		productsGroup.DELETE("/:id", r.catalogHandler.DeleteProduct)
	}

	tagsGroup := admin.Group("/tags")
	{
		tagsGroup.GET("", r.catalogHandler.ListTags)
		tagsGroup.POST("", r.catalogHandler.SaveTag)
		tagsGroup.GET("/:id", r.catalogHandler.GetTag)
		tagsGroup.DELETE("/:id", r.catalogHandler.DeleteTag)
	}

	admin.GET("/admins", r.adminHandler.ListAdmins)
	admin.GET("/admins/me", r.adminHandler.Me)
	admin.GET("/attendance", r.adminHandler.GetAttendance)
	admin.PUT("/attendance", r.adminHandler.SetAttendance)
	admin.GET("/settings", r.adminHandler.GetSettings)
	admin.PUT("/settings", r.adminHandler.SaveSettings)

	entriesGroup := admin.Group("/entries")
	{
		entriesGroup.GET("", r.entryHandler.ListEntries)
		entriesGroup.POST("", r.entryHandler.SaveEntry)
		entriesGroup.GET("/:id", r.entryHandler.GetEntry)
		entriesGroup.DELETE("/:id", r.entryHandler.DeleteEntry)
	}

	movesGroup := admin.Group("/moves")
	{
		movesGroup.POST("", r.entryHandler.MoveEntries)
		movesGroup.GET("", r.entryHandler.MoveHistory)
		movesGroup.GET("/:id/entries", r.entryHandler.MoveHistoryEntries)
	}

	depositsGroup := admin.Group("/deposits")
	{
		depositsGroup.GET("", r.entryHandler.ListDeposits)
		depositsGroup.POST("", r.entryHandler.SaveDeposit)
		depositsGroup.DELETE("/:customerId/:id", r.entryHandler.DeleteDeposit)
	}

	admin.GET("/statistics", r.reportHandler.Dashboard)
	admin.GET("/statistics/sales", r.reportHandler.Sales)
	admin.GET("/exports/inventory", r.reportHandler.ExportInventory)
	admin.GET("/exports/pending-returns", r.reportHandler.ExportPendingReturns)
	admin.POST("/imports/preview", r.reportHandler.ImportPreview)

	admin.POST("/chat", r.chatHandler.Chat)
	admin.POST("/refresh/:topic", r.syncHandler.Refresh)
	admin.GET("/events", r.eventsHandler.Stream)
}
