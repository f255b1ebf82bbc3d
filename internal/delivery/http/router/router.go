// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"vitrina/config"
	"vitrina/internal/delivery/http/middleware"
	"vitrina/internal/delivery/http/router/handler"
	"vitrina/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	Config            *config.Config
	DataHandler       *handler.DataHandler
	MerchantHandler   *handler.MerchantHandler
	BusinessHandler   *handler.BusinessHandler
	PublicUserHandler *handler.PublicUserHandler
	DirectoryHandler  *handler.DirectoryHandler
	PaymentHandler    *handler.PaymentHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	ChatHandler       *handler.ChatHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	metricsEnabled bool
	data           *handler.DataHandler
	merchant       *handler.MerchantHandler
	business       *handler.BusinessHandler
	publicUser     *handler.PublicUserHandler
	directory      *handler.DirectoryHandler
	payment        *handler.PaymentHandler
	analytics      *handler.AnalyticsHandler
	chat           *handler.ChatHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		metricsEnabled: params.Config.Metrics != nil && params.Config.Metrics.Enabled,
		data:           params.DataHandler,
		merchant:       params.MerchantHandler,
		business:       params.BusinessHandler,
		publicUser:     params.PublicUserHandler,
		directory:      params.DirectoryHandler,
		payment:        params.PaymentHandler,
		analytics:      params.AnalyticsHandler,
		chat:           params.ChatHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	if r.metricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	api := e.Group("/api")

	// Open routes
	api.GET("/data", r.data.GetData)
	api.POST("/reset-data", r.data.ResetData)
	api.GET("/home", r.directory.Home)
	api.POST("/track", r.analytics.Track)
	api.GET("/analytics", r.analytics.Report)

	api.POST("/register", r.merchant.Register)
	api.POST("/verify", r.merchant.Verify)
	api.POST("/login", r.merchant.Login)
	api.POST("/public-register", r.publicUser.Register)
	api.POST("/public-login", r.publicUser.Login)

	api.GET("/comercios/:id", r.business.Get)
	api.GET("/comercios/:id/qr", r.business.ShareQR)

	// Auth is attached per route so unknown /api paths still answer 404.
	authenticated := []echo.MiddlewareFunc{r.authMiddleware.Authenticate}
	merchantOnly := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleMerchant)}
	publicOnly := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RolePublic)}

	// Merchant routes
	{
		api.PUT("/usuarios/:id", r.merchant.Update, merchantOnly...)
		api.GET("/usuarios/:id/comercios", r.merchant.ListBusinesses, merchantOnly...)

		api.POST("/comercios", r.business.Create, merchantOnly...)
		api.PUT("/comercios/:id", r.business.Update, merchantOnly...)
		api.DELETE("/comercios/:id", r.business.Delete, merchantOnly...)
		api.POST("/comercios/:id/opiniones/:opinionId/responder", r.business.Reply, merchantOnly...)

		api.POST("/payments/create-preference", r.payment.CreatePreference, merchantOnly...)
		api.POST("/payments/confirm-payment", r.payment.Confirm, merchantOnly...)
	}

	// Public user routes
	{
		api.POST("/comercios/:id/opinar", r.business.AddOpinion, publicOnly...)
		api.POST("/comercios/:id/opiniones/:opinionId/like", r.business.ToggleLike, publicOnly...)

		api.GET("/public-users/:id", r.publicUser.Get, publicOnly...)
		api.PUT("/public-users/:id", r.publicUser.Update, publicOnly...)
		api.POST("/public-users/:id/favorites/:businessId", r.publicUser.ToggleFavorite, publicOnly...)
		api.POST("/public-users/:id/history", r.publicUser.RecordView, publicOnly...)
		api.GET("/public-users/:id/recommendations", r.publicUser.Recommendations, publicOnly...)

		api.POST("/conversations/start", r.chat.StartConversation, publicOnly...)
	}

	// Chat routes for both sides
	{
		api.GET("/conversations/:userId", r.chat.ListConversations, authenticated...)
		api.POST("/conversations/:id/read", r.chat.MarkRead, authenticated...)
		api.GET("/messages/:conversationId", r.chat.ListMessages, authenticated...)
		api.POST("/messages", r.chat.SendMessage, authenticated...)
	}
}
