// Package router contains routing and server setup for the admin API.
package router

import (
	"adopet/config"
	"adopet/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	NotificationHandler *handler.NotificationHandler
	TestHandler         *handler.TestHandler
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	notificationHandler *handler.NotificationHandler
	testHandler         *handler.TestHandler
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		notificationHandler: params.NotificationHandler,
		testHandler:         params.TestHandler,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// API v1 routes
	apiV1 := e.Group("/api/v1")

	// Manual notification delivery routes
	notificationsGroup := apiV1.Group("/notifications")
	{
		notificationsGroup.POST("/send", r.notificationHandler.SendNotification)
		notificationsGroup.POST("/user", r.notificationHandler.SendUserNotification)
		notificationsGroup.POST("/test", r.notificationHandler.SendTestNotification)
		notificationsGroup.POST("/reminder", r.notificationHandler.SendReminder)
	}
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.POST("/events", r.testHandler.PublishEvent)
	}
}
