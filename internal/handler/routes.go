package handler

import (
	"github.com/dafibh/fortuna/fortuna-tracker/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, dashboardHandler *DashboardHandler, transactionHandler *TransactionHandler, goalHandler *GoalHandler, categoryHandler *CategoryHandler, statusHandler *StatusHandler, wsHandler *WebSocketHandler) {
	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// WebSocket event stream
	e.GET("/ws", wsHandler.HandleWS)

	// API version 1
	api := e.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	api.GET("/openapi.json", ServeOpenAPI3Spec)

	// Dashboard routes
	api.GET("/dashboard", dashboardHandler.GetDashboard)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/preview", transactionHandler.PreviewTransaction)

	// Goal routes
	goals := api.Group("/goals")
	goals.GET("", goalHandler.GetGoals)
	goals.POST("", goalHandler.CreateGoal)

	// Category routes
	api.GET("/categories", categoryHandler.GetCategories)

	// Data status routes
	api.GET("/status", statusHandler.GetStatus)
	api.POST("/reload", statusHandler.Reload)
}
