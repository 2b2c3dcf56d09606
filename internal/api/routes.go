// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/lab-visualizer/backend/internal/session"
	"github.com/lab-visualizer/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store            storage.Store
	SessionMgr       SessionManager
	ResultCache      *session.ResultCache
	AllowedFileTypes string
	Version          string
}

// Handlers holds all handler instances
type Handlers struct {
	Health HealthHandler
	Upload UploadHandler
	Parse  ParseHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version),
		Upload: NewUploadHandler(deps.Store, deps.ResultCache, deps.AllowedFileTypes),
		Parse:  NewParseHandler(deps.Store, deps.SessionMgr),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers, allowFileDeletion bool) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)

	// File upload routes
	fileGroup := e.Group("/api/files")
	fileGroup.POST("/upload", handlers.Upload.HandleUploadFile)
	fileGroup.GET("/recent", handlers.Upload.HandleGetRecentFiles)
	fileGroup.GET("/:id", handlers.Upload.HandleGetFile)
	if allowFileDeletion {
		fileGroup.DELETE("/:id", handlers.Upload.HandleDeleteFile)
	}
	fileGroup.PUT("/:id", handlers.Upload.HandleRenameFile)

	// Parse session routes
	parseGroup := e.Group("/api/parse")
	parseGroup.POST("", handlers.Parse.HandleStartParse)
	parseGroup.GET("/:sessionId/status", handlers.Parse.HandleParseStatus)
	parseGroup.POST("/:sessionId/keepalive", handlers.Parse.HandleSessionKeepAlive)
	parseGroup.GET("/:sessionId/progress", handlers.Parse.HandleParseProgressStream)
	parseGroup.GET("/:sessionId/measurement", handlers.Parse.HandleGetMeasurement)
	parseGroup.GET("/:sessionId/steps", handlers.Parse.HandleGetSteps)
	parseGroup.GET("/:sessionId/runs", handlers.Parse.HandleGetRuns)
	parseGroup.GET("/:sessionId/runs/summary", handlers.Parse.HandleGetRunSummaries)
	parseGroup.GET("/:sessionId/runs/search", handlers.Parse.HandleSearchRuns)
	parseGroup.GET("/:sessionId/results", handlers.Parse.HandleGetResults)
	parseGroup.GET("/:sessionId/results/msgpack", handlers.Parse.HandleGetResultsMsgpack)
	parseGroup.GET("/:sessionId/series", handlers.Parse.HandleGetSeries)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}
