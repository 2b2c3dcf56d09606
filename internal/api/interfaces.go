// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/lab-visualizer/backend/internal/models"
	"github.com/lab-visualizer/backend/internal/resultstore"
)

// UploadHandler handles file upload operations
type UploadHandler interface {
	HandleUploadFile(c echo.Context) error
	HandleGetRecentFiles(c echo.Context) error
	HandleGetFile(c echo.Context) error
	HandleDeleteFile(c echo.Context) error
	HandleRenameFile(c echo.Context) error
}

// ParseHandler handles parsing session operations
type ParseHandler interface {
	HandleStartParse(c echo.Context) error
	HandleParseStatus(c echo.Context) error
	HandleParseProgressStream(c echo.Context) error
	HandleSessionKeepAlive(c echo.Context) error
	HandleGetMeasurement(c echo.Context) error
	HandleGetSteps(c echo.Context) error
	HandleGetRuns(c echo.Context) error
	HandleGetRunSummaries(c echo.Context) error
	HandleSearchRuns(c echo.Context) error
	HandleGetResults(c echo.Context) error
	HandleGetResultsMsgpack(c echo.Context) error
	HandleGetSeries(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// SessionManager defines the interface for session management
// This allows mocking in tests
type SessionManager interface {
	StartSession(fileID, filePath string) (*models.ParseSession, error)
	GetSession(id string) (*models.ParseSession, bool)
	TouchSession(id string) bool
	GetMeasurement(id string) (*models.Measurement, bool)
	GetRunSummaries(id string) ([]resultstore.RunSummary, bool)
	SearchRuns(id, sweepType string) ([]resultstore.RunSummary, bool)
	GetSeries(id string, runIndex int, field string, limit int) ([]resultstore.Point, bool)
	CloseSession(id string) bool
}
