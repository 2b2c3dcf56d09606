// handlers_parse.go - Parse session operation handlers
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lab-visualizer/backend/internal/models"
	"github.com/lab-visualizer/backend/internal/resultstore"
	"github.com/lab-visualizer/backend/internal/storage"
)

// ParseHandlerImpl implements the ParseHandler interface
type ParseHandlerImpl struct {
	store      storage.Store
	sessionMgr SessionManager
}

// NewParseHandler creates a new parse handler instance
func NewParseHandler(store storage.Store, sessionMgr SessionManager) ParseHandler {
	return &ParseHandlerImpl{
		store:      store,
		sessionMgr: sessionMgr,
	}
}

// HandleStartParse starts a new parsing session for a data file
func (h *ParseHandlerImpl) HandleStartParse(c echo.Context) error {
	var req startParseRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.FileID == "" {
		return NewValidationError("fileId")
	}

	filePath, err := h.store.GetFilePath(req.FileID)
	if err != nil {
		return NewNotFoundError("file", req.FileID)
	}

	sess, err := h.sessionMgr.StartSession(req.FileID, filePath)
	if err != nil {
		return NewInternalError("failed to start session", err)
	}

	return c.JSON(http.StatusAccepted, sess)
}

// HandleParseStatus returns the current status of a parsing session
func (h *ParseHandlerImpl) HandleParseStatus(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	sess, ok := h.sessionMgr.GetSession(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	// Touch session to prevent cleanup while being viewed
	h.sessionMgr.TouchSession(id)

	return c.JSON(http.StatusOK, sess)
}

// HandleSessionKeepAlive extends session lifetime for active viewing
func (h *ParseHandlerImpl) HandleSessionKeepAlive(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	if ok := h.sessionMgr.TouchSession(id); !ok {
		return NewNotFoundError("session", id)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleParseProgressStream streams parsing progress via SSE
func (h *ParseHandlerImpl) HandleParseProgressStream(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	// Set SSE headers
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	sess, ok := h.sessionMgr.GetSession(id)
	if !ok {
		h.sendSSEError(c, "session not found")
		return nil
	}
	h.sendSSEData(c, sess)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	timeout := time.NewTimer(5 * time.Minute)
	defer timeout.Stop()

	for {
		select {
		case <-ticker.C:
			sess, ok := h.sessionMgr.GetSession(id)
			if !ok {
				h.sendSSEError(c, "session not found")
				return nil
			}

			h.sendSSEData(c, sess)

			if sess.Status == models.SessionStatusComplete ||
				sess.Status == models.SessionStatusError {
				return nil
			}

		case <-timeout.C:
			h.sendSSEError(c, "stream timeout")
			return nil

		case <-c.Request().Context().Done():
			return nil
		}
	}
}

// HandleGetMeasurement returns the measurement header metadata for a
// completed session, without the per-run data payloads.
func (h *ParseHandlerImpl) HandleGetMeasurement(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	meas, ok := h.sessionMgr.GetMeasurement(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	h.sessionMgr.TouchSession(id)

	return c.JSON(http.StatusOK, measurementResponse{
		FileID:               meas.FileID,
		FileName:             meas.FileName,
		Family:               meas.Family,
		Software:             meas.Software,
		OpenTime:             meas.OpenTime,
		Samples:              meas.Samples,
		TemperatureTolerance: meas.TemperatureTolerance,
		FieldTolerance:       meas.FieldTolerance,
		StepsFromSequence:    meas.StepsFromSequence,
		RunCount:             len(meas.Runs),
		StepCount:            len(meas.Steps),
		Warnings:             meas.Warnings,
	})
}

// HandleGetSteps returns the reconstructed step sequence for a session
func (h *ParseHandlerImpl) HandleGetSteps(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	meas, ok := h.sessionMgr.GetMeasurement(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	h.sessionMgr.TouchSession(id)

	return c.JSON(http.StatusOK, stepsResponse{
		Steps:             meas.Steps,
		StepsFromSequence: meas.StepsFromSequence,
	})
}

// HandleGetRuns returns the detected runs for a session
func (h *ParseHandlerImpl) HandleGetRuns(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	meas, ok := h.sessionMgr.GetMeasurement(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	h.sessionMgr.TouchSession(id)

	runs := make([]runResponse, len(meas.Runs))
	for i, r := range meas.Runs {
		runs[i] = runResponse{
			Index:     i,
			Name:      r.DisplayName(),
			SweepType: string(r.Type),
			Start:     r.Start,
			End:       r.End,
			Value:     r.Value,
			Tuple:     r.Tuple,
		}
	}
	return c.JSON(http.StatusOK, runs)
}

// HandleGetRunSummaries returns the stored run summaries with point counts
func (h *ParseHandlerImpl) HandleGetRunSummaries(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	summaries, ok := h.sessionMgr.GetRunSummaries(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	if summaries == nil {
		summaries = []resultstore.RunSummary{}
	}
	return c.JSON(http.StatusOK, summaries)
}

// HandleSearchRuns finds stored runs by sweep type
func (h *ParseHandlerImpl) HandleSearchRuns(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}
	sweepType := c.QueryParam("sweepType")
	if sweepType == "" {
		return NewValidationError("sweepType")
	}

	summaries, ok := h.sessionMgr.SearchRuns(id, sweepType)
	if !ok {
		return NewNotFoundError("session", id)
	}
	if summaries == nil {
		summaries = []resultstore.RunSummary{}
	}
	return c.JSON(http.StatusOK, summaries)
}

// HandleGetResults returns the flattened result records for every run
func (h *ParseHandlerImpl) HandleGetResults(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	meas, ok := h.sessionMgr.GetMeasurement(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	h.sessionMgr.TouchSession(id)

	return c.JSON(http.StatusOK, resultsPayload(meas))
}

// HandleGetResultsMsgpack returns the result records in MessagePack
// format; series-heavy payloads are much smaller this way.
func (h *ParseHandlerImpl) HandleGetResultsMsgpack(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	meas, ok := h.sessionMgr.GetMeasurement(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	h.sessionMgr.TouchSession(id)

	blob, err := msgpack.Marshal(resultsPayload(meas))
	if err != nil {
		return NewInternalError("failed to encode results", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", blob)
}

// HandleGetSeries returns one result field's samples for a run
func (h *ParseHandlerImpl) HandleGetSeries(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}
	field := c.QueryParam("field")
	if field == "" {
		return NewValidationError("field")
	}
	runIndex, err := strconv.Atoi(c.QueryParam("run"))
	if err != nil || runIndex < 0 {
		return NewValidationError("run")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	points, ok := h.sessionMgr.GetSeries(id, runIndex, field, limit)
	if !ok {
		return NewNotFoundError("session", id)
	}
	if points == nil {
		points = []resultstore.Point{}
	}
	return c.JSON(http.StatusOK, points)
}

// resultsPayload flattens the measurement's result records into one
// serializable slice, a map per result field.
func resultsPayload(meas *models.Measurement) []resultRunPayload {
	out := make([]resultRunPayload, 0, len(meas.Results))
	for i, rec := range meas.Results {
		fields := make(map[string]models.Series)
		for name, series := range rec.Fields() {
			fields[name] = *series
		}
		p := resultRunPayload{RunIndex: i, Fields: fields}
		if i < len(meas.Runs) {
			p.Name = meas.Runs[i].DisplayName()
			p.SweepType = string(meas.Runs[i].Type)
		}
		out = append(out, p)
	}
	return out
}

// SSE helpers

func (h *ParseHandlerImpl) sendSSEData(c echo.Context, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(c.Response(), "data: %s\n\n", data)
	c.Response().Flush()
}

func (h *ParseHandlerImpl) sendSSEError(c echo.Context, msg string) {
	fmt.Fprintf(c.Response(), "event: error\ndata: %q\n\n", msg)
	c.Response().Flush()
}

// Request/Response types

type startParseRequest struct {
	FileID string `json:"fileId"`
}

type measurementResponse struct {
	FileID               string              `json:"fileId"`
	FileName             string              `json:"fileName"`
	Family               string              `json:"family"`
	Software             string              `json:"software,omitempty"`
	OpenTime             *time.Time          `json:"openTime,omitempty"`
	Samples              []models.Sample     `json:"samples,omitempty"`
	TemperatureTolerance float64             `json:"temperatureTolerance"`
	FieldTolerance       float64             `json:"fieldTolerance"`
	StepsFromSequence    bool                `json:"stepsFromSequence"`
	RunCount             int                 `json:"runCount"`
	StepCount            int                 `json:"stepCount"`
	Warnings             []models.ParseError `json:"warnings,omitempty"`
}

type stepsResponse struct {
	Steps             []models.Step `json:"steps"`
	StepsFromSequence bool          `json:"stepsFromSequence"`
}

type runResponse struct {
	Index     int          `json:"index"`
	Name      string       `json:"name"`
	SweepType string       `json:"sweepType"`
	Start     int          `json:"start"`
	End       int          `json:"end"`
	Value     models.Float `json:"value"`
	Tuple     []float64    `json:"tuple,omitempty"`
}

type resultRunPayload struct {
	RunIndex  int                      `json:"runIndex" msgpack:"runIndex"`
	Name      string                   `json:"name" msgpack:"name"`
	SweepType string                   `json:"sweepType" msgpack:"sweepType"`
	Fields    map[string]models.Series `json:"fields" msgpack:"fields"`
}
