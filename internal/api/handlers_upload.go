// handlers_upload.go - File upload operation handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lab-visualizer/backend/internal/models"
	"github.com/lab-visualizer/backend/internal/session"
	"github.com/lab-visualizer/backend/internal/storage"
)

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	store            storage.Store
	cache            *session.ResultCache
	allowedFileTypes []string
}

// NewUploadHandler creates a new upload handler instance. cache may be nil
// when result caching is disabled.
func NewUploadHandler(store storage.Store, cache *session.ResultCache, allowedFileTypes string) UploadHandler {
	var allowed []string
	for _, ext := range strings.Split(allowedFileTypes, ",") {
		ext = strings.TrimSpace(strings.ToLower(ext))
		if ext != "" {
			allowed = append(allowed, ext)
		}
	}
	return &UploadHandlerImpl{
		store:            store,
		cache:            cache,
		allowedFileTypes: allowed,
	}
}

// HandleUploadFile accepts a raw file upload (multipart/form-data)
func (h *UploadHandlerImpl) HandleUploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	if !h.allowedType(file.Filename) {
		return NewBadRequestError("unsupported file type: "+file.Filename, nil)
	}

	src, err := file.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	info, err := h.store.Save(file.Filename, src)
	if err != nil {
		return NewInternalError("failed to save file", err)
	}

	return c.JSON(http.StatusCreated, info)
}

// HandleGetRecentFiles returns a list of recently uploaded measurement files
func (h *UploadHandlerImpl) HandleGetRecentFiles(c echo.Context) error {
	files, err := h.store.List(50)
	if err != nil {
		return NewInternalError("failed to list files", err)
	}

	// Only data files show in the recent list; sequence files ride along
	// with their data file and are not parsed on their own here.
	dataFiles := filterDataFiles(files)
	if len(dataFiles) > 20 {
		dataFiles = dataFiles[:20]
	}

	return c.JSON(http.StatusOK, dataFiles)
}

// HandleGetFile returns metadata for a specific file
func (h *UploadHandlerImpl) HandleGetFile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	return c.JSON(http.StatusOK, info)
}

// HandleDeleteFile deletes a file and its cached results
func (h *UploadHandlerImpl) HandleDeleteFile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.store.Delete(id); err != nil {
		return NewNotFoundError("file", id)
	}

	if h.cache != nil {
		h.cache.Delete(id)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleRenameFile updates the name of a file
func (h *UploadHandlerImpl) HandleRenameFile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	var req renameFileRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	if req.Name == "" {
		return NewValidationError("name")
	}

	info, err := h.store.Rename(id, req.Name)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	return c.JSON(http.StatusOK, info)
}

func (h *UploadHandlerImpl) allowedType(name string) bool {
	if len(h.allowedFileTypes) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range h.allowedFileTypes {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Request/Response types

type renameFileRequest struct {
	Name string `json:"name"`
}

// Helper functions

// filterDataFiles keeps only uploaded data files.
func filterDataFiles(files []*models.FileInfo) []*models.FileInfo {
	var out []*models.FileInfo
	for _, f := range files {
		if f.Kind == models.FileKindData {
			out = append(out, f)
		}
	}
	return out
}
