// handlers_upload_test.go - Tests for file upload handlers
package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lab-visualizer/backend/internal/models"
	"github.com/lab-visualizer/backend/internal/testutil"
)

func newUploadTestHandler() (*testutil.MockStorage, UploadHandler) {
	store := testutil.NewMockStorage()
	return store, NewUploadHandler(store, nil, ".dat,.seq,.txt")
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandleUploadFile(t *testing.T) {
	store, handler := newUploadTestHandler()

	body, contentType := multipartBody(t, "sample.dat", "[Header]\n[Data]\n")
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandleUploadFile(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var info models.FileInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "sample.dat", info.Name)
	assert.Equal(t, models.FileKindData, info.Kind)
	assert.Equal(t, 1, store.GetFileCount())
}

func TestHandleUploadFile_RejectsUnsupportedType(t *testing.T) {
	store, handler := newUploadTestHandler()

	body, contentType := multipartBody(t, "payload.exe", "MZ")
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.HandleUploadFile(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, 0, store.GetFileCount())
}

func TestHandleUploadFile_NoFile(t *testing.T) {
	_, handler := newUploadTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", strings.NewReader(""))
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.HandleUploadFile(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestHandleGetRecentFiles_FiltersDataFiles(t *testing.T) {
	store, handler := newUploadTestHandler()
	store.AddFile("f1", "run1.dat", []byte("data"))
	store.AddFile("f2", "run1.seq", []byte("seq"))
	store.AddFile("f3", "notes.txt", []byte("text"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/files/recent", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandleGetRecentFiles(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var files []*models.FileInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "run1.dat", files[0].Name)
}

func TestHandleGetFile(t *testing.T) {
	store, handler := newUploadTestHandler()
	store.AddFile("f1", "run1.dat", []byte("data"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("f1")

	require.NoError(t, handler.HandleGetFile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// unknown id
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")
	err := handler.HandleGetFile(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, err.(*APIError).Status)
}

func TestHandleDeleteFile(t *testing.T) {
	store, handler := newUploadTestHandler()
	store.AddFile("f1", "run1.dat", []byte("data"))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("f1")

	require.NoError(t, handler.HandleDeleteFile(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, store.GetFileCount())
}

func TestHandleRenameFile(t *testing.T) {
	store, handler := newUploadTestHandler()
	store.AddFile("f1", "plan.txt", []byte("TMP TEMP 300.0 20.0 0"))

	e := echo.New()
	body := strings.NewReader(`{"name":"plan.seq"}`)
	req := httptest.NewRequest(http.MethodPut, "/", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("f1")

	require.NoError(t, handler.HandleRenameFile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var info models.FileInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "plan.seq", info.Name)
	// renaming reclassifies the file kind
	assert.Equal(t, models.FileKindSequence, info.Kind)
}

func TestHandleRenameFile_EmptyName(t *testing.T) {
	store, handler := newUploadTestHandler()
	store.AddFile("f1", "run1.dat", []byte("data"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("f1")

	err := handler.HandleRenameFile(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, err.(*APIError).Status)
}
