package router

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/amformscst/backend/config"
	"github.com/amformscst/backend/internal/handler"
	"github.com/amformscst/backend/internal/pkg/variables"
	"github.com/amformscst/backend/internal/repository"
	"github.com/amformscst/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	templates := service.NewTemplateEnforcer(repository.NewTemplateFileRepository(filepath.Join(dir, "TextTemplates.json")), nil)
	notebook := service.NewNotebookService(repository.NewNoteRepository(filepath.Join(dir, "SavedNotes.json")), nil)
	render := service.NewRenderService(templates, variables.NewRegistry(notebook.Provider(), nil))

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}
	return Setup(cfg,
		handler.NewTextTemplateHandler(templates, render),
		handler.NewVariableHandler(render),
		handler.NewNotebookHandler(notebook),
		handler.NewFormgenHandler(service.NewFormgenService("", 0), ""),
	)
}

func TestSetup_Health(t *testing.T) {
	r := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetup_APIGzip(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/variables", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "SelectedDealer:ServerID")
}

func TestSetup_CORSPreflight(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/templates", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
