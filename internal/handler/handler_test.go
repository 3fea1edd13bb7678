package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/amformscst/backend/internal/eventbus"
	"github.com/amformscst/backend/internal/model"
	"github.com/amformscst/backend/internal/pkg/variables"
	"github.com/amformscst/backend/internal/repository"
	"github.com/amformscst/backend/internal/service"
	"github.com/amformscst/backend/internal/subscriber"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *gin.Engine
	templates service.TemplateEnforcer
	notebook  service.NotebookService
	registry  *variables.Registry
	dir       string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	templateBus := eventbus.NewTemplateEventBus()
	notebookBus := eventbus.NewNotebookEventBus()

	templates := service.NewTemplateEnforcer(repository.NewTemplateFileRepository(filepath.Join(dir, "TextTemplates.json")), templateBus)
	notebook := service.NewNotebookService(repository.NewNoteRepository(filepath.Join(dir, "SavedNotes.json")), notebookBus)
	registry := variables.NewRegistry(notebook.Provider(), nil)
	subscriber.NewNotebookEventSubscriber(registry).Register(notebookBus)

	render := service.NewRenderService(templates, registry)
	formgenSvc := service.NewFormgenService(filepath.Join(dir, "backup"), 3)

	r := gin.New()
	api := r.Group("/api")
	NewTextTemplateHandler(templates, render).RegisterRoutes(api)
	NewVariableHandler(render).RegisterRoutes(api)
	NewNotebookHandler(notebook).RegisterRoutes(api)
	NewFormgenHandler(formgenSvc, filepath.Join(dir, "forms")).RegisterRoutes(api)

	return &testServer{router: r, templates: templates, notebook: notebook, registry: registry, dir: dir}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// selectSampleNotebook 写入并选中一条笔记
func selectSampleNotebook(t *testing.T, s *testServer) *model.Notebook {
	t.Helper()
	nb := model.NewNotebook()
	note := model.NewNote("12345")
	dealer := model.NewDealer("Main Street Motors", "srv1")
	note.Dealers.Add(dealer)
	note.Dealers.Select(dealer.ID)
	nb.Notes.Add(note)
	nb.Notes.Select(note.ID)

	w := s.do(t, http.MethodPut, "/api/notes", nb)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return nb
}
