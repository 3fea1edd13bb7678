package handler

import (
	"net/http"
	"testing"

	"github.com/amformscst/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTemplate(t *testing.T, s *testServer, text string) TextTemplateResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/templates", TextTemplateRequest{Name: "Case reply", Type: "Email", Text: text})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp TextTemplateResponse
	decodeData(t, w, &resp)
	return resp
}

func TestTextTemplateHandler_CreateListGet(t *testing.T) {
	s := newTestServer(t)

	created := createTemplate(t, s, "Case SelectedNote:CaseNumber")
	assert.Equal(t, "Email", created.Type)
	assert.Equal(t, 3, created.TypeValue)
	assert.Equal(t, "Case SelectedNote:CaseNumber\r\n", created.PlainText)

	w := s.do(t, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []TextTemplateResponse
	decodeData(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = s.do(t, http.MethodGet, "/api/templates/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/templates/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTextTemplateHandler_CreateValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/templates", TextTemplateRequest{Name: "Blank", Text: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Template text cannot be null or whitespace.")

	w = s.do(t, http.MethodPost, "/api/templates", TextTemplateRequest{Text: "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, s.templates.Templates())
}

func TestTextTemplateHandler_UpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	created := createTemplate(t, s, "old body")

	w := s.do(t, http.MethodPut, "/api/templates/"+created.ID, TextTemplateRequest{Name: "Renamed", Text: "new body"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":true}`, w.Body.String())

	got, err := s.templates.GetTemplate(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "new body\r\n", got.PlainText())

	w = s.do(t, http.MethodPut, "/api/templates/missing", TextTemplateRequest{Name: "X", Text: "x"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":false}`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/api/templates/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	_, err = s.templates.GetTemplate(created.ID)
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)

	w = s.do(t, http.MethodDelete, "/api/templates/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTextTemplateHandler_RenderAndVariables(t *testing.T) {
	s := newTestServer(t)
	selectSampleNotebook(t, s)
	created := createTemplate(t, s, "Case SelectedNote:CaseNumber on SelectedDealer:ServerID")

	w := s.do(t, http.MethodPost, "/api/templates/"+created.ID+"/render", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rendered struct {
		Text string `json:"text"`
	}
	decodeData(t, w, &rendered)
	assert.Equal(t, "Case 12345 on srv1\r\n", rendered.Text)

	w = s.do(t, http.MethodPost, "/api/templates/"+created.ID+"/render", RenderRequest{Overrides: []string{"777"}})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &rendered)
	assert.Equal(t, "Case 777 on srv1\r\n", rendered.Text)

	w = s.do(t, http.MethodPost, "/api/templates/"+created.ID+"/render", RenderRequest{Overrides: []string{"1", "2", "3"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/templates/missing/render", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/templates/"+created.ID+"/variables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var plan service.RenderPlan
	decodeData(t, w, &plan)
	require.Len(t, plan.Variables, 2)
	assert.Equal(t, "SelectedNote:CaseNumber", plan.Variables[0].ProperName)
}

func TestTextTemplateHandler_StateCodes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/templates/states", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var codes []string
	decodeData(t, w, &codes)
	assert.Contains(t, codes, "NY")
}
