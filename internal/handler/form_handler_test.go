package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/diario-eletronico/internal/dto"
	"github.com/noah-isme/diario-eletronico/internal/handler"
	"github.com/noah-isme/diario-eletronico/internal/models"
)

type formEnvelope struct {
	Success bool                  `json:"success"`
	Data    dto.FormStateResponse `json:"data"`
	Message string                `json:"message"`
}

func newFormApp(svc *fakeAlunoService) *handlerApp {
	app := newTestApp()
	handler.NewFormHandler(svc, validator.New(), zerolog.New(io.Discard)).Register(app.Group("/api/v1/form"))
	return &handlerApp{app: app}
}

func TestFormHandler_GetState(t *testing.T) {
	svc := &fakeAlunoService{state: models.FormState{
		Draft:        models.Draft{Nome: "Ana", Curso: models.CourseRedes},
		EditTargetID: "a1",
		Alunos:       []models.Aluno{{ID: "a1", Nome: "Ana"}, {ID: "b2", Nome: "Bia"}},
	}}
	app := newFormApp(svc)

	resp := app.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/form", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body formEnvelope
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "editing", body.Data.Mode)
	require.Equal(t, "Redes", body.Data.Draft.Curso)
	require.Len(t, body.Data.Rows, 2)
	require.Equal(t, 2, body.Data.Rows[1].Ordem)
	require.Equal(t, "b2", body.Data.Rows[1].ID)
}

func TestFormHandler_PatchField(t *testing.T) {
	svc := &fakeAlunoService{state: models.FormState{Draft: models.Draft{Matricula: "42"}}}
	app := newFormApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/form", strings.NewReader(`{"field":"matricula","value":"42"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := app.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	last := svc.lastCall()
	require.Equal(t, "SetField", last.method)
	require.Equal(t, "matricula", last.field)
	require.Equal(t, "42", last.value)

	var body formEnvelope
	decodeResponse(t, resp, &body)
	require.Equal(t, "42", body.Data.Draft.Matricula)
}

func TestFormHandler_PatchRejectsUnknownField(t *testing.T) {
	svc := &fakeAlunoService{}
	app := newFormApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/form", strings.NewReader(`{"field":"idade","value":"9"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := app.do(t, req)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Empty(t, svc.calls)
}

func TestFormHandler_PatchReportsFieldError(t *testing.T) {
	svc := &fakeAlunoService{err: models.ErrUnknownField}
	app := newFormApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/form", strings.NewReader(`{"field":"curso","value":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := app.do(t, req)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
