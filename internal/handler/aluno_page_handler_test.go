package handler_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/diario-eletronico/internal/dto"
	"github.com/noah-isme/diario-eletronico/internal/handler"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/models"
	"github.com/noah-isme/diario-eletronico/internal/service"
	"github.com/noah-isme/diario-eletronico/internal/view"
)

const testSession = "6f1c1f5e-2a0d-4c5e-9c39-6a3d1d2f4b10"

func postForm(t *testing.T, svc *fakeAlunoService, target string, values url.Values) *http.Response {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	app := newTestApp()
	handler.NewAlunoPageHandler(svc, renderer, zerolog.New(io.Discard)).Register(app)

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: testSession})
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAlunoPageHandler_IndexRendersStateAndToasts(t *testing.T) {
	svc := &fakeAlunoService{
		state: models.FormState{Loaded: true, Alunos: []models.Aluno{{ID: "a1", Nome: "Ana", Curso: "UX"}}},
		toasts: []models.Toast{{Level: models.ToastSuccess, Message: service.MsgCreated}},
	}
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	app := newTestApp()
	handler.NewAlunoPageHandler(svc, renderer, zerolog.New(io.Discard)).Register(app)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: testSession})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Ana")
	require.Contains(t, string(body), service.MsgCreated)

	require.Equal(t, "TakeToasts", svc.lastCall().method)
	require.Equal(t, testSession, svc.lastCall().sessionID)
	require.Equal(t, "EnsureLoaded", svc.calls[0].method)
}

func TestAlunoPageHandler_IndexLoadFailure(t *testing.T) {
	svc := &fakeAlunoService{err: errors.New("store down")}
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	app := newTestApp()
	handler.NewAlunoPageHandler(svc, renderer, zerolog.New(io.Discard)).Register(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAlunoPageHandler_SubmitRedirects(t *testing.T) {
	svc := &fakeAlunoService{}
	resp := postForm(t, svc, "/alunos", url.Values{
		"nome":      {"Ana"},
		"matricula": {"123"},
		"curso":     {"UX"},
		"bimestre":  {"1"},
	})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	last := svc.lastCall()
	require.Equal(t, "Submit", last.method)
	require.Equal(t, testSession, last.sessionID)
	require.Equal(t, map[string]string{"nome": "Ana", "matricula": "123", "curso": "UX", "bimestre": "1"}, last.form.Fields())
}

func TestAlunoPageHandler_SubmitMissingNameStillRedirects(t *testing.T) {
	validationErr := validator.New().Struct(dto.AlunoRequest{})
	require.Error(t, validationErr)

	svc := &fakeAlunoService{err: validationErr}
	resp := postForm(t, svc, "/alunos", url.Values{"nome": {""}})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestAlunoPageHandler_SubmitPassesOnlyPostedFields(t *testing.T) {
	svc := &fakeAlunoService{}
	resp := postForm(t, svc, "/alunos", url.Values{"nome": {"Ana"}, "curso": {""}})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	form := svc.lastCall().form
	require.Nil(t, form.Matricula)
	require.Nil(t, form.Bimestre)
	require.Equal(t, map[string]string{"nome": "Ana", "curso": ""}, form.Fields())
}

func TestAlunoPageHandler_SubmitStoreFailure(t *testing.T) {
	svc := &fakeAlunoService{err: errors.New("store down")}
	resp := postForm(t, svc, "/alunos", url.Values{"nome": {"Ana"}})

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAlunoPageHandler_EditUnescapesID(t *testing.T) {
	svc := &fakeAlunoService{}
	resp := postForm(t, svc, "/alunos/b%2F2/edit", url.Values{})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	last := svc.lastCall()
	require.Equal(t, "BeginEdit", last.method)
	require.Equal(t, "b/2", last.id)
}

func TestAlunoPageHandler_EditUnknownAlunoRedirects(t *testing.T) {
	svc := &fakeAlunoService{err: service.ErrAlunoNotFound}
	resp := postForm(t, svc, "/alunos/ghost/edit", url.Values{})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAlunoPageHandler_Delete(t *testing.T) {
	svc := &fakeAlunoService{}
	resp := postForm(t, svc, "/alunos/a1/delete", url.Values{})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	last := svc.lastCall()
	require.Equal(t, "Delete", last.method)
	require.Equal(t, "a1", last.id)
	require.Equal(t, testSession, last.sessionID)
}

func TestAlunoPageHandler_Refresh(t *testing.T) {
	svc := &fakeAlunoService{}
	resp := postForm(t, svc, "/alunos/refresh", url.Values{})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "Refresh", svc.lastCall().method)
}
