package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/diario-eletronico/internal/dto"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/models"
)

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, target))
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Use(middleware.Session(middleware.SessionConfig{}))
	return app
}

func startFiberServer(t *testing.T, app *fiber.App) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("fiber listener stopped: %v", err)
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := func() {
		_ = app.ShutdownWithTimeout(time.Second)
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}

	return listener.Addr().String(), shutdown
}

type call struct {
	method    string
	sessionID string
	id        string
	field     string
	value     string
	form      dto.AlunoForm
}

type fakeAlunoService struct {
	mu     sync.Mutex
	calls  []call
	state  models.FormState
	toasts []models.Toast
	err    error
}

func (f *fakeAlunoService) record(c call) (models.FormState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.state, f.err
}

func (f *fakeAlunoService) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeAlunoService) State(_ context.Context, sessionID string) (models.FormState, error) {
	return f.record(call{method: "State", sessionID: sessionID})
}

func (f *fakeAlunoService) EnsureLoaded(_ context.Context, sessionID string) (models.FormState, error) {
	return f.record(call{method: "EnsureLoaded", sessionID: sessionID})
}

func (f *fakeAlunoService) Refresh(_ context.Context, sessionID string) (models.FormState, error) {
	return f.record(call{method: "Refresh", sessionID: sessionID})
}

func (f *fakeAlunoService) SetField(_ context.Context, sessionID, field, value string) (models.FormState, error) {
	return f.record(call{method: "SetField", sessionID: sessionID, field: field, value: value})
}

func (f *fakeAlunoService) BeginEdit(_ context.Context, sessionID, id string) (models.FormState, error) {
	return f.record(call{method: "BeginEdit", sessionID: sessionID, id: id})
}

func (f *fakeAlunoService) Submit(_ context.Context, sessionID string, form dto.AlunoForm) (models.FormState, error) {
	return f.record(call{method: "Submit", sessionID: sessionID, form: form})
}

func (f *fakeAlunoService) Delete(_ context.Context, sessionID, id string) (models.FormState, error) {
	return f.record(call{method: "Delete", sessionID: sessionID, id: id})
}

func (f *fakeAlunoService) TakeToasts(_ context.Context, sessionID string) ([]models.Toast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method: "TakeToasts", sessionID: sessionID})
	toasts := f.toasts
	f.toasts = nil
	return toasts, nil
}

type handlerApp struct {
	app *fiber.App
}

func (h *handlerApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := h.app.Test(req)
	require.NoError(t, err)
	return resp
}
