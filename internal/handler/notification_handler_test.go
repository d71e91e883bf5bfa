package handler_test

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/diario-eletronico/internal/dto"
	"github.com/noah-isme/diario-eletronico/internal/handler"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/models"
)

type stubNotificationService struct {
	mu         sync.Mutex
	subscribed []string
	pending    []dto.NotificationResponse
}

func (s *stubNotificationService) Start(context.Context) {}

func (s *stubNotificationService) Publish(_ context.Context, sessionID, level, message string) (models.Toast, error) {
	return models.Toast{ID: "t", Level: level, Message: message}, nil
}

func (s *stubNotificationService) Subscribe(sessionID string) (<-chan dto.NotificationResponse, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribed = append(s.subscribed, sessionID)

	ch := make(chan dto.NotificationResponse, len(s.pending))
	for _, notification := range s.pending {
		ch <- notification
	}
	return ch, func() {}
}

func (s *stubNotificationService) sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.subscribed...)
}

func TestNotificationHandler_StreamWritesEvents(t *testing.T) {
	svc := &stubNotificationService{pending: []dto.NotificationResponse{
		{ID: "n1", SessionID: testSession, Level: models.ToastSuccess, Message: "Aluno removido com sucesso."},
	}}
	app := newTestApp()
	handler.NewNotificationHandler(svc, zerolog.Nop(), time.Second).Register(app.Group("/api/v1/notifications"))

	addr, shutdown := startFiberServer(t, app)
	defer shutdown()

	req, err := http.NewRequest(http.MethodGet, "http://"+addr+"/api/v1/notifications/stream", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: testSession})

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	var data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}

	require.Contains(t, data, `"message":"Aluno removido com sucesso."`)
	require.Equal(t, []string{testSession}, svc.sessions())
}

func TestNotificationHandler_WebsocketDeliversJSON(t *testing.T) {
	svc := &stubNotificationService{pending: []dto.NotificationResponse{
		{ID: "n1", SessionID: testSession, Level: models.ToastError, Message: "Erro ao remover o aluno."},
	}}
	app := newTestApp()
	handler.NewNotificationHandler(svc, zerolog.Nop(), time.Second).Register(app.Group("/api/v1/notifications"))

	addr, shutdown := startFiberServer(t, app)
	defer shutdown()

	header := http.Header{}
	header.Set("Cookie", middleware.SessionCookieName+"="+testSession)
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/api/v1/notifications/ws", header)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var notification dto.NotificationResponse
	require.NoError(t, conn.ReadJSON(&notification))
	require.Equal(t, "Erro ao remover o aluno.", notification.Message)
	require.Equal(t, models.ToastError, notification.Level)
	require.Equal(t, []string{testSession}, svc.sessions())
}

func TestNotificationHandler_WebsocketRequiresUpgrade(t *testing.T) {
	app := newTestApp()
	handler.NewNotificationHandler(&stubNotificationService{}, zerolog.Nop(), time.Second).Register(app.Group("/api/v1/notifications"))

	addr, shutdown := startFiberServer(t, app)
	defer shutdown()

	resp, err := http.Get("http://" + addr + "/api/v1/notifications/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
