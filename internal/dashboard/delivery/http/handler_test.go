package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"airline-sentiment-dashboard/internal/dashboard/dto"
	"airline-sentiment-dashboard/internal/dashboard/service"
	"airline-sentiment-dashboard/internal/entity"
	"airline-sentiment-dashboard/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrchestrator struct {
	mu          sync.Mutex
	vm          dto.ViewModel
	reloads     int
	filters     *service.FilterState
	subscribers []func(dto.ViewModel)
}

func newStubOrchestrator() *stubOrchestrator {
	return &stubOrchestrator{
		vm:      service.BuildViewModel(service.ViewModelInput{Cycle: 4}),
		filters: service.NewFilterState(),
	}
}

func (s *stubOrchestrator) Start(ctx context.Context) {}

func (s *stubOrchestrator) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloads++
}

func (s *stubOrchestrator) Current() dto.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vm
}

func (s *stubOrchestrator) Subscribe(fn func(dto.ViewModel)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
	return func() {}
}

func (s *stubOrchestrator) Filters() *service.FilterState { return s.filters }

func (s *stubOrchestrator) Wait() {}

func (s *stubOrchestrator) publish(vm dto.ViewModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vm = vm
	for _, fn := range s.subscribers {
		fn(vm)
	}
}

func newTestServer(t *testing.T) (*echo.Echo, *stubOrchestrator, *Hub) {
	t.Helper()
	log := logger.Nop()
	orch := newStubOrchestrator()
	hub := NewHub(log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	orch.Subscribe(hub.Publish)

	e := echo.New()
	RegisterRoutes(e, orch, hub, log)
	return e, orch, hub
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetDashboard(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var vm dto.ViewModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	assert.Equal(t, uint64(4), vm.Cycle)
	assert.Empty(t, vm.Tweets)
}

func TestReload(t *testing.T) {
	e, orch, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/dashboard/reload", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, orch.reloads)
}

func TestFilterEndpoints(t *testing.T) {
	e, orch, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPut, "/api/v1/filters/airline", `{"airline":"Delta"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPut, "/api/v1/filters/sentiment", `{"sentiment":"Negative"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var selection entity.FilterSelection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &selection))
	assert.Equal(t, entity.FilterSelection{Airline: "Delta", Sentiment: entity.SentimentNegative}, selection)

	rec = doRequest(e, http.MethodGet, "/api/v1/filters", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"airline":"Delta","sentiment":"negative"}`, rec.Body.String())

	rec = doRequest(e, http.MethodDelete, "/api/v1/filters", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.FilterSelection{}, orch.filters.Selection())
}

func TestSetSentimentRejectsUnknownKind(t *testing.T) {
	e, orch, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPut, "/api/v1/filters/sentiment", `{"sentiment":"furious"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid sentiment")
	assert.Equal(t, entity.FilterSelection{}, orch.filters.Selection())
}

func TestSetAirlineRejectsMalformedBody(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doRequest(e, http.MethodPut, "/api/v1/filters/airline", `{"airline":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, uint64(4), health.Cycle)
}

func TestWebsocketStreamsPublishes(t *testing.T) {
	e, orch, hub := newTestServer(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/dashboard/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readVM := func() dto.ViewModel {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var vm dto.ViewModel
		require.NoError(t, conn.ReadJSON(&vm))
		return vm
	}

	assert.Equal(t, uint64(4), readVM().Cycle)

	require.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, time.Second, 10*time.Millisecond)
	orch.publish(service.BuildViewModel(service.ViewModelInput{Cycle: 5, Loading: true}))

	vm := readVM()
	assert.Equal(t, uint64(5), vm.Cycle)
	assert.True(t, vm.Loading)
}
