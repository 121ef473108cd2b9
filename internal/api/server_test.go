package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urustack/sentrywatch/internal/client"
	"github.com/urustack/sentrywatch/internal/config"
	"github.com/urustack/sentrywatch/internal/demo"
	"github.com/urustack/sentrywatch/internal/logic"
	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
)

type fakeRefresher struct{ ok bool }

func (f *fakeRefresher) TriggerNow() bool { return f.ok }

type fakeDemo struct {
	ack *models.DemoAck
	err error
}

func (f *fakeDemo) Run(context.Context) (*models.DemoAck, error) { return f.ack, f.err }
func (f *fakeDemo) Pending() bool { return false }

type fakeHealth struct {
	health *models.Health
	err    error
}

func (f *fakeHealth) FetchHealth(context.Context) (*models.Health, error) { return f.health, f.err }

type fixture struct {
	store   *state.Store
	refresh *fakeRefresher
	demo    *fakeDemo
	health  *fakeHealth
	srv     *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   state.NewStore(),
		refresh: &fakeRefresher{ok: true},
		demo:    &fakeDemo{ack: &models.DemoAck{Message: "ok", EventsCreated: 17}},
		health:  &fakeHealth{health: &models.Health{Status: "ok", Database: "ok"}},
	}
	s := NewServer(&config.Config{}, Deps{Store: f.store, Refresh: f.refresh, Demo: f.demo, Health: f.health})
	f.srv = httptest.NewServer(s.Handler())
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, path string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func publishSingle(store *state.Store, seq uint64) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.Publish(state.ViewState{
		Seq:    seq,
		Status: state.StatusReady,
		Incidents: []models.Incident{{
			ID: "a1", CreatedAt: now, IP: "203.0.113.7", Type: models.TypeBruteForce, Count: 6, Severity: models.SeverityMedium,
		}},
		Stats: &models.DailyStats{
			TodayCount: 1,
			ByType:     map[models.IncidentType]int{models.TypeBruteForce: 1},
		},
		LastSyncedAt: &now,
	})
}

func TestViewModel(t *testing.T) {
	f := newFixture(t)
	publishSingle(f.store, 1)

	resp, body := f.do(t, http.MethodGet, "/api/viewmodel")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "203.0.113.7", body["top_attacker"])
	assert.Equal(t, float64(1), body["brute_force"])
	assert.Equal(t, float64(0), body["port_scan"])
	assert.Equal(t, float64(1), body["today_count"])
}

func TestState(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodGet, "/api/state")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "loading", body["status"])
	assert.Equal(t, []any{}, body["incidents"])
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	f.refresh.ok = false
	resp, body := f.do(t, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "sync already in flight", body["error"])
}

func TestDemo(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/api/demo")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(17), body["events_created"])

	f.demo.err = demo.ErrDemoInFlight
	resp, _ = f.do(t, http.MethodPost, "/api/demo")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	f.demo.err = &client.HTTPError{Op: "POST /test-event", Status: 500}
	resp, body = f.do(t, http.MethodPost, "/api/demo")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	f.health.err = &client.NetworkError{Op: "GET /health", Err: errors.New("connection refused")}
	resp, _ = f.do(t, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	f.health.err = &client.DecodeError{Op: "GET /health", Err: errors.New("missing status")}
	resp, _ = f.do(t, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHealthzAndMetrics(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(f.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStream_PushesOnPublish(t *testing.T) {
	f := newFixture(t)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var vm logic.ViewModel
	require.NoError(t, conn.ReadJSON(&vm))
	assert.Equal(t, state.StatusLoading, vm.Status)
	assert.Equal(t, logic.NoAttacker, vm.TopAttacker)

	publishSingle(f.store, 1)

	require.NoError(t, conn.ReadJSON(&vm))
	assert.Equal(t, uint64(1), vm.Seq)
	assert.Equal(t, "203.0.113.7", vm.TopAttacker)
}
