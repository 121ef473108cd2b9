package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/internal/tui/views"
)

type fakeRefresher struct{ calls int }

func (f *fakeRefresher) TriggerNow() bool {
	f.calls++
	return true
}

type fakeDemo struct {
	ack *models.DemoAck
	err error
}

func (f *fakeDemo) Run(context.Context) (*models.DemoAck, error) { return f.ack, f.err }
func (f *fakeDemo) SettleDelay() time.Duration { return 3 * time.Second }

func newTestModel(t *testing.T) (*Model, *fakeRefresher, *fakeDemo, *state.Store) {
	t.Helper()
	store := state.NewStore()
	refresh := &fakeRefresher{}
	demo := &fakeDemo{ack: &models.DemoAck{EventsCreated: 17, BruteForceIP: "203.0.113.7"}}
	m := NewModel(context.Background(), Deps{Store: store, Refresh: refresh, Demo: demo, Version: "test"})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return &m, refresh, demo, store
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func readyState(seq uint64) state.ViewState {
	now := time.Now()
	return state.ViewState{
		Seq:    seq,
		Status: state.StatusReady,
		Incidents: []models.Incident{{
			ID: "a1", CreatedAt: now, IP: "203.0.113.7", Type: models.TypeBruteForce, Count: 6, Severity: models.SeverityMedium,
		}},
		Stats:        &models.DailyStats{TodayCount: 1, ByType: map[models.IncidentType]int{models.TypeBruteForce: 1}},
		LastSyncedAt: &now,
	}
}

func TestModel_StateFromStore(t *testing.T) {
	m, _, _, store := newTestModel(t)

	cmd := m.waitForState()
	store.Publish(readyState(1))
	msg := cmd()
	require.IsType(t, views.StateMsg{}, msg)

	m.Update(msg)
	assert.Equal(t, "203.0.113.7", m.Dashboard.VM.TopAttacker)
	assert.Equal(t, 1, m.Dashboard.VM.BruteForce)
	assert.Contains(t, m.View(), "203.0.113.7")
}

func TestModel_RefreshKey(t *testing.T) {
	m, refresh, _, _ := newTestModel(t)

	_, cmd := m.Update(key("r"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, views.RefreshResultMsg{Triggered: true}, msg)
	assert.Equal(t, 1, refresh.calls)
}

func TestModel_DemoKey(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	_, cmd := m.Update(key("g"))
	require.NotNil(t, cmd)
	assert.True(t, m.Dashboard.DemoPending)

	_, again := m.Update(key("g"))
	assert.Nil(t, again)

	m.Update(views.DemoResultMsg{Ack: &models.DemoAck{EventsCreated: 17}, Settle: 3 * time.Second})
	assert.False(t, m.Dashboard.DemoPending)
	assert.Equal(t, "success", m.Dashboard.MessageType)
	assert.Equal(t, 17, m.Dashboard.DemoAck.EventsCreated)
}

func TestModel_DemoFailure(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m.Update(key("g"))
	m.Update(views.DemoResultMsg{Err: errors.New("status 500")})
	assert.False(t, m.Dashboard.DemoPending)
	assert.Equal(t, "error", m.Dashboard.MessageType)
	assert.Nil(t, m.Dashboard.DemoAck)
}

func TestModel_BlockingErrorView(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m.Update(views.StateMsg{State: state.ViewState{Seq: 1, Status: state.StatusError, Message: "no data yet: connection refused"}})
	assert.True(t, m.Dashboard.VM.Blocking)

	out := m.View()
	assert.Contains(t, out, "no data yet: connection refused")
	assert.Contains(t, out, "retry now")
}

func TestModel_ViewSwitching(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m.Update(key("h"))
	assert.Equal(t, ViewHistory, m.ActiveView)
	assert.Contains(t, m.View(), "History is disabled")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewDashboard, m.ActiveView)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewHistory, m.ActiveView)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewDashboard, m.ActiveView)
}

func TestModel_Quit(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
