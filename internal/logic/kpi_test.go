package logic

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ready(incidents []models.Incident, stats *models.DailyStats) state.ViewState {
	return state.ViewState{
		Seq:          1,
		Status:       state.StatusReady,
		Incidents:    incidents,
		Stats:        stats,
		LastSyncedAt: &now,
	}
}

func TestProject_EmptyScenario(t *testing.T) {
	vm := Project(ready([]models.Incident{}, &models.DailyStats{
		TodayCount: 0,
		ByType:     map[models.IncidentType]int{},
		Timeseries: []models.TimePoint{},
	}))

	assert.Equal(t, state.StatusReady, vm.Status)
	assert.Equal(t, 0, vm.TodayCount)
	assert.Equal(t, "none", vm.TopAttacker)
	assert.Equal(t, 0, vm.BruteForce)
	assert.Equal(t, 0, vm.PortScan)
	assert.Empty(t, vm.Incidents)
	assert.False(t, vm.Blocking)
	assert.False(t, vm.Stale)
}

func TestProject_SingleIncident(t *testing.T) {
	series := []models.TimePoint{{T: now.Add(-time.Hour), Count: 0}, {T: now, Count: 1}}
	vm := Project(ready(
		[]models.Incident{{
			ID:        "a1",
			CreatedAt: now,
			IP:        "203.0.113.7",
			Type:      models.TypeBruteForce,
			Count:     6,
			Severity:  models.SeverityMedium,
		}},
		&models.DailyStats{
			TodayCount: 1,
			ByType:     map[models.IncidentType]int{models.TypeBruteForce: 1},
			Timeseries: series,
		},
	))

	assert.Equal(t, 1, vm.TodayCount)
	assert.Equal(t, "203.0.113.7", vm.TopAttacker)
	assert.Equal(t, 1, vm.BruteForce)
	assert.Equal(t, 0, vm.PortScan)
	assert.Equal(t, series, vm.Timeseries)
	assert.Equal(t, SeverityCounts{Medium: 1}, vm.Severity)
}

func TestProject_TopAttackerIsMostRecent(t *testing.T) {
	incidents := []models.Incident{
		{ID: "b", CreatedAt: now, IP: "198.51.100.4", Type: models.TypePortScan, Count: 12, Severity: models.SeverityLow},
		{ID: "a", CreatedAt: now.Add(-time.Minute), IP: "203.0.113.7", Type: models.TypeBruteForce, Count: 6, Severity: models.SeverityMedium},
		{ID: "c", CreatedAt: now.Add(-2 * time.Minute), IP: "203.0.113.7", Type: models.TypeBruteForce, Count: 9, Severity: models.SeverityHigh},
	}
	vm := Project(ready(incidents, &models.DailyStats{TodayCount: 3}))

	assert.Equal(t, "198.51.100.4", vm.TopAttacker)
	assert.Equal(t, 0, vm.BruteForce)
	assert.Equal(t, 0, vm.PortScan)
	assert.NotNil(t, vm.Timeseries)
}

func TestProject_NoStats(t *testing.T) {
	vm := Project(state.Initial())

	assert.Equal(t, state.StatusLoading, vm.Status)
	assert.Equal(t, 0, vm.TodayCount)
	assert.Equal(t, NoAttacker, vm.TopAttacker)
	assert.False(t, vm.Blocking)
	assert.NotNil(t, vm.Incidents)
	assert.NotNil(t, vm.Timeseries)
}

func TestProject_ErrorStates(t *testing.T) {
	err := errors.New("connection refused")

	blocking := Project(state.ViewState{Seq: 1, Status: state.StatusError, Message: "no data yet: " + err.Error()})
	assert.True(t, blocking.Blocking)
	assert.False(t, blocking.Stale)
	assert.Contains(t, blocking.Message, "no data yet")

	stale := Project(state.ViewState{
		Seq:     2,
		Status:  state.StatusError,
		Message: "refresh failed: " + err.Error(),
		Stats:   &models.DailyStats{TodayCount: 4, ByType: map[models.IncidentType]int{models.TypePortScan: 4}},
	})
	assert.False(t, stale.Blocking)
	assert.True(t, stale.Stale)
	assert.Equal(t, 4, stale.TodayCount)
	assert.Equal(t, 4, stale.PortScan)
}

func TestSeverityBreakdown(t *testing.T) {
	c := SeverityBreakdown([]models.Incident{
		{Severity: models.SeverityLow},
		{Severity: models.SeverityHigh},
		{Severity: models.SeverityHigh},
		{Severity: "UNKNOWN"},
	})
	assert.Equal(t, SeverityCounts{Low: 1, High: 2}, c)
	assert.Equal(t, 3, c.Total())
}

func TestPeakHour(t *testing.T) {
	_, ok := PeakHour(nil)
	assert.False(t, ok)

	p, ok := PeakHour([]models.TimePoint{{T: now, Count: 2}, {T: now.Add(time.Hour), Count: 7}, {T: now.Add(2 * time.Hour), Count: 7}})
	require.True(t, ok)
	assert.Equal(t, 7, p.Count)
	assert.True(t, p.T.Equal(now.Add(time.Hour)))
}
