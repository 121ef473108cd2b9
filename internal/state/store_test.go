package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urustack/sentrywatch/internal/models"
)

func readyState(seq uint64, ids ...string) ViewState {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	vs := ViewState{
		Seq:          seq,
		Status:       StatusReady,
		Stats:        &models.DailyStats{TodayCount: len(ids), ByType: map[models.IncidentType]int{}},
		LastSyncedAt: &now,
	}
	for _, id := range ids {
		vs.Incidents = append(vs.Incidents, models.Incident{ID: id})
	}
	return vs
}

func TestInitial(t *testing.T) {
	s := NewStore()
	cur := s.Current()

	assert.Equal(t, StatusLoading, cur.Status)
	assert.False(t, cur.HasData())
	assert.False(t, cur.Blocking())
	assert.NotNil(t, cur.Incidents)
	assert.Nil(t, cur.LastSyncedAt)
}

func TestPublish_DropsStaleSequence(t *testing.T) {
	s := NewStore()

	require.True(t, s.Publish(readyState(2, "b")))
	assert.False(t, s.Publish(readyState(1, "a")))
	assert.False(t, s.Publish(readyState(2, "dup")))

	assert.Equal(t, "b", s.Current().Incidents[0].ID)
	assert.Equal(t, uint64(2), s.Dropped())

	require.True(t, s.Publish(readyState(3, "c")))
	assert.Equal(t, uint64(3), s.Current().Seq)
}

func TestPublish_CopiesInput(t *testing.T) {
	s := NewStore()
	vs := readyState(1, "a")
	require.True(t, s.Publish(vs))

	vs.Incidents[0].ID = "mutated"
	vs.Stats.ByType[models.TypePortScan] = 9

	cur := s.Current()
	assert.Equal(t, "a", cur.Incidents[0].ID)
	assert.Equal(t, 0, cur.Stats.CountFor(models.TypePortScan))
}

func TestBlocking(t *testing.T) {
	assert.True(t, ViewState{Status: StatusError}.Blocking())
	assert.False(t, ViewState{Status: StatusError, Stats: &models.DailyStats{}}.Blocking())
	assert.False(t, ViewState{Status: StatusReady, Stats: &models.DailyStats{}}.Blocking())
}

func TestSubscribe_ReceivesLatest(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Publish(readyState(1, "a"))
	s.Publish(readyState(2, "b"))

	select {
	case vs := <-ch:
		assert.Equal(t, uint64(2), vs.Seq)
	case <-time.After(time.Second):
		t.Fatal("no state delivered")
	}
}

func TestSubscribe_Cancel(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Subscribe()
	cancel()
	cancel()

	s.Publish(readyState(1, "a"))
	select {
	case <-ch:
		t.Fatal("cancelled subscriber received a state")
	default:
	}
}
