/*
 * Copyright (C) 2026 Mustafa Naseer (Mustafa Gaeed)
 *
 * This file is part of sentrywatch.
 *
 * sentrywatch is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * sentrywatch is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with sentrywatch. If not, see the LICENSE file in the project root.
 */

package syncer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/urustack/sentrywatch/internal/metrics"
	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/internal/storage"
)

// Source is the part of the API client a sync needs.
type Source interface {
	FetchIncidents(ctx context.Context, limit int) ([]models.Incident, error)
	FetchDailyStats(ctx context.Context) (*models.DailyStats, error)
}

type Coordinator struct {
	source Source
	store  *state.Store
	limit  int
	clock  clock.Clock
	logger zerolog.Logger

	history     storage.History
	historyKeep int

	seq atomic.Uint64
}

type Option func(*Coordinator)

func WithClock(c clock.Clock) Option {
	return func(co *Coordinator) { co.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(co *Coordinator) { co.logger = l }
}

// WithHistory records every attempt to h and keeps at most keep attempts.
// keep <= 0 disables pruning.
func WithHistory(h storage.History, keep int) Option {
	return func(co *Coordinator) {
		co.history = h
		co.historyKeep = keep
	}
}

func New(source Source, store *state.Store, limit int, opts ...Option) *Coordinator {
	c := &Coordinator{
		source: source,
		store:  store,
		limit:  limit,
		clock:  clock.New(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Store() *state.Store {
	return c.store
}

// Sync performs one attempt and publishes its outcome. The returned error is
// the fetch failure, if any; the state is still published in that case. When
// ctx is cancelled before the fetches join, nothing is published and the
// current live state is returned with ctx's error.
func (c *Coordinator) Sync(ctx context.Context) (state.ViewState, error) {
	seq := c.seq.Add(1)
	started := c.clock.Now()
	log := c.logger.With().Uint64("seq", seq).Logger()

	var (
		incidents []models.Incident
		stats     *models.DailyStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incidents, err = c.source.FetchIncidents(gctx, c.limit)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = c.source.FetchDailyStats(gctx)
		return err
	})
	fetchErr := g.Wait()
	if fetchErr == nil && stats == nil {
		fetchErr = errors.New("daily stats missing from response")
	}

	if err := ctx.Err(); err != nil {
		metrics.SyncAttempts.WithLabelValues("discarded").Inc()
		log.Debug().Msg("sync cancelled, result discarded")
		return c.store.Current(), err
	}

	finished := c.clock.Now()
	metrics.SyncDuration.Observe(finished.Sub(started).Seconds())

	var vs state.ViewState
	if fetchErr == nil {
		vs = state.ViewState{
			Seq:          seq,
			Status:       state.StatusReady,
			Incidents:    Normalize(incidents, c.limit),
			Stats:        stats,
			LastSyncedAt: &finished,
		}
		metrics.SyncAttempts.WithLabelValues("ready").Inc()
		metrics.IncidentsVisible.Set(float64(len(vs.Incidents)))
		log.Debug().Int("incidents", len(vs.Incidents)).Int("today", stats.TodayCount).Msg("sync ready")
	} else {
		vs = failedState(seq, c.store.Current(), fetchErr)
		metrics.SyncAttempts.WithLabelValues("error").Inc()
		log.Warn().Err(fetchErr).Bool("has_data", vs.HasData()).Msg("sync failed")
	}

	accepted := c.store.Publish(vs)
	if !accepted {
		metrics.StalePublishDropped.Inc()
		log.Debug().Msg("newer sync already published, result dropped")
	}

	c.record(vs, started, finished, !accepted)
	return vs, fetchErr
}

// failedState keeps the last good incidents and stats on screen.
func failedState(seq uint64, prev state.ViewState, err error) state.ViewState {
	vs := state.ViewState{
		Seq:       seq,
		Status:    state.StatusError,
		Incidents: []models.Incident{},
	}
	if !prev.HasData() {
		vs.Message = fmt.Sprintf("no data yet: %v", err)
		return vs
	}
	vs.Message = fmt.Sprintf("refresh failed: %v", err)
	vs.Incidents = prev.Incidents
	vs.Stats = prev.Stats
	vs.LastSyncedAt = prev.LastSyncedAt
	return vs
}

// Normalize orders incidents most recent first and caps the list at limit.
// Incidents with equal timestamps keep their backend order.
func Normalize(incidents []models.Incident, limit int) []models.Incident {
	out := slices.Clone(incidents)
	if out == nil {
		out = []models.Incident{}
	}
	slices.SortStableFunc(out, func(a, b models.Incident) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (c *Coordinator) record(vs state.ViewState, started, finished time.Time, stale bool) {
	if c.history == nil {
		return
	}

	rec := &models.SyncRecord{
		ID:            uuid.NewString(),
		Seq:           vs.Seq,
		StartedAt:     started,
		FinishedAt:    finished,
		Status:        string(vs.Status),
		Message:       vs.Message,
		IncidentCount: len(vs.Incidents),
		Stale:         stale,
	}
	if vs.Stats != nil {
		rec.TodayCount = vs.Stats.TodayCount
	}
	if err := c.history.RecordAttempt(rec); err != nil {
		c.logger.Warn().Err(err).Msg("record sync attempt")
	}

	if vs.Status == state.StatusReady {
		if err := c.history.UpsertIncidents(vs.Incidents, finished); err != nil {
			c.logger.Warn().Err(err).Msg("archive incidents")
		}
	}

	if c.historyKeep > 0 {
		if _, err := c.history.PruneAttempts(c.historyKeep); err != nil {
			c.logger.Warn().Err(err).Msg("prune sync history")
		}
	}
}
