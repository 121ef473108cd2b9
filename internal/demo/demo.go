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

package demo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/urustack/sentrywatch/internal/metrics"
	"github.com/urustack/sentrywatch/internal/models"
)

var ErrDemoInFlight = errors.New("demo traffic request already in flight")

type Backend interface {
	TriggerDemoTraffic(ctx context.Context) (*models.DemoAck, error)
}

// Resyncer is satisfied by the poll scheduler.
type Resyncer interface {
	ScheduleOnce(delay time.Duration) bool
}

type Orchestrator struct {
	backend Backend
	sched   Resyncer
	settle  time.Duration
	logger  zerolog.Logger

	pending atomic.Bool

	mu      sync.Mutex
	lastAck *models.DemoAck
	lastErr error
}

func New(backend Backend, sched Resyncer, settle time.Duration, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		backend: backend,
		sched:   sched,
		settle:  settle,
		logger:  logger,
	}
}

// Run asks the backend to generate demo traffic. On success exactly one
// re-sync is scheduled after the settle delay; on failure nothing is
// scheduled. A second Run while one is outstanding returns ErrDemoInFlight
// without reaching the backend.
func (o *Orchestrator) Run(ctx context.Context) (*models.DemoAck, error) {
	if !o.pending.CompareAndSwap(false, true) {
		metrics.DemoRuns.WithLabelValues("rejected").Inc()
		return nil, ErrDemoInFlight
	}
	defer o.pending.Store(false)

	ack, err := o.backend.TriggerDemoTraffic(ctx)
	if err != nil {
		metrics.DemoRuns.WithLabelValues("failed").Inc()
		o.logger.Warn().Err(err).Msg("demo traffic failed")
		o.remember(nil, err)
		return nil, fmt.Errorf("trigger demo traffic: %w", err)
	}

	if !o.sched.ScheduleOnce(o.settle) {
		o.logger.Warn().Msg("scheduler not running, demo re-sync skipped")
	}
	metrics.DemoRuns.WithLabelValues("ok").Inc()
	o.logger.Info().
		Int("events", ack.EventsCreated).
		Str("brute_force_ip", ack.BruteForceIP).
		Str("port_scan_ip", ack.PortScanIP).
		Dur("settle", o.settle).
		Msg("demo traffic generated")

	o.remember(ack, nil)
	return ack, nil
}

// Pending reports whether a demo request is outstanding.
func (o *Orchestrator) Pending() bool {
	return o.pending.Load()
}

func (o *Orchestrator) SettleDelay() time.Duration {
	return o.settle
}

// Last returns the outcome of the most recent completed Run.
func (o *Orchestrator) Last() (*models.DemoAck, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastAck, o.lastErr
}

func (o *Orchestrator) remember(ack *models.DemoAck, err error) {
	o.mu.Lock()
	o.lastAck, o.lastErr = ack, err
	o.mu.Unlock()
}
