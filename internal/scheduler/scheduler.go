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

package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/rs/zerolog"

	"github.com/urustack/sentrywatch/internal/metrics"
)

var ErrAlreadyStarted = errors.New("scheduler already started")

type Trigger string

const (
	TriggerStart    Trigger = "start"
	TriggerTick     Trigger = "tick"
	TriggerManual   Trigger = "manual"
	TriggerOnce     Trigger = "once"
	TriggerDeferred Trigger = "deferred"
)

// RunFunc performs one sync. ctx is cancelled when the scheduler stops.
type RunFunc func(ctx context.Context, trigger Trigger)

// Scheduler runs a sync immediately on Start, then every interval, plus any
// one-shot syncs requested through ScheduleOnce. At most one sync is in
// flight; periodic and manual triggers that collide with it are dropped,
// one-shots are deferred until it completes.
type Scheduler struct {
	clock    clock.Clock
	interval time.Duration
	run      RunFunc
	logger   zerolog.Logger

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	active   bool
	inFlight bool
	trailing bool
	ticker   *clock.Timer
	oneShots map[int]*clock.Timer
	nextID   int
	dropped  int
	runs     int
	wg       sync.WaitGroup
}

type Option func(*Scheduler)

func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

func New(interval time.Duration, run RunFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:    clock.New(),
		interval: interval,
		run:      run,
		logger:   zerolog.Nop(),
		oneShots: make(map[int]*clock.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start activates the scheduler and fires the first sync right away. The
// scheduler stops by itself when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.active = true
	s.scheduleTick()
	runCtx := s.ctx
	s.mu.Unlock()

	context.AfterFunc(runCtx, s.Stop)

	s.logger.Info().Dur("interval", s.interval).Msg("scheduler started")
	s.fire(TriggerStart)
	return nil
}

// Stop cancels the recurring timer, pending one-shots and the in-flight
// sync, then waits for that sync to return. It is safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.active = false
	s.trailing = false
	s.cancel()
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	for id, t := range s.oneShots {
		t.Stop()
		delete(s.oneShots, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info().Msg("scheduler stopped")
}

// TriggerNow requests an out-of-cycle sync. It reports false when the
// request was dropped because a sync is running or the scheduler is stopped.
func (s *Scheduler) TriggerNow() bool {
	return s.fire(TriggerManual)
}

// ScheduleOnce arranges exactly one extra sync after delay.
func (s *Scheduler) ScheduleOnce(delay time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false
	}

	id := s.nextID
	s.nextID++
	s.oneShots[id] = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		_, pending := s.oneShots[id]
		delete(s.oneShots, id)
		s.mu.Unlock()
		if pending {
			s.fire(TriggerOnce)
		}
	})
	s.logger.Debug().Dur("delay", delay).Msg("one-shot sync scheduled")
	return true
}

func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Scheduler) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Pending returns the number of one-shot syncs waiting on their timer.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.oneShots)
}

// Dropped returns how many triggers were dropped by the in-flight guard.
func (s *Scheduler) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Runs returns how many syncs were started.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// scheduleTick must be called with s.mu held.
func (s *Scheduler) scheduleTick() {
	s.ticker = s.clock.AfterFunc(s.interval, s.onTick)
}

func (s *Scheduler) onTick() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.scheduleTick()
	s.mu.Unlock()

	s.fire(TriggerTick)
}

func (s *Scheduler) fire(trigger Trigger) bool {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return false
	}
	if s.inFlight {
		if trigger == TriggerOnce {
			s.trailing = true
			s.mu.Unlock()
			s.logger.Debug().Msg("one-shot sync deferred behind in-flight sync")
			return true
		}
		s.dropped++
		s.mu.Unlock()
		metrics.TriggersDropped.WithLabelValues(string(trigger)).Inc()
		s.logger.Debug().Str("trigger", string(trigger)).Msg("sync already in flight, trigger dropped")
		return false
	}
	s.inFlight = true
	s.runs++
	ctx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	go s.execute(ctx, trigger)
	return true
}

func (s *Scheduler) execute(ctx context.Context, trigger Trigger) {
	defer s.wg.Done()

	s.run(ctx, trigger)

	s.mu.Lock()
	s.inFlight = false
	again := s.trailing && s.active
	s.trailing = false
	s.mu.Unlock()

	if again {
		s.fire(TriggerDeferred)
	}
}
