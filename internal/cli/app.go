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

package cli

import (
	"context"

	"github.com/urustack/sentrywatch/internal/client"
	"github.com/urustack/sentrywatch/internal/config"
	"github.com/urustack/sentrywatch/internal/demo"
	"github.com/urustack/sentrywatch/internal/scheduler"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/internal/storage"
	"github.com/urustack/sentrywatch/internal/storage/sqlite"
	"github.com/urustack/sentrywatch/internal/syncer"
	"github.com/urustack/sentrywatch/pkg/logger"
)

// app holds the wired sync pipeline shared by the commands.
type app struct {
	cfg     *config.Config
	client  *client.Client
	store   *state.Store
	history *sqlite.Store
	coord   *syncer.Coordinator
	sched   *scheduler.Scheduler
	demo    *demo.Orchestrator
}

func newApp(cfg *config.Config, withHistory bool) *app {
	a := &app{
		cfg:    cfg,
		client: client.New(cfg.API, client.WithLogger(logger.With("client"))),
		store:  state.NewStore(),
	}

	opts := []syncer.Option{syncer.WithLogger(logger.With("sync"))}
	if withHistory {
		h, err := sqlite.New(cfg.Storage.DataDir)
		if err != nil {
			log := logger.L()
			log.Warn().Err(err).Msg("sync history disabled")
		} else {
			a.history = h
			opts = append(opts, syncer.WithHistory(h, cfg.Storage.HistoryLimit))
		}
	}
	a.coord = syncer.New(a.client, a.store, cfg.Sync.IncidentLimit, opts...)

	a.sched = scheduler.New(cfg.Sync.Interval, func(ctx context.Context, trigger scheduler.Trigger) {
		a.coord.Sync(ctx)
	}, scheduler.WithLogger(logger.With("scheduler")))

	a.demo = demo.New(a.client, a.sched, cfg.Sync.SettleDelay, logger.With("demo"))
	return a
}

func (a *app) historyStore() storage.History {
	if a.history == nil {
		return nil
	}
	return a.history
}

func (a *app) close() {
	if a.history != nil {
		a.history.Close()
	}
}
