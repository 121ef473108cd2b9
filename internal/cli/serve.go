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
	"time"

	"github.com/spf13/cobra"

	"github.com/urustack/sentrywatch/internal/api"
	"github.com/urustack/sentrywatch/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync loop headless and expose it over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.File, cfg.Log.Level, true); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	a := newApp(cfg, true)
	defer a.close()

	server := api.NewServer(cfg, api.Deps{
		Store:   a.store,
		Refresh: a.sched,
		Demo:    a.demo,
		Health:  a.client,
	})
	if err := server.Start(); err != nil {
		return err
	}

	if err := a.sched.Start(ctx); err != nil {
		return err
	}
	log := logger.L()
	log.Info().
		Str("api", a.client.BaseURL()).
		Dur("interval", cfg.Sync.Interval).
		Msg("sentrywatch serving")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	a.sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
