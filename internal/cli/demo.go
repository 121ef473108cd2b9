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
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/urustack/sentrywatch/internal/demo"
	"github.com/urustack/sentrywatch/internal/logic"
	"github.com/urustack/sentrywatch/pkg/logger"
)

var demoNoWait bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Ask the backend for demo traffic and show the resulting incidents",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoNoWait, "no-wait", false, "return after the backend acknowledges, without re-syncing")
}

// settleWaiter stands in for the scheduler in one-shot commands: it remembers
// the requested delay so the command can sync once after it.
type settleWaiter struct {
	delay     time.Duration
	scheduled bool
}

func (s *settleWaiter) ScheduleOnce(d time.Duration) bool {
	s.delay = d
	s.scheduled = true
	return true
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.File, cfg.Log.Level, false); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	a := newApp(cfg, true)
	defer a.close()

	waiter := &settleWaiter{}
	orch := demo.New(a.client, waiter, cfg.Sync.SettleDelay, logger.With("demo"))

	out := cmd.OutOrStdout()
	ack, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "demo traffic sent: %d events\n", ack.EventsCreated)
	if ack.BruteForceIP != "" {
		fmt.Fprintf(out, "  brute force from %s\n", ack.BruteForceIP)
	}
	if ack.PortScanIP != "" {
		fmt.Fprintf(out, "  port scan from %s\n", ack.PortScanIP)
	}
	for _, exp := range ack.ExpectedIncidents {
		fmt.Fprintf(out, "  expect %s %s from %s\n", exp.Severity, exp.Type, exp.IP)
	}

	if demoNoWait || !waiter.scheduled {
		return nil
	}

	fmt.Fprintf(out, "waiting %s for the backend to settle...\n\n", waiter.delay)
	if err := sleepCtx(ctx, waiter.delay); err != nil {
		return err
	}

	vs, err := a.coord.Sync(ctx)
	printViewModel(out, logic.Project(vs))
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
