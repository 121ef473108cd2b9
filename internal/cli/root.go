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
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/urustack/sentrywatch/internal/client"
	"github.com/urustack/sentrywatch/internal/config"
	"github.com/urustack/sentrywatch/internal/tui"
	"github.com/urustack/sentrywatch/pkg/helper"
	"github.com/urustack/sentrywatch/pkg/logger"
)

var (
	cfgPath  string
	apiBase  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "sentrywatch",
	Short:         "SentryWatch - security incident dashboard",
	Long:          `SentryWatch polls an incident detection API and shows brute-force and port-scan activity as it happens.`,
	Version:       client.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "API base path or absolute URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd, snapshotCmd, demoCmd, healthCmd, historyCmd, initCmd)
}

func resolveConfigPath() string {
	if cfgPath != "" {
		return helper.ExpandHome(cfgPath)
	}
	if v := os.Getenv("SENTRYWATCH_CONFIG"); v != "" {
		return helper.ExpandHome(v)
	}
	return config.DefaultConfigPath
}

// loadConfig reads the config file and applies flag overrides on top of
// file and environment values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, err
	}
	if apiBase != "" {
		cfg.API.BasePath = apiBase
	}
	if logLevel != "" {
		cfg.Log.Level = strings.ToLower(logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = helper.ExpandHome(cfg.Storage.DataDir)
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// the terminal belongs to the TUI, so logs only go to the file
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(cfg.Storage.DataDir, "sentrywatch.log")
	}
	if err := logger.Init(helper.ExpandHome(logFile), cfg.Log.Level, false); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	a := newApp(cfg, true)
	defer a.close()

	log := logger.L()
	log.Info().Str("api", a.client.BaseURL()).Msg("starting dashboard")

	if err := a.sched.Start(ctx); err != nil {
		return err
	}
	defer a.sched.Stop()

	err = tui.Run(ctx, tui.Deps{
		Store:   a.store,
		Refresh: a.sched,
		Demo:    a.demo,
		History: a.historyStore(),
		Version: client.Version,
	})
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
