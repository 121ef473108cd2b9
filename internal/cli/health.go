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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/urustack/sentrywatch/internal/client"
	"github.com/urustack/sentrywatch/pkg/logger"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the incident API is reachable",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.File, cfg.Log.Level, false); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	c := client.New(cfg.API, client.WithLogger(logger.With("client")))
	h, err := c.FetchHealth(ctx)
	if err != nil {
		return fmt.Errorf("%s unreachable: %w", c.BaseURL(), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "api:       %s\n", c.BaseURL())
	fmt.Fprintf(out, "status:    %s\n", h.Status)
	if h.Database != "" {
		fmt.Fprintf(out, "database:  %s\n", h.Database)
	}
	if h.Timestamp != "" {
		fmt.Fprintf(out, "timestamp: %s\n", h.Timestamp)
	}
	return nil
}
