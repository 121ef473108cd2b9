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

	"github.com/urustack/sentrywatch/internal/logic"
	"github.com/urustack/sentrywatch/pkg/logger"
)

var snapshotFormat string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Sync once and print the dashboard numbers",
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotFormat, "format", "f", formatTable, "output format: table or json")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if err := checkFormat(snapshotFormat); err != nil {
		return err
	}
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

	vs, syncErr := a.coord.Sync(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	vm := logic.Project(vs)
	out := cmd.OutOrStdout()
	if snapshotFormat == formatJSON {
		if err := printJSON(out, vm); err != nil {
			return err
		}
	} else {
		printViewModel(out, vm)
	}

	if syncErr != nil {
		return fmt.Errorf("sync failed: %w", syncErr)
	}
	return nil
}
