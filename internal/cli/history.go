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
	"time"

	"github.com/spf13/cobra"

	"github.com/urustack/sentrywatch/internal/storage/sqlite"
	"github.com/urustack/sentrywatch/pkg/helper"
)

var (
	historyLimit  int
	historyIP     string
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the local sync log and archived incident sources",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "rows to show")
	historyCmd.Flags().StringVar(&historyIP, "ip", "", "show archived incidents for one source IP")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", formatTable, "output format: table or json")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := checkFormat(historyFormat); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if historyIP != "" {
		incidents, err := store.IncidentsByIP(historyIP, historyLimit)
		if err != nil {
			return err
		}
		if historyFormat == formatJSON {
			return printJSON(out, incidents)
		}
		if len(incidents) == 0 {
			fmt.Fprintf(out, "no incidents archived for %s\n", historyIP)
			return nil
		}
		fmt.Fprintln(out, incidentTable(incidents))
		return nil
	}

	attempts, err := store.RecentAttempts(historyLimit)
	if err != nil {
		return err
	}
	sources, err := store.TopSources(historyLimit)
	if err != nil {
		return err
	}

	if historyFormat == formatJSON {
		return printJSON(out, map[string]any{"attempts": attempts, "sources": sources})
	}

	if len(attempts) == 0 {
		fmt.Fprintln(out, "no sync attempts recorded")
	} else {
		t := newTable("STARTED", "STATUS", "TOOK", "INCIDENTS", "TODAY", "MESSAGE")
		for _, rec := range attempts {
			status := rec.Status
			if rec.Stale {
				status += " (superseded)"
			}
			t.Row(
				rec.StartedAt.Local().Format(time.DateTime),
				status,
				rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond).String(),
				fmt.Sprint(rec.IncidentCount),
				fmt.Sprint(rec.TodayCount),
				helper.TruncateString(rec.Message, 48),
			)
		}
		fmt.Fprintln(out, t.String())
	}

	if len(sources) > 0 {
		t := newTable("SOURCE", "INCIDENTS", "EVENTS", "LAST SEEN")
		for _, src := range sources {
			t.Row(src.IP, fmt.Sprint(src.Incidents), fmt.Sprint(src.Events), helper.FormatTimeAgo(src.LastSeen))
		}
		fmt.Fprintln(out, t.String())
	}
	return nil
}
