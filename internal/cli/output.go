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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/urustack/sentrywatch/internal/logic"
	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/tui/components"
	"github.com/urustack/sentrywatch/pkg/helper"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q (want %s or %s)", format, formatTable, formatJSON)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)
}

func printViewModel(w io.Writer, vm logic.ViewModel) {
	last := "never"
	if vm.LastSyncedAt != nil {
		last = vm.LastSyncedAt.Local().Format(time.DateTime)
	}
	fmt.Fprintf(w, "status:       %s\n", vm.Status)
	if vm.Message != "" {
		fmt.Fprintf(w, "message:      %s\n", vm.Message)
	}
	fmt.Fprintf(w, "last sync:    %s\n", last)
	fmt.Fprintf(w, "today:        %d\n", vm.TodayCount)
	fmt.Fprintf(w, "top attacker: %s\n", vm.TopAttacker)
	fmt.Fprintf(w, "brute force:  %d\n", vm.BruteForce)
	fmt.Fprintf(w, "port scan:    %d\n", vm.PortScan)
	fmt.Fprintf(w, "severity:     high %d, medium %d, low %d\n", vm.Severity.High, vm.Severity.Medium, vm.Severity.Low)

	if len(vm.Timeseries) > 0 {
		counts := make([]int, len(vm.Timeseries))
		for i, tp := range vm.Timeseries {
			counts[i] = tp.Count
		}
		fmt.Fprintf(w, "24h:          %s\n", components.Sparkline(counts, 48))
	}

	if len(vm.Incidents) == 0 {
		fmt.Fprintln(w, "\nno incidents")
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, incidentTable(vm.Incidents))
}

func incidentTable(incidents []models.Incident) string {
	t := newTable("TIME", "SOURCE", "TYPE", "COUNT", "SEVERITY", "NOTES")
	for _, inc := range incidents {
		notes := ""
		if inc.Meta != nil {
			notes = inc.Meta.Notes
			if len(inc.Meta.Ports) > 0 {
				ports := make([]string, len(inc.Meta.Ports))
				for i, p := range inc.Meta.Ports {
					ports[i] = fmt.Sprint(p)
				}
				notes = strings.TrimSpace(notes + " ports " + strings.Join(ports, ","))
			}
		}
		t.Row(
			inc.CreatedAt.Local().Format(time.DateTime),
			inc.IP,
			string(inc.Type),
			fmt.Sprint(inc.Count),
			string(inc.Severity),
			helper.TruncateString(notes, 40),
		)
	}
	return t.String()
}
