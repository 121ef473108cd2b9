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

package logic

import (
	"time"

	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
)

const NoAttacker = "none"

type SeverityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

func (s SeverityCounts) Total() int {
	return s.Low + s.Medium + s.High
}

// ViewModel is everything the dashboard renders, derived from one ViewState.
type ViewModel struct {
	Seq          uint64             `json:"seq"`
	Status       state.SyncStatus   `json:"status"`
	Message      string             `json:"message,omitempty"`
	Blocking     bool               `json:"blocking"`
	Stale        bool               `json:"stale"`
	LastSyncedAt *time.Time         `json:"last_synced_at,omitempty"`
	TodayCount   int                `json:"today_count"`
	TopAttacker  string             `json:"top_attacker"`
	BruteForce   int                `json:"brute_force"`
	PortScan     int                `json:"port_scan"`
	Timeseries   []models.TimePoint `json:"timeseries"`
	Severity     SeverityCounts     `json:"severity"`
	Incidents    []models.Incident  `json:"incidents"`
}

// Project derives the view-model. It has no side effects.
func Project(vs state.ViewState) ViewModel {
	vm := ViewModel{
		Seq:          vs.Seq,
		Status:       vs.Status,
		Message:      vs.Message,
		Blocking:     vs.Blocking(),
		Stale:        vs.Status == state.StatusError && vs.HasData(),
		LastSyncedAt: vs.LastSyncedAt,
		TopAttacker:  TopAttacker(vs.Incidents),
		Timeseries:   []models.TimePoint{},
		Severity:     SeverityBreakdown(vs.Incidents),
		Incidents:    vs.Incidents,
	}
	if vm.Incidents == nil {
		vm.Incidents = []models.Incident{}
	}

	if vs.Stats != nil {
		vm.TodayCount = vs.Stats.TodayCount
		vm.BruteForce = vs.Stats.CountFor(models.TypeBruteForce)
		vm.PortScan = vs.Stats.CountFor(models.TypePortScan)
		if vs.Stats.Timeseries != nil {
			vm.Timeseries = vs.Stats.Timeseries
		}
	}

	return vm
}

// TopAttacker is the source of the most recent incident. incidents must be
// ordered most recent first.
func TopAttacker(incidents []models.Incident) string {
	if len(incidents) == 0 || incidents[0].IP == "" {
		return NoAttacker
	}
	return incidents[0].IP
}

func SeverityBreakdown(incidents []models.Incident) SeverityCounts {
	var c SeverityCounts
	for _, inc := range incidents {
		switch inc.Severity {
		case models.SeverityLow:
			c.Low++
		case models.SeverityMedium:
			c.Medium++
		case models.SeverityHigh:
			c.High++
		}
	}
	return c
}

// PeakHour returns the busiest bucket of the series. ok is false for an
// empty series.
func PeakHour(series []models.TimePoint) (p models.TimePoint, ok bool) {
	for i, tp := range series {
		if i == 0 || tp.Count > p.Count {
			p = tp
		}
	}
	return p, len(series) > 0
}
