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

package state

import (
	"time"

	"github.com/urustack/sentrywatch/internal/models"
)

type SyncStatus string

const (
	StatusLoading SyncStatus = "loading"
	StatusReady   SyncStatus = "ready"
	StatusError   SyncStatus = "error"
)

// ViewState is one reconciled snapshot. Values handed out by the Store are
// never mutated afterwards.
type ViewState struct {
	Seq          uint64             `json:"seq"`
	Status       SyncStatus         `json:"status"`
	Message      string             `json:"message,omitempty"`
	Incidents    []models.Incident  `json:"incidents"`
	Stats        *models.DailyStats `json:"stats,omitempty"`
	LastSyncedAt *time.Time         `json:"last_synced_at,omitempty"`
}

func Initial() ViewState {
	return ViewState{Status: StatusLoading, Incidents: []models.Incident{}}
}

// HasData reports whether a successful sync has ever been published.
func (v ViewState) HasData() bool {
	return v.Stats != nil
}

// Blocking is true when the last attempt failed and there is nothing to show.
func (v ViewState) Blocking() bool {
	return v.Status == StatusError && !v.HasData()
}

func (v ViewState) clone() ViewState {
	out := v
	out.Incidents = append([]models.Incident(nil), v.Incidents...)
	if out.Incidents == nil {
		out.Incidents = []models.Incident{}
	}
	if v.Stats != nil {
		s := *v.Stats
		s.ByType = make(map[models.IncidentType]int, len(v.Stats.ByType))
		for k, n := range v.Stats.ByType {
			s.ByType[k] = n
		}
		s.Timeseries = append([]models.TimePoint(nil), v.Stats.Timeseries...)
		out.Stats = &s
	}
	if v.LastSyncedAt != nil {
		t := *v.LastSyncedAt
		out.LastSyncedAt = &t
	}
	return out
}
