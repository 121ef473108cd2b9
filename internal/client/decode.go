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

package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urustack/sentrywatch/internal/models"
)

type wireIncident struct {
	ID        *string           `json:"id"`
	CreatedAt string            `json:"created_at"`
	IP        *string           `json:"ip"`
	Type      string            `json:"type"`
	Count     *int              `json:"count"`
	Severity  string            `json:"severity"`
	Meta      *wireIncidentMeta `json:"meta"`
}

type wireIncidentMeta struct {
	Ports         []int  `json:"ports"`
	Notes         string `json:"notes"`
	WindowMinutes int    `json:"window_minutes"`
}

type wireTimePoint struct {
	T     string `json:"t"`
	Count int    `json:"count"`
}

type wireDailyStats struct {
	TodayCount *int            `json:"today_count"`
	ByType     map[string]int  `json:"by_type"`
	Timeseries []wireTimePoint `json:"timeseries"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp accepts RFC 3339 plus the variants the detection backend
// emits: naive ISO strings (treated as UTC) and an offset followed by a
// redundant "Z" suffix.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if strings.HasSuffix(s, "Z") && len(s) > 7 {
		if off := s[len(s)-7 : len(s)-1]; (off[0] == '+' || off[0] == '-') && off[3] == ':' {
			s = s[:len(s)-1]
		}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (w wireIncident) toModel() (models.Incident, error) {
	if w.ID == nil || *w.ID == "" {
		return models.Incident{}, errors.New("incident without id")
	}
	id := *w.ID
	created, err := parseTimestamp(w.CreatedAt)
	if err != nil {
		return models.Incident{}, fmt.Errorf("incident %s: created_at: %w", id, err)
	}
	if w.IP == nil {
		return models.Incident{}, fmt.Errorf("incident %s: missing ip", id)
	}
	typ := models.IncidentType(w.Type)
	if !typ.Valid() {
		return models.Incident{}, fmt.Errorf("incident %s: unknown type %q", id, w.Type)
	}
	sev := models.Severity(w.Severity)
	if !sev.Valid() {
		return models.Incident{}, fmt.Errorf("incident %s: unknown severity %q", id, w.Severity)
	}
	if w.Count == nil || *w.Count < 1 {
		return models.Incident{}, fmt.Errorf("incident %s: count must be at least 1", id)
	}

	inc := models.Incident{
		ID:        id,
		CreatedAt: created,
		IP:        *w.IP,
		Type:      typ,
		Count:     *w.Count,
		Severity:  sev,
	}
	if w.Meta != nil && (len(w.Meta.Ports) > 0 || w.Meta.Notes != "" || w.Meta.WindowMinutes != 0) {
		inc.Meta = &models.IncidentMeta{
			Ports:         append([]int(nil), w.Meta.Ports...),
			Notes:         w.Meta.Notes,
			WindowMinutes: w.Meta.WindowMinutes,
		}
	}
	return inc, nil
}

func decodeIncidents(raw []wireIncident) ([]models.Incident, error) {
	out := make([]models.Incident, 0, len(raw))
	for i, w := range raw {
		inc, err := w.toModel()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, inc)
	}
	return out, nil
}

func (w wireDailyStats) toModel() (*models.DailyStats, error) {
	if w.TodayCount == nil {
		return nil, errors.New("missing today_count")
	}
	stats := &models.DailyStats{
		TodayCount: *w.TodayCount,
		ByType:     make(map[models.IncidentType]int, len(w.ByType)),
		Timeseries: make([]models.TimePoint, 0, len(w.Timeseries)),
	}
	for k, v := range w.ByType {
		stats.ByType[models.IncidentType(k)] = v
	}
	for i, p := range w.Timeseries {
		t, err := parseTimestamp(p.T)
		if err != nil {
			return nil, fmt.Errorf("timeseries[%d]: %w", i, err)
		}
		stats.Timeseries = append(stats.Timeseries, models.TimePoint{T: t, Count: p.Count})
	}
	return stats, nil
}
