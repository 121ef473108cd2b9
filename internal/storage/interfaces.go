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

package storage

import (
	"time"

	"github.com/urustack/sentrywatch/internal/models"
)

// History is the local sync log. It is an archive only and never feeds the
// live view state.
type History interface {
	RecordAttempt(r *models.SyncRecord) error
	RecentAttempts(limit int) ([]models.SyncRecord, error)
	PruneAttempts(keep int) (int64, error)

	UpsertIncidents(incidents []models.Incident, seenAt time.Time) error
	IncidentsByIP(ip string, limit int) ([]models.Incident, error)
	TopSources(limit int) ([]models.SourceSummary, error)

	GetStats() (*Stats, error)
	Close() error
}

type Stats struct {
	AttemptsTotal  int
	AttemptsFailed int
	IncidentsSeen  int
	SourcesSeen    int
	LastSuccess    *time.Time
}

// SuccessRate returns the share of successful attempts in percent.
func (s *Stats) SuccessRate() float64 {
	if s.AttemptsTotal == 0 {
		return 0
	}
	return float64(s.AttemptsTotal-s.AttemptsFailed) / float64(s.AttemptsTotal) * 100
}
