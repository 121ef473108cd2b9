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

package sqlite

import (
	"database/sql"
	"time"

	"github.com/urustack/sentrywatch/internal/models"
)

// UpsertIncidents archives every incident seen. The backend may bump count on
// an existing incident, so count is refreshed while first_seen_at is kept.
func (s *Store) UpsertIncidents(incidents []models.Incident, seenAt time.Time) error {
	if len(incidents) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO incidents_seen (id, created_at, ip, type, severity, count, first_seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET count = excluded.count, severity = excluded.severity
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, inc := range incidents {
		if _, err := stmt.Exec(inc.ID, inc.CreatedAt.UTC(), inc.IP, inc.Type, inc.Severity, inc.Count, seenAt.UTC()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) IncidentsByIP(ip string, limit int) ([]models.Incident, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, ip, type, severity, count
		FROM incidents_seen WHERE ip = ? ORDER BY created_at DESC LIMIT ?
	`, ip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []models.Incident
	for rows.Next() {
		var inc models.Incident
		if err := rows.Scan(&inc.ID, &inc.CreatedAt, &inc.IP, &inc.Type, &inc.Severity, &inc.Count); err != nil {
			return nil, err
		}
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}

// TopSources ranks source IPs by how many incidents they produced.
func (s *Store) TopSources(limit int) ([]models.SourceSummary, error) {
	rows, err := s.db.Query(`
		SELECT ip, COUNT(*) AS incidents, SUM(count) AS events, MAX(created_at) AS last_seen
		FROM incidents_seen GROUP BY ip
		ORDER BY incidents DESC, events DESC, ip ASC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SourceSummary
	for rows.Next() {
		var src models.SourceSummary
		var lastSeen sql.NullString
		if err := rows.Scan(&src.IP, &src.Incidents, &src.Events, &lastSeen); err != nil {
			return nil, err
		}
		if lastSeen.Valid {
			src.LastSeen, _ = parseTime(lastSeen.String)
		}
		out = append(out, src)
	}
	return out, rows.Err()
}
