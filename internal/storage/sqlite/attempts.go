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

	"github.com/urustack/sentrywatch/internal/models"
)

func (s *Store) RecordAttempt(r *models.SyncRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO sync_attempts (id, seq, started_at, finished_at, status, message, incident_count, today_count, stale)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Seq, r.StartedAt.UTC(), r.FinishedAt.UTC(), r.Status, r.Message, r.IncidentCount, r.TodayCount, r.Stale)
	return err
}

func (s *Store) RecentAttempts(limit int) ([]models.SyncRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, seq, started_at, finished_at, status, message, incident_count, today_count, stale
		FROM sync_attempts ORDER BY started_at DESC, seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SyncRecord
	for rows.Next() {
		var r models.SyncRecord
		var message sql.NullString
		if err := rows.Scan(&r.ID, &r.Seq, &r.StartedAt, &r.FinishedAt, &r.Status, &message, &r.IncidentCount, &r.TodayCount, &r.Stale); err != nil {
			return nil, err
		}
		r.Message = message.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// PruneAttempts keeps the newest keep attempts and deletes the rest.
func (s *Store) PruneAttempts(keep int) (int64, error) {
	res, err := s.db.Exec(`
		DELETE FROM sync_attempts WHERE id NOT IN (
			SELECT id FROM sync_attempts ORDER BY started_at DESC, seq DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
