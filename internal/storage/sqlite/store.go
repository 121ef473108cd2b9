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
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/urustack/sentrywatch/internal/storage"
)

const DBName = "sentrywatch.db"

type Store struct {
	db *sql.DB
}

func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBName)
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)

	store := &Store{db: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

var _ storage.History = (*Store)(nil)

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) GetStats() (*storage.Stats, error) {
	stats := &storage.Stats{}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sync_attempts`).Scan(&stats.AttemptsTotal); err != nil {
		return nil, err
	}
	s.db.QueryRow(`SELECT COUNT(*) FROM sync_attempts WHERE status != 'ready'`).Scan(&stats.AttemptsFailed)
	s.db.QueryRow(`SELECT COUNT(*) FROM incidents_seen`).Scan(&stats.IncidentsSeen)
	s.db.QueryRow(`SELECT COUNT(DISTINCT ip) FROM incidents_seen`).Scan(&stats.SourcesSeen)

	var last sql.NullString
	s.db.QueryRow(`SELECT MAX(finished_at) FROM sync_attempts WHERE status = 'ready'`).Scan(&last)
	if last.Valid {
		if t, ok := parseTime(last.String); ok {
			stats.LastSuccess = &t
		}
	}

	return stats, nil
}

// Aggregates lose the DATETIME column type, so the driver hands them back as
// text in one of its own timestamp layouts.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
