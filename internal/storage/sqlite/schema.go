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

const schema = `
CREATE TABLE IF NOT EXISTS sync_attempts (
	id TEXT PRIMARY KEY,
	seq INTEGER NOT NULL,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	status TEXT NOT NULL,
	message TEXT DEFAULT '',
	incident_count INTEGER DEFAULT 0,
	today_count INTEGER DEFAULT 0,
	stale INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS incidents_seen (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	ip TEXT NOT NULL,
	type TEXT NOT NULL,
	severity TEXT NOT NULL,
	count INTEGER DEFAULT 1,
	first_seen_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sync_attempts_started ON sync_attempts(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_incidents_seen_ip ON incidents_seen(ip);
CREATE INDEX IF NOT EXISTS idx_incidents_seen_created ON incidents_seen(created_at DESC);
`
