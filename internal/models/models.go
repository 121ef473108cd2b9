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

package models

import "time"

type IncidentType string

const (
	TypeBruteForce IncidentType = "BRUTE_FORCE"
	TypePortScan   IncidentType = "PORT_SCAN"
)

// IncidentTypes lists every kind the backend can classify, in display order.
var IncidentTypes = []IncidentType{TypeBruteForce, TypePortScan}

func (t IncidentType) Valid() bool {
	switch t {
	case TypeBruteForce, TypePortScan:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type Incident struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	IP        string        `json:"ip"`
	Type      IncidentType  `json:"type"`
	Count     int           `json:"count"`
	Severity  Severity      `json:"severity"`
	Meta      *IncidentMeta `json:"meta,omitempty"`
}

type IncidentMeta struct {
	Ports         []int  `json:"ports,omitempty"`
	Notes         string `json:"notes,omitempty"`
	WindowMinutes int    `json:"window_minutes,omitempty"`
}

type TimePoint struct {
	T     time.Time `json:"t"`
	Count int       `json:"count"`
}

type DailyStats struct {
	TodayCount int                  `json:"today_count"`
	ByType     map[IncidentType]int `json:"by_type"`
	Timeseries []TimePoint          `json:"timeseries"`
}

// CountFor returns the count for kind t; absent keys are zero.
func (s *DailyStats) CountFor(t IncidentType) int {
	if s == nil || s.ByType == nil {
		return 0
	}
	return s.ByType[t]
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

type ExpectedIncident struct {
	Type     IncidentType `json:"type"`
	Severity Severity     `json:"severity"`
	IP       string       `json:"ip"`
}

type DemoAck struct {
	Message           string             `json:"message,omitempty"`
	EventsCreated     int                `json:"events_created,omitempty"`
	BruteForceIP      string             `json:"brute_force_ip,omitempty"`
	PortScanIP        string             `json:"port_scan_ip,omitempty"`
	ExpectedIncidents []ExpectedIncident `json:"expected_incidents,omitempty"`
}

type SyncRecord struct {
	ID            string    `json:"id"`
	Seq           uint64    `json:"seq"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Status        string    `json:"status"`
	Message       string    `json:"message,omitempty"`
	IncidentCount int       `json:"incident_count"`
	TodayCount    int       `json:"today_count"`
	Stale         bool      `json:"stale"`
}

type SourceSummary struct {
	IP        string    `json:"ip"`
	Incidents int       `json:"incidents"`
	Events    int       `json:"events"`
	LastSeen  time.Time `json:"last_seen"`
}
