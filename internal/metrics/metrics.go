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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentrywatch_sync_attempts_total",
		Help: "Sync attempts by outcome (ready, error, discarded).",
	}, []string{"outcome"})

	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentrywatch_sync_duration_seconds",
		Help:    "Wall time of a sync attempt, both fetches included.",
		Buckets: prometheus.DefBuckets,
	})

	StalePublishDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentrywatch_stale_publish_dropped_total",
		Help: "Publishes rejected because a later attempt already published.",
	})

	TriggersDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentrywatch_ticks_dropped_total",
		Help: "Sync triggers dropped because a sync was already in flight.",
	}, []string{"trigger"})

	DemoRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentrywatch_demo_runs_total",
		Help: "Demo traffic requests by outcome (ok, failed, rejected).",
	}, []string{"outcome"})

	IncidentsVisible = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentrywatch_incidents_visible",
		Help: "Incidents in the live view state.",
	})
)
