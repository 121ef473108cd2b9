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

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/urustack/sentrywatch/internal/client"
	"github.com/urustack/sentrywatch/internal/demo"
	"github.com/urustack/sentrywatch/internal/logic"
	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/pkg/helper"
	"github.com/urustack/sentrywatch/pkg/logger"
)

type Refresher interface {
	TriggerNow() bool
}

type DemoRunner interface {
	Run(ctx context.Context) (*models.DemoAck, error)
	Pending() bool
}

type HealthChecker interface {
	FetchHealth(ctx context.Context) (*models.Health, error)
}

type DashboardHandler struct {
	store   *state.Store
	refresh Refresher
	demo    DemoRunner
	health  HealthChecker
}

func NewDashboardHandler(store *state.Store, refresh Refresher, demo DemoRunner, health HealthChecker) *DashboardHandler {
	return &DashboardHandler{
		store:   store,
		refresh: refresh,
		demo:    demo,
		health:  health,
	}
}

func (h *DashboardHandler) ViewModel(w http.ResponseWriter, r *http.Request) {
	helper.WriteJSON(w, http.StatusOK, logic.Project(h.store.Current()))
}

func (h *DashboardHandler) State(w http.ResponseWriter, r *http.Request) {
	helper.WriteJSON(w, http.StatusOK, h.store.Current())
}

func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.refresh.TriggerNow() {
		helper.WriteError(w, http.StatusConflict, "sync already in flight")
		return
	}
	helper.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

type demoResponse struct {
	*models.DemoAck
	Pending bool `json:"pending"`
}

func (h *DashboardHandler) Demo(w http.ResponseWriter, r *http.Request) {
	ack, err := h.demo.Run(r.Context())
	switch {
	case errors.Is(err, demo.ErrDemoInFlight):
		helper.WriteError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log := logger.With("http")
		log.Warn().Err(err).Msg("demo request failed")
		helper.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	helper.WriteJSON(w, http.StatusOK, demoResponse{DemoAck: ack, Pending: h.demo.Pending()})
}

func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.health.FetchHealth(r.Context())
	if err != nil {
		status := http.StatusBadGateway
		if client.IsNetwork(err) {
			status = http.StatusServiceUnavailable
		}
		helper.WriteError(w, status, err.Error())
		return
	}
	helper.WriteJSON(w, http.StatusOK, health)
}
