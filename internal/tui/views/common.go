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

package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/internal/storage"
)

// StateMsg carries a freshly published view state from the store.
type StateMsg struct {
	State state.ViewState
}

type RefreshResultMsg struct {
	Triggered bool
}

type DemoStartedMsg struct{}

type DemoResultMsg struct {
	Ack    *models.DemoAck
	Err    error
	Settle time.Duration
}

type HistoryDataMsg struct {
	Attempts []models.SyncRecord
	Sources  []models.SourceSummary
	Stats    *storage.Stats
	Err      error
}

type SpinnerTickMsg struct{}
type ClockTickMsg time.Time

func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return ClockTickMsg(t)
	})
}
