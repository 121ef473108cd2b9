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

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/internal/storage"
	"github.com/urustack/sentrywatch/internal/tui/views"
)

type View int

const (
	ViewDashboard View = iota
	ViewHistory
)

type Refresher interface {
	TriggerNow() bool
}

type DemoRunner interface {
	Run(ctx context.Context) (*models.DemoAck, error)
	SettleDelay() time.Duration
}

type Deps struct {
	Store   *state.Store
	Refresh Refresher
	Demo    DemoRunner
	History storage.History
	Version string
}

type Model struct {
	ActiveView View
	Width      int
	Height     int
	Ready      bool
	Dashboard  views.DashboardModel
	History    views.HistoryModel

	ctx         context.Context
	deps        Deps
	updates     <-chan state.ViewState
	unsubscribe func()
}

func NewModel(ctx context.Context, deps Deps) Model {
	updates, unsubscribe := deps.Store.Subscribe()
	return Model{
		ActiveView:  ViewDashboard,
		Dashboard:   views.NewDashboardModel(deps.Store.Current(), deps.Version),
		History:     views.NewHistoryModel(deps.History),
		ctx:         ctx,
		deps:        deps,
		updates:     updates,
		unsubscribe: unsubscribe,
	}
}

// Close detaches the model from the state store.
func (m *Model) Close() {
	m.unsubscribe()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.Dashboard.Init(), m.waitForState())
}

func (m *Model) waitForState() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		vs, ok := <-ch
		if !ok {
			return nil
		}
		return views.StateMsg{State: vs}
	}
}

func (m *Model) refresh() tea.Msg {
	return views.RefreshResultMsg{Triggered: m.deps.Refresh.TriggerNow()}
}

func (m *Model) runDemo() tea.Msg {
	ack, err := m.deps.Demo.Run(m.ctx)
	return views.DemoResultMsg{Ack: ack, Err: err, Settle: m.deps.Demo.SettleDelay()}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case views.StateMsg:
		m.Dashboard, cmd = m.Dashboard.Update(msg)
		cmds = append(cmds, cmd, m.waitForState())
		if m.ActiveView == ViewHistory {
			m.History, cmd = m.History.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case views.HistoryDataMsg:
		m.History, cmd = m.History.Update(msg)
		return m, cmd

	case views.SpinnerTickMsg, views.ClockTickMsg, views.RefreshResultMsg, views.DemoResultMsg:
		m.Dashboard, cmd = m.Dashboard.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Dashboard.Width = msg.Width
		m.Dashboard.Height = msg.Height
		m.History.Width = msg.Width
		m.History.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.ActiveView != ViewDashboard {
				m.ActiveView = ViewDashboard
				m.Dashboard.ClearMessage()
			}
			return m, nil
		case "tab":
			if m.ActiveView == ViewDashboard {
				m.ActiveView = ViewHistory
				return m, m.History.Init()
			}
			m.ActiveView = ViewDashboard
			m.Dashboard.ClearMessage()
			return m, nil
		case "h":
			m.ActiveView = ViewHistory
			return m, m.History.Init()
		case "r":
			return m, m.refresh
		case "g":
			if m.ActiveView != ViewDashboard {
				return m, nil
			}
			if m.Dashboard.DemoPending {
				m.Dashboard.SetMessage("Demo traffic is already being generated", "warning")
				return m, nil
			}
			m.Dashboard, cmd = m.Dashboard.Update(views.DemoStartedMsg{})
			return m, tea.Batch(cmd, m.runDemo)
		}

		if m.ActiveView == ViewDashboard {
			m.Dashboard, cmd = m.Dashboard.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) View() string {
	if !m.Ready {
		return ""
	}
	switch m.ActiveView {
	case ViewHistory:
		return m.History.View()
	default:
		return m.Dashboard.View()
	}
}
