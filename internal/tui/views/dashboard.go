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
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sentrywatch/internal/logic"
	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/internal/tui/components"
	"github.com/urustack/sentrywatch/internal/tui/styles"
	"github.com/urustack/sentrywatch/pkg/helper"
)

type DashboardModel struct {
	Width        int
	Height       int
	VM           logic.ViewModel
	Version      string
	DemoPending  bool
	DemoAck      *models.DemoAck
	Message      string
	MessageType  string
	SpinnerFrame int
	spinning     bool
	ShowHelp     bool
}

func NewDashboardModel(vs state.ViewState, version string) DashboardModel {
	return DashboardModel{VM: logic.Project(vs), Version: version}
}

func (m *DashboardModel) SetMessage(msg, t string) {
	m.Message = msg
	m.MessageType = t
}

func (m *DashboardModel) ClearMessage() {
	m.Message = ""
	m.MessageType = ""
}

func (m DashboardModel) busy() bool {
	return m.VM.Status == state.StatusLoading || m.DemoPending
}

func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.ensureSpinner(), clockTick())
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "?" {
			m.ShowHelp = !m.ShowHelp
		}
	case SpinnerTickMsg:
		m.SpinnerFrame++
		if m.busy() {
			return m, spinnerTick()
		}
		m.spinning = false
	case ClockTickMsg:
		return m, clockTick()
	case StateMsg:
		m.VM = logic.Project(msg.State)
		return m, m.ensureSpinner()
	case RefreshResultMsg:
		if msg.Triggered {
			m.SetMessage("Refreshing...", "info")
		} else {
			m.SetMessage("A sync is already running", "warning")
		}
	case DemoStartedMsg:
		m.DemoPending = true
		m.ClearMessage()
		return m, m.ensureSpinner()
	case DemoResultMsg:
		m.DemoPending = false
		if msg.Err != nil {
			m.SetMessage("Demo traffic failed: "+msg.Err.Error(), "error")
			return m, nil
		}
		m.DemoAck = msg.Ack
		m.SetMessage(fmt.Sprintf("Demo traffic sent, refreshing in %s", msg.Settle), "success")
	}
	return m, nil
}

func (m *DashboardModel) ensureSpinner() tea.Cmd {
	if m.spinning || !m.busy() {
		return nil
	}
	m.spinning = true
	return spinnerTick()
}

func (m DashboardModel) View() string {
	if m.Width == 0 {
		return ""
	}
	if m.VM.Blocking {
		return m.blockingView()
	}

	var b strings.Builder
	w := m.Width
	vm := m.VM

	b.WriteString("\n")
	b.WriteString(components.ViewHeader(w, "Dashboard") + "\n")
	b.WriteString(m.statusLine() + "\n\n")

	if m.Message != "" {
		b.WriteString(message(m.Message, m.MessageType, w) + "\n\n")
	}

	if vm.Status == state.StatusLoading && vm.LastSyncedAt == nil {
		b.WriteString(components.Loading(m.SpinnerFrame, "Fetching incidents...") + "\n")
		return m.withFooter(b.String())
	}

	topStyle := styles.BrightStyle
	if vm.TopAttacker != logic.NoAttacker {
		topStyle = styles.ErrorStyle
	}
	b.WriteString(components.KPIRow([]components.KPI{
		{Label: "Today", Value: fmt.Sprintf("%d", vm.TodayCount), Style: styles.PrimaryStyle},
		{Label: "Top attacker", Value: vm.TopAttacker, Style: topStyle},
		{Label: "Brute force", Value: fmt.Sprintf("%d", vm.BruteForce), Style: styles.OrangeStyle},
		{Label: "Port scan", Value: fmt.Sprintf("%d", vm.PortScan), Style: styles.WarningStyle},
	}, w) + "\n\n")

	b.WriteString(components.Section("Last 24 hours", w) + "\n\n")
	b.WriteString(m.timeseries(w) + "\n\n")

	b.WriteString(components.Section("Severity", w) + "\n\n")
	b.WriteString(components.SeverityBar(vm.Severity.Low, vm.Severity.Medium, vm.Severity.High) + "\n\n")

	b.WriteString(components.Section("Recent incidents", w) + "\n\n")
	b.WriteString(m.incidents(w) + "\n\n")

	b.WriteString(components.Section("Demo", w) + "\n\n")
	b.WriteString(m.demoPanel() + "\n")

	return m.withFooter(b.String())
}

func (m DashboardModel) statusLine() string {
	vm := m.VM
	line := "  " + components.Badge(string(vm.Status))
	if vm.LastSyncedAt != nil {
		line += "  " + styles.MutedStyle.Render("last sync "+helper.FormatTimeAgo(*vm.LastSyncedAt))
	}
	if vm.Stale {
		line += "  " + styles.WarningStyle.Render(styles.IconWarning+" "+styles.Trunc(vm.Message, m.Width-40))
	}
	return line
}

func (m DashboardModel) timeseries(w int) string {
	series := m.VM.Timeseries
	if len(series) == 0 {
		return "  " + styles.MutedStyle.Render("No activity recorded")
	}
	counts := make([]int, len(series))
	for i, tp := range series {
		counts[i] = tp.Count
	}
	out := "  " + styles.PrimaryStyle.Render(components.Sparkline(counts, w-8))
	if peak, ok := logic.PeakHour(series); ok && peak.Count > 0 {
		out += "\n  " + styles.SubtleStyle.Render(fmt.Sprintf("peak %d at %s", peak.Count, peak.T.Local().Format("15:04")))
	}
	return out
}

func (m DashboardModel) incidents(w int) string {
	incidents := m.VM.Incidents
	if len(incidents) == 0 {
		return "  " + styles.SuccessStyle.Render(styles.IconSuccess) + "  " + styles.MutedStyle.Render("No incidents detected")
	}

	rows := m.Height - 34
	if rows < 3 {
		rows = 3
	}
	var b strings.Builder
	b.WriteString(components.IncidentHeader(w) + "\n")
	b.WriteString("  " + styles.Line(w-8) + "\n")
	for i, inc := range incidents {
		if i == rows {
			b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ... %d more", len(incidents)-rows)))
			break
		}
		b.WriteString(components.IncidentRow(inc, w) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) demoPanel() string {
	if m.DemoPending {
		return components.Loading(m.SpinnerFrame, "Generating demo traffic...")
	}
	if m.DemoAck == nil {
		return "  " + styles.MutedStyle.Render("Press g to send simulated brute-force and port-scan traffic")
	}
	ack := m.DemoAck
	out := "  " + styles.SuccessStyle.Render(styles.IconSuccess) + "  " + fmt.Sprintf("%d events", ack.EventsCreated)
	if ack.BruteForceIP != "" {
		out += styles.MutedStyle.Render("  brute force from ") + ack.BruteForceIP
	}
	if ack.PortScanIP != "" {
		out += styles.MutedStyle.Render("  port scan from ") + ack.PortScanIP
	}
	for _, exp := range ack.ExpectedIncidents {
		out += fmt.Sprintf("\n     %s %s %s", components.Badge(string(exp.Severity)), styles.MutedStyle.Render(string(exp.Type)), exp.IP)
	}
	return out
}

func (m DashboardModel) blockingView() string {
	w := m.Width
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.ViewHeader(w, "Dashboard") + "\n\n")
	b.WriteString(components.CenteredLogo(w, m.Version) + "\n\n")

	body := styles.ErrorStyle.Bold(true).Render(styles.IconError+"  Cannot reach the incident API") + "\n\n" +
		styles.MutedStyle.Render(m.VM.Message) + "\n\n" +
		styles.KeyStyle.Render("r") + " " + styles.DescStyle.Render("retry now") +
		styles.DescStyle.Render("   (retrying automatically)")
	b.WriteString(components.WrapError(body, w) + "\n")

	return m.withFooter(b.String())
}

func (m DashboardModel) withFooter(content string) string {
	lines := helper.CountLines(content)
	for i := 0; i < m.Height-lines-3; i++ {
		content += "\n"
	}

	content += "\n" + styles.Line(m.Width) + "\n"
	content += components.Help([][]string{
		{"r", "refresh"}, {"g", "demo"}, {"h", "history"}, {"tab", "cycle"}, {"?", "help"}, {"q", "quit"},
	})
	if m.busy() {
		content += "  " + components.LoadingInline(m.SpinnerFrame)
	}
	if m.ShowHelp {
		content += "\n\n" + styles.MutedStyle.Render("  Data refreshes automatically; r forces a sync now.")
		content += "\n" + styles.MutedStyle.Render("  g asks the backend for demo traffic and re-syncs once it settles.")
	}
	return content
}

func message(msg, typ string, w int) string {
	switch typ {
	case "success":
		return components.MsgSuccess(msg, w)
	case "error":
		return components.MsgError(msg, w)
	case "warning":
		return components.MsgWarning(msg, w)
	default:
		return components.MsgInfo(msg, w)
	}
}
