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

	"github.com/urustack/sentrywatch/internal/storage"
	"github.com/urustack/sentrywatch/internal/tui/components"
	"github.com/urustack/sentrywatch/internal/tui/styles"
	"github.com/urustack/sentrywatch/pkg/helper"
)

const (
	historyAttempts = 12
	historySources  = 8
)

type HistoryModel struct {
	history storage.History
	Width   int
	Height  int
	Data    HistoryDataMsg
	Loaded  bool
}

func NewHistoryModel(history storage.History) HistoryModel {
	return HistoryModel{history: history}
}

func (m HistoryModel) Init() tea.Cmd {
	return m.fetch
}

func (m HistoryModel) fetch() tea.Msg {
	if m.history == nil {
		return HistoryDataMsg{}
	}
	attempts, err := m.history.RecentAttempts(historyAttempts)
	if err != nil {
		return HistoryDataMsg{Err: err}
	}
	sources, err := m.history.TopSources(historySources)
	if err != nil {
		return HistoryDataMsg{Err: err}
	}
	stats, err := m.history.GetStats()
	if err != nil {
		return HistoryDataMsg{Err: err}
	}
	return HistoryDataMsg{Attempts: attempts, Sources: sources, Stats: stats}
}

func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case HistoryDataMsg:
		m.Data = msg
		m.Loaded = true
	case StateMsg:
		// every publish is a new attempt row
		return m, m.fetch
	}
	return m, nil
}

func (m HistoryModel) View() string {
	if m.Width == 0 {
		return ""
	}

	var b strings.Builder
	w := m.Width
	b.WriteString("\n")
	b.WriteString(components.ViewHeader(w, "Dashboard", "History") + "\n\n")

	switch {
	case m.history == nil:
		b.WriteString(components.Empty("History is disabled", "Set storage.data_dir to keep a local sync log", w) + "\n")
	case m.Data.Err != nil:
		b.WriteString(components.MsgError("Could not read history: "+m.Data.Err.Error(), w) + "\n")
	case !m.Loaded:
		b.WriteString(components.Loading(0, "Loading history...") + "\n")
	default:
		b.WriteString(m.summary() + "\n\n")

		b.WriteString(components.Section("Sync attempts", w) + "\n\n")
		var attempts strings.Builder
		if len(m.Data.Attempts) == 0 {
			attempts.WriteString("  " + styles.MutedStyle.Render("No sync attempts recorded yet"))
		}
		for _, rec := range m.Data.Attempts {
			attempts.WriteString(components.AttemptRow(rec, w) + "\n")
		}
		b.WriteString(components.Wrap(strings.TrimRight(attempts.String(), "\n"), w) + "\n\n")

		b.WriteString(components.Section("Top sources", w) + "\n\n")
		var sources strings.Builder
		if len(m.Data.Sources) == 0 {
			sources.WriteString("  " + styles.MutedStyle.Render("No incidents archived yet"))
		} else {
			sources.WriteString(components.SourceHeader(w) + "\n")
			sources.WriteString("  " + styles.Line(w-12) + "\n")
			for _, src := range m.Data.Sources {
				sources.WriteString(components.SourceRow(src, helper.FormatTimeAgo(src.LastSeen), w) + "\n")
			}
		}
		b.WriteString(components.Wrap(strings.TrimRight(sources.String(), "\n"), w) + "\n")
	}

	content := b.String()
	lines := helper.CountLines(content)
	for i := 0; i < m.Height-lines-3; i++ {
		content += "\n"
	}
	content += "\n" + styles.Line(w) + "\n"
	content += components.Help([][]string{{"esc", "back"}, {"r", "refresh"}, {"tab", "cycle"}, {"q", "quit"}})
	return content
}

func (m HistoryModel) summary() string {
	s := m.Data.Stats
	if s == nil {
		return ""
	}
	last := "never"
	if s.LastSuccess != nil {
		last = helper.FormatTimeAgo(*s.LastSuccess)
	}
	return fmt.Sprintf("  %s %s    %s %s    %s %s    %s %s",
		styles.BrightStyle.Render(fmt.Sprintf("%d", s.AttemptsTotal)),
		styles.MutedStyle.Render("attempts"),
		styles.SuccessStyle.Render(fmt.Sprintf("%.0f%%", s.SuccessRate())),
		styles.MutedStyle.Render("ok"),
		styles.PrimaryStyle.Render(fmt.Sprintf("%d", s.IncidentsSeen)),
		styles.MutedStyle.Render("incidents archived"),
		styles.MutedStyle.Render("last success"),
		last)
}
