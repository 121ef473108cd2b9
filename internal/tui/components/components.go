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

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urustack/sentrywatch/internal/models"
	"github.com/urustack/sentrywatch/internal/tui/styles"
)

func Wrap(content string, w int) string {
	return styles.Box.Width(w - 4).Render(content)
}

func WrapSuccess(content string, w int) string {
	return styles.BoxSuccess.Width(w - 4).Render(content)
}

func WrapError(content string, w int) string {
	return styles.BoxError.Width(w - 4).Render(content)
}

func WrapWarning(content string, w int) string {
	return styles.BoxWarning.Width(w - 4).Render(content)
}

func Section(title string, w int) string {
	t := styles.MutedStyle.Bold(true).Render(strings.ToUpper(title))
	tw := lipgloss.Width(t)
	lw := w - tw - 6
	if lw < 0 {
		lw = 0
	}
	return "  " + t + " " + styles.Line(lw)
}

func Help(items [][]string) string {
	var p []string
	for _, i := range items {
		if len(i) >= 2 {
			p = append(p, styles.KeyStyle.Render(i[0])+" "+styles.DescStyle.Render(i[1]))
		}
	}
	return "  " + strings.Join(p, "   ")
}

func Badge(s string) string {
	switch strings.ToLower(s) {
	case "high":
		return styles.BadgeHigh.Render("HIGH")
	case "medium":
		return styles.BadgeMedium.Render("MEDIUM")
	case "low":
		return styles.BadgeLow.Render("LOW")
	case "ready":
		return styles.BadgeSuccess.Render("READY")
	case "error", "failed":
		return styles.BadgeError.Render("ERROR")
	case "loading":
		return styles.BadgePrimary.Render("LOADING")
	default:
		return styles.BadgeMuted.Render(strings.ToUpper(s))
	}
}

func CenteredLogo(w int, version string) string {
	logo := styles.Logo()
	lines := strings.Split(logo, "\n")
	lw := 0
	for _, l := range lines {
		if lipgloss.Width(l) > lw {
			lw = lipgloss.Width(l)
		}
	}
	var b strings.Builder
	for _, l := range lines {
		pad := (w - lw) / 2
		if pad < 0 {
			pad = 0
		}
		b.WriteString(strings.Repeat(" ", pad) + l + "\n")
	}
	b.WriteString(styles.Center(styles.Tagline(version), w))
	return b.String()
}

type KPI struct {
	Label string
	Value string
	Style lipgloss.Style
}

// KPIRow lays the cards out side by side, sharing the available width.
func KPIRow(cards []KPI, w int) string {
	if len(cards) == 0 {
		return ""
	}
	cw := (w-4)/len(cards) - 2
	if cw < 12 {
		cw = 12
	}
	var rendered []string
	for _, c := range cards {
		body := styles.SubtleStyle.Render(strings.ToUpper(c.Label)) + "\n" + c.Style.Bold(true).Render(c.Value)
		rendered = append(rendered, styles.BoxCompact.Width(cw).Render(body))
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Sparkline renders counts as block characters scaled to the series max.
// Only the last width points are shown.
func Sparkline(counts []int, width int) string {
	if len(counts) == 0 || width <= 0 {
		return ""
	}
	if len(counts) > width {
		counts = counts[len(counts)-width:]
	}
	peak := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	blocks := styles.SparkBlocks
	out := make([]rune, len(counts))
	for i, c := range counts {
		if peak == 0 || c <= 0 {
			out[i] = blocks[0]
			continue
		}
		idx := c * (len(blocks) - 1) / peak
		out[i] = blocks[idx]
	}
	return string(out)
}

func SeverityBar(low, medium, high int) string {
	return fmt.Sprintf("  %s %s    %s %s    %s %s",
		styles.ErrorStyle.Render(fmt.Sprintf("%d", high)),
		styles.MutedStyle.Render("high"),
		styles.OrangeStyle.Render(fmt.Sprintf("%d", medium)),
		styles.MutedStyle.Render("medium"),
		styles.WarningStyle.Render(fmt.Sprintf("%d", low)),
		styles.MutedStyle.Render("low"))
}

func IncidentHeader(w int) string {
	return styles.SubtleStyle.Render(fmt.Sprintf("  %s  %s  %s  %s  %s",
		styles.Pad("TIME", 9),
		styles.Pad("SOURCE", 16),
		styles.Pad("TYPE", 12),
		styles.PadL("COUNT", 5),
		"SEVERITY"))
}

func IncidentRow(inc models.Incident, w int) string {
	typ := "brute force"
	if inc.Type == models.TypePortScan {
		typ = "port scan"
	}
	return fmt.Sprintf("  %s  %s  %s  %s  %s",
		styles.MutedStyle.Render(styles.Pad(inc.CreatedAt.Local().Format("15:04:05"), 9)),
		styles.Pad(styles.Trunc(inc.IP, 16), 16),
		styles.Pad(typ, 12),
		styles.PadL(fmt.Sprintf("%d", inc.Count), 5),
		Badge(string(inc.Severity)))
}

func SourceRow(src models.SourceSummary, lastSeen string, w int) string {
	return fmt.Sprintf("  %s  %s  %s  %s",
		styles.Pad(styles.Trunc(src.IP, 16), 16),
		styles.PadL(fmt.Sprintf("%d", src.Incidents), 9),
		styles.PadL(fmt.Sprintf("%d", src.Events), 7),
		styles.MutedStyle.Render(lastSeen))
}

func SourceHeader(w int) string {
	return styles.SubtleStyle.Render(fmt.Sprintf("  %s  %s  %s  %s",
		styles.Pad("SOURCE", 16),
		styles.PadL("INCIDENTS", 9),
		styles.PadL("EVENTS", 7),
		"LAST SEEN"))
}

func AttemptRow(rec models.SyncRecord, w int) string {
	icon := styles.SuccessStyle.Render(styles.IconSuccess)
	if rec.Status != "ready" {
		icon = styles.ErrorStyle.Render(styles.IconError)
	}
	took := rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond).String()
	msg := rec.Message
	if msg == "" {
		msg = fmt.Sprintf("%d incidents, %d today", rec.IncidentCount, rec.TodayCount)
	}
	if rec.Stale {
		msg += " (superseded)"
	}
	return fmt.Sprintf("  %s  %s  %s  %s",
		icon,
		styles.MutedStyle.Render(rec.StartedAt.Local().Format("01-02 15:04:05")),
		styles.PadL(took, 7),
		styles.Trunc(msg, max(w-40, 10)))
}

func MsgSuccess(msg string, w int) string {
	return WrapSuccess(styles.SuccessStyle.Render(styles.IconSuccess)+"  "+styles.SuccessStyle.Render(msg), w)
}

func MsgError(msg string, w int) string {
	return WrapError(styles.ErrorStyle.Render(styles.IconError)+"  "+styles.ErrorStyle.Render(msg), w)
}

func MsgWarning(msg string, w int) string {
	return WrapWarning(styles.WarningStyle.Render(styles.IconWarning)+"  "+styles.WarningStyle.Render(msg), w)
}

func MsgInfo(msg string, w int) string {
	return Wrap(styles.PrimaryStyle.Render(styles.IconOnline)+"  "+msg, w)
}

func Empty(title, sub string, w int) string {
	c := styles.MutedStyle.Render(title)
	if sub != "" {
		c += "\n" + styles.SubtleStyle.Render(sub)
	}
	return Wrap(c, w)
}
