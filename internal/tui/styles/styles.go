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

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Primary   = lipgloss.Color("#2563EB")
	Muted     = lipgloss.Color("#888888")
	Subtle    = lipgloss.Color("#666666")
	Dim       = lipgloss.Color("#444444")
	DimBorder = lipgloss.Color("#333333")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Warning   = lipgloss.Color("#FBBF24")
	Orange    = lipgloss.Color("#F97316")
)

var (
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	BrightStyle  = lipgloss.NewStyle()
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	SubtleStyle  = lipgloss.NewStyle().Foreground(Subtle)
	DimStyle     = lipgloss.NewStyle().Foreground(Dim)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	OrangeStyle  = lipgloss.NewStyle().Foreground(Orange)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimBorder).
		Padding(1, 2)

	BoxCompact = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimBorder).
			Padding(0, 1)

	BoxSuccess = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success).
			Padding(1, 2)

	BoxError = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Padding(1, 2)

	BoxWarning = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Warning).
			Padding(1, 2)

	KeyStyle  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	DescStyle = lipgloss.NewStyle().Foreground(Subtle)

	BadgeHigh    = lipgloss.NewStyle().Background(Error).Padding(0, 1)
	BadgeMedium  = lipgloss.NewStyle().Background(Orange).Padding(0, 1)
	BadgeLow     = lipgloss.NewStyle().Background(Warning).Foreground(lipgloss.Color("#000000")).Padding(0, 1)
	BadgeSuccess = lipgloss.NewStyle().Background(Success).Padding(0, 1)
	BadgeError   = lipgloss.NewStyle().Background(Error).Padding(0, 1)
	BadgePrimary = lipgloss.NewStyle().Background(Primary).Padding(0, 1)
	BadgeMuted   = lipgloss.NewStyle().Background(Subtle).Padding(0, 1)
)

const (
	IconOnline   = "●"
	IconSuccess  = "✓"
	IconError    = "✗"
	IconWarning  = "⚠"
	IconDash     = "─"
	IconBreadSep = "›"
)

var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var SparkBlocks = []rune("▁▂▃▄▅▆▇█")

func Line(w int) string {
	if w < 0 {
		w = 0
	}
	return DimStyle.Render(strings.Repeat(IconDash, w))
}

func Logo() string {
	return PrimaryStyle.Bold(true).Render(`╔═╗╔═╗╔╗╔╔╦╗╦═╗╦ ╦╦ ╦╔═╗╔╦╗╔═╗╦ ╦
╚═╗║╣ ║║║ ║ ╠╦╝╚╦╝║║║╠═╣ ║ ║  ╠═╣
╚═╝╚═╝╝╚╝ ╩ ╩╚═ ╩ ╚╩╝╩ ╩ ╩ ╚═╝╩ ╩`)
}

func LogoInline() string {
	return PrimaryStyle.Bold(true).Render("◆ SENTRYWATCH")
}

func BreadcrumbSep() string {
	return SubtleStyle.Render(" " + IconBreadSep + " ")
}

func Spinner(frame int) string {
	idx := frame % len(SpinnerFrames)
	return PrimaryStyle.Render(SpinnerFrames[idx])
}

func Tagline(version string) string {
	return SubtleStyle.Render("Security Incident Dashboard") + "  " + MutedStyle.Render("v"+version)
}

func Pad(s string, w int) string {
	l := lipgloss.Width(s)
	if l >= w {
		return s
	}
	return s + strings.Repeat(" ", w-l)
}

func PadL(s string, w int) string {
	l := lipgloss.Width(s)
	if l >= w {
		return s
	}
	return strings.Repeat(" ", w-l) + s
}

func Center(s string, w int) string {
	l := lipgloss.Width(s)
	if l >= w {
		return s
	}
	pad := (w - l) / 2
	return strings.Repeat(" ", pad) + s
}

func Trunc(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 2 {
		return string(r[:w])
	}
	return string(r[:w-2]) + ".."
}
