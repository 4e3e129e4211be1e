package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	colorAccent   = lipgloss.Color("33")
	colorSubtle   = lipgloss.Color("241")
	colorDisabled = lipgloss.Color("238")
	colorWarning  = lipgloss.Color("214")
	colorCritical = lipgloss.Color("196")
	colorOK       = lipgloss.Color("42")
	colorSelected = lipgloss.Color("63")
)

// Shared styles.
//
//nolint:gochecknoglobals // Lip Gloss styles are immutable values shared by every view.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	InfoStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	OKStyle     = lipgloss.NewStyle().Foreground(colorOK)

	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCritical)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)
	ErrorBoxStyle = BoxStyle.BorderForeground(colorCritical)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorSubtle)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(colorSelected)

	PageStyle         = lipgloss.NewStyle().Padding(0, 1)
	PageCurrentStyle  = PageStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(colorSelected)
	PageDisabledStyle = PageStyle.Foreground(colorDisabled)

	TabActiveStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("229")).Background(colorAccent)
	TabInactiveStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(colorSubtle)
)
