package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	cream     = lipgloss.AdaptiveColor{Light: "#FFFDF5", Dark: "#FFFDF5"}
	fuchsia   = lipgloss.Color("#EE6FF8")
	green     = lipgloss.Color("#04B575")
	red       = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	yellow    = lipgloss.AdaptiveColor{Light: "#A67C00", Dark: "#ECFD65"}
	gray      = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	midGray   = lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"}
	darkGray  = lipgloss.AdaptiveColor{Light: "#DDDADA", Dark: "#3C3C3C"}
	mintGreen = lipgloss.AdaptiveColor{Light: "#89F0CB", Dark: "#89F0CB"}
	darkGreen = lipgloss.AdaptiveColor{Light: "#1C8760", Dark: "#1C8760"}

	appStyle = lipgloss.NewStyle().Padding(1, 2)

	logoStyle = lipgloss.NewStyle().
			Foreground(cream).
			Background(fuchsia).
			Bold(true).
			Padding(0, 1)

	sourceTextStyle = lipgloss.NewStyle().
			Bold(true)

	translatedTextStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(green)

	labelStyle = lipgloss.NewStyle().
			Foreground(gray)

	categoryStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(midGray).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)

	subtleStyle = lipgloss.NewStyle().
			Foreground(gray)

	bannerStyle = lipgloss.NewStyle().
			Foreground(yellow).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(darkGray)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(mintGreen).
				Background(darkGreen).
				Padding(0, 1)

	helpDialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(fuchsia)
)
