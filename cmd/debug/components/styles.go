package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")

	// Status colors
	CompletedColor = lipgloss.Color("#00FF00") // Lime
	PartialColor   = lipgloss.Color("#FFA500") // Orange
	RunningColor   = lipgloss.Color("#5FAFFF") // Sky
)

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	// Border styles
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(1)

	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(1)

	// Menu styles
	MenuItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 2)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	// Info panel styles
	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(1).
			Width(36)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	// Table styles
	TableCellStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	TableSelectedCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Padding(0, 1)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)
)

// HeightBand is one shade of the heightmap preview.
type HeightBand struct {
	Symbol string
	Color  lipgloss.Color
}

// WaterBand marks samples below the water level.
var WaterBand = HeightBand{Symbol: "~", Color: lipgloss.Color("#1E6FD9")}

// LandBands run from the lowest dry ground to the peaks.
var LandBands = []HeightBand{
	{Symbol: ".", Color: lipgloss.Color("#E3D39A")}, // Sand
	{Symbol: ":", Color: lipgloss.Color("#6DBE45")}, // Grass
	{Symbol: "-", Color: lipgloss.Color("#3C8D2F")}, // Forest
	{Symbol: "=", Color: lipgloss.Color("#8B6B43")}, // Rock
	{Symbol: "#", Color: lipgloss.Color("#6E6E6E")}, // Cliff
	{Symbol: "^", Color: lipgloss.Color("#FAFAFA")}, // Snow
}

// GetStatusColor returns the color for a scatter run status
func GetStatusColor(status string) lipgloss.Color {
	switch status {
	case "completed":
		return CompletedColor
	case "partial":
		return PartialColor
	case "running":
		return RunningColor
	default:
		return Gray
	}
}
