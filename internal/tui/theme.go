package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Clock     lipgloss.Style
	Running   lipgloss.Style
	Glass     lipgloss.Style
	Sand      lipgloss.Style
	Grain     lipgloss.Style
	Flipped   lipgloss.Style
	Alert     lipgloss.Style
	Input     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("172"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Clock:     lipgloss.NewStyle().Foreground(lipgloss.Color("223")).Bold(true),
		Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Glass:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Sand:      lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		Grain:     lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Bold(true),
		Flipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Alert:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1).Width(36),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),                                                // Purple
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),     // Cyan
		Clock:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),    // White
		Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),    // Green
		Glass:     lipgloss.NewStyle().Foreground(lipgloss.Color("60")),                // Comment
		Sand:      lipgloss.NewStyle().Foreground(lipgloss.Color("228")),               // Yellow
		Grain:     lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),    // Orange
		Flipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true),    // Purple
		Alert:     lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true),    // Red/Pink
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(36),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

// SetTheme switches themes, reporting whether name was known.
func SetTheme(name string) bool {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
		return true
	}
	return false
}
