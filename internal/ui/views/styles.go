package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Prompt        lipgloss.Style
	Input         lipgloss.Style
	Separator     lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Kind          lipgloss.Style
	Match         lipgloss.Style
	Selected      lipgloss.Style
	Cursor        lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Help          lipgloss.Style
	Panel         lipgloss.Style
	PanelTitle    lipgloss.Style
	Label         lipgloss.Style
	LabelFocused  lipgloss.Style
	ReadOnly      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Input:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Kind:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Match:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // yellow
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Dim:       lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Help:          lipgloss.NewStyle().Faint(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		PanelTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18),
		LabelFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true).Width(18),
		ReadOnly:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
