package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SettingsField is one editable line of the settings panel
type SettingsField struct {
	Label string
	View  string // rendered input or toggle
}

// SettingsPanel contains what the settings panel shows
type SettingsPanel struct {
	Fields  []SettingsField
	Focus   int
	Image   string
	Loading bool
	Saving  bool
	Err     error
}

// SettingsRenderer renders the settings panel as a centered popup
type SettingsRenderer struct {
	styles *Styles
}

// NewSettingsRenderer creates a new settings renderer
func NewSettingsRenderer(styles *Styles) *SettingsRenderer {
	return &SettingsRenderer{styles: styles}
}

// Render draws the panel centered in a width x height area
func (sr *SettingsRenderer) Render(p SettingsPanel, width, height int) string {
	var b strings.Builder
	b.WriteString(sr.styles.PanelTitle.Render("Settings"))
	b.WriteString("\n")

	for i, f := range p.Fields {
		label := sr.styles.Label.Render(f.Label)
		if i == p.Focus {
			label = sr.styles.LabelFocused.Render(f.Label)
		}
		b.WriteString(label)
		b.WriteString(f.View)
		b.WriteString("\n")
	}
	b.WriteString(sr.styles.Label.Render("Background"))
	b.WriteString(sr.styles.ReadOnly.Render(p.Image))
	b.WriteString("\n\n")

	switch {
	case p.Loading:
		b.WriteString(sr.styles.StatusLoading.Render("loading…"))
	case p.Saving:
		b.WriteString(sr.styles.StatusLoading.Render("saving…"))
	case p.Err != nil:
		b.WriteString(sr.styles.StatusError.Render(fmt.Sprintf("error: %v", p.Err)))
	default:
		b.WriteString(sr.styles.Help.Render("enter save • esc cancel • tab next field"))
	}

	panel := sr.styles.Panel.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

// Toggle renders a boolean field
func Toggle(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
