package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"quickbar/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	InputView string // rendered query input
	Spinner   string // rendered spinner, shown while loading
	Loading   bool

	Results           []domain.SearchResult
	SelectedIndex     int
	HasSelection      bool
	KeyboardSelection bool
	ViewportOffset    int
	ViewportHeight    int
	Query             string // query the results answer, for highlighting

	StatusMessage string
	StatusIsError bool

	Settings *SettingsPanel // nil while the panel is closed

	HelpModel help.Model
	KeyMap    help.KeyMap
}

// Layout constants shared with mouse hit-testing
const (
	HeaderLines = 2 // input line and separator
	StatusLines = 1
)

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	resultRender  *ResultRenderer
	settingsPanel *SettingsRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		resultRender:  NewResultRenderer(styles),
		settingsPanel: NewSettingsRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// ListHeight returns how many result rows fit in a terminal of height
// when the help takes helpLines
func ListHeight(height, helpLines int) int {
	h := height - HeaderLines - StatusLines - helpLines
	if h < 1 {
		h = 1
	}
	return h
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder

	// Query line with loading indicator
	b.WriteString(r.styles.Prompt.Render("❯ "))
	b.WriteString(state.InputView)
	if state.Loading {
		b.WriteString(" ")
		b.WriteString(r.styles.StatusLoading.Render(state.Spinner))
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Separator.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	listHeight := state.ViewportHeight
	if listHeight <= 0 {
		listHeight = ListHeight(state.Height, 1)
	}

	var body string
	if state.Settings != nil {
		body = r.settingsPanel.Render(*state.Settings, width, listHeight)
	} else {
		body = r.renderList(state, width, listHeight)
	}
	b.WriteString(body)
	b.WriteString("\n")

	b.WriteString(r.renderStatus(state, width))
	b.WriteString("\n")
	if state.KeyMap != nil {
		b.WriteString(r.styles.Help.Render(state.HelpModel.View(state.KeyMap)))
	}

	return b.String()
}

func (r *Renderer) renderList(state ViewState, width, height int) string {
	lines := make([]string, 0, height)

	start := state.ViewportOffset
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(state.Results) {
		end = len(state.Results)
	}
	for i := start; i < end; i++ {
		selected := state.HasSelection && i == state.SelectedIndex
		lines = append(lines, r.resultRender.RenderResult(
			state.Results[i], selected, state.KeyboardSelection, state.Query, width))
	}

	if len(state.Results) == 0 && !state.Loading {
		lines = append(lines, r.styles.Dim.Render("  no results"))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderStatus(state ViewState, width int) string {
	var left string
	switch {
	case state.Settings != nil:
		left = "settings"
	case len(state.Results) == 0:
		left = "0 results"
	case state.HasSelection:
		left = fmt.Sprintf("%d/%d", state.SelectedIndex+1, len(state.Results))
	default:
		left = fmt.Sprintf("%d results", len(state.Results))
	}
	left = r.styles.Status.Render(left)

	if state.StatusMessage == "" {
		return left
	}
	style := r.styles.Status
	if state.StatusIsError {
		style = r.styles.StatusError
	}
	msg := style.Render(state.StatusMessage)
	gap := width - lipgloss.Width(left) - lipgloss.Width(msg)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + msg
}
