package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"quickbar/internal/config"
	"quickbar/internal/ui/coordinator"
	"quickbar/internal/ui/services/dispatch"
	"quickbar/internal/ui/services/scroll"
	"quickbar/internal/ui/services/search"
	"quickbar/internal/ui/services/settings"
	"quickbar/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	config *config.Config
	coord  *coordinator.Coordinator

	// UI-specific state not owned by the services
	width    int
	height   int
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	formKeys settingsKeyMap
	form     *settingsForm
	renderer *views.Renderer
	helpText *HelpRenderer

	// selectAll marks the query as selected after the launcher was
	// summoned: the next printable key replaces it
	selectAll bool

	// Last pointer position, for motion deltas
	mouseX    int
	mouseY    int
	mouseSeen bool

	status      string
	statusError bool
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, coord *coordinator.Coordinator) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search apps and files"
	input.Focus()

	m := &Model{
		config:   cfg,
		coord:    coord,
		input:    input,
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		help:     help.New(),
		keys:     newKeyMap(),
		formKeys: newSettingsKeyMap(),
		form:     newSettingsForm(),
		renderer: views.NewRenderer(),
		helpText: NewHelpRenderer(),
	}
	m.input.TextStyle = m.renderer.Styles().Input

	// The dispatcher reads the live input value when the quiet period ends
	coord.SetQueryFunction(func() string {
		return m.input.Value()
	})
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init issues the initial search and starts the cursor and spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.coord.Init())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.FocusMsg, tea.ResumeMsg, coordinator.WindowFocusedMsg:
		return m, m.summon()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dispatch.QuietMsg:
		return m, m.coord.Dispatch.HandleQuiet(msg)

	case search.ResultsMsg:
		m.coord.Search.Apply(msg)
		return m, nil

	case scroll.IdleMsg:
		m.coord.Scroll.HandleIdle(msg)
		return m, nil

	case settings.LoadedMsg:
		m.coord.Settings.HandleLoaded(msg)
		if m.coord.Settings.IsOpen() && !m.coord.Settings.IsLoading() {
			return m, m.form.Load(m.coord.Settings.GetDraft())
		}
		return m, nil

	case settings.SavedMsg:
		cmd := m.coord.HandleSettingsSaved(msg)
		if !m.coord.Settings.IsOpen() {
			return m, tea.Batch(cmd, m.input.Focus())
		}
		return m, cmd

	case coordinator.ExecutedMsg:
		if m.coord.HandleExecuted(msg) {
			return m, m.hide()
		}
		m.setStatus("launch failed", true)
		return m, nil

	case coordinator.RefreshedMsg:
		if msg.Err != nil {
			m.setStatus("refresh failed", true)
		} else {
			m.setStatus("index rebuilt", false)
		}
		return m, m.coord.HandleRefreshed(msg)

	case coordinator.IndexRefreshedMsg:
		m.setStatus(fmt.Sprintf("%d items indexed", msg.Items), false)
		return m, m.coord.Reissue()

	case coordinator.StreamErrorMsg:
		m.setStatus("reconnecting…", false)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Error("help pager failed", "err", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tea.ClearScreen
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		InputView:      m.input.View(),
		Spinner:        m.spinner.View(),
		Loading:        m.coord.Search.IsLoading(),
		Results:        m.coord.Search.GetResults(),
		ViewportOffset: m.coord.Scroll.GetOffset(),
		ViewportHeight: m.coord.Scroll.GetHeight(),
		Query:          m.coord.Search.GetShownQuery(),
		StatusMessage:  m.status,
		StatusIsError:  m.statusError,
		HelpModel:      m.help,
		KeyMap:         m.keys,
	}
	state.SelectedIndex, state.HasSelection = m.coord.Selection.GetIndex()
	state.KeyboardSelection = m.coord.Selection.IsKeyboardSelection()

	if m.coord.Settings.IsOpen() {
		draft := m.coord.Settings.GetDraft()
		state.Settings = &views.SettingsPanel{
			Fields:  m.form.Fields(),
			Focus:   m.form.focus,
			Image:   draft.BgImage,
			Loading: m.coord.Settings.IsLoading(),
			Saving:  m.coord.Settings.IsSaving(),
			Err:     m.coord.Settings.GetError(),
		}
		state.KeyMap = m.formKeys
	}

	return m.renderer.Render(state)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if m.coord.Settings.IsOpen() {
		return m.handleSettingsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Pager):
		return m.showHelpPager()
	case key.Matches(msg, m.keys.Settings):
		return m.openSettings()
	case key.Matches(msg, m.keys.Refresh):
		return m.coord.Refresh()
	case key.Matches(msg, m.keys.Up):
		m.selectAll = false
		m.coord.Up()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.selectAll = false
		m.coord.Down()
		return nil
	case key.Matches(msg, m.keys.Execute):
		m.selectAll = false
		return m.coord.Execute()
	case key.Matches(msg, m.keys.Escape):
		return m.escape()
	case key.Matches(msg, m.keys.Help) && m.input.Value() == "":
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil
	}

	return m.editQuery(msg)
}

// editQuery feeds a key to the query input and reports text changes
func (m *Model) editQuery(msg tea.KeyMsg) tea.Cmd {
	before := m.input.Value()

	if m.selectAll {
		m.selectAll = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			m.input.SetValue("")
		case tea.KeyBackspace, tea.KeyDelete:
			m.input.SetValue("")
			if before == "" {
				return nil
			}
			return m.coord.TextChanged("")
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.coord.TextChanged(m.input.Value()))
}

func (m *Model) escape() tea.Cmd {
	cmd, hide := m.coord.Escape(m.input.Value())
	if hide {
		return m.hide()
	}
	m.input.SetValue("")
	m.selectAll = false
	return cmd
}

// hide gets the launcher out of the way
func (m *Model) hide() tea.Cmd {
	if m.config != nil && m.config.UI.OnHide == config.HideSuspend {
		return tea.Suspend
	}
	return tea.Quit
}

// summon focuses the query with its content selected
func (m *Model) summon() tea.Cmd {
	m.setStatus("", false)
	if m.coord.Settings.IsOpen() {
		return nil
	}
	m.selectAll = m.input.Value() != ""
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) openSettings() tea.Cmd {
	cmd := m.coord.Settings.Open()
	if cmd == nil {
		return nil
	}
	m.input.Blur()
	m.selectAll = false
	return tea.Batch(cmd, m.form.Load(m.coord.Settings.GetDraft()))
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.coord.Settings.Cancel()
		return m.input.Focus()
	case key.Matches(msg, m.formKeys.Save):
		return m.coord.Settings.Save(m.form.Values())
	case key.Matches(msg, m.formKeys.Next):
		return m.form.Next()
	case key.Matches(msg, m.formKeys.Prev):
		return m.form.Prev()
	case key.Matches(msg, m.formKeys.Toggle):
		if m.form.Toggle() {
			return nil
		}
	}
	return m.form.Update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.coord.Settings.IsOpen() {
		return nil
	}

	// The first event has no previous position and counts as movement
	dx, dy := 1, 1
	if m.mouseSeen {
		dx, dy = msg.X-m.mouseX, msg.Y-m.mouseY
	}
	m.mouseX, m.mouseY, m.mouseSeen = msg.X, msg.Y, true

	line := msg.Y - views.HeaderLines
	if line < 0 || line >= m.coord.Scroll.GetHeight() {
		return nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.coord.Wheel(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		return m.coord.Wheel(1)
	case msg.Action == tea.MouseActionMotion:
		m.coord.Hover(line, dx, dy)
	}
	return nil
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

// layout sizes the result list to what is left of the screen
func (m *Model) layout() {
	if m.height == 0 {
		return
	}
	helpLines := lipgloss.Height(m.help.View(m.keys))
	m.coord.Scroll.SetViewportHeight(views.ListHeight(m.height, helpLines))
}

// showHelpPager pauses rendering while the key reference is open in ov
func (m *Model) showHelpPager() tea.Cmd {
	if m.program == nil {
		return nil
	}
	content := m.helpText.Render(m.keys, m.formKeys)
	p := m.program
	return func() tea.Msg {
		p.Send(pauseRenderingMsg{})
		err := runPager(p, content)
		p.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}
