package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quickbar/internal/domain"
	"quickbar/internal/ui/views"
)

const (
	fieldMaxResults = iota
	fieldOpacity
	fieldBlur
	fieldAutostart
	fieldCount
)

// settingsForm binds the settings draft to text inputs. Numeric fields are
// edited as strings and coerced by the settings service on save.
type settingsForm struct {
	inputs    [fieldAutostart]textinput.Model
	autostart bool
	focus     int
}

func newSettingsForm() *settingsForm {
	f := &settingsForm{}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 8
		in.Width = 10
		f.inputs[i] = in
	}
	f.inputs[fieldMaxResults].Placeholder = "100"
	f.inputs[fieldOpacity].Placeholder = "0.85"
	f.inputs[fieldBlur].Placeholder = "10"
	return f
}

// Load fills the form from a draft and focuses the first field
func (f *settingsForm) Load(s domain.Settings) tea.Cmd {
	f.inputs[fieldMaxResults].SetValue(strconv.Itoa(s.MaxResults))
	f.inputs[fieldOpacity].SetValue(strconv.FormatFloat(s.BgOpacity, 'f', -1, 64))
	f.inputs[fieldBlur].SetValue(strconv.Itoa(s.BgBlur))
	f.autostart = s.EnableAutostart
	return f.setFocus(fieldMaxResults)
}

// Values returns the form as a loosely typed record
func (f *settingsForm) Values() domain.Record {
	return domain.Record{
		domain.KeyMaxResults:      f.inputs[fieldMaxResults].Value(),
		domain.KeyBgOpacity:       f.inputs[fieldOpacity].Value(),
		domain.KeyBgBlur:          f.inputs[fieldBlur].Value(),
		domain.KeyEnableAutostart: f.autostart,
	}
}

func (f *settingsForm) Next() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *settingsForm) Prev() tea.Cmd {
	return f.setFocus((f.focus - 1 + fieldCount) % fieldCount)
}

// Toggle flips autostart when it has focus
func (f *settingsForm) Toggle() bool {
	if f.focus != fieldAutostart {
		return false
	}
	f.autostart = !f.autostart
	return true
}

// Update forwards a key to the focused text input
func (f *settingsForm) Update(msg tea.Msg) tea.Cmd {
	if f.focus >= fieldAutostart {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *settingsForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// Fields describes the form for the settings renderer
func (f *settingsForm) Fields() []views.SettingsField {
	return []views.SettingsField{
		{Label: "Max results", View: f.inputs[fieldMaxResults].View()},
		{Label: "Opacity (0-1)", View: f.inputs[fieldOpacity].View()},
		{Label: "Blur", View: f.inputs[fieldBlur].View()},
		{Label: "Autostart", View: views.Toggle(f.autostart)},
	}
}
