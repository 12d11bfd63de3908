package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

type helpSection struct {
	title string
	rows  [][2]string
}

// HelpRenderer builds the full key reference shown in the pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Render lists every binding of both key maps, plus the mouse gestures
func (r *HelpRenderer) Render(keys keyMap, form settingsKeyMap) string {
	sections := []helpSection{
		{"Search", append([][2]string{{"type", "search as you type"}},
			bindingRows(keys.Up, keys.Down, keys.Execute, keys.Escape)...)},
		{"Mouse", [][2]string{
			{"move", "select the row under the pointer"},
			{"wheel", "scroll the list; the selection stays put"},
		}},
		{"Settings", bindingRows(keys.Settings, form.Next, form.Prev, form.Toggle, form.Save, form.Cancel)},
		{"Other", bindingRows(keys.Refresh, keys.Help, keys.Pager, keys.Quit)},
	}

	var b strings.Builder
	b.WriteString(r.title.Render("quickbar"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString(r.section.Render(s.title))
		b.WriteString("\n")
		for _, row := range s.rows {
			fmt.Fprintf(&b, "  %s  %s\n", r.key.Render(fmt.Sprintf("%-12s", row[0])), r.desc.Render(row[1]))
		}
	}
	return b.String()
}

func bindingRows(bindings ...key.Binding) [][2]string {
	rows := make([][2]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		rows = append(rows, [2]string{h.Key, h.Desc})
	}
	return rows
}

// runPager hands the terminal to ov until the user closes it
func runPager(p *tea.Program, content string) error {
	if p == nil {
		return errors.New("program not set")
	}
	if err := p.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// ov needs a moment to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = p.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)
	return root.Run()
}
