package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestHelpListsEveryBinding(t *testing.T) {
	keys, form := newKeyMap(), newSettingsKeyMap()
	out := ansi.Strip(NewHelpRenderer().Render(keys, form))

	for _, group := range keys.FullHelp() {
		for _, kb := range group {
			assert.Contains(t, out, kb.Help().Key)
			assert.Contains(t, out, kb.Help().Desc)
		}
	}
	for _, kb := range []string{"tab", "shift+tab", "space"} {
		assert.Contains(t, out, kb)
	}
	assert.Contains(t, out, "wheel")
}

func TestPagerNeedsProgram(t *testing.T) {
	assert.Error(t, runPager(nil, "x"))
	m := newModelHarness(t).m
	assert.Nil(t, m.showHelpPager())
}
