//go:build e2e && unix

package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}

func TestSettingsPanelSavesToStore(t *testing.T) {
	t.Parallel()
	ws, tf := startLauncher(t)

	tf.Mark()
	require.NoError(t, tf.SendKeys(KeyCtrlS))
	require.True(t, tf.SeePlain("Max results"))
	require.True(t, tf.SeePlain("quickbar-background.png"), "the pinned image is shown")

	// Replace max results with 7
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 4; i++ {
		require.NoError(t, tf.SendKeys("\x7f"))
	}
	tf.Type("7")

	tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeePlain("Search apps and files"), "the panel closes after saving")

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(ws.Path("settings.toml"))
		return err == nil && contains(string(data), "max_results = 7")
	}, 3*time.Second, 25*time.Millisecond)
	data, err := os.ReadFile(ws.Path("settings.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "assets/quickbar-background.png")
}

func TestSettingsPanelCancel(t *testing.T) {
	t.Parallel()
	ws, tf := startLauncher(t)

	require.NoError(t, tf.SendKeys(KeyCtrlS))
	require.True(t, tf.SeePlain("Max results"))

	tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEsc))
	require.True(t, tf.SeePlain("Search apps and files"))

	_, err := os.Stat(ws.Path("settings.toml"))
	assert.True(t, os.IsNotExist(err), "cancel must not write settings")
}
