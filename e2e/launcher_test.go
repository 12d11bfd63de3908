//go:build e2e && unix

package main

import (
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err)

	output := string(out)
	assert.Contains(t, output, "Usage")
	assert.Contains(t, output, "--backend")
	assert.Contains(t, output, "devserver")
}

func TestTypingShowsMatches(t *testing.T) {
	t.Parallel()
	_, tf := startLauncher(t)

	tf.Mark()
	tf.Type("re")
	require.True(t, tf.SeePlain("report.pdf"))
	assert.True(t, tf.SeePlain("recipes.txt"))

	tf.Mark()
	tf.Type("p")
	require.True(t, tf.SeePlain("1/1"), "only one row should match")
}

func TestEscapeClearsThenQuits(t *testing.T) {
	t.Parallel()
	_, tf := startLauncher(t)

	tf.Type("fire")
	require.True(t, tf.SeePlain("Firefox"))

	tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEsc))
	require.True(t, tf.SeePlain("Search apps and files"), "placeholder returns once the query is cleared")

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, tf.SendKeys(KeyEsc))
	require.NoError(t, tf.WaitExit(3*time.Second))
}

func TestExecuteQuits(t *testing.T) {
	t.Parallel()
	_, tf := startLauncher(t)

	tf.Type("notes")
	require.True(t, tf.SeePlain("notes.md"))
	require.True(t, tf.SeePlain("1/1"))

	require.NoError(t, tf.SendKeys(KeyEnter))
	require.NoError(t, tf.WaitExit(3*time.Second))
}

func TestCtrlCQuits(t *testing.T) {
	t.Parallel()
	_, tf := startLauncher(t)

	tf.Type("abc")
	require.NoError(t, tf.SendKeys(KeyCtrlC))
	require.NoError(t, tf.WaitExit(3*time.Second))
}

func TestArrowKeysMoveSelection(t *testing.T) {
	t.Parallel()
	_, tf := startLauncher(t)

	tf.Type("re")
	require.True(t, tf.SeePlain("1/2"))

	tf.Mark()
	require.NoError(t, tf.SendKeys(KeyDown))
	require.True(t, tf.SeePlain("2/2"))

	tf.Mark()
	require.NoError(t, tf.SendKeys(KeyDown))
	require.True(t, tf.SeePlain("1/2"), "selection wraps to the top")
}

func TestQuestionMarkShowsFullHelp(t *testing.T) {
	t.Parallel()
	_, tf := startLauncher(t)

	tf.Mark()
	tf.Type("?")
	require.True(t, tf.WaitFor(func(s string) bool {
		return strings.Contains(s, "reindex") && strings.Contains(s, "quit")
	}, 3*time.Second))
}
