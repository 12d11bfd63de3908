//go:build e2e && unix

package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const defaultCatalog = `items:
  - id: firefox
    title: Firefox
    subtitle: Web browser
    action_type: app
  - id: ~/Documents/report.pdf
    title: report.pdf
    file_type: pdf
  - id: ~/Documents/notes.md
    title: notes.md
  - id: ~/Documents/recipes.txt
    title: recipes.txt
`

const defaultConfig = `version = 1

[ui]
debounce = "50ms"
on_hide = "quit"
`

// Workspace is a temporary directory holding a catalog, a config file and
// the devserver that serves them
type Workspace struct {
	t    *testing.T
	Dir  string
	addr string
	srv  *exec.Cmd
}

// NewWorkspace writes the default catalog and config and starts a devserver
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws := &Workspace{t: t, Dir: t.TempDir()}
	ws.WriteCatalog(defaultCatalog)
	require.NoError(t, os.WriteFile(ws.ConfigPath(), []byte(defaultConfig), 0644))
	ws.startDevserver()
	t.Cleanup(ws.stop)
	return ws
}

// Path joins name onto the workspace directory
func (ws *Workspace) Path(name string) string {
	return filepath.Join(ws.Dir, name)
}

// ConfigPath is the launcher config file
func (ws *Workspace) ConfigPath() string {
	return ws.Path("config.toml")
}

// BackendURL is where the devserver listens
func (ws *Workspace) BackendURL() string {
	return "http://" + ws.addr
}

// WriteCatalog replaces the catalog file
func (ws *Workspace) WriteCatalog(content string) {
	ws.t.Helper()
	require.NoError(ws.t, os.WriteFile(ws.Path("catalog.yaml"), []byte(content), 0644))
}

// Post sends an empty POST to a devserver path
func (ws *Workspace) Post(path string) {
	ws.t.Helper()
	resp, err := http.Post(ws.BackendURL()+path, "application/json", nil)
	require.NoError(ws.t, err)
	resp.Body.Close()
	require.Less(ws.t, resp.StatusCode, 300)
}

func (ws *Workspace) startDevserver() {
	ws.t.Helper()
	ws.addr = freeAddr(ws.t)
	ws.srv = exec.Command(binPath, "devserver",
		"--addr", ws.addr,
		"--catalog", ws.Path("catalog.yaml"),
		"--settings", ws.Path("settings.toml"),
		"--log-file", ws.Path("devserver.log"),
	)
	require.NoError(ws.t, ws.srv.Start())

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(ws.BackendURL() + "/health")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
	ws.t.Fatalf("devserver did not come up on %s", ws.addr)
}

func (ws *Workspace) stop() {
	if ws.srv != nil && ws.srv.Process != nil {
		_ = ws.srv.Process.Kill()
		_, _ = ws.srv.Process.Wait()
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return fmt.Sprintf("127.0.0.1:%d", l.Addr().(*net.TCPAddr).Port)
}

// startLauncher opens a workspace and runs the launcher in it
func startLauncher(t *testing.T) (*Workspace, *TUITestFramework) {
	t.Helper()
	ws := NewWorkspace(t)
	tf := NewTUITest(t, ws)
	t.Cleanup(func() {
		tf.DumpTailOnFail(t, "tail", 4096)
		tf.Cleanup()
	})
	require.NoError(t, tf.StartApp())
	require.True(t, tf.SeePlain("Search apps and files"), "launcher should render the query line")
	return ws, tf
}
