package devserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCatalog = `items:
  - id: notes.txt
    title: Notes
  - id: report.pdf
    title: Quarterly Report
    subtitle: /home/me/docs/report.pdf
  - id: projects
    title: Projects
    action_type: folder
    action_data: /home/me/projects
  - id: repl.sh
    title: Repl
  - id: notes.txt
    title: Duplicate
  - title: No id
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadedCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog(writeCatalog(t, sampleCatalog))
	_, err := c.Reload()
	require.NoError(t, err)
	return c
}
