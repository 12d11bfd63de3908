package devserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbar/internal/backend"
	"quickbar/internal/domain"
	"quickbar/internal/eventbus"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	bus := eventbus.New()
	t.Cleanup(bus.Close)

	srv := New(loadedCatalog(t), NewSettingsStore(filepath.Join(t.TempDir(), "settings.toml")), bus)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/search", backend.SearchRequest{Query: "rep"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out backend.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []string{"report.pdf", "repl.sh"}, ids(out.Results))
}

func TestSearchHonorsStoredMaxResults(t *testing.T) {
	srv, ts := newTestServer(t)
	require.NoError(t, srv.settings.Save(domain.Record{domain.KeyMaxResults: 1}))

	resp := postJSON(t, ts.URL+"/api/v1/search", backend.SearchRequest{Query: "rep"})
	var out backend.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Results, 1)
}

func TestSearchRejectsBadBody(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/v1/search", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExecuteRecordsUse(t *testing.T) {
	srv, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/execute", backend.ExecuteRequest{ID: "notes.txt", Query: "no"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, srv.catalog.UseCount("notes.txt"))

	resp = postJSON(t, ts.URL+"/api/v1/execute", backend.ExecuteRequest{ID: "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSettingsEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	rec := domain.Record{domain.KeyMaxResults: 20, domain.KeyBgImage: "x.png"}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/settings", bytes.NewReader(data))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/v1/settings")
	require.NoError(t, err)
	defer resp.Body.Close()
	got := domain.Record{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.EqualValues(t, 20, got[domain.KeyMaxResults])
	assert.Equal(t, "x.png", got[domain.KeyBgImage])
}

func TestRefreshRereadsCatalog(t *testing.T) {
	srv, ts := newTestServer(t)
	require.NoError(t, os.WriteFile(srv.catalog.Path(), []byte("items:\n  - id: fresh.exe\n"), 0644))

	resp := postJSON(t, ts.URL+"/api/v1/refresh", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"fresh.exe"}, ids(srv.catalog.Search("fresh", 10)))
}

func TestEventStreamDeliversWindowFocus(t *testing.T) {
	_, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	focus := postJSON(t, ts.URL+"/api/v1/window/focus", nil)
	require.Equal(t, http.StatusNoContent, focus.StatusCode)

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan())
	var ev backend.WireEvent
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
	assert.Equal(t, string(domain.EventWindowFocused), ev.Type)
}

func TestWatchCatalogReloadsOnWrite(t *testing.T) {
	srv, _ := newTestServer(t)

	refreshed := make(chan int, 4)
	unsubscribe := srv.bus.Subscribe(domain.EventIndexRefreshed, func(e eventbus.DomainEvent) {
		refreshed <- e.(domain.IndexRefreshedEvent).Items
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.WatchCatalog(ctx) }()

	// Give the watcher a moment to register.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(srv.catalog.Path(), []byte("items:\n  - id: a\n  - id: b\n"), 0644))

	// Truncation and write may arrive as separate events.
	deadline := time.After(3 * time.Second)
	for got := -1; got != 2; {
		select {
		case got = <-refreshed:
		case <-deadline:
			t.Fatal("catalog was not reloaded")
		}
	}

	cancel()
	require.NoError(t, <-done)
}
