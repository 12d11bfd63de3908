package devserver

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"quickbar/internal/domain"
)

// catalogFile is the YAML layout of the catalog
type catalogFile struct {
	Items []catalogEntry `yaml:"items"`
}

type catalogEntry struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Subtitle   string `yaml:"subtitle"`
	ActionType string `yaml:"action_type"`
	ActionData string `yaml:"action_data"`
	FileType   string `yaml:"file_type"`
}

type usage struct {
	count    int
	lastUsed time.Time
}

// Catalog is the in-memory list of launchable items plus usage counters
type Catalog struct {
	mu    sync.RWMutex
	path  string
	items []domain.SearchResult
	usage map[string]usage
}

// NewCatalog creates an empty catalog backed by path
func NewCatalog(path string) *Catalog {
	return &Catalog{
		path:  path,
		usage: make(map[string]usage),
	}
}

// Path returns the backing file
func (c *Catalog) Path() string {
	return c.path
}

// Reload re-reads the catalog file. Usage counters survive the reload.
func (c *Catalog) Reload() (int, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog: %w", err)
	}
	items, err := parseCatalog(data)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return len(items), nil
}

// Replace swaps the item list without touching the file
func (c *Catalog) Replace(items []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]domain.SearchResult(nil), items...)
}

func parseCatalog(data []byte) ([]domain.SearchResult, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	items := make([]domain.SearchResult, 0, len(file.Items))
	seen := make(map[string]bool, len(file.Items))
	for _, e := range file.Items {
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true

		title := e.Title
		if title == "" {
			title = e.ID
		}
		action := e.ActionType
		if action == "" {
			action = domain.ActionFile
		}
		data := e.ActionData
		if data == "" {
			data = e.ID
		}
		subtitle := e.Subtitle
		if subtitle == "" {
			subtitle = e.ID
		}
		items = append(items, domain.SearchResult{
			ID:         e.ID,
			Title:      title,
			Subtitle:   subtitle,
			ActionType: action,
			ActionData: data,
			FileType:   e.FileType,
		})
	}
	return items, nil
}

// Search returns up to limit items. An empty query lists recently used items
// by use count; otherwise items whose title or id contains the query are
// returned in catalog order.
func (c *Catalog) Search(query string, limit int) []domain.SearchResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []domain.SearchResult

	if q == "" {
		for _, item := range c.items {
			if u := c.usage[item.ID]; u.count > 0 {
				item.Score = float64(u.count)
				out = append(out, item)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score > out[j].Score
		})
	} else {
		for _, item := range c.items {
			if strings.Contains(strings.ToLower(item.Title), q) || strings.Contains(strings.ToLower(item.ID), q) {
				item.Score = float64(c.usage[item.ID].count)
				out = append(out, item)
			}
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []domain.SearchResult{}
	}
	return out
}

// RecordUse bumps the usage counter for id. Unknown ids are reported.
func (c *Catalog) RecordUse(id string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for _, item := range c.items {
		if item.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	u := c.usage[id]
	u.count++
	u.lastUsed = now
	c.usage[id] = u
	return true
}

// UseCount returns how often id was executed
func (c *Catalog) UseCount(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.usage[id].count
}
