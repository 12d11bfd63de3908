package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"quickbar/internal/domain"
	"quickbar/internal/eventbus"
)

// RequestIDHeader carries a per-call correlation id
const RequestIDHeader = "X-Request-ID"

// streamRetryDelay is the pause between event stream reconnects
const streamRetryDelay = 2 * time.Second

// SearchRequest is the body of POST /api/v1/search
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the body returned by POST /api/v1/search
type SearchResponse struct {
	Results []domain.SearchResult `json:"results"`
}

// ExecuteRequest is the body of POST /api/v1/execute
type ExecuteRequest struct {
	ID    string `json:"id"`
	Query string `json:"query"`
}

// WireEvent is one line of the NDJSON event stream
type WireEvent struct {
	Type  string `json:"type"`
	Items int    `json:"items,omitempty"`
}

// Client talks to the search service over HTTP JSON
type Client struct {
	baseURL *url.URL
	http    *http.Client
	stream  *http.Client
	timeout time.Duration
	bus     eventbus.EventBus
}

// NewClient creates a client for the service at rawURL. Push events read by
// RunEventStream are published on bus.
func NewClient(rawURL string, timeout time.Duration, bus eventbus.EventBus) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", rawURL)
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{},
		stream:  &http.Client{},
		timeout: timeout,
		bus:     bus,
	}, nil
}

// Search runs a query. The empty query is sent like any other.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	var resp SearchResponse
	if err := c.do(ctx, "search", http.MethodPost, "/api/v1/search", SearchRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []domain.SearchResult{}, nil
	}
	return resp.Results, nil
}

// ExecuteItem asks the service to launch id
func (c *Client) ExecuteItem(ctx context.Context, id, query string) error {
	return c.do(ctx, "execute_item", http.MethodPost, "/api/v1/execute", ExecuteRequest{ID: id, Query: query}, nil)
}

// GetSettings fetches the persisted settings record. Fields may be missing.
func (c *Client) GetSettings(ctx context.Context) (domain.Record, error) {
	rec := domain.Record{}
	if err := c.do(ctx, "get_settings", http.MethodGet, "/api/v1/settings", nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SaveSettings persists the full settings record
func (c *Client) SaveSettings(ctx context.Context, record domain.Record) error {
	return c.do(ctx, "save_settings", http.MethodPut, "/api/v1/settings", record, nil)
}

// RefreshIndex asks the service to rebuild its catalog
func (c *Client) RefreshIndex(ctx context.Context) error {
	return c.do(ctx, "refresh_index", http.MethodPost, "/api/v1/refresh", nil, nil)
}

// Heartbeat checks that the service answers
func (c *Client) Heartbeat(ctx context.Context) error {
	var body map[string]string
	return c.do(ctx, "health", http.MethodGet, "/health", nil, &body)
}

// Subscribe registers a handler for pushed events
func (c *Client) Subscribe(eventType eventbus.EventType, handler eventbus.EventHandler) func() {
	return c.bus.Subscribe(eventType, handler)
}

// RunEventStream keeps the push stream open until ctx is done, reconnecting
// after failures.
func (c *Client) RunEventStream(ctx context.Context) error {
	for {
		err := c.StreamEvents(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			log.Warn("event stream dropped", "err", err)
			c.bus.Publish(domain.StreamErrorEvent{Err: err})
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(streamRetryDelay):
		}
	}
}

// StreamEvents reads the NDJSON event stream once, publishing every known
// event, and returns when the stream ends.
func (c *Client) StreamEvents(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.stream.Do(req)
	if err != nil {
		return fmt.Errorf("events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return statusError("events", resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev WireEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			log.Warn("ignoring malformed event", "line", string(line), "err", err)
			continue
		}
		eventType, ok := domain.ParseEventType(ev.Type)
		if !ok {
			log.Debug("ignoring unknown event", "type", ev.Type)
			continue
		}
		switch eventType {
		case domain.EventWindowFocused:
			c.bus.Publish(domain.WindowFocusedEvent{})
		case domain.EventIndexRefreshed:
			c.bus.Publish(domain.IndexRefreshedEvent{Items: ev.Items})
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("events: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return statusError(op, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func statusError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
}
