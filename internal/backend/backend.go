// Package backend is the launcher's view of the search service: four
// request/response operations, an index refresh, and a push event stream.
package backend

import (
	"context"
	"fmt"

	"quickbar/internal/domain"
	"quickbar/internal/eventbus"
)

// Service is the request/response surface of the search service.
// Search may be called concurrently with itself; nothing is cancelled
// server-side.
type Service interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
	ExecuteItem(ctx context.Context, id, query string) error
	GetSettings(ctx context.Context) (domain.Record, error)
	SaveSettings(ctx context.Context, record domain.Record) error
	RefreshIndex(ctx context.Context) error
}

// Events is the push side of the service
type Events interface {
	// Subscribe returns a disposer that removes the handler.
	Subscribe(eventType eventbus.EventType, handler eventbus.EventHandler) func()
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Code, e.Body)
}
