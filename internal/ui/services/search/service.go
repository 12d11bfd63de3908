package search

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"quickbar/internal/domain"
	"quickbar/internal/ui/services/events"
)

// Searcher runs a query against the search service
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// Service issues searches and applies only the newest response
type Service struct {
	state    *State
	bus      events.EventBus
	searcher Searcher
	ctx      context.Context
}

// NewService creates a new search service. ctx bounds every request; it is
// cancelled on shutdown only, never to abandon a single search.
func NewService(ctx context.Context, bus events.EventBus, searcher Searcher) *Service {
	return &Service{
		state: &State{
			Results: []domain.SearchResult{},
		},
		bus:      bus,
		searcher: searcher,
		ctx:      ctx,
	}
}

// Dispatch issues a search for query. Newer dispatches make this one stale.
func (s *Service) Dispatch(query string) tea.Cmd {
	s.state.Token++
	token := s.state.Token
	s.state.Query = query
	s.state.Loading = true

	s.bus.Publish(SearchStartedEvent{Token: token, Query: query})

	ctx, searcher := s.ctx, s.searcher
	return func() tea.Msg {
		results, err := searcher.Search(ctx, query)
		return ResultsMsg{Token: token, Query: query, Results: results, Err: err}
	}
}

// Apply replaces the result set with msg if msg answers the newest request.
// Stale responses, successful or not, are dropped without a trace.
func (s *Service) Apply(msg ResultsMsg) bool {
	if msg.Token != s.state.Token {
		return false
	}

	s.state.Loading = false
	s.state.Shown = msg.Query
	if msg.Err != nil {
		log.Error("search failed", "query", msg.Query, "err", msg.Err)
		s.state.Results = []domain.SearchResult{}
	} else if msg.Results == nil {
		s.state.Results = []domain.SearchResult{}
	} else {
		s.state.Results = msg.Results
	}

	s.bus.Publish(ResultsReplacedEvent{
		Query: msg.Query,
		Count: len(s.state.Results),
		Err:   msg.Err,
	})
	return true
}

// SetLoading raises the loading flag ahead of a dispatch
func (s *Service) SetLoading() {
	s.state.Loading = true
}

// IsLoading reports whether the newest request is still outstanding
func (s *Service) IsLoading() bool {
	return s.state.Loading
}

// GetResults returns the visible result set
func (s *Service) GetResults() []domain.SearchResult {
	return s.state.Results
}

// GetResult returns the result at index
func (s *Service) GetResult(index int) (domain.SearchResult, bool) {
	if index < 0 || index >= len(s.state.Results) {
		return domain.SearchResult{}, false
	}
	return s.state.Results[index], true
}

// GetCount returns the number of visible results
func (s *Service) GetCount() int {
	return len(s.state.Results)
}

// GetToken returns the newest issued token
func (s *Service) GetToken() uint64 {
	return s.state.Token
}

// GetShownQuery returns the query the visible results answer
func (s *Service) GetShownQuery() string {
	return s.state.Shown
}
