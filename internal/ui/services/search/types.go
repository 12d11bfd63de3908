package search

import "quickbar/internal/domain"

// State holds search-related state
type State struct {
	Token   uint64 // newest issued request
	Query   string // query of the newest issued request
	Shown   string // query the visible results belong to
	Results []domain.SearchResult
	Loading bool
}

// ResultsMsg carries a completed search back into the update loop
type ResultsMsg struct {
	Token   uint64
	Query   string
	Results []domain.SearchResult
	Err     error
}

// Event types
type SearchStartedEvent struct {
	Token uint64
	Query string
}

type ResultsReplacedEvent struct {
	Query string
	Count int
	Err   error
}
