package coordinator

// ExecutedMsg reports the outcome of launching a result
type ExecutedMsg struct {
	ID    string
	Query string
	Err   error
}

// RefreshedMsg reports the outcome of an index refresh
type RefreshedMsg struct {
	Err error
}

// WindowFocusedMsg is sent when the launcher is summoned
type WindowFocusedMsg struct{}

// IndexRefreshedMsg is sent when the backend rebuilt its catalog
type IndexRefreshedMsg struct {
	Items int
}

// StreamErrorMsg is sent when the push event stream drops
type StreamErrorMsg struct {
	Err error
}
