package dispatch

// State holds the debounce state
type State struct {
	Query   string // latest raw input
	Version int    // bumped on every change; older ticks are ignored
	Pending bool
}

// QuietMsg is delivered when a debounce window elapses
type QuietMsg struct {
	Version int
}

// Event types
type QueryChangedEvent struct {
	Query string
}

type QueryDispatchedEvent struct {
	Query string
}
