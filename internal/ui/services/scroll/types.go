package scroll

// State holds viewport and wheel state
type State struct {
	Offset int
	Height int
	Total  int

	MouseScrollActive bool
	Version           int // bumped per wheel event; older idle ticks are ignored
}

// IdleMsg is delivered when the wheel has been quiet for the suppression window
type IdleMsg struct {
	Version int
}

// Event types
type ViewportChangedEvent struct {
	Offset int
	Height int
}

type ScrollActivityEvent struct {
	Active bool
}
