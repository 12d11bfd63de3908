package selection

// Source tells which input produced a selection change
type Source string

const (
	SourceReset    Source = "reset"
	SourceKeyboard Source = "keyboard"
	SourceMouse    Source = "mouse"
)

// State holds selection state
type State struct {
	Index int
	Count int

	// KeyboardScroll is consumed once by the scroll synchronizer.
	KeyboardScroll bool
	// KeyboardSelection stays set until the pointer takes over.
	KeyboardSelection bool
}

// Event types
type SelectionChangedEvent struct {
	OldIndex int
	NewIndex int
	Source   Source
}
