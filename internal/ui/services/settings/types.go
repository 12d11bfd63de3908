package settings

import "quickbar/internal/domain"

// State holds the settings panel session
type State struct {
	Open    bool
	Loading bool
	Saving  bool
	Draft   domain.Settings
	Err     error // last load or save failure, kept for the status line
	Session int   // bumped per open; replies from older sessions are ignored
}

// LoadedMsg carries the fetched settings record
type LoadedMsg struct {
	Session int
	Record  domain.Record
	Err     error
}

// SavedMsg reports the outcome of a save
type SavedMsg struct {
	Session int
	Err     error
}

// Event types
type PanelOpenedEvent struct{}

type DraftLoadedEvent struct {
	Draft domain.Settings
}

type SettingsSavedEvent struct {
	Settings domain.Settings
}

type PanelClosedEvent struct {
	Saved bool
}
