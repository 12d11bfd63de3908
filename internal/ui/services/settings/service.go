package settings

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"quickbar/internal/domain"
	"quickbar/internal/ui/services/events"
)

// Store is the persisted settings record
type Store interface {
	GetSettings(ctx context.Context) (domain.Record, error)
	SaveSettings(ctx context.Context, record domain.Record) error
}

// Service runs one settings panel session at a time
type Service struct {
	state *State
	bus   events.EventBus
	store Store
	ctx   context.Context
}

// NewService creates a new settings service
func NewService(ctx context.Context, bus events.EventBus, store Store) *Service {
	return &Service{
		state: &State{},
		bus:   bus,
		store: store,
		ctx:   ctx,
	}
}

// Open starts a session with defaults and fetches the stored record.
// Opening an open panel does nothing.
func (s *Service) Open() tea.Cmd {
	if s.state.Open {
		return nil
	}
	s.state.Session++
	s.state.Open = true
	s.state.Loading = true
	s.state.Saving = false
	s.state.Err = nil
	s.state.Draft = domain.DefaultSettings()

	s.bus.Publish(PanelOpenedEvent{})

	session, ctx, store := s.state.Session, s.ctx, s.store
	return func() tea.Msg {
		rec, err := store.GetSettings(ctx)
		return LoadedMsg{Session: session, Record: rec, Err: err}
	}
}

// HandleLoaded merges the fetched record over the defaults. A failed load
// leaves the defaults in place.
func (s *Service) HandleLoaded(msg LoadedMsg) {
	if !s.state.Open || msg.Session != s.state.Session {
		return
	}
	s.state.Loading = false

	if msg.Err != nil {
		log.Error("failed to load settings", "err", msg.Err)
		s.state.Err = msg.Err
		s.state.Draft = Pin(s.state.Draft)
	} else {
		s.state.Draft = Merge(domain.DefaultSettings(), msg.Record)
	}

	s.bus.Publish(DraftLoadedEvent{Draft: s.state.Draft})
}

// Update replaces the draft with form values. Values may be strings; they
// are coerced, and anything unusable keeps the current draft value.
func (s *Service) Update(form domain.Record) {
	if !s.state.Open {
		return
	}
	s.state.Draft = Merge(s.state.Draft, form)
}

// Save commits the draft with form values applied. The panel stays open
// until the store confirms. Nothing is saved before the stored record loaded.
func (s *Service) Save(form domain.Record) tea.Cmd {
	if !s.state.Open || s.state.Saving || s.state.Loading {
		return nil
	}
	s.Update(form)
	s.state.Draft = Pin(s.state.Draft)
	s.state.Saving = true
	s.state.Err = nil

	session, ctx, store := s.state.Session, s.ctx, s.store
	rec := s.state.Draft.Record()
	return func() tea.Msg {
		return SavedMsg{Session: session, Err: store.SaveSettings(ctx, rec)}
	}
}

// HandleSaved closes the panel after a successful save and reports whether
// it did. A failed save keeps the panel open with the draft intact.
func (s *Service) HandleSaved(msg SavedMsg) bool {
	if !s.state.Open || msg.Session != s.state.Session {
		return false
	}
	s.state.Saving = false

	if msg.Err != nil {
		log.Error("failed to save settings", "err", msg.Err)
		s.state.Err = msg.Err
		return false
	}

	saved := s.state.Draft
	s.close(true)
	s.bus.Publish(SettingsSavedEvent{Settings: saved})
	return true
}

// Cancel discards the draft and closes the panel
func (s *Service) Cancel() {
	if !s.state.Open {
		return
	}
	s.close(false)
}

func (s *Service) close(saved bool) {
	s.state.Open = false
	s.state.Loading = false
	s.state.Saving = false
	s.state.Draft = domain.Settings{}
	s.bus.Publish(PanelClosedEvent{Saved: saved})
}

// IsOpen reports whether the panel is showing
func (s *Service) IsOpen() bool {
	return s.state.Open
}

// IsLoading reports whether the stored record is still being fetched
func (s *Service) IsLoading() bool {
	return s.state.Loading
}

// IsSaving reports whether a save is in flight
func (s *Service) IsSaving() bool {
	return s.state.Saving
}

// GetDraft returns the draft being edited
func (s *Service) GetDraft() domain.Settings {
	return s.state.Draft
}

// GetError returns the last load or save failure of this session
func (s *Service) GetError() error {
	return s.state.Err
}
