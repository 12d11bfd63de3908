package coordinator

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"quickbar/internal/backend"
	"quickbar/internal/domain"
	"quickbar/internal/eventbus"
	"quickbar/internal/ui/services/clock"
	"quickbar/internal/ui/services/dispatch"
	"quickbar/internal/ui/services/events"
	"quickbar/internal/ui/services/scroll"
	"quickbar/internal/ui/services/search"
	"quickbar/internal/ui/services/selection"
	"quickbar/internal/ui/services/settings"
)

// Options tunes the timers of the coordinated services
type Options struct {
	Debounce       time.Duration
	ScrollSuppress time.Duration
	WheelLines     int
	Tick           clock.TickFunc
}

// Coordinator manages all UI services and their interactions
type Coordinator struct {
	// Services
	Dispatch  *dispatch.Service
	Search    *search.Service
	Selection *selection.Service
	Scroll    *scroll.Service
	Settings  *settings.Service

	// Dependencies
	bus     *events.Bus
	backend backend.Service
	ctx     context.Context
	queryFn func() string

	disposers []func()
}

// NewCoordinator creates a new coordinator with all services. ctx bounds
// every backend call and is cancelled on shutdown.
func NewCoordinator(ctx context.Context, svc backend.Service, opts Options) *Coordinator {
	bus := events.NewBus()
	c := &Coordinator{
		Dispatch:  dispatch.NewService(bus, opts.Debounce, opts.Tick),
		Search:    search.NewService(ctx, bus, svc),
		Selection: selection.NewService(bus),
		Scroll:    scroll.NewService(bus, opts.ScrollSuppress, opts.WheelLines, opts.Tick),
		Settings:  settings.NewService(ctx, bus, svc),
		bus:       bus,
		backend:   svc,
		ctx:       ctx,
		queryFn:   func() string { return "" },
	}

	// Wire up service dependencies
	c.wireServices()

	// Subscribe to events
	c.subscribeToEvents()

	return c
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices() {
	// The dispatcher searches through the race-safe coordinator
	c.Dispatch.SetSearchFunction(c.Search.Dispatch)
	c.Dispatch.SetLoadingFunction(c.Search.SetLoading)
	c.Dispatch.SetQueryFunction(func() string {
		return c.queryFn()
	})

	// Hover is gated by wheel activity
	c.Selection.SetScrollActiveFunction(c.Scroll.IsScrollActive)
}

// subscribeToEvents sets up event handlers
func (c *Coordinator) subscribeToEvents() {
	// A replaced result set starts at the first row, shown from the top
	c.bus.Subscribe(events.EventType(search.ResultsReplacedEvent{}), func(e interface{}) {
		ev := e.(search.ResultsReplacedEvent)
		c.Scroll.Reset(ev.Count)
		c.Selection.Reset(ev.Count)
	})

	// Keyboard-driven selection changes pull the row into view, once
	c.bus.Subscribe(events.EventType(selection.SelectionChangedEvent{}), func(e interface{}) {
		ev := e.(selection.SelectionChangedEvent)
		if c.Selection.ConsumeKeyboardScroll() {
			c.Scroll.EnsureVisible(ev.NewIndex)
		}
	})
}

// SetQueryFunction sets the function that reads the query input
func (c *Coordinator) SetQueryFunction(fn func() string) {
	c.queryFn = fn
}

// Bus exposes the service event bus
func (c *Coordinator) Bus() events.EventBus {
	return c.bus
}

// AttachEvents forwards pushed backend events into the program through send.
// Close detaches them.
func (c *Coordinator) AttachEvents(src backend.Events, send func(tea.Msg)) {
	c.disposers = append(c.disposers,
		src.Subscribe(eventbus.EventWindowFocused, func(eventbus.DomainEvent) {
			send(WindowFocusedMsg{})
		}),
		src.Subscribe(eventbus.EventIndexRefreshed, func(e eventbus.DomainEvent) {
			if ev, ok := e.(domain.IndexRefreshedEvent); ok {
				send(IndexRefreshedMsg{Items: ev.Items})
			}
		}),
		src.Subscribe(eventbus.EventStreamError, func(e eventbus.DomainEvent) {
			if ev, ok := e.(domain.StreamErrorEvent); ok {
				send(StreamErrorMsg{Err: ev.Err})
			}
		}),
	)
}

// Close drops every backend subscription
func (c *Coordinator) Close() {
	for _, dispose := range c.disposers {
		dispose()
	}
	c.disposers = nil
}

// Init issues the initial empty-query search
func (c *Coordinator) Init() tea.Cmd {
	return c.Search.Dispatch(c.queryFn())
}

// TextChanged feeds a raw input change into the debouncer
func (c *Coordinator) TextChanged(query string) tea.Cmd {
	return c.Dispatch.OnTextChanged(query)
}

// Reissue searches for the current query right away
func (c *Coordinator) Reissue() tea.Cmd {
	c.Dispatch.Cancel()
	return c.Search.Dispatch(c.queryFn())
}

// Escape clears a non-empty query and searches for "". With an empty query
// it reports that the window should hide and changes nothing.
func (c *Coordinator) Escape(query string) (tea.Cmd, bool) {
	if query == "" {
		return nil, true
	}
	c.Dispatch.Cancel()
	return c.Search.Dispatch(""), false
}

// Down moves the selection down
func (c *Coordinator) Down() {
	c.Selection.MoveDown()
}

// Up moves the selection up
func (c *Coordinator) Up() {
	c.Selection.MoveUp()
}

// Hover selects the row under the pointer at list line
func (c *Coordinator) Hover(line, dx, dy int) bool {
	index, ok := c.Scroll.RowAt(line)
	if !ok {
		return false
	}
	return c.Selection.Hover(index, dx, dy)
}

// Wheel scrolls the list viewport
func (c *Coordinator) Wheel(notches int) tea.Cmd {
	return c.Scroll.Wheel(notches)
}

// SelectedResult returns the selected result, if any
func (c *Coordinator) SelectedResult() (domain.SearchResult, bool) {
	index, ok := c.Selection.GetIndex()
	if !ok {
		return domain.SearchResult{}, false
	}
	return c.Search.GetResult(index)
}

// Execute launches the selected result with the current query
func (c *Coordinator) Execute() tea.Cmd {
	result, ok := c.SelectedResult()
	if !ok {
		return nil
	}
	query := c.queryFn()
	ctx, svc := c.ctx, c.backend
	return func() tea.Msg {
		err := svc.ExecuteItem(ctx, result.ID, query)
		return ExecutedMsg{ID: result.ID, Query: query, Err: err}
	}
}

// HandleExecuted logs a failed launch and reports whether it succeeded
func (c *Coordinator) HandleExecuted(msg ExecutedMsg) bool {
	if msg.Err != nil {
		log.Error("execute failed", "id", msg.ID, "query", msg.Query, "err", msg.Err)
		return false
	}
	log.Info("executed", "id", msg.ID)
	return true
}

// Refresh asks the backend to rebuild its index
func (c *Coordinator) Refresh() tea.Cmd {
	ctx, svc := c.ctx, c.backend
	return func() tea.Msg {
		return RefreshedMsg{Err: svc.RefreshIndex(ctx)}
	}
}

// HandleRefreshed re-runs the current query after a successful refresh
func (c *Coordinator) HandleRefreshed(msg RefreshedMsg) tea.Cmd {
	if msg.Err != nil {
		log.Error("refresh failed", "err", msg.Err)
		return nil
	}
	return c.Reissue()
}

// HandleSettingsSaved closes the panel on success and re-runs the current
// query so a new result bound applies at once
func (c *Coordinator) HandleSettingsSaved(msg settings.SavedMsg) tea.Cmd {
	if !c.Settings.HandleSaved(msg) {
		return nil
	}
	return c.Reissue()
}
