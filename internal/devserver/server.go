// Package devserver is a reference implementation of the launcher's search
// service. It serves a YAML catalog over HTTP so the launcher can be run and
// tested without the desktop application behind it.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quickbar/internal/backend"
	"quickbar/internal/domain"
	"quickbar/internal/eventbus"
)

// Server is the HTTP front of the catalog and settings store
type Server struct {
	catalog  *Catalog
	settings *SettingsStore
	bus      eventbus.EventBus
	now      func() time.Time

	mu     sync.Mutex
	server *http.Server
}

// New creates a server. The bus carries pushed events to stream subscribers.
func New(catalog *Catalog, settings *SettingsStore, bus eventbus.EventBus) *Server {
	return &Server{
		catalog:  catalog,
		settings: settings,
		bus:      bus,
		now:      time.Now,
	}
}

// Router builds the HTTP handler
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/execute", s.handleExecute)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleSaveSettings)
		r.Get("/events", s.handleEvents)
		r.Post("/window/focus", s.handleWindowFocus)
	})
	return r
}

// ListenAndServe serves on addr until Shutdown
func (s *Server) ListenAndServe(addr string) error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	log.Info("devserver listening", "addr", addr, "catalog", s.catalog.Path())
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// WatchCatalog reloads the catalog whenever its file changes, until ctx is done.
func (s *Server) WatchCatalog(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path, err := filepath.Abs(s.catalog.Path())
	if err != nil {
		return err
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s.reload("watch")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("catalog watcher error", "err", err)
		}
	}
}

func (s *Server) reload(reason string) error {
	n, err := s.catalog.Reload()
	if err != nil {
		log.Error("catalog reload failed", "reason", reason, "err", err)
		return err
	}
	log.Info("catalog reloaded", "reason", reason, "items", n)
	s.bus.Publish(domain.IndexRefreshedEvent{Items: n})
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req backend.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	results := s.catalog.Search(req.Query, s.settings.MaxResults())
	log.Debug("search", "query", req.Query, "results", len(results))
	s.respondJSON(w, http.StatusOK, backend.SearchResponse{Results: results})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req backend.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.catalog.RecordUse(req.ID, s.now()) {
		s.respondError(w, http.StatusNotFound, "unknown item")
		return
	}
	log.Info("execute", "id", req.ID, "query", req.Query)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.reload("request"); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	rec, err := s.settings.Load()
	if err != nil {
		log.Error("load settings failed", "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	rec := domain.Record{}
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.settings.Save(rec); err != nil {
		log.Error("save settings failed", "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWindowFocus(w http.ResponseWriter, r *http.Request) {
	s.bus.Publish(domain.WindowFocusedEvent{})
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents streams pushed events as NDJSON until the client goes away
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events := make(chan backend.WireEvent, 16)
	forward := func(e eventbus.DomainEvent) {
		ev := backend.WireEvent{Type: string(e.Type())}
		if refreshed, ok := e.(domain.IndexRefreshedEvent); ok {
			ev.Items = refreshed.Items
		}
		select {
		case events <- ev:
		default:
			log.Warn("event subscriber too slow, dropping event", "event", ev.Type)
		}
	}
	unsubFocus := s.bus.Subscribe(domain.EventWindowFocused, forward)
	defer unsubFocus()
	unsubRefresh := s.bus.Subscribe(domain.EventIndexRefreshed, forward)
	defer unsubRefresh()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	enc := json.NewEncoder(w)
	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := enc.Encode(ev); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("failed to write response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get(backend.RequestIDHeader),
			"elapsed", time.Since(start))
	})
}
