// internal/httpserver/server.go
//
// HTTP server wiring for the browser game.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts, CORS, sessions).
//   - Diagnostics: "/health", "/debug/words".
//   - HTML pages (templ): GET /, POST /guess, POST /restart, POST /theme.
//   - JSON API under /api (see routes_api.go).
//
// Notes:
//   - Each browser session owns exactly one round, created on first use.
//   - Rounds live in memory only; the theme preference lives in SQLite.
//   - With an idle TTL set, Start sweeps rounds and cached themes that have
//     not been touched for that long.
//   - The SSE stream is mounted outside the timeout middleware.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/prefs"
	"github.com/robalobadob/guessgame/internal/realtime"
	"github.com/robalobadob/guessgame/internal/session"
	"github.com/robalobadob/guessgame/internal/store"
	"github.com/robalobadob/guessgame/internal/views"
)

// Options bundles the server's dependencies.
type Options struct {
	Store          store.Store
	Prefs          prefs.Store
	Sessions       *session.Manager
	Settings       game.Settings
	ClientOrigin   string
	RequestTimeout time.Duration
	IdleTTL        time.Duration    // 0 keeps per-session state forever
	Clock          func() time.Time // defaults to time.Now
}

// Server bundles router, round store, preference store and session manager.
type Server struct {
	r        *chi.Mux
	store    store.Store
	prefs    prefs.Store
	sessions *session.Manager
	settings game.Settings
	hub      *realtime.Hub[game.View]
	idleTTL  time.Duration
	now      func() time.Time

	themesMu sync.Mutex
	themes   map[string]*themeEntry // loaded once per session
}

type themeEntry struct {
	pref *prefs.ThemePreference
	seen time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    opts.Store,
		prefs:    opts.Prefs,
		sessions: opts.Sessions,
		settings: opts.Settings,
		hub:      realtime.NewHub[game.View](),
		idleTTL:  opts.IdleTTL,
		now:      opts.Clock,
		themes:   make(map[string]*themeEntry),
	}
	if s.now == nil {
		s.now = time.Now
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)            // add X-Request-ID
	s.r.Use(chimw.RealIP)               // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                  // zerolog access log
	s.r.Use(chimw.Recoverer)            // recover from panics
	s.r.Use(corsFor(opts.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if p, ok := s.prefs.(interface{ Ping(context.Context) error }); ok {
			if err := p.Ping(r.Context()); err != nil {
				log.Error().Err(err).Msg("health: prefs ping")
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": "db_unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"words":      s.settings.Words.Len(),
			"wordLength": s.settings.Words.WordLength(),
		})
	})

	// --- session-scoped routes ---
	s.r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)

		r.Get("/api/events", s.handleEvents) // long-lived, no timeout

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(timeout))
			r.Get("/", s.handleIndex)
			r.Post("/guess", s.handleFormGuess)
			r.Post("/restart", s.handleFormRestart)
			r.Post("/theme", s.handleFormTheme)
			s.mountAPI(r)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr until ctx is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	if s.idleTTL > 0 {
		go s.sweepLoop(ctx)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- rounds & themes -----------------------------

// newRound builds a round for sid and forwards its changes to the SSE hub.
func (s *Server) newRound(sid string) *game.Round {
	r := game.NewRound(s.settings)
	r.Observe(func(v game.View) { s.hub.Publish(sid, v) })
	return r
}

// withRound runs fn on the session's round, creating the round on first use.
func (s *Server) withRound(ctx context.Context, fn func(r *game.Round) error) error {
	sid := session.ID(ctx)
	created, err := s.store.Ensure(ctx, sid, func() *game.Round { return s.newRound(sid) })
	if err != nil {
		return err
	}
	if created {
		log.Debug().Str("session", sid).Msg("round created")
	}
	return s.store.Update(ctx, sid, fn)
}

// snapshot returns the session's current view.
func (s *Server) snapshot(ctx context.Context) (game.View, error) {
	var v game.View
	err := s.withRound(ctx, func(r *game.Round) error {
		v = r.View()
		return nil
	})
	return v, err
}

// theme returns the session's theme preference, reading it from the store on first use.
// The read happens outside themesMu; when two requests race, the first insert wins.
func (s *Server) theme(ctx context.Context) (*prefs.ThemePreference, error) {
	sid := session.ID(ctx)
	if t, ok := s.cachedTheme(sid); ok {
		return t, nil
	}
	t, err := prefs.LoadTheme(ctx, s.prefs, sid)
	if err != nil {
		return nil, err
	}
	s.themesMu.Lock()
	defer s.themesMu.Unlock()
	if e, ok := s.themes[sid]; ok {
		e.seen = s.now()
		return e.pref, nil
	}
	s.themes[sid] = &themeEntry{pref: t, seen: s.now()}
	return t, nil
}

func (s *Server) cachedTheme(sid string) (*prefs.ThemePreference, bool) {
	s.themesMu.Lock()
	defer s.themesMu.Unlock()
	e, ok := s.themes[sid]
	if !ok {
		return nil, false
	}
	e.seen = s.now()
	return e.pref, true
}

// sweep drops rounds and cached themes idle since before now minus the idle TTL.
// Hub rooms need no sweeping: a room goes away with its last subscriber.
func (s *Server) sweep(ctx context.Context) {
	cutoff := s.now().Add(-s.idleTTL)
	rounds := s.store.Sweep(ctx, cutoff)

	themes := 0
	s.themesMu.Lock()
	for sid, e := range s.themes {
		if e.seen.Before(cutoff) {
			delete(s.themes, sid)
			themes++
		}
	}
	s.themesMu.Unlock()

	if len(rounds) > 0 || themes > 0 {
		log.Debug().Int("rounds", len(rounds)).Int("themes", themes).Msg("idle sessions swept")
	}
}

// sweepLoop runs sweep until ctx is canceled.
func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval(s.idleTTL))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweepInterval is a quarter of ttl, kept between one second and one minute.
func sweepInterval(ttl time.Duration) time.Duration {
	d := ttl / 4
	switch {
	case d < time.Second:
		return time.Second
	case d > time.Minute:
		return time.Minute
	}
	return d
}

// themeOrDefault never fails; a broken preference store renders the light theme.
func (s *Server) themeOrDefault(ctx context.Context) prefs.Theme {
	t, err := s.theme(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("load theme")
		return prefs.ThemeLight
	}
	return t.Theme()
}

// ------------------------------- HTML pages --------------------------------

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v, err := s.snapshot(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load round")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	render(w, r, views.Page(views.PageData{View: v, Theme: s.themeOrDefault(r.Context())}))
}

// handleFormGuess runs the form text through the input filter, then submits it.
// Rejections are reported on the page through the round's message.
func (s *Server) handleFormGuess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	text := game.Sanitize(r.FormValue("guess"), s.settings.Words.WordLength())
	err := s.withRound(r.Context(), func(rd *game.Round) error {
		if err := rd.UpdateInput(text); err != nil {
			return err
		}
		_, err := rd.Submit()
		return err
	})
	if err != nil {
		log.Debug().Err(err).Str("session", session.ID(r.Context())).Msg("guess rejected")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFormRestart(w http.ResponseWriter, r *http.Request) {
	if err := s.withRound(r.Context(), func(rd *game.Round) error {
		rd.Restart()
		return nil
	}); err != nil {
		log.Error().Err(err).Msg("restart")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFormTheme(w http.ResponseWriter, r *http.Request) {
	if t, err := s.theme(r.Context()); err != nil {
		log.Warn().Err(err).Msg("load theme")
	} else if _, err := t.Toggle(r.Context()); err != nil {
		log.Warn().Err(err).Msg("toggle theme")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ----------------------------- small util --------------------------------

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
