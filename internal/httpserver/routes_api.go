// internal/httpserver/routes_api.go
//
// JSON API for script and SPA clients.
//   - GET  /api/state   → current view + theme
//   - POST /api/input   → {"text"}: replace pending input
//   - POST /api/guess   → submit pending input (optional {"text"} sets it first)
//   - POST /api/restart → start a new round
//   - GET  /api/theme   → {"theme"}
//   - POST /api/theme   → toggle and persist the theme
//   - GET  /api/events  → SSE stream of views ("state" events)
//
// Rejected input and guesses answer with {"error", "message", "state"}.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/prefs"
	"github.com/robalobadob/guessgame/internal/session"
)

const keepAliveInterval = 25 * time.Second

func (s *Server) mountAPI(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/input", s.handleInput)
		r.Post("/guess", s.handleGuess)
		r.Post("/restart", s.handleRestart)
		r.Get("/theme", s.handleGetTheme)
		r.Post("/theme", s.handleToggleTheme)
	})
}

type stateRes struct {
	State game.View   `json:"state"`
	Theme prefs.Theme `json:"theme"`
}

type guessRes struct {
	Guess game.Guess `json:"guess"`
	State game.View  `json:"state"`
}

type errorRes struct {
	Error   string     `json:"error"`
	Message string     `json:"message"`
	State   *game.View `json:"state,omitempty"`
}

type textReq struct {
	Text *string `json:"text"`
}

// errorStatus maps round errors onto HTTP codes.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrInvalidInput):
		return http.StatusUnprocessableEntity, "invalid_input"
	case errors.Is(err, game.ErrIncompleteGuess):
		return http.StatusUnprocessableEntity, "incomplete_guess"
	case errors.Is(err, game.ErrNotInDictionary):
		return http.StatusUnprocessableEntity, "not_in_dictionary"
	case errors.Is(err, game.ErrRoundOver):
		return http.StatusConflict, "round_over"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeRoundError reports err with the view as it stands after the failed call.
func (s *Server) writeRoundError(w http.ResponseWriter, err error, v game.View) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("round operation")
		writeJSON(w, status, errorRes{Error: code, Message: "server error"})
		return
	}
	msg := err.Error()
	if v.Message != "" && errors.Is(err, game.ErrNotInDictionary) {
		msg = v.Message
	}
	writeJSON(w, status, errorRes{Error: code, Message: msg, State: &v})
}

// decodeText reads an optional {"text"} body. An empty body is allowed.
func decodeText(r *http.Request) (textReq, error) {
	var req textReq
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return req, nil
	}
	return req, err
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	v, err := s.snapshot(r.Context())
	if err != nil {
		s.writeRoundError(w, err, v)
		return
	}
	writeJSON(w, http.StatusOK, stateRes{State: v, Theme: s.themeOrDefault(r.Context())})
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	req, err := decodeText(r)
	if err != nil || req.Text == nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Message: `expected {"text": "..."}`})
		return
	}
	var v game.View
	err = s.withRound(r.Context(), func(rd *game.Round) error {
		defer func() { v = rd.View() }()
		return rd.UpdateInput(*req.Text)
	})
	if err != nil {
		s.writeRoundError(w, err, v)
		return
	}
	writeJSON(w, http.StatusOK, stateRes{State: v, Theme: s.themeOrDefault(r.Context())})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	req, err := decodeText(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Message: err.Error()})
		return
	}
	var (
		v game.View
		g game.Guess
	)
	err = s.withRound(r.Context(), func(rd *game.Round) error {
		defer func() { v = rd.View() }()
		if req.Text != nil {
			if err := rd.UpdateInput(*req.Text); err != nil {
				return err
			}
		}
		var err error
		g, err = rd.Submit()
		return err
	})
	if err != nil {
		s.writeRoundError(w, err, v)
		return
	}
	if v.Status.Terminal() {
		log.Info().Str("status", string(v.Status)).Int("attempts", v.Attempts).Msg("round finished")
	}
	writeJSON(w, http.StatusOK, guessRes{Guess: g, State: v})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var v game.View
	err := s.withRound(r.Context(), func(rd *game.Round) error {
		rd.Restart()
		v = rd.View()
		return nil
	})
	if err != nil {
		s.writeRoundError(w, err, v)
		return
	}
	writeJSON(w, http.StatusOK, stateRes{State: v, Theme: s.themeOrDefault(r.Context())})
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]prefs.Theme{"theme": s.themeOrDefault(r.Context())})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.theme(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load theme")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "prefs_unavailable", Message: "server error"})
		return
	}
	next, err := t.Toggle(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("toggle theme")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "prefs_unavailable", Message: "server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]prefs.Theme{"theme": next})
}

// handleEvents streams the session's view: one event on connect, then one per change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	sid := session.ID(r.Context())
	sub := s.hub.Subscribe(sid)
	defer s.hub.Unsubscribe(sid, sub)

	v, err := s.snapshot(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("events snapshot")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeSSE(w, "state", v); err != nil {
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case v, ok := <-sub:
			if !ok {
				return
			}
			if err := writeSSE(w, "state", v); err != nil {
				return
			}
			flusher.Flush()
		case <-keepAlive.C:
			// An open stream keeps its round from idling out.
			_ = s.store.View(r.Context(), sid, func(*game.Round) error { return nil })
			if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "event: "+event+"\ndata: "+string(data)+"\n\n")
	return err
}
