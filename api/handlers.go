/*
handlers.go - HTTP handlers for the calculator presentation adapter

PURPOSE:
  The HTTP surface is a presentation adapter in the strict sense: it only
  sends commands into the engine and reads engine state back out. All
  calculation semantics live in the engine and history packages; nothing
  here inspects or interprets numbers.

SESSION LIFECYCLE:
  POST   /api/sessions                          create
  GET    /api/sessions/{id}                     current state
  POST   /api/sessions/{id}/input               feed raw tokens
  GET    /api/sessions/{id}/history             completed calculations
  POST   /api/sessions/{id}/history/{entryID}/recall
  DELETE /api/sessions/{id}                     discard session + history

SEE ALSO:
  - server.go: Router wiring
  - dto.go: Request/response shapes
  - metrics.go: Prometheus instruments
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/calc-engine/calc"
	"github.com/warp/calc-engine/engine"
	"github.com/warp/calc-engine/history"
)

// Handler holds the adapter's dependencies and the live session registry.
type Handler struct {
	store  history.Store
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*calc.Session
}

// NewHandler creates an API handler backed by the given history store.
func NewHandler(store history.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		logger:   logger,
		sessions: make(map[string]*calc.Session),
	}
}

func (h *Handler) session(id string) (*calc.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

// CreateSession starts a fresh calculator session.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := calc.NewSession(h.store)

	h.mu.Lock()
	h.sessions[session.ID] = session
	h.mu.Unlock()

	sessionsActive.Inc()
	h.logger.Info("session created", zap.String("session_id", session.ID))

	writeJSON(w, http.StatusCreated, sessionDTO(session.ID, session.State()))
}

// GetSession returns the session's current state.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := h.session(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, sessionDTO(id, session.State()))
}

// SendInput feeds raw tokens through the classifier and reducer, in order,
// one at a time. The response is the state after the last token.
func (h *Handler) SendInput(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := h.session(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}

	var req InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Tokens) == 0 {
		writeError(w, http.StatusBadRequest, "At least one token is required", nil)
		return
	}

	var state engine.State
	for _, token := range req.Tokens {
		var err error
		state, err = session.Input(r.Context(), token)
		if err != nil {
			h.logger.Error("input failed",
				zap.String("session_id", id),
				zap.String("token", token),
				zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to record calculation", err)
			return
		}
		tokensTotal.Inc()
	}

	if state.IsError() {
		divisionsByZeroTotal.Inc()
	}

	writeJSON(w, http.StatusOK, sessionDTO(id, state))
}

// DeleteSession discards a session and purges its history.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := h.session(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}

	if err := session.Close(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to purge session history", err)
		return
	}

	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()

	sessionsActive.Dec()
	h.logger.Info("session deleted", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// GetHistory lists the session's completed calculations, newest first.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := h.session(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}

	entries, err := session.History(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load history", err)
		return
	}

	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, historyEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RecallEntry primes the session with a past calculation so a following
// Equals repeats it.
func (h *Handler) RecallEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := h.session(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}

	entryID := chi.URLParam(r, "entryID")
	state, err := session.Recall(r.Context(), entryID)
	if errors.Is(err, history.ErrEntryNotFound) {
		writeError(w, http.StatusNotFound, "History entry not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to recall entry", err)
		return
	}

	recallsTotal.Inc()
	writeJSON(w, http.StatusOK, sessionDTO(id, state))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
