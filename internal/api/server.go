package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pathfinder-core/server/internal/counselor/session"
	logx "github.com/pathfinder-core/server/pkg/logger"
)

const maxChatBodySize = 64 << 10 // 64KB

// sessionHeader carries the session identifier between requests. When absent
// on /api/chat, a new session is minted and the id returned in the response.
const sessionHeader = "X-Session-ID"

// Registry hands out sessions by id, creating them on first use.
type Registry struct {
	mu         sync.Mutex
	sessions   map[string]*session.Session
	newSession func(id string) *session.Session
}

func NewRegistry(newSession func(id string) *session.Session) *Registry {
	return &Registry{
		sessions:   make(map[string]*session.Session),
		newSession: newSession,
	}
}

// Get returns the session for id, creating it when unknown.
func (r *Registry) Get(id string) *session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = r.newSession(id)
		r.sessions[id] = s
	}
	return s
}

type chatRequest struct {
	Message string `json:"message"`
}

// NewHandler builds the HTTP surface over the counselor core.
func NewHandler(reg *Registry) http.Handler {
	r := chi.NewRouter()

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)
	r.Post("/api/chat", handleChat(reg))
	r.Post("/api/reset", handleReset(reg))
	r.Get("/api/profile", handleProfile(reg))

	return r
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Student Career Pathway Counselor API is running!",
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
}

func handleChat(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxChatBodySize)
		defer r.Body.Close()

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			httpError(w, http.StatusBadRequest, "message cannot be empty")
			return
		}

		id := r.Header.Get(sessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		sess := reg.Get(id)

		resp := sess.ProcessMessage(r.Context(), req.Message)

		w.Header().Set(sessionHeader, id)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"session_id": id,
			"response":   resp.Text,
			"type":       string(resp.Kind),
			"metadata":   resp.Metadata,
		})
	}
}

func handleReset(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(sessionHeader)
		if id == "" {
			httpError(w, http.StatusBadRequest, "missing "+sessionHeader+" header")
			return
		}
		if err := reg.Get(id).Reset(r.Context()); err != nil {
			logx.Error().Err(err).Str("sessionID", id).Msg("reset failed")
			httpError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Conversation context has been reset",
		})
	}
}

func handleProfile(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(sessionHeader)
		if id == "" {
			httpError(w, http.StatusBadRequest, "missing "+sessionHeader+" header")
			return
		}
		status, err := reg.Get(id).Status(r.Context())
		if err != nil {
			logx.Error().Err(err).Str("sessionID", id).Msg("status failed")
			httpError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"state":   status.State.String(),
			"profile": status.Profile,
			"status":  status,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func httpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
