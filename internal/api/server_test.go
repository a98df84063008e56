package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pathfinder-core/server/internal/counselor/extract"
	"github.com/pathfinder-core/server/internal/counselor/history"
	"github.com/pathfinder-core/server/internal/counselor/model"
	"github.com/pathfinder-core/server/internal/counselor/ratelimit"
	"github.com/pathfinder-core/server/internal/counselor/recommend"
	"github.com/pathfinder-core/server/internal/counselor/session"
)

func testHandler() http.Handler {
	cfg := model.CounselorConfig{
		CompletenessThreshold: 0.6,
		Patience:              3,
		MaxHistory:            20,
	}
	hist := history.NewMemoryRepository(cfg.MaxHistory)
	limiter := ratelimit.New(0)
	deps := session.Deps{
		History:     hist,
		Extractor:   extract.New(nil, limiter, model.ExtractorModelConfig{}),
		Recommender: recommend.New(nil, limiter, model.ResponseModelConfig{}),
		Limiter:     limiter,
	}
	reg := NewRegistry(func(id string) *session.Session {
		return session.New(id, cfg, deps)
	})
	return NewHandler(reg)
}

func doJSON(t *testing.T, h http.Handler, method, path, body, sessionID string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var parsed map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, parsed
}

func TestHealth(t *testing.T) {
	rec, body := doJSON(t, testHandler(), http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("body = %v, want healthy status", body)
	}
}

func TestChatMintsSessionAndGreets(t *testing.T) {
	h := testHandler()

	rec, body := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"hi"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["type"] != "greeting" {
		t.Errorf("type = %v, want greeting", body["type"])
	}
	id, _ := body["session_id"].(string)
	if id == "" {
		t.Fatal("response missing session_id")
	}
	if got := rec.Header().Get(sessionHeader); got != id {
		t.Errorf("session header = %q, want %q", got, id)
	}

	// the same session continues past greeting
	_, body = doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"I love painting"}`, id)
	if body["type"] != "questions" {
		t.Errorf("second message type = %v, want questions", body["type"])
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	rec, body := doJSON(t, testHandler(), http.MethodPost, "/api/chat", `{"message":"  "}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("body = %v, want success=false", body)
	}
}

func TestChatRejectsMalformedBody(t *testing.T) {
	rec, _ := doJSON(t, testHandler(), http.MethodPost, "/api/chat", `{"message":`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProfileAndReset(t *testing.T) {
	h := testHandler()

	_, body := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"hi"}`, "")
	id := body["session_id"].(string)
	doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"I love painting"}`, id)

	rec, body := doJSON(t, h, http.MethodGet, "/api/profile", "", id)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d, want 200", rec.Code)
	}
	if body["state"] != "clarifying" {
		t.Errorf("state = %v, want clarifying", body["state"])
	}

	rec, _ = doJSON(t, h, http.MethodPost, "/api/reset", "", id)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", rec.Code)
	}

	_, body = doJSON(t, h, http.MethodGet, "/api/profile", "", id)
	if body["state"] != "greeting" {
		t.Errorf("state after reset = %v, want greeting", body["state"])
	}
}

func TestProfileRequiresSessionHeader(t *testing.T) {
	rec, _ := doJSON(t, testHandler(), http.MethodGet, "/api/profile", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without session header", rec.Code)
	}
}
