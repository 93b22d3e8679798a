package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fernbot/config"
	"fernbot/match"
)

type staticSource struct {
	entries []match.Entry
	err     error
}

func (s staticSource) FetchAll(ctx context.Context) ([]match.Entry, error) {
	return s.entries, s.err
}

type fakeStore struct {
	collection string
	count      int
	err        error
}

func (f fakeStore) Collection() string { return f.collection }

func (f fakeStore) Count(ctx context.Context) (int, error) { return f.count, f.err }

func diagRouter(t *testing.T, source match.CandidateSource, store ContentStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{AcceptThreshold: 0, SuggestionLimit: 3}
	engine := match.NewEngine(source, match.NewScorer(match.DefaultWeights), cfg.AcceptThreshold, nil)
	h := NewDiagnosticsHandler(engine, store, cfg, zap.NewNop())

	router := gin.New()
	router.GET("/", h.Index)
	router.GET("/health", h.Health)
	router.GET("/debug", h.Debug)
	router.GET("/test-similarity/:q", h.TestSimilarity)
	return router
}

func TestIndex(t *testing.T) {
	router := diagRouter(t, staticSource{}, fakeStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "running") {
		t.Errorf("banner = %q, want a running notice", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	router := diagRouter(t, staticSource{}, fakeStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "OK" {
		t.Errorf("status field = %q, want OK", body["status"])
	}
	if body["timestamp"] == "" {
		t.Error("timestamp field is empty")
	}
}

func TestDebug(t *testing.T) {
	router := diagRouter(t, staticSource{}, fakeStore{collection: "audio_content", count: 7})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["collection"] != "audio_content" {
		t.Errorf("collection = %v, want audio_content", body["collection"])
	}
	if body["store"] != "ok" {
		t.Errorf("store = %v, want ok", body["store"])
	}
	if body["entries"] != float64(7) {
		t.Errorf("entries = %v, want 7", body["entries"])
	}
}

func TestDebugStoreUnavailable(t *testing.T) {
	router := diagRouter(t, staticSource{}, fakeStore{err: context.DeadlineExceeded})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the store is down", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["store"] != "unavailable" {
		t.Errorf("store = %v, want unavailable", body["store"])
	}
}

func TestTestSimilarity(t *testing.T) {
	entries := []match.Entry{
		{ID: "drinks", Question: "ชอบดื่มอะไร", FernAnswer: "ชาเย็น"},
		{ID: "blank"},
	}
	router := diagRouter(t, staticSource{entries: entries}, fakeStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-similarity/ชอบดื่มอะไร", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Persona  string `json:"persona"`
		Scanned  int    `json:"scanned"`
		Accepted bool   `json:"accepted"`
		Best     struct {
			ID    string `json:"id"`
			Score string `json:"score"`
		} `json:"best"`
		Ranked []struct {
			ID    string `json:"id"`
			Score string `json:"score"`
		} `json:"ranked"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Persona != "both" {
		t.Errorf("persona = %q, want both", body.Persona)
	}
	if body.Scanned != 2 || !body.Accepted {
		t.Errorf("scanned=%d accepted=%v, want 2 and true", body.Scanned, body.Accepted)
	}
	if body.Best.ID != "drinks" {
		t.Errorf("best = %q, want drinks", body.Best.ID)
	}
	if len(body.Ranked) != 2 {
		t.Fatalf("ranked %d entries, want 2", len(body.Ranked))
	}
	// The signal-less candidate sits last with the -inf marker.
	if body.Ranked[1].ID != "blank" || body.Ranked[1].Score != "-inf" {
		t.Errorf("last ranked = %+v, want blank at -inf", body.Ranked[1])
	}
}

func TestTestSimilarityStoreDown(t *testing.T) {
	router := diagRouter(t, staticSource{err: context.DeadlineExceeded}, fakeStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-similarity/ชอบดื่มอะไร", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
