package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fernbot/config"
	"fernbot/match"
)

// ContentStore is the slice of the store the diagnostics routes need.
type ContentStore interface {
	Collection() string
	Count(ctx context.Context) (int, error)
}

// DiagnosticsHandler serves the liveness banner, the health check and the
// operator-facing matching diagnostics.
type DiagnosticsHandler struct {
	engine *match.Engine
	store  ContentStore
	config *config.Config
	logger *zap.Logger
}

func NewDiagnosticsHandler(engine *match.Engine, store ContentStore, cfg *config.Config, logger *zap.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		engine: engine,
		store:  store,
		config: cfg,
		logger: logger,
	}
}

func (h *DiagnosticsHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Fern & Nannam bot is running! 🎉")
}

func (h *DiagnosticsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *DiagnosticsHandler) Debug(c *gin.Context) {
	resp := gin.H{
		"collection":       h.store.Collection(),
		"accept_threshold": h.config.AcceptThreshold,
		"suggestion_limit": h.config.SuggestionLimit,
	}

	count, err := h.store.Count(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to count entries", zap.Error(err))
		resp["store"] = "unavailable"
	} else {
		resp["store"] = "ok"
		resp["entries"] = count
	}

	c.JSON(http.StatusOK, resp)
}

type similarityMatch struct {
	ID       string            `json:"id"`
	Question string            `json:"question,omitempty"`
	Score    string            `json:"score"`
	Signals  []match.SignalHit `json:"signals,omitempty"`
}

// TestSimilarity runs the full ranking pipeline on the path parameter and
// returns every candidate's score with its signal trace.
func (h *DiagnosticsHandler) TestSimilarity(c *gin.Context) {
	raw := c.Param("q")

	query := match.NewQuery(raw)
	result, err := h.engine.Rank(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Similarity test failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content store unavailable"})
		return
	}

	ranked := make([]similarityMatch, 0, len(result.Ranked))
	for _, m := range result.Ranked {
		ranked = append(ranked, similarityMatch{
			ID:       m.Entry.ID,
			Question: m.Entry.Question,
			Score:    formatScore(m.Score),
			Signals:  m.Signals,
		})
	}

	resp := gin.H{
		"raw":      query.Raw,
		"persona":  query.Persona.String(),
		"cleaned":  query.Cleaned,
		"keywords": query.Keywords,
		"scanned":  result.Scanned,
		"accepted": result.Best != nil,
		"ranked":   ranked,
	}
	if result.Best != nil {
		resp["best"] = similarityMatch{
			ID:       result.Best.Entry.ID,
			Question: result.Best.Entry.Question,
			Score:    formatScore(result.Best.Score),
			Signals:  result.Best.Signals,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// formatScore renders scores as strings: the no-signal floor is -Inf,
// which JSON cannot represent as a number.
func formatScore(f float64) string {
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
