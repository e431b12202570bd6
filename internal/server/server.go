// package server is the HTTP boundary: it parses request parameters, clamps
// limits, calls the gateway, and frames results as JSON envelopes. All
// aggregation and fallback logic lives behind the Aggregator interface.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/tunedrift/tunedrift/internal/models"
	"github.com/tunedrift/tunedrift/internal/shared"
)

const version = "1.0.0"

// Aggregator is the gateway surface the HTTP handlers consume.
// Implemented by [gateway.Gateway].
type Aggregator interface {
	Search(ctx context.Context, query string, limit int) []models.Song
	SongDetails(ctx context.Context, urlOrID string) *models.Song
	AudioURL(ctx context.Context, videoID string) string
	Playlist(ctx context.Context, idOrURL string, limit int) *models.Playlist
	TrendingByCountry(ctx context.Context, country string, limit int) []models.TrendingPlaylist
	RecommendedFor(ctx context.Context, videoID string, limit int) []models.Song
	Homepage(ctx context.Context, limit int) []models.Song
	CategoryVideos(ctx context.Context, category string, limit int) []models.Song
	MusicAvailable() bool
}

// Server holds the handler dependencies.
type Server struct {
	agg         Aggregator
	limits      shared.LimitsConfig
	extractorOK bool
	logger      *log.Logger
}

// NewServer creates a Server. extractorOK reports whether the extraction
// binary was found at startup; it only affects the health report.
func NewServer(agg Aggregator, limits shared.LimitsConfig, extractorOK bool, logger *log.Logger) *Server {
	if limits.DefaultResults <= 0 {
		limits.DefaultResults = 10
	}
	if limits.MaxResults <= 0 {
		limits.MaxResults = 50
	}
	return &Server{agg: agg, limits: limits, extractorOK: extractorOK, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
