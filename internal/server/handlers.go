package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// parseLimit reads the limit query parameter, applying the default and
// clamping to the configured maximum. The gateway trusts whatever it gets,
// so clamping happens here and nowhere else.
func (s *Server) parseLimit(r *http.Request, fallback int) int {
	limit := fallback
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > s.limits.MaxResults {
		limit = s.limits.MaxResults
	}
	return limit
}

// HandleIndex describes the API.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "tunedrift music API",
		"version": version,
		"endpoints": map[string]string{
			"/search":                  "Search for songs (GET) - ?q=query&limit=10",
			"/songs":                   "Get details for one song (GET) - ?url=<watch url or video id>",
			"/audio/{videoID}":         "Get audio URL for video ID (GET)",
			"/playlist/{playlistID}":   "Get playlist details (GET) - ?limit=50",
			"/trending/{countryCode}":  "Get trending playlists by country (GET) - ?limit=50",
			"/recommended/{videoID}":   "Get recommended songs (GET) - ?limit=50",
			"/homepage":                "Get discovery feed (GET) - ?limit=20",
			"/category/{category}":     "Get songs by category (GET) - ?limit=20",
			"/health":                  "Health check (GET)",
		},
		"example_usage": map[string]string{
			"search":      "/search?q=imagine%20dragons&limit=5",
			"audio":       "/audio/dQw4w9WgXcQ",
			"playlist":    "/playlist/PLiJ19Xxebz3nkJ7Rg1vgHzu-nSLmSig7t?limit=20",
			"recommended": "/recommended/dQw4w9WgXcQ?limit=20",
			"trending":    "/trending/IN?limit=50",
		},
	})
}

// HandleSearch searches songs for a free-text query.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.logger.Warn("rejected request without query", "path", r.URL.Path, "param", "q")
		writeError(w, http.StatusBadRequest, `query parameter "q" is required`)
		return
	}

	limit := s.parseLimit(r, s.limits.DefaultResults)
	songs := s.agg.Search(r.Context(), query, limit)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"query":         query,
		"results_count": len(songs),
		"songs":         songs,
	})
}

// HandleSongDetails fetches one song by watch URL or video ID.
func (s *Server) HandleSongDetails(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimSpace(r.URL.Query().Get("url"))
	if target == "" {
		s.logger.Warn("rejected request without query", "path", r.URL.Path, "param", "url")
		writeError(w, http.StatusBadRequest, `query parameter "url" is required`)
		return
	}

	song := s.agg.SongDetails(r.Context(), target)
	if song == nil {
		writeError(w, http.StatusNotFound, "could not fetch song details")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"song":    song,
	})
}

// HandleAudioURL resolves a playable audio URL for a video ID.
func (s *Server) HandleAudioURL(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	audioURL := s.agg.AudioURL(r.Context(), videoID)
	if audioURL == "" {
		writeError(w, http.StatusNotFound, "could not get audio URL for this video")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"video_id":  videoID,
		"audio_url": audioURL,
	})
}

// HandlePlaylist fetches a playlist by ID or full URL.
func (s *Server) HandlePlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistID")
	limit := s.parseLimit(r, s.limits.MaxResults)

	playlist := s.agg.Playlist(r.Context(), playlistID, limit)
	if playlist == nil {
		writeError(w, http.StatusBadRequest, "could not extract playlist information")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"playlist": playlist,
	})
}

// HandleTrending lists trending playlists for a country code.
func (s *Server) HandleTrending(w http.ResponseWriter, r *http.Request) {
	country := strings.ToUpper(chi.URLParam(r, "countryCode"))
	limit := s.parseLimit(r, s.limits.MaxResults)

	playlists := s.agg.TrendingByCountry(r.Context(), country, limit)
	if len(playlists) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "could not fetch trending playlists for country code: " + country,
			"message": "No playlists found. This might be due to regional restrictions or API limitations.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"country":         country,
		"total_playlists": len(playlists),
		"playlists":       playlists,
	})
}

// HandleRecommended lists recommendations for a video ID.
func (s *Server) HandleRecommended(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	limit := s.parseLimit(r, s.limits.MaxResults)

	songs := s.agg.RecommendedFor(r.Context(), videoID, limit)
	if len(songs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "could not fetch recommendations for video ID: " + videoID,
			"message": "Ensure you are providing a valid video ID",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"recommendations": songs,
	})
}

// HandleHomepage serves the merged discovery feed.
func (s *Server) HandleHomepage(w http.ResponseWriter, r *http.Request) {
	limit := s.parseLimit(r, 20)

	songs := s.agg.Homepage(r.Context(), limit)
	if len(songs) == 0 {
		s.logger.Error("homepage returned no data", "limit", limit)
		writeError(w, http.StatusInternalServerError, "could not retrieve homepage data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"trending_music": songs,
			"total_results":  len(songs),
		},
	})
}

// HandleCategory lists songs for a named category bucket.
func (s *Server) HandleCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	limit := s.parseLimit(r, 20)

	songs := s.agg.CategoryVideos(r.Context(), category, limit)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"category":      category,
		"results_count": len(songs),
		"videos":        songs,
	})
}

// HandleHealth reports provider availability.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	musicStatus := "OK"
	if !s.agg.MusicAvailable() {
		musicStatus = "Unavailable"
	}
	extractorStatus := "OK"
	if !s.extractorOK {
		extractorStatus = "Unavailable"
	}

	status := "healthy"
	code := http.StatusOK
	if musicStatus != "OK" && extractorStatus != "OK" {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version,
		"services": map[string]string{
			"ytmusic_api": musicStatus,
			"yt_dlp":      extractorStatus,
		},
	})
}
