package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunedrift/tunedrift/internal/models"
	"github.com/tunedrift/tunedrift/internal/shared"
)

// stubAggregator implements Aggregator with function fields; nil fields
// return empty results.
type stubAggregator struct {
	searchFn      func(query string, limit int) []models.Song
	songDetailsFn func(urlOrID string) *models.Song
	audioURLFn    func(videoID string) string
	playlistFn    func(idOrURL string, limit int) *models.Playlist
	trendingFn    func(country string, limit int) []models.TrendingPlaylist
	recommendedFn func(videoID string, limit int) []models.Song
	homepageFn    func(limit int) []models.Song
	categoryFn    func(category string, limit int) []models.Song
	musicOK       bool
}

func (a *stubAggregator) Search(_ context.Context, query string, limit int) []models.Song {
	if a.searchFn == nil {
		return nil
	}
	return a.searchFn(query, limit)
}

func (a *stubAggregator) SongDetails(_ context.Context, urlOrID string) *models.Song {
	if a.songDetailsFn == nil {
		return nil
	}
	return a.songDetailsFn(urlOrID)
}

func (a *stubAggregator) AudioURL(_ context.Context, videoID string) string {
	if a.audioURLFn == nil {
		return ""
	}
	return a.audioURLFn(videoID)
}

func (a *stubAggregator) Playlist(_ context.Context, idOrURL string, limit int) *models.Playlist {
	if a.playlistFn == nil {
		return nil
	}
	return a.playlistFn(idOrURL, limit)
}

func (a *stubAggregator) TrendingByCountry(_ context.Context, country string, limit int) []models.TrendingPlaylist {
	if a.trendingFn == nil {
		return nil
	}
	return a.trendingFn(country, limit)
}

func (a *stubAggregator) RecommendedFor(_ context.Context, videoID string, limit int) []models.Song {
	if a.recommendedFn == nil {
		return nil
	}
	return a.recommendedFn(videoID, limit)
}

func (a *stubAggregator) Homepage(_ context.Context, limit int) []models.Song {
	if a.homepageFn == nil {
		return nil
	}
	return a.homepageFn(limit)
}

func (a *stubAggregator) CategoryVideos(_ context.Context, category string, limit int) []models.Song {
	if a.categoryFn == nil {
		return nil
	}
	return a.categoryFn(category, limit)
}

func (a *stubAggregator) MusicAvailable() bool { return a.musicOK }

func testRequest(t *testing.T, agg Aggregator, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	logger := shared.NewLogger(io.Discard)
	srv := NewServer(agg, shared.LimitsConfig{DefaultResults: 10, MaxResults: 50}, true, logger)
	router := NewRouter(srv, "*", logger)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rr, body
}

func TestHandleSearch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		agg := &stubAggregator{
			searchFn: func(query string, limit int) []models.Song {
				assert.Equal(t, "test query", query)
				assert.Equal(t, 10, limit)
				return []models.Song{{ID: "v1", Title: "t", Artist: "a", DurationDisplay: "01:00"}}
			},
		}

		rr, body := testRequest(t, agg, "/search?q=test%20query")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["results_count"])
	})

	t.Run("missing query", func(t *testing.T) {
		rr, body := testRequest(t, &stubAggregator{}, "/search")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, body["error"], "required")
	})

	t.Run("missing query is logged", func(t *testing.T) {
		logBuf := &bytes.Buffer{}
		srv := NewServer(&stubAggregator{}, shared.LimitsConfig{}, true, shared.NewLogger(logBuf))

		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		rr := httptest.NewRecorder()
		srv.HandleSearch(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, logBuf.String(), "rejected request without query")
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		agg := &stubAggregator{
			searchFn: func(query string, limit int) []models.Song {
				assert.Equal(t, 50, limit, "boundary clamps before calling the gateway")
				return nil
			},
		}

		testRequest(t, agg, "/search?q=x&limit=500")
	})

	t.Run("upstream exhaustion is a 200 with zero results", func(t *testing.T) {
		rr, body := testRequest(t, &stubAggregator{}, "/search?q=x")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, float64(0), body["results_count"])
	})
}

func TestHandleAudioURL(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		agg := &stubAggregator{
			audioURLFn: func(videoID string) string {
				assert.Equal(t, "dQw4w9WgXcQ", videoID)
				return "https://cdn/audio"
			},
		}

		rr, body := testRequest(t, agg, "/audio/dQw4w9WgXcQ")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://cdn/audio", body["audio_url"])
	})

	t.Run("unresolvable is 404", func(t *testing.T) {
		rr, _ := testRequest(t, &stubAggregator{}, "/audio/gone")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandlePlaylist(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		agg := &stubAggregator{
			playlistFn: func(idOrURL string, limit int) *models.Playlist {
				assert.Equal(t, "PL123", idOrURL)
				return &models.Playlist{ID: "PL123", Title: "Mix", TotalTracks: 1,
					Entries: []models.Song{{ID: "v1", DurationDisplay: "01:00"}}}
			},
		}

		rr, body := testRequest(t, agg, "/playlist/PL123")

		assert.Equal(t, http.StatusOK, rr.Code)
		playlist, ok := body["playlist"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Mix", playlist["title"])
	})

	t.Run("unresolvable is 400", func(t *testing.T) {
		rr, _ := testRequest(t, &stubAggregator{}, "/playlist/invalid")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleTrending(t *testing.T) {
	t.Run("country code upper-cased", func(t *testing.T) {
		agg := &stubAggregator{
			trendingFn: func(country string, limit int) []models.TrendingPlaylist {
				assert.Equal(t, "IN", country)
				return []models.TrendingPlaylist{{Title: "Hot", PlaylistID: "PL1", Section: "feed"}}
			},
		}

		rr, body := testRequest(t, agg, "/trending/in")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "IN", body["country"])
		assert.Equal(t, float64(1), body["total_playlists"])
	})

	t.Run("empty result framed as failure", func(t *testing.T) {
		rr, body := testRequest(t, &stubAggregator{}, "/trending/ZZ")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, false, body["success"])
	})
}

func TestHandleHomepage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		agg := &stubAggregator{
			homepageFn: func(limit int) []models.Song {
				assert.Equal(t, 20, limit, "homepage default limit")
				return []models.Song{{ID: "v1", DurationDisplay: "01:00"}}
			},
		}

		rr, body := testRequest(t, agg, "/homepage")

		assert.Equal(t, http.StatusOK, rr.Code)
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(1), data["total_results"])
	})

	t.Run("exhausted is 500", func(t *testing.T) {
		rr, _ := testRequest(t, &stubAggregator{}, "/homepage")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("healthy with music provider", func(t *testing.T) {
		rr, body := testRequest(t, &stubAggregator{musicOK: true}, "/health")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "healthy", body["status"])
		services := body["services"].(map[string]any)
		assert.Equal(t, "OK", services["ytmusic_api"])
	})

	t.Run("degraded music provider still healthy", func(t *testing.T) {
		rr, body := testRequest(t, &stubAggregator{musicOK: false}, "/health")

		assert.Equal(t, http.StatusOK, rr.Code)
		services := body["services"].(map[string]any)
		assert.Equal(t, "Unavailable", services["ytmusic_api"])
	})
}

func TestCORSMiddleware(t *testing.T) {
	rr, _ := testRequest(t, &stubAggregator{musicOK: true}, "/health")
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
