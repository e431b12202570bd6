// Structured-metadata provider client.
//
// Communicates with a ytmusicapi proxy over HTTP. The proxy wraps the
// ytmusicapi Python library and returns song/playlist/chart metadata fast,
// but never playable media URLs.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tunedrift/tunedrift/internal/shared"
)

const defaultMusicBaseURL string = "http://localhost:8080"

// MusicArtist represents an artist in structured-metadata responses.
type MusicArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// MusicAlbum represents an album reference in structured-metadata responses.
type MusicAlbum struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// MusicThumbnail represents an image from the structured-metadata provider.
// Providers return these in ascending resolution order.
type MusicThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MusicTrack represents a track/video in structured-metadata responses.
type MusicTrack struct {
	VideoID     string           `json:"videoId"`
	Title       string           `json:"title"`
	Artists     []MusicArtist    `json:"artists"`
	Album       *MusicAlbum      `json:"album"`
	DurationSec int              `json:"duration_seconds"`
	Thumbnails  []MusicThumbnail `json:"thumbnails"`
	ResultType  string           `json:"resultType,omitempty"`
	Year        *int             `json:"year,omitempty"`
	// PlaylistID is set on playlist-shaped search results (filter
	// "playlists"); such results carry no VideoID.
	PlaylistID  string `json:"playlistId,omitempty"`
	Description string `json:"description,omitempty"`
}

// MusicPlaylist represents a playlist from the structured-metadata provider.
type MusicPlaylist struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Author      *MusicArtist     `json:"author"`
	Year        *int             `json:"year"`
	TrackCount  int              `json:"trackCount"`
	Thumbnails  []MusicThumbnail `json:"thumbnails"`
	Tracks      []MusicTrack     `json:"tracks,omitempty"`
}

// MusicHomeItem is one entry inside a home-feed section. Either VideoID or
// PlaylistID is set depending on the item shape.
type MusicHomeItem struct {
	Title       string           `json:"title"`
	VideoID     string           `json:"videoId,omitempty"`
	PlaylistID  string           `json:"playlistId,omitempty"`
	Artists     []MusicArtist    `json:"artists,omitempty"`
	Description string           `json:"description,omitempty"`
	Thumbnails  []MusicThumbnail `json:"thumbnails,omitempty"`
}

// MusicHomeSection is a titled row of the home feed.
type MusicHomeSection struct {
	Title    string          `json:"title"`
	Contents []MusicHomeItem `json:"contents"`
}

// MusicCharts holds the chart surfaces returned by the provider.
type MusicCharts struct {
	Videos   []MusicTrack `json:"videos"`
	Trending []MusicTrack `json:"trending"`
}

// MusicClient talks to the ytmusicapi proxy.
type MusicClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMusicClient creates a structured-metadata client and verifies the proxy
// is reachable. A failed probe means the provider stays unavailable for the
// process lifetime; callers cache the nil client rather than retrying.
func NewMusicClient(baseURL string, httpClient *http.Client) (*MusicClient, error) {
	if baseURL == "" {
		baseURL = defaultMusicBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	c := &MusicClient{baseURL: baseURL, httpClient: httpClient}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.doRequest(ctx, "/api/health", nil, nil); err != nil {
		return nil, fmt.Errorf("%w: music proxy health probe: %v", shared.ErrProviderUnavailable, err)
	}

	return c, nil
}

func (c *MusicClient) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	apiURL := c.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("music API error (status %d): %s", resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("music API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search queries the provider. The filter narrows result types ("songs",
// "videos", "playlists"); an empty filter searches everything.
func (c *MusicClient) Search(ctx context.Context, query, filter string, limit int) ([]MusicTrack, error) {
	q := url.Values{}
	q.Set("q", query)
	if filter != "" {
		q.Set("filter", filter)
	}
	q.Set("limit", strconv.Itoa(limit))

	var tracks []MusicTrack
	if err := c.doRequest(ctx, "/api/search", q, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// GetPlaylist retrieves a playlist with up to limit tracks.
func (c *MusicClient) GetPlaylist(ctx context.Context, playlistID string, limit int) (*MusicPlaylist, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var playlist MusicPlaylist
	endpoint := fmt.Sprintf("/api/playlists/%s", url.PathEscape(playlistID))
	if err := c.doRequest(ctx, endpoint, q, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetHomeFeed retrieves up to limit home-feed sections.
func (c *MusicClient) GetHomeFeed(ctx context.Context, limit int) ([]MusicHomeSection, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var sections []MusicHomeSection
	if err := c.doRequest(ctx, "/api/home", q, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// GetCharts retrieves chart data for a country code (ISO 3166-1 alpha-2).
func (c *MusicClient) GetCharts(ctx context.Context, country string) (*MusicCharts, error) {
	q := url.Values{}
	if country != "" {
		q.Set("country", country)
	}

	var charts MusicCharts
	if err := c.doRequest(ctx, "/api/charts", q, &charts); err != nil {
		return nil, err
	}
	return &charts, nil
}

// GetWatchNext retrieves the "up next" queue for a video, the provider's
// recommendation surface.
func (c *MusicClient) GetWatchNext(ctx context.Context, videoID string, limit int) ([]MusicTrack, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var tracks []MusicTrack
	endpoint := fmt.Sprintf("/api/watch-next/%s", url.PathEscape(videoID))
	if err := c.doRequest(ctx, endpoint, q, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}
