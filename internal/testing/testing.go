// package testing contains shared test doubles for the provider surfaces.
//
// Each double records call counts so tests can assert which provider path an
// operation exercised, and delegates to optional Fn fields for canned
// behavior. A nil Fn returns the zero result.
package testing

import (
	"context"

	"github.com/tunedrift/tunedrift/internal/providers"
)

// MockMusicAPI is a test double for the structured-metadata provider.
type MockMusicAPI struct {
	SearchCalls       int
	GetPlaylistCalls  int
	GetHomeFeedCalls  int
	GetChartsCalls    int
	GetWatchNextCalls int

	SearchFn       func(query, filter string, limit int) ([]providers.MusicTrack, error)
	GetPlaylistFn  func(playlistID string, limit int) (*providers.MusicPlaylist, error)
	GetHomeFeedFn  func(limit int) ([]providers.MusicHomeSection, error)
	GetChartsFn    func(country string) (*providers.MusicCharts, error)
	GetWatchNextFn func(videoID string, limit int) ([]providers.MusicTrack, error)
}

func (m *MockMusicAPI) Search(_ context.Context, query, filter string, limit int) ([]providers.MusicTrack, error) {
	m.SearchCalls++
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(query, filter, limit)
}

func (m *MockMusicAPI) GetPlaylist(_ context.Context, playlistID string, limit int) (*providers.MusicPlaylist, error) {
	m.GetPlaylistCalls++
	if m.GetPlaylistFn == nil {
		return nil, nil
	}
	return m.GetPlaylistFn(playlistID, limit)
}

func (m *MockMusicAPI) GetHomeFeed(_ context.Context, limit int) ([]providers.MusicHomeSection, error) {
	m.GetHomeFeedCalls++
	if m.GetHomeFeedFn == nil {
		return nil, nil
	}
	return m.GetHomeFeedFn(limit)
}

func (m *MockMusicAPI) GetCharts(_ context.Context, country string) (*providers.MusicCharts, error) {
	m.GetChartsCalls++
	if m.GetChartsFn == nil {
		return nil, nil
	}
	return m.GetChartsFn(country)
}

func (m *MockMusicAPI) GetWatchNext(_ context.Context, videoID string, limit int) ([]providers.MusicTrack, error) {
	m.GetWatchNextCalls++
	if m.GetWatchNextFn == nil {
		return nil, nil
	}
	return m.GetWatchNextFn(videoID, limit)
}

// TotalCalls sums every recorded call, for asserting a provider was never
// touched.
func (m *MockMusicAPI) TotalCalls() int {
	return m.SearchCalls + m.GetPlaylistCalls + m.GetHomeFeedCalls + m.GetChartsCalls + m.GetWatchNextCalls
}

// MockExtractor is a test double for the media-extraction provider.
type MockExtractor struct {
	ExtractCalls int
	SearchCalls  int

	// ExtractOpts records the options of every Extract call, in order, so
	// tests can assert the degraded retry switched settings.
	ExtractOpts []providers.ExtractOptions

	ExtractFn func(target string, opts providers.ExtractOptions) (*providers.ExtractEntry, error)
	SearchFn  func(term string, limit int, opts providers.ExtractOptions) ([]providers.ExtractEntry, error)
}

func (m *MockExtractor) Extract(_ context.Context, target string, opts providers.ExtractOptions) (*providers.ExtractEntry, error) {
	m.ExtractCalls++
	m.ExtractOpts = append(m.ExtractOpts, opts)
	if m.ExtractFn == nil {
		return nil, nil
	}
	return m.ExtractFn(target, opts)
}

func (m *MockExtractor) Search(_ context.Context, term string, limit int, opts providers.ExtractOptions) ([]providers.ExtractEntry, error) {
	m.SearchCalls++
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(term, limit, opts)
}
