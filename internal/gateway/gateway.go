// package gateway aggregates the two upstream providers behind one set of
// operations. Each operation tries its primary provider, falls back to the
// secondary on failure, and degrades the extraction path once when the
// upstream raises a bot-detection challenge. Upstream errors never cross the
// gateway boundary: an exhausted operation returns an empty result and logs.
package gateway

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/tunedrift/tunedrift/internal/models"
	"github.com/tunedrift/tunedrift/internal/normalize"
	"github.com/tunedrift/tunedrift/internal/providers"
)

// MusicAPI is the structured-metadata surface the gateway consumes.
// Implemented by [providers.MusicClient].
type MusicAPI interface {
	Search(ctx context.Context, query, filter string, limit int) ([]providers.MusicTrack, error)
	GetPlaylist(ctx context.Context, playlistID string, limit int) (*providers.MusicPlaylist, error)
	GetHomeFeed(ctx context.Context, limit int) ([]providers.MusicHomeSection, error)
	GetCharts(ctx context.Context, country string) (*providers.MusicCharts, error)
	GetWatchNext(ctx context.Context, videoID string, limit int) ([]providers.MusicTrack, error)
}

// AudioExtractor is the media-extraction surface the gateway consumes.
// Implemented by [providers.Extractor].
type AudioExtractor interface {
	Extract(ctx context.Context, target string, opts providers.ExtractOptions) (*providers.ExtractEntry, error)
	Search(ctx context.Context, term string, limit int, opts providers.ExtractOptions) ([]providers.ExtractEntry, error)
}

// Gateway routes each operation to the right provider and normalizes the
// result. It is stateless across requests; the only construction-time state
// is whether the structured-metadata provider came up at all, which is
// decided once and never retried.
type Gateway struct {
	music     MusicAPI // nil when the provider failed to initialize
	extractor AudioExtractor
	logger    *log.Logger
}

// NewGateway creates a Gateway. Pass a nil music client when the
// structured-metadata provider failed to initialize; every operation that
// lists it as primary then routes straight to its fallback.
func NewGateway(music MusicAPI, extractor AudioExtractor, logger *log.Logger) *Gateway {
	return &Gateway{music: music, extractor: extractor, logger: logger}
}

// MusicAvailable reports whether the structured-metadata provider came up.
func (g *Gateway) MusicAvailable() bool {
	return g.music != nil
}

// Search finds songs for a query. Primary: structured-metadata search
// filtered to songs. Fallback: extraction-provider search.
func (g *Gateway) Search(ctx context.Context, query string, limit int) []models.Song {
	if g.music != nil {
		tracks, err := g.music.Search(ctx, query, "songs", limit)
		if err == nil {
			if songs := songsFromTracks(tracks, limit); len(songs) > 0 {
				return songs
			}
		} else {
			g.logger.Warn("music search failed, falling back to extractor", "op", "search", "err", err)
		}
	}

	entries, err := g.extractor.Search(ctx, query, limit, providers.DefaultExtractOptions())
	if err != nil {
		g.logger.Error("search exhausted all providers", "op", "search", "query", query, "err", err)
		return nil
	}
	return songsFromEntries(entries, models.SourceExtract, limit)
}

// SongDetails fetches one song by video ID or watch URL. Primary:
// structured-metadata lookup. Fallback: direct extraction; a bot challenge
// downgrades to a minimal fetch that carries no audio URL.
func (g *Gateway) SongDetails(ctx context.Context, urlOrID string) *models.Song {
	videoID := normalize.ExtractVideoID(urlOrID)

	if g.music != nil && videoID != "" {
		tracks, err := g.music.GetWatchNext(ctx, videoID, 1)
		if err == nil && len(tracks) > 0 {
			if song := normalize.SongFromMusic(&tracks[0]); song != nil {
				return song
			}
		}
		if err != nil {
			g.logger.Warn("music lookup failed, falling back to extractor", "op", "song_details", "err", err)
		}
	}

	target := urlOrID
	if videoID != "" {
		target = providers.WatchURL(videoID)
	}

	entry, err := g.extractor.Extract(ctx, target, providers.DefaultExtractOptions())
	if err == nil {
		return normalize.SongFromExtract(entry, models.SourceExtract)
	}

	if !providers.IsBotChallenge(err) {
		g.logger.Error("song details exhausted all providers", "op", "song_details", "target", urlOrID, "err", err)
		return nil
	}

	g.logger.Warn("bot challenge on song details, retrying degraded", "op", "song_details", "target", urlOrID)
	entry, err = g.extractor.Extract(ctx, target, providers.DegradedExtractOptions())
	if err != nil {
		g.logger.Error("degraded song details failed", "op", "song_details", "target", urlOrID, "err", err)
		return nil
	}

	song := normalize.SongFromExtract(entry, models.SourceExtractMinimal)
	if song != nil {
		// Minimal mode never exposes a playable URL; the degraded fetch
		// used throwaway format settings.
		song.AudioURL = nil
	}
	return song
}

// AudioURL resolves the playable audio URL for a video ID. The structured
// provider never returns media URLs, so extraction is the only path; a bot
// challenge triggers exactly one degraded retry whose outcome is final.
func (g *Gateway) AudioURL(ctx context.Context, videoID string) string {
	target := providers.WatchURL(videoID)

	entry, err := g.extractor.Extract(ctx, target, providers.DefaultExtractOptions())
	if err == nil {
		return audioURLFromEntry(entry)
	}

	if !providers.IsBotChallenge(err) {
		g.logger.Error("audio extraction failed", "op", "audio_url", "video_id", videoID, "err", err)
		return ""
	}

	g.logger.Warn("bot challenge on audio extraction, retrying degraded", "op", "audio_url", "video_id", videoID)
	entry, err = g.extractor.Extract(ctx, target, providers.DegradedExtractOptions())
	if err != nil {
		g.logger.Error("degraded audio extraction failed", "op", "audio_url", "video_id", videoID, "err", err)
		return ""
	}
	return audioURLFromEntry(entry)
}

// Playlist fetches a playlist by ID or URL. Primary: structured-metadata
// lookup. Fallback: extraction-provider playlist fetch.
func (g *Gateway) Playlist(ctx context.Context, idOrURL string, limit int) *models.Playlist {
	playlistID := normalize.ExtractPlaylistID(idOrURL)
	if playlistID == "" {
		g.logger.Warn("no playlist id in input", "op", "playlist", "input", idOrURL)
		return nil
	}

	if g.music != nil {
		playlist, err := g.music.GetPlaylist(ctx, playlistID, limit)
		if err == nil {
			if out := normalize.PlaylistFromMusic(playlist); out != nil {
				truncatePlaylist(out, limit)
				return out
			}
		} else {
			g.logger.Warn("music playlist failed, falling back to extractor", "op", "playlist", "err", err)
		}
	}

	opts := providers.DefaultExtractOptions()
	opts.PlaylistEnd = limit
	entry, err := g.extractor.Extract(ctx, "https://www.youtube.com/playlist?list="+playlistID, opts)
	if err != nil {
		g.logger.Error("playlist exhausted all providers", "op", "playlist", "playlist_id", playlistID, "err", err)
		return nil
	}

	out := normalize.PlaylistFromExtract(entry)
	if out != nil {
		truncatePlaylist(out, limit)
	}
	return out
}

// songsFromTracks normalizes music tracks, dropping unparseable records,
// and truncates to limit.
func songsFromTracks(tracks []providers.MusicTrack, limit int) []models.Song {
	songs := make([]models.Song, 0, len(tracks))
	for i := range tracks {
		if song := normalize.SongFromMusic(&tracks[i]); song != nil {
			songs = append(songs, *song)
		}
	}
	return truncate(songs, limit)
}

// songsFromEntries normalizes extraction entries, dropping unparseable
// records, and truncates to limit.
func songsFromEntries(entries []providers.ExtractEntry, source string, limit int) []models.Song {
	songs := make([]models.Song, 0, len(entries))
	for i := range entries {
		if song := normalize.SongFromExtract(&entries[i], source); song != nil {
			songs = append(songs, *song)
		}
	}
	return truncate(songs, limit)
}

func audioURLFromEntry(entry *providers.ExtractEntry) string {
	if entry == nil {
		return ""
	}
	if entry.URL != "" {
		return entry.URL
	}
	return normalize.BestAudioFormat(entry.Formats)
}

func truncate(songs []models.Song, limit int) []models.Song {
	if limit > 0 && len(songs) > limit {
		return songs[:limit]
	}
	return songs
}

func truncatePlaylist(p *models.Playlist, limit int) {
	if limit > 0 && len(p.Entries) > limit {
		p.Entries = p.Entries[:limit]
	}
}
