package gateway

import (
	"context"
	"strings"

	"github.com/tunedrift/tunedrift/internal/models"
	"github.com/tunedrift/tunedrift/internal/normalize"
	"github.com/tunedrift/tunedrift/internal/providers"
	"github.com/tunedrift/tunedrift/internal/shared"
)

// trendingSearchTerms are the popularity-signal queries the trending
// fallback walks, in order, until the limit is satisfied. The country code
// is appended to each term.
var trendingSearchTerms = []string{
	"trending music",
	"top music charts",
	"viral hits",
	"popular playlists",
}

// popularSearchTerms feed the homepage fallback when the structured
// provider is down. Each term gets an equal share of the requested limit.
var popularSearchTerms = []string{
	"trending music",
	"popular songs",
	"top hits",
	"music charts",
}

// musicCategoryQueries maps category names to structured-metadata search
// queries. extractCategoryQueries is the parallel table for the extraction
// fallback; the wording intentionally differs per provider and the two
// tables are kept separate rather than unified.
var musicCategoryQueries = map[string]string{
	"music":      "new music releases",
	"pop":        "pop hits today",
	"rock":       "rock anthems",
	"hip_hop":    "hip hop hits",
	"electronic": "electronic dance hits",
	"indie":      "indie essentials",
	"classical":  "classical essentials",
	"jazz":       "jazz classics",
	"country":    "country hits",
	"r&b":        "rnb soul favorites",
}

var extractCategoryQueries = map[string]string{
	"music":      "latest music videos",
	"pop":        "pop music hits",
	"rock":       "rock music songs",
	"hip_hop":    "hip hop rap music",
	"electronic": "electronic dance music",
	"indie":      "indie alternative music",
	"classical":  "classical music",
	"jazz":       "jazz music",
	"country":    "country music",
	"r&b":        "r&b soul music",
}

// TrendingByCountry lists trending playlists for a country. Primary: scan
// the home feed for playlist-shaped items. Fallback: playlist-filtered
// searches over a fixed list of popularity terms until the limit is met.
// Both legs need the structured provider; without it the operation has no
// data source.
func (g *Gateway) TrendingByCountry(ctx context.Context, country string, limit int) []models.TrendingPlaylist {
	if g.music == nil {
		g.logger.Warn("trending unavailable without music provider", "op", "trending", "country", country)
		return nil
	}

	sections, err := g.music.GetHomeFeed(ctx, limit)
	if err == nil {
		if out := trendingFromSections(sections, limit); len(out) > 0 {
			return out
		}
	} else {
		g.logger.Warn("home feed failed, falling back to term search", "op", "trending", "err", err)
	}

	var out []models.TrendingPlaylist
	for _, term := range trendingSearchTerms {
		if len(out) >= limit {
			break
		}

		tracks, err := g.music.Search(ctx, term+" "+country, "playlists", limit-len(out))
		if err != nil {
			g.logger.Warn("trending term search failed", "op", "trending", "term", term, "err", err)
			continue
		}

		for i := range tracks {
			if len(out) >= limit {
				break
			}
			if tracks[i].PlaylistID == "" {
				continue
			}
			out = append(out, models.TrendingPlaylist{
				Title:        tracks[i].Title,
				PlaylistID:   tracks[i].PlaylistID,
				ThumbnailURL: lastThumbnail(tracks[i].Thumbnails),
				Description:  tracks[i].Description,
				Section:      "search: " + term,
				URL:          playlistURL(tracks[i].PlaylistID),
			})
		}
	}

	if len(out) == 0 {
		g.logger.Warn("trending exhausted all sources", "op", "trending", "country", country, "err", shared.ErrNoResults)
	}
	return out
}

// RecommendedFor lists the watch-next queue for a video. There is no
// fallback surface for recommendations; failure is terminal.
func (g *Gateway) RecommendedFor(ctx context.Context, videoID string, limit int) []models.Song {
	if g.music == nil {
		g.logger.Warn("recommendations unavailable without music provider", "op", "recommended", "video_id", videoID)
		return nil
	}

	// Ask for one extra so the seed video can be dropped from its own
	// recommendations without shorting the limit.
	tracks, err := g.music.GetWatchNext(ctx, videoID, limit+1)
	if err != nil {
		g.logger.Error("watch-next lookup failed", "op", "recommended", "video_id", videoID, "err", err)
		return nil
	}

	songs := make([]models.Song, 0, len(tracks))
	for i := range tracks {
		if tracks[i].VideoID == videoID {
			continue
		}
		if song := normalize.SongFromMusic(&tracks[i]); song != nil {
			songs = append(songs, *song)
		}
	}
	return truncate(songs, limit)
}

// Homepage builds the discovery feed: charts first, then home-feed videos,
// then a popularity search, merged in that order and de-duplicated by id
// before truncation. Fallback: round-robin extractor searches over generic
// popularity terms.
func (g *Gateway) Homepage(ctx context.Context, limit int) []models.Song {
	if g.music != nil {
		if songs := g.homepageFromMusic(ctx, limit); len(songs) > 0 {
			return songs
		}
		g.logger.Warn("music homepage produced nothing, falling back to extractor", "op", "homepage")
	}

	perTerm := limit / len(popularSearchTerms)
	if perTerm < 1 {
		perTerm = 1
	}

	var merged []models.Song
	for _, term := range popularSearchTerms {
		entries, err := g.extractor.Search(ctx, term, perTerm, providers.DefaultExtractOptions())
		if err != nil {
			g.logger.Warn("homepage term search failed", "op", "homepage", "term", term, "err", err)
			continue
		}

		category := strings.ReplaceAll(term, " ", "_")
		for i := range entries {
			if song := normalize.SongFromExtract(&entries[i], models.SourceExtract); song != nil {
				song.Category = category
				merged = append(merged, *song)
			}
		}
	}

	if len(merged) == 0 {
		g.logger.Error("homepage exhausted all providers", "op", "homepage", "err", shared.ErrNoResults)
		return nil
	}
	return truncate(normalize.DedupeByID(merged), limit)
}

func (g *Gateway) homepageFromMusic(ctx context.Context, limit int) []models.Song {
	var merged []models.Song

	charts, err := g.music.GetCharts(ctx, "")
	if err == nil && charts != nil {
		for i := range charts.Trending {
			if song := normalize.SongFromMusic(&charts.Trending[i]); song != nil {
				merged = append(merged, *song)
			}
		}
		for i := range charts.Videos {
			if song := normalize.SongFromMusic(&charts.Videos[i]); song != nil {
				merged = append(merged, *song)
			}
		}
	} else if err != nil {
		g.logger.Warn("charts failed", "op", "homepage", "err", err)
	}

	if len(merged) < limit {
		sections, err := g.music.GetHomeFeed(ctx, limit)
		if err == nil {
			for s := range sections {
				for i := range sections[s].Contents {
					if song := normalize.SongFromHomeItem(&sections[s].Contents[i]); song != nil {
						merged = append(merged, *song)
					}
				}
			}
		} else {
			g.logger.Warn("home feed failed", "op", "homepage", "err", err)
		}
	}

	if len(merged) < limit {
		tracks, err := g.music.Search(ctx, "popular songs", "songs", limit-len(merged))
		if err == nil {
			for i := range tracks {
				if song := normalize.SongFromMusic(&tracks[i]); song != nil {
					merged = append(merged, *song)
				}
			}
		} else {
			g.logger.Warn("popularity search failed", "op", "homepage", "err", err)
		}
	}

	return truncate(normalize.DedupeByID(merged), limit)
}

// CategoryVideos searches inside a named category bucket. Both providers
// have their own category wording; unknown categories fall back to
// "<category> music" on either path.
func (g *Gateway) CategoryVideos(ctx context.Context, category string, limit int) []models.Song {
	key := strings.ToLower(category)

	if g.music != nil {
		query, ok := musicCategoryQueries[key]
		if !ok {
			query = category + " music"
		}

		tracks, err := g.music.Search(ctx, query, "songs", limit)
		if err == nil {
			if songs := songsFromTracks(tracks, limit); len(songs) > 0 {
				tagCategory(songs, category)
				return songs
			}
		} else {
			g.logger.Warn("music category search failed, falling back", "op", "category", "category", category, "err", err)
		}
	}

	query, ok := extractCategoryQueries[key]
	if !ok {
		query = category + " music"
	}

	entries, err := g.extractor.Search(ctx, query, limit, providers.DefaultExtractOptions())
	if err != nil {
		g.logger.Error("category exhausted all providers", "op", "category", "category", category, "err", err)
		return nil
	}

	songs := songsFromEntries(entries, models.SourceExtract, limit)
	tagCategory(songs, category)
	return songs
}

func trendingFromSections(sections []providers.MusicHomeSection, limit int) []models.TrendingPlaylist {
	var out []models.TrendingPlaylist
	for s := range sections {
		for i := range sections[s].Contents {
			if len(out) >= limit {
				return out
			}

			item := &sections[s].Contents[i]
			if item.PlaylistID == "" {
				continue
			}
			out = append(out, models.TrendingPlaylist{
				Title:        item.Title,
				PlaylistID:   item.PlaylistID,
				ThumbnailURL: lastThumbnail(item.Thumbnails),
				Description:  item.Description,
				Section:      sections[s].Title,
				URL:          playlistURL(item.PlaylistID),
			})
		}
	}
	return out
}

func tagCategory(songs []models.Song, category string) {
	for i := range songs {
		songs[i].Category = category
	}
}

func lastThumbnail(thumbs []providers.MusicThumbnail) string {
	if len(thumbs) == 0 {
		return ""
	}
	return thumbs[len(thumbs)-1].URL
}

func playlistURL(playlistID string) string {
	return "https://music.youtube.com/playlist?list=" + playlistID
}
