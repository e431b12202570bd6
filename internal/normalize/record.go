package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/tunedrift/tunedrift/internal/models"
	"github.com/tunedrift/tunedrift/internal/providers"
)

const maxDescriptionLen = 500

// SongFromExtract converts a raw extraction entry into the canonical record.
// Returns nil when the entry has no identifier; a record is whole or absent,
// never partially filled.
func SongFromExtract(entry *providers.ExtractEntry, source string) *models.Song {
	if entry == nil || entry.ID == "" {
		return nil
	}

	artist, title := SplitArtistTitle(entry.Title, entry.Uploader)

	song := &models.Song{
		ID:     entry.ID,
		Title:  title,
		Artist: artist,
		Source: source,
	}

	if d := int(entry.Duration); d > 0 {
		song.DurationSeconds = &d
	}
	song.DurationDisplay = FormatDuration(int(entry.Duration))

	if entry.Thumbnail != "" {
		song.ThumbnailURL = &entry.Thumbnail
	} else if url := BestThumbnail(entry.Thumbnails); url != "" {
		song.ThumbnailURL = &url
	}

	if entry.URL != "" {
		song.AudioURL = &entry.URL
	} else if url := BestAudioFormat(entry.Formats); url != "" {
		song.AudioURL = &url
	}

	if entry.WebpageURL != "" {
		song.WebpageURL = &entry.WebpageURL
	}
	if entry.Uploader != "" {
		song.Uploader = &entry.Uploader
	}
	if entry.UploadDate != "" {
		song.UploadDate = &entry.UploadDate
	}
	song.ViewCount = entry.ViewCount
	song.LikeCount = entry.LikeCount

	if desc := entry.Description; utf8.RuneCountInString(desc) > maxDescriptionLen {
		song.Description = string([]rune(desc)[:maxDescriptionLen])
	} else {
		song.Description = desc
	}

	if entry.Availability != "" {
		song.Availability = &entry.Availability
	}
	if entry.LiveStatus != "" {
		song.LiveStatus = &entry.LiveStatus
	}

	return song
}

// SongFromMusic converts a structured-metadata track into the canonical
// record. The provider never returns playable URLs, so AudioURL stays nil;
// callers resolve audio in a separate step. Returns nil for tracks without
// a video ID.
func SongFromMusic(track *providers.MusicTrack) *models.Song {
	if track == nil || track.VideoID == "" {
		return nil
	}

	song := &models.Song{
		ID:     track.VideoID,
		Title:  track.Title,
		Artist: unknownArtist,
		Source: models.SourceMusic,
	}

	if len(track.Artists) > 0 && track.Artists[0].Name != "" {
		song.Artist = track.Artists[0].Name
	}
	if track.Album != nil && track.Album.Name != "" {
		album := track.Album.Name
		song.Album = &album
	}

	if track.DurationSec > 0 {
		d := track.DurationSec
		song.DurationSeconds = &d
	}
	song.DurationDisplay = FormatDuration(track.DurationSec)

	// Thumbnails arrive in ascending resolution; last is highest.
	if n := len(track.Thumbnails); n > 0 {
		url := track.Thumbnails[n-1].URL
		song.ThumbnailURL = &url
	}

	webpage := providers.WatchURL(track.VideoID)
	song.WebpageURL = &webpage

	return song
}

// SongFromHomeItem converts a video-shaped home-feed item. Home items carry
// no duration, so the display falls back to "Unknown". Returns nil for
// playlist-shaped items (no video ID).
func SongFromHomeItem(item *providers.MusicHomeItem) *models.Song {
	if item == nil || item.VideoID == "" {
		return nil
	}

	song := &models.Song{
		ID:              item.VideoID,
		Title:           item.Title,
		Artist:          unknownArtist,
		DurationDisplay: FormatDuration(0),
		Source:          models.SourceMusic,
	}

	if len(item.Artists) > 0 && item.Artists[0].Name != "" {
		song.Artist = item.Artists[0].Name
	}
	if n := len(item.Thumbnails); n > 0 {
		url := item.Thumbnails[n-1].URL
		song.ThumbnailURL = &url
	}

	webpage := providers.WatchURL(item.VideoID)
	song.WebpageURL = &webpage

	return song
}

// PlaylistFromMusic converts a structured-metadata playlist plus its tracks.
func PlaylistFromMusic(playlist *providers.MusicPlaylist) *models.Playlist {
	if playlist == nil || playlist.ID == "" {
		return nil
	}

	out := &models.Playlist{
		ID:          playlist.ID,
		Title:       playlist.Title,
		Description: playlist.Description,
		Year:        playlist.Year,
		TotalTracks: playlist.TrackCount,
		Source:      models.SourceMusic,
	}

	if playlist.Author != nil {
		out.Uploader = playlist.Author.Name
	}
	if n := len(playlist.Thumbnails); n > 0 {
		url := playlist.Thumbnails[n-1].URL
		out.ThumbnailURL = &url
	}

	for i := range playlist.Tracks {
		if song := SongFromMusic(&playlist.Tracks[i]); song != nil {
			out.Entries = append(out.Entries, *song)
		}
	}
	if out.TotalTracks == 0 {
		out.TotalTracks = len(out.Entries)
	}

	return out
}

// PlaylistFromExtract converts a yt-dlp playlist entry plus its entries.
func PlaylistFromExtract(entry *providers.ExtractEntry) *models.Playlist {
	if entry == nil || entry.ID == "" {
		return nil
	}

	out := &models.Playlist{
		ID:          entry.ID,
		Title:       entry.Title,
		Uploader:    entry.Uploader,
		Description: entry.Description,
		TotalTracks: entry.PlaylistCount,
		Source:      models.SourceExtract,
	}

	if entry.Thumbnail != "" {
		out.ThumbnailURL = &entry.Thumbnail
	} else if url := BestThumbnail(entry.Thumbnails); url != "" {
		out.ThumbnailURL = &url
	}

	for i := range entry.Entries {
		if song := SongFromExtract(&entry.Entries[i], models.SourceExtract); song != nil {
			out.Entries = append(out.Entries, *song)
		}
	}
	if out.TotalTracks == 0 {
		out.TotalTracks = len(out.Entries)
	}

	return out
}

// DedupeByID drops songs whose ID was already seen, keeping first
// occurrences in their original order.
func DedupeByID(songs []models.Song) []models.Song {
	seen := make(map[string]struct{}, len(songs))
	out := make([]models.Song, 0, len(songs))

	for _, s := range songs {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}

	return out
}

// ExtractVideoID pulls a video ID out of a watch URL (long or youtu.be
// short form), or returns the input unchanged when it is already a bare ID.
// Empty return means the URL carried no recognizable video reference.
func ExtractVideoID(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return raw
	}

	if _, after, found := strings.Cut(raw, "v="); found {
		if idx := strings.IndexAny(after, "&#"); idx >= 0 {
			after = after[:idx]
		}
		return after
	}

	if _, after, found := strings.Cut(raw, "youtu.be/"); found {
		if idx := strings.IndexAny(after, "?&#"); idx >= 0 {
			after = after[:idx]
		}
		return after
	}

	return ""
}

// ExtractPlaylistID pulls a playlist ID out of a playlist URL, or returns
// the input unchanged when it is already a bare ID. Empty return means the
// URL carried no recognizable playlist reference.
func ExtractPlaylistID(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return raw
	}

	if _, after, found := strings.Cut(raw, "list="); found {
		if idx := strings.IndexAny(after, "&#"); idx >= 0 {
			after = after[:idx]
		}
		return after
	}
	return ""
}
