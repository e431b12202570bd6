// package models defines the canonical record shapes every gateway operation
// converges on, regardless of which upstream produced the data.
package models

// Source tags identify which provider produced a record.
const (
	SourceMusic          = "ytmusic"       // structured-metadata provider
	SourceExtract        = "ytdlp"         // media-extraction provider
	SourceExtractMinimal = "ytdlp-minimal" // degraded extraction mode
)

// Song is the canonical song/video record. Optional fields are pointers so
// that "absent" serializes as null rather than a zero value.
type Song struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	Album           *string `json:"album,omitempty"`
	DurationSeconds *int    `json:"duration,omitempty"`
	DurationDisplay string  `json:"duration_string"`
	ThumbnailURL    *string `json:"thumbnail,omitempty"`
	AudioURL        *string `json:"audio_url,omitempty"`
	WebpageURL      *string `json:"webpage_url,omitempty"`
	Uploader        *string `json:"uploader,omitempty"`
	UploadDate      *string `json:"upload_date,omitempty"`
	ViewCount       *int64  `json:"view_count,omitempty"`
	LikeCount       *int64  `json:"like_count,omitempty"`
	Description     string  `json:"description"`
	Availability    *string `json:"availability,omitempty"`
	LiveStatus      *string `json:"live_status,omitempty"`
	Source          string  `json:"source"`
	// Category is attached post-hoc by callers (search-term bucket); it is
	// not part of raw provider data.
	Category string `json:"category,omitempty"`
}

// Playlist is the canonical playlist record. Entries keep provider order.
type Playlist struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Uploader     string  `json:"uploader,omitempty"`
	Description  string  `json:"description"`
	ThumbnailURL *string `json:"thumbnail,omitempty"`
	Year         *int    `json:"year,omitempty"`
	TotalTracks  int     `json:"total_tracks"`
	Entries      []Song  `json:"songs"`
	Source       string  `json:"source"`
}

// TrendingPlaylist is a playlist reference surfaced by a discovery feed.
type TrendingPlaylist struct {
	Title        string `json:"title"`
	PlaylistID   string `json:"playlist_id"`
	ThumbnailURL string `json:"thumbnail,omitempty"`
	Description  string `json:"description,omitempty"`
	Section      string `json:"section"`
	URL          string `json:"url"`
}
