// package normalize converts raw provider payloads into the canonical record
// shapes and houses the pure formatting/selection heuristics they share.
package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	unknownDuration = "Unknown"
	unknownArtist   = "Unknown Artist"
	unknownTitle    = "Unknown Title"
)

// FormatDuration renders a duration in seconds as MM:SS, or HH:MM:SS once
// hours are involved. Zero, negative and absent durations all render as
// "Unknown"; this function never fails.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return unknownDuration
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// SplitArtistTitle guesses an (artist, title) pair from a combined title
// string. "Artist - Title" splits on the first dash; a single "Title by
// Artist" splits on "by" with both halves title-cased; anything else keeps
// the raw title and falls back to the uploader for the artist.
//
// This is a lossy heuristic: titles that legitimately contain " - " or
// " by " will be split wrong. Callers accept that in exchange for usable
// artist fields on uploads that only have a combined title.
func SplitArtistTitle(rawTitle, fallbackUploader string) (artist, title string) {
	if left, right, found := strings.Cut(rawTitle, " - "); found {
		return strings.TrimSpace(left), strings.TrimSpace(right)
	}

	lower := strings.ToLower(rawTitle)
	if strings.Count(lower, " by ") == 1 {
		idx := strings.Index(lower, " by ")
		title = titleCase(strings.TrimSpace(rawTitle[:idx]))
		artist = titleCase(strings.TrimSpace(rawTitle[idx+len(" by "):]))
		return artist, title
	}

	artist = fallbackUploader
	if artist == "" {
		artist = unknownArtist
	}
	title = rawTitle
	if title == "" {
		title = unknownTitle
	}
	return artist, title
}

// titleCase upper-cases the first rune of each space-separated word,
// lower-casing the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
