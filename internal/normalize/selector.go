package normalize

import "github.com/tunedrift/tunedrift/internal/providers"

// BestAudioFormat picks the URL of the highest-quality audio-capable format.
// Candidates whose codec reports "none" carry no audio and are skipped;
// missing quality ranks as zero. Ties keep the first maximal candidate, so
// selection is stable for identical input order. Returns "" when nothing
// audio-capable remains.
func BestAudioFormat(formats []providers.ExtractFormat) string {
	best := -1
	bestQuality := 0.0

	for i, f := range formats {
		if f.ACodec == "none" {
			continue
		}
		if best == -1 || f.Quality > bestQuality {
			best = i
			bestQuality = f.Quality
		}
	}

	if best == -1 {
		return ""
	}
	return formats[best].URL
}

// BestThumbnail picks the URL of the largest thumbnail by pixel area, with
// missing dimensions ranked as zero. Ties keep the first maximal candidate.
// Returns "" for an empty candidate list.
func BestThumbnail(thumbs []providers.ExtractThumbnail) string {
	best := -1
	bestArea := -1

	for i, t := range thumbs {
		area := t.Width * t.Height
		if area > bestArea {
			best = i
			bestArea = area
		}
	}

	if best == -1 {
		return ""
	}
	return thumbs[best].URL
}
