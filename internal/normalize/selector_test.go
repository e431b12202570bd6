package normalize

import (
	"testing"

	"github.com/tunedrift/tunedrift/internal/providers"
)

func TestBestAudioFormat(t *testing.T) {
	t.Run("skips formats without audio", func(t *testing.T) {
		formats := []providers.ExtractFormat{
			{ACodec: "none", Quality: 9, URL: "https://cdn/video-only"},
			{ACodec: "aac", Quality: 3, URL: "https://cdn/aac"},
			{ACodec: "opus", Quality: 7, URL: "https://cdn/opus"},
		}

		if got := BestAudioFormat(formats); got != "https://cdn/opus" {
			t.Errorf("expected opus URL, got %q", got)
		}
	})

	t.Run("first maximal wins on ties", func(t *testing.T) {
		formats := []providers.ExtractFormat{
			{ACodec: "opus", Quality: 5, URL: "https://cdn/first"},
			{ACodec: "aac", Quality: 5, URL: "https://cdn/second"},
		}

		if got := BestAudioFormat(formats); got != "https://cdn/first" {
			t.Errorf("expected first URL on tie, got %q", got)
		}
	})

	t.Run("missing quality ranks as zero", func(t *testing.T) {
		formats := []providers.ExtractFormat{
			{ACodec: "aac", URL: "https://cdn/unranked"},
			{ACodec: "opus", Quality: 1, URL: "https://cdn/ranked"},
		}

		if got := BestAudioFormat(formats); got != "https://cdn/ranked" {
			t.Errorf("expected ranked URL, got %q", got)
		}
	})

	t.Run("empty input returns empty", func(t *testing.T) {
		if got := BestAudioFormat(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("only video formats returns empty", func(t *testing.T) {
		formats := []providers.ExtractFormat{{ACodec: "none", Quality: 10, URL: "https://cdn/v"}}
		if got := BestAudioFormat(formats); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestBestThumbnail(t *testing.T) {
	t.Run("largest area wins", func(t *testing.T) {
		thumbs := []providers.ExtractThumbnail{
			{URL: "https://img/small", Width: 120, Height: 90},
			{URL: "https://img/large", Width: 1280, Height: 720},
			{URL: "https://img/medium", Width: 640, Height: 480},
		}

		if got := BestThumbnail(thumbs); got != "https://img/large" {
			t.Errorf("expected large thumbnail, got %q", got)
		}
	})

	t.Run("missing dimensions rank as zero", func(t *testing.T) {
		thumbs := []providers.ExtractThumbnail{
			{URL: "https://img/no-dims"},
			{URL: "https://img/tiny", Width: 1, Height: 1},
		}

		if got := BestThumbnail(thumbs); got != "https://img/tiny" {
			t.Errorf("expected tiny thumbnail, got %q", got)
		}
	})

	t.Run("empty input returns empty", func(t *testing.T) {
		if got := BestThumbnail(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
