package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tunedrift/tunedrift/internal/shared"
)

// writeStubBinary creates an executable shell script standing in for the
// yt-dlp binary. It prints stdout, prints stderr, and exits with code.
func writeStubBinary(t *testing.T, stdout, stderr string, code int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "yt-dlp-stub")
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s' %q\nprintf '%%s' %q >&2\nexit %d\n", stdout, stderr, code)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write stub binary: %v", err)
	}
	return path
}

func TestExtract(t *testing.T) {
	t.Run("decodes single video json", func(t *testing.T) {
		stdout := `{"id":"abc123","title":"A Song","uploader":"Channel","duration":120,` +
			`"formats":[{"format_id":"251","acodec":"opus","quality":9,"url":"https://cdn/a"}]}`
		stub := writeStubBinary(t, stdout, "", 0)

		e := NewExtractor(stub, "", 0)
		entry, err := e.Extract(context.Background(), "https://www.youtube.com/watch?v=abc123", DefaultExtractOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if entry.ID != "abc123" {
			t.Errorf("expected id abc123, got %s", entry.ID)
		}
		if len(entry.Formats) != 1 || entry.Formats[0].ACodec != "opus" {
			t.Error("expected decoded format list")
		}
	})

	t.Run("surfaces stderr in the error", func(t *testing.T) {
		stub := writeStubBinary(t, "", "ERROR: Video unavailable", 1)

		e := NewExtractor(stub, "", 0)
		_, err := e.Extract(context.Background(), "https://www.youtube.com/watch?v=gone", DefaultExtractOptions())
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Video unavailable") {
			t.Error("expected stderr text in error")
		}
		if !errors.Is(err, shared.ErrExtractionFailed) {
			t.Errorf("expected ErrExtractionFailed, got %v", err)
		}
		if IsBotChallenge(err) {
			t.Error("unavailable video must not classify as bot challenge")
		}
	})

	t.Run("bot challenge stderr classifies", func(t *testing.T) {
		stub := writeStubBinary(t, "", "ERROR: Sign in to confirm you're not a bot.", 1)

		e := NewExtractor(stub, "", 0)
		_, err := e.Extract(context.Background(), "https://www.youtube.com/watch?v=abc", DefaultExtractOptions())
		if err == nil {
			t.Fatal("expected error")
		}
		if !IsBotChallenge(err) {
			t.Errorf("expected bot challenge classification for %v", err)
		}
	})

	t.Run("rejects malformed output", func(t *testing.T) {
		stub := writeStubBinary(t, "not json", "", 0)

		e := NewExtractor(stub, "", 0)
		if _, err := e.Extract(context.Background(), "x", DefaultExtractOptions()); err == nil {
			t.Fatal("expected decode error")
		}
	})
}

func TestSearch(t *testing.T) {
	stdout := `{"id":"q","title":"q","entries":[` +
		`{"id":"v1","title":"first"},{"id":"v2","title":"second"}]}`
	stub := writeStubBinary(t, stdout, "", 0)

	e := NewExtractor(stub, "", 0)
	entries, err := e.Search(context.Background(), "test", 2, DefaultExtractOptions())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "v1" || entries[1].ID != "v2" {
		t.Error("expected entries in provider order")
	}
}

func TestDegradedExtractOptions(t *testing.T) {
	opts := DegradedExtractOptions()
	if opts.Format != "worstaudio/worst" {
		t.Errorf("expected worst-quality format, got %s", opts.Format)
	}
	if opts.UserAgent == "" {
		t.Error("expected alternate user agent")
	}
}
