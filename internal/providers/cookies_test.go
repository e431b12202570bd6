package providers

import (
	"os"
	"strings"
	"testing"
)

func TestProvisionCookies(t *testing.T) {
	t.Run("empty header yields no jar", func(t *testing.T) {
		path, cleanup := ProvisionCookies("", nil)
		defer cleanup()

		if path != "" {
			t.Errorf("expected no jar, got %s", path)
		}
	})

	t.Run("valid pairs produce a netscape jar", func(t *testing.T) {
		path, cleanup := ProvisionCookies("SID=abc123; HSID=def456", nil)
		defer cleanup()

		if path == "" {
			t.Fatal("expected a jar path")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read jar: %v", err)
		}

		content := string(data)
		if !strings.HasPrefix(content, "# Netscape HTTP Cookie File") {
			t.Error("expected netscape header")
		}
		if !strings.Contains(content, "SID\tabc123") {
			t.Error("expected SID cookie line")
		}
		if !strings.Contains(content, "HSID\tdef456") {
			t.Error("expected HSID cookie line")
		}
	})

	t.Run("malformed pairs are skipped", func(t *testing.T) {
		path, cleanup := ProvisionCookies("garbage; SID=ok", nil)
		defer cleanup()

		if path == "" {
			t.Fatal("expected a jar path for the surviving pair")
		}

		data, _ := os.ReadFile(path)
		if strings.Contains(string(data), "garbage") {
			t.Error("malformed pair should be dropped")
		}
	})

	t.Run("entirely malformed header yields no jar", func(t *testing.T) {
		path, cleanup := ProvisionCookies(";;; nonsense ;;", nil)
		defer cleanup()

		if path != "" {
			t.Errorf("expected no jar, got %s", path)
		}
	})

	t.Run("cleanup removes the jar", func(t *testing.T) {
		path, cleanup := ProvisionCookies("SID=abc", nil)
		if path == "" {
			t.Fatal("expected a jar path")
		}

		cleanup()
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected jar to be removed")
		}
	})
}

func TestIsBotChallenge(t *testing.T) {
	tc := []struct {
		name string
		msg  string
		want bool
	}{
		{name: "sign in wording", msg: "ERROR: Sign in to confirm you're not a bot", want: true},
		{name: "captcha wording", msg: "solve this CAPTCHA to continue", want: true},
		{name: "plain network failure", msg: "connection reset by peer", want: false},
		{name: "unavailable video", msg: "ERROR: Video unavailable", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := errorString(tt.msg)
			if got := IsBotChallenge(err); got != tt.want {
				t.Errorf("IsBotChallenge(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}

	t.Run("nil error", func(t *testing.T) {
		if IsBotChallenge(nil) {
			t.Error("nil error must not classify")
		}
	})
}

type errorString string

func (e errorString) Error() string { return string(e) }
