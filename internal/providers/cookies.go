package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ProvisionCookies materializes an opaque "name=value; name2=value2" cookie
// header into a Netscape-format cookie jar file that yt-dlp accepts.
//
// The jar is created once at startup and shared read-only by every request;
// cleanup removes it on shutdown. An empty or entirely malformed header
// yields no jar (anonymous extraction), never an error, so bad credential
// material cannot keep the service from starting.
func ProvisionCookies(header string, logger *log.Logger) (string, func()) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", func() {}
	}

	var lines []string
	for _, pair := range strings.Split(header, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			if logger != nil {
				logger.Warn("skipping malformed cookie pair", "pair", pair)
			}
			continue
		}

		// domain, include-subdomains, path, secure, expiry, name, value
		lines = append(lines, fmt.Sprintf(".youtube.com\tTRUE\t/\tTRUE\t0\t%s\t%s", name, strings.TrimSpace(value)))
	}

	if len(lines) == 0 {
		if logger != nil {
			logger.Warn("cookie header contained no usable pairs, proceeding anonymously")
		}
		return "", func() {}
	}

	content := "# Netscape HTTP Cookie File\n" + strings.Join(lines, "\n") + "\n"
	path := filepath.Join(os.TempDir(), fmt.Sprintf("tunedrift-cookies-%s.txt", uuid.New().String()))

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		if logger != nil {
			logger.Warn("failed to write cookie jar, proceeding anonymously", "err", err)
		}
		return "", func() {}
	}

	return path, func() { os.Remove(path) }
}
