package server

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the chi router: recovery, per-request timeout, CORS and
// request logging around the handler set.
func NewRouter(s *Server, corsOrigin string, logger *log.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(CORSMiddleware(corsOrigin))
	r.Use(RequestLogger(logger))

	r.Get("/", s.HandleIndex)
	r.Get("/search", s.HandleSearch)
	r.Get("/songs", s.HandleSongDetails)
	r.Get("/audio/{videoID}", s.HandleAudioURL)
	r.Get("/playlist/{playlistID}", s.HandlePlaylist)
	r.Get("/trending/{countryCode}", s.HandleTrending)
	r.Get("/recommended/{videoID}", s.HandleRecommended)
	r.Get("/homepage", s.HandleHomepage)
	r.Get("/category/{category}", s.HandleCategory)
	r.Get("/health", s.HandleHealth)

	return r
}
