package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tunedrift/tunedrift/internal/gateway"
	"github.com/tunedrift/tunedrift/internal/providers"
	"github.com/tunedrift/tunedrift/internal/server"
	"github.com/urfave/cli/v3"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the aggregation HTTP server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// Serve wires the providers into the gateway and runs the HTTP server until
// interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.config
	if port := int(cmd.Int("port")); port != 0 {
		config.Server.Port = port
	}
	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}

	// A failed probe marks the metadata provider unavailable for the life of
	// the process. The gateway treats a nil MusicAPI as permanently down.
	var music gateway.MusicAPI
	if config.Providers.MusicProxyURL != "" {
		client, err := providers.NewMusicClient(config.Providers.MusicProxyURL, nil)
		if err != nil {
			r.logger.Warn("music metadata API unavailable, extraction-only mode", "error", err)
		} else {
			r.logger.Info("music metadata API connected", "url", config.Providers.MusicProxyURL)
			music = client
		}
	}

	cookieFile, cleanupCookies := providers.ProvisionCookies(config.Providers.Cookies, r.logger)
	defer cleanupCookies()
	if cookieFile != "" {
		r.logger.Info("cookie jar provisioned for yt-dlp", "path", cookieFile)
	}

	extractor := providers.NewExtractor(config.Providers.YTDLPPath, cookieFile, config.Providers.RatePerSecond)
	extractorOK := extractor.Available()
	if !extractorOK {
		r.logger.Warn("yt-dlp binary not found, media extraction disabled", "path", config.Providers.YTDLPPath)
	}

	agg := gateway.NewGateway(music, extractor, r.logger.With("component", "gateway"))
	srv := server.NewServer(agg, config.Limits, extractorOK, r.logger.With("component", "server"))
	router := server.NewRouter(srv, config.Server.CORSOrigin, r.logger.With("component", "http"))

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("listening at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		r.logger.Info("shutting down", "signal", sig)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	return nil
}
