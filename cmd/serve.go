package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally, rendering pages on each request",
	Long: `Starts a local dev server over the site directory. Pages are rendered from
their shells and content on every request, so edits show up on reload. With
--watch the browser reloads itself when files change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("watch", false, "reload the browser when site files change")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	watch := cfg.Server.Watch
	if cmd.Flags().Changed("watch") {
		watch, _ = cmd.Flags().GetBool("watch")
	}

	runner, err := newRunner(cfg, log)
	if err != nil {
		return err
	}

	srv := site.NewServer(site.ServerConfig{
		Port:     port,
		SiteDir:  cfg.SiteDir,
		AllowAll: cfg.Server.AllowAllOrigins,
		Watch:    watch,
	}, site.Pages(cfg), runner, log)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch {
		dirs := []string{cfg.SiteDir}
		if !isRemote(cfg.DataSource) && cfg.DataSource != cfg.SiteDir {
			dirs = append(dirs, cfg.DataSource)
		}
		go func() {
			if err := srv.Reloader().Watch(ctx, dirs...); err != nil {
				log.Error().Err(err).Msg("file watcher stopped")
			}
		}()
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d", port)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go site.OpenBrowser(url)
	}
	fmt.Fprintf(os.Stderr, "Serving %s at %s\nPress Ctrl+C to stop.\n", cfg.SiteDir, url)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
