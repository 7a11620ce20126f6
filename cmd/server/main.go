// Command server runs the designer web app: a form that renders text onto a
// solid background and offers the PNG for download.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suprajagandikota3-max/designer-app/internal/api"
	"github.com/suprajagandikota3-max/designer-app/internal/config"
	"github.com/suprajagandikota3-max/designer-app/internal/fonts"
	"github.com/suprajagandikota3-max/designer-app/internal/logger"
	"github.com/suprajagandikota3-max/designer-app/internal/session"
	"github.com/suprajagandikota3-max/designer-app/internal/suggest"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	writeConfig := flag.String("write-config", "", "write the default config to this path and exit")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.DefaultConfig().Save(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "error: write config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)

	log, closer := logger.NewLogger(cfg.Log.File, logger.ParseLevel(cfg.Log.Level), cfg.Log.MaxSizeMB)
	defer closer.Close()
	slog.SetDefault(log)

	if err := run(cfg); err != nil {
		logger.Fail(log, "server stopped", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := fonts.NewLoader(cfg.Fonts.Dir, cfg.Fonts.Pattern)
	if cfg.Fonts.Watch {
		loader.Watch(ctx)
	}
	slog.Info("fonts ready", "dir", loader.Dir(), "count", len(loader.Names()))

	table := suggest.DefaultTable()
	if cfg.Suggest.TableFile != "" {
		t, err := suggest.LoadTable(cfg.Suggest.TableFile)
		if err != nil {
			// Best-effort: the built-in table still works.
			slog.Warn("failed to load suggestion table, using built-in", "path", cfg.Suggest.TableFile, "error", err)
		} else {
			table = t
		}
	}
	client := suggest.NewClient(suggest.ClientConfig{
		APIKey:   cfg.Suggest.APIKey,
		Endpoint: cfg.Suggest.Endpoint,
		Model:    cfg.Suggest.Model,
		Timeout:  cfg.Suggest.Timeout.Duration,
		RetryMax: cfg.Suggest.RetryMax,
	})
	if !client.HasKey() {
		slog.Info("no suggestion API key, using built-in suggestions")
	}

	sessions := session.NewStore(cfg.Server.SessionTTL.Duration)
	go pruneSessions(ctx, sessions, cfg.Server.SessionTTL.Duration)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewHandlers(api.Options{
		Canvas:    cfg.Canvas,
		Fonts:     loader,
		Suggest:   suggest.NewService(client, table),
		Sessions:  sessions,
		OutputDir: cfg.Output.Dir,
	}))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// pruneSessions drops idle sessions until ctx is done.
func pruneSessions(ctx context.Context, store *session.Store, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Prune(); n > 0 {
				slog.Debug("pruned sessions", "count", n)
			}
		}
	}
}
