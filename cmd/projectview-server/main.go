// projectview-server serves the project API and the browser front end.
//
// Usage:
//
//	projectview-server [--config projectview.yaml] [flags]
//
// Build the front end first with
// GOARCH=wasm GOOS=js go build -o web/app.wasm ./app
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/kidandcat/projectview/internal/api"
	"github.com/kidandcat/projectview/internal/config"
	"github.com/kidandcat/projectview/internal/db"
	"github.com/kidandcat/projectview/internal/logger"
	"github.com/kidandcat/projectview/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("projectview-server", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to a YAML config file")
	config.RegisterFlags(flagSet)
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(flagSet); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.Env, os.Stdout)
	if err != nil {
		return err
	}
	log.Info().Str("env", cfg.Env).Str("data_dir", cfg.DataDir).Msg("loaded config")

	store, err := db.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Seed {
		seeded, err := store.SeedDemo(ctx)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		if seeded {
			log.Info().Str("password", db.DemoPassword).Msg("seeded demo users demo_user1 and demo_user2")
		}
	}

	settings := web.Settings{
		APIOrigin: cfg.APIOrigin,
		ProjectID: cfg.ProjectID,
		Markdown:  cfg.MarkdownDescriptions,
	}
	web.Register(settings, nil)

	apiServer := api.New(store, log)
	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)
	mux.Handle("/", web.Handler(settings, cfg.WebDir))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Handler(mux, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, server, log)
}

// serve runs server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server, log zerolog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("shut down http server")
	return nil
}
