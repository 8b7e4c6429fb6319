// projectview-tui signs in to the project API and shows one project in the
// terminal.
//
// Usage:
//
//	projectview-tui [--api-origin http://localhost:8000] [--project 1]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/kidandcat/projectview/internal/client"
	"github.com/kidandcat/projectview/internal/config"
	"github.com/kidandcat/projectview/internal/logger"
	"github.com/kidandcat/projectview/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaults := config.Default()
	flagSet := pflag.NewFlagSet("projectview-tui", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to a YAML config file")
	flagSet.String("api-origin", defaults.APIOrigin, "origin of the project API")
	flagSet.Int64("project", defaults.ProjectID, "project id to display")
	logFile := flagSet.String("log-file", "", "write JSON log records to this file")
	timeout := flagSet.Duration("timeout", 0, "per-request timeout (0 waits indefinitely)")
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

	log := zerolog.Nop()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		if log, err = logger.New(config.EnvDev, f); err != nil {
			return err
		}
	}

	var opts []client.Option
	if *timeout > 0 {
		opts = append(opts, client.WithTimeout(*timeout))
	}
	api, err := client.New(cfg.APIOrigin, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := time.Now()
	model := tui.NewModel(ctx, api, cfg.ProjectID, log)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	log.Info().Dur("session", time.Since(started)).Msg("viewer closed")
	return err
}
