// Copyright 2025 The Linkstash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/linkstash/linkstash"
	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/api"
	"github.com/linkstash/linkstash/auth"
	"github.com/linkstash/linkstash/config"
	"github.com/linkstash/linkstash/reenrich"
)

func main() {
	app := &cli.App{
		Name:  "linkstash",
		Usage: "Capture links, notes, voice, and images with AI enrichment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
			},
			{
				Name:   "reenrich",
				Usage:  "Re-run AI enrichment for a user's degraded notes",
				Action: reenrichCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User ID whose notes to re-enrich",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of notes to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N notes",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of batches processed in parallel",
						Value: 0,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openApp(cfg *config.Config) (*linkstash.App, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(cfg.AI.Host),
		ai.WithToken(cfg.AI.Token),
		ai.WithChatModel(cfg.AI.ChatModel),
		ai.WithAudioModel(cfg.AI.AudioModel),
	)

	opts := []linkstash.AppOption{linkstash.WithAIConfig(aiConfig)}
	if cfg.Store.InMemory {
		opts = append(opts, linkstash.WithInMemory())
	}
	return linkstash.NewApp(cfg.Store.Path, opts...)
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app, err := openApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to open application: %w", err)
	}
	defer app.Close()

	authn, err := app.NewAuthService(cfg.Auth.Secret, auth.WithSessionTTL(cfg.Auth.SessionTTL))
	if err != nil {
		return err
	}
	dispatcher, err := app.NewDispatcher()
	if err != nil {
		return err
	}
	searcher, err := app.NewSearcher()
	if err != nil {
		return err
	}
	backups, err := app.NewBackupService()
	if err != nil {
		return err
	}

	server, err := api.NewServer(authn, dispatcher, searcher, backups,
		app.NoteRepository(), app.Fetcher(), app.Provider())
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr, "store", cfg.Store.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func reenrichCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	reenrichConfig := &reenrich.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Concurrency:    c.Int("concurrency"),
	}
	if reenrichConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reenrichConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reenrichConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	app, err := openApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to open application: %w", err)
	}
	defer app.Close()

	runner := app.NewReenricher(reenrichConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Store: %s\n", cfg.Store.Path)
	fmt.Fprintf(os.Stderr, "User: %s\n", c.String("user"))

	updated, err := runner.Run(context.Background(), c.String("user"))
	if err != nil {
		return fmt.Errorf("re-enrichment failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Updated %d notes\n", updated)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
