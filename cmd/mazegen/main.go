// Package main is the entry point for mazegen.
//
// Usage:
//
//	mazegen [play|print|serve] [-size N] [-seed S] [-preset ID]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samdwyer/mazegen/internal/config"
	"github.com/samdwyer/mazegen/internal/game"
	"github.com/samdwyer/mazegen/internal/httpserver"
	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/preset"
	"github.com/samdwyer/mazegen/internal/store"
	"github.com/samdwyer/mazegen/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// setupFunc installs telemetry exporters and returns the matching shutdown.
type setupFunc func(context.Context) (func(context.Context) error, error)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := run(context.Background(), os.Args[1:], os.Stdout, telemetry.Setup); err != nil {
		log.Error().Err(err).Msg("mazegen failed")
		os.Exit(1)
	}
}

// run resolves configuration, flags and presets before any exporter starts,
// so every later failure returns through the deferred telemetry shutdown.
func run(ctx context.Context, args []string, out io.Writer, setup setupFunc) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	mode := "play"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		mode, args = args[0], args[1:]
	}
	switch mode {
	case "play", "print", "serve":
	default:
		return fmt.Errorf("unknown mode %q (want play, print or serve)", mode)
	}

	fs := flag.NewFlagSet("mazegen "+mode, flag.ContinueOnError)
	size := fs.Int("size", cfg.Size, "maze edge length in cells")
	seed := fs.Int64("seed", cfg.Seed, "random seed (0 = from clock)")
	presetID := fs.String("preset", cfg.Preset, "named preset (overrides size and seed)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	presets, err := preset.LoadRegistry()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	mazeSize, mazeSeed, theme, err := presets.Apply(*presetID, *size, *seed)
	if err != nil {
		return fmt.Errorf("%w (known: %s)", err, strings.Join(presets.IDs(), ", "))
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	shutdown, err := setup(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry setup failed, running without observability")
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Error().Err(err).Msg("telemetry shutdown")
			}
		}()
	}

	switch mode {
	case "play":
		err = runPlay(ctx, game.Config{Size: mazeSize, Seed: mazeSeed, Theme: theme})
	case "print":
		err = runPrint(ctx, out, mazeSize, mazeSeed)
	case "serve":
		err = runServe(cfg, presets)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", mode, err)
	}
	return nil
}

// runPlay walks a maze in the terminal. Logging is silenced while the screen is active.
func runPlay(ctx context.Context, cfg game.Config) error {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer zerolog.SetGlobalLevel(prev)

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	return g.Run(ctx)
}

// runPrint writes one maze as ASCII art to out.
func runPrint(ctx context.Context, out io.Writer, size int, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m, err := maze.New(size, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	if err := m.Generate(ctx); err != nil {
		return err
	}

	log.Info().Int("size", size).Int64("seed", seed).Int("passages", m.Passages()).Msg("maze generated")
	_, err = io.WriteString(out, m.String())
	return err
}

// runServe starts the HTTP API backed by the SQLite store.
func runServe(cfg config.Config, presets *preset.Registry) error {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	srv := httpserver.New(st, presets, cfg.ClientOrigin)
	log.Info().Str("port", cfg.Port).Msg("starting mazegen server")
	return srv.Start(":" + cfg.Port)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_MAZEGEN_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_MAZEGEN_DATASET")
	if dataset == "" {
		dataset = "mazegen"
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
