// Package main is the entry point for mazegen.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/mazegen/internal/app"
	"github.com/samdwyer/mazegen/internal/config"
	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/telemetry"
	"github.com/samdwyer/mazegen/internal/ui"
)

var log = logrus.New()

// Exit codes returned by run.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run is main without the exit, so deferred cleanup always happens.
func run(args []string, stdout io.Writer) int {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.WithError(err).Debug(".env file not loaded")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Errorf("Invalid environment: %v", err)
		return exitUsage
	}
	if err := parseFlags(&cfg, args); errors.Is(err, flag.ErrHelp) {
		return exitOK
	} else if err != nil {
		log.Errorf("Invalid arguments: %v", err)
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		log.Errorf("Invalid configuration: %v", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.WithError(err).Warn("telemetry setup failed, running without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.WithError(err).Error("telemetry shutdown failed")
				}
			}()
		}
	}

	if cfg.Headless {
		if _, err := app.Print(ctx, cfg, stdout, log); err != nil {
			log.Errorf("Generation failed: %v", err)
			return exitError
		}
		return exitOK
	}

	// The terminal UI owns stdout; keep log lines off the screen
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	screen, err := ui.NewScreen()
	if err != nil {
		log.Errorf("Failed to initialize screen: %v", err)
		return exitError
	}

	a, err := app.New(cfg, screen, log)
	if err != nil {
		screen.Close()
		log.Errorf("Failed to initialize app: %v", err)
		return exitError
	}

	// An interrupt cancels ctx; that is a normal way to leave
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("App error: %v", err)
		return exitError
	}
	return exitOK
}

// parseFlags overrides cfg with any command line flags.
func parseFlags(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "maze width in cells")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "maze height in cells")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 derives one from the clock)")
	fs.DurationVar(&cfg.StepDelay, "delay", cfg.StepDelay, "pause after each cell while animating")
	fs.BoolVar(&cfg.Headless, "print", cfg.Headless, "print the finished maze instead of animating it")
	algorithm := fs.String("algorithm", cfg.Algorithm.String(), fmt.Sprintf("generation algorithm %v", maze.Algorithms()))

	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := maze.ParseAlgorithm(*algorithm)
	if err != nil {
		return err
	}
	cfg.Algorithm = a
	return nil
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set.
// It reports whether an exporter endpoint is configured at all.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_MAZEGEN_API_KEY")
	if apiKey == "" {
		return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
	}
	dataset := os.Getenv("HONEYCOMB_MAZEGEN_DATASET")
	if dataset == "" {
		dataset = "mazegen"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
