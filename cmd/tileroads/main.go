// Package main is the entry point for tileroads.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/samdwyer/tileroads/internal/logger"
	"github.com/samdwyer/tileroads/internal/telemetry"
)

func main() {
	os.Exit(int(run()))
}

// run executes the selected subcommand. It is split from main so that
// deferred telemetry shutdown happens before the process exits.
func run() subcommands.ExitStatus {
	// Load .env file for local development
	// This makes HONEYCOMB_TILEROADS_API_KEY and TILEROADS_* available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Log.WithError(err).Warn("Telemetry setup failed, running without tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Log.WithError(err).Error("Error shutting down telemetry")
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&generateCmd{}, "")
	subcommands.Register(&routeCmd{}, "")
	subcommands.Register(&exportCmd{}, "")
	subcommands.Register(&benchCmd{}, "")
	subcommands.Register(&viewCmd{}, "")

	flag.Parse()
	return subcommands.Execute(ctx)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_TILEROADS_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may have an unexpanded variable reference that doesn't
	// work, so we construct the headers here
	dataset := os.Getenv("HONEYCOMB_TILEROADS_DATASET")
	if dataset == "" {
		dataset = "tileroads" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
