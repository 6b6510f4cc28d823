// Package main is the entry point for Underdark.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/underdark/internal/save"
	"github.com/samdwyer/underdark/internal/telemetry"
	"github.com/samdwyer/underdark/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_UNDERDARK_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	app, err := ui.NewApp(save.DefaultPath())
	if err != nil {
		log.Fatalf("Failed to initialize terminal: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// The .env file may carry an unexpanded variable reference in the
	// headers, so construct them here from the raw key instead
	apiKey := os.Getenv("HONEYCOMB_UNDERDARK_API_KEY")
	dataset := os.Getenv("HONEYCOMB_UNDERDARK_DATASET")
	if dataset == "" {
		dataset = "underdark"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
