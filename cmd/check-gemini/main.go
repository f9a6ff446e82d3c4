// Standalone connectivity probe for the generative backend. Sends the
// canned test prompt and prints the parsed reply.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dvloznov/finance-advisor/internal/config"
	"github.com/dvloznov/finance-advisor/internal/gemini"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}

	if err := client.CheckConnection(ctx); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}

	fmt.Printf("Gemini connection OK (model %s).\n", cfg.GeminiModel)
	return nil
}
