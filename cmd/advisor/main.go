package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/finance-advisor/internal/advisor"
	"github.com/dvloznov/finance-advisor/internal/archive"
	"github.com/dvloznov/finance-advisor/internal/config"
	"github.com/dvloznov/finance-advisor/internal/gemini"
	infra "github.com/dvloznov/finance-advisor/internal/infra/bigquery"
	"github.com/dvloznov/finance-advisor/internal/logger"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	user := flag.String("user", "", "process only this user id (default: all users)")
	dryRun := flag.Bool("dry-run", false, "generate recommendations without writing to the store")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run timeout")
	flag.Parse()

	// Load configuration before doing any work; missing credentials abort here.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	// Create context with timeout so the batch job doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("model", cfg.GeminiModel).
		Bool("dry_run", *dryRun).
		Msg("Starting advisor run")

	// Initialize Gemini client and verify the backend before touching users.
	gen, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini client")
	}
	if err := gen.CheckConnection(ctx); err != nil {
		log.Fatal().Err(err).Msg("Gemini connection check failed")
	}
	log.Info().Msg("Gemini connection verified")

	// Initialize BigQuery repository
	repo, err := infra.NewAdvisorRepository(ctx, cfg.ProjectID, cfg.Dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize BigQuery repository")
	}
	defer repo.Close()

	runner := &advisor.Runner{
		Store:     repo,
		Generator: gen,
		DryRun:    *dryRun,
	}

	// Optional exchange archive; a missing bucket just disables it.
	if cfg.ArchiveBucket != "" {
		writer, err := archive.NewWriter(ctx, cfg.ArchiveBucket)
		if err != nil {
			log.Warn().Err(err).Str("bucket", cfg.ArchiveBucket).Msg("Archive disabled")
		} else {
			defer writer.Close()
			runner.Archive = writer
		}
	}

	if *user != "" {
		res := runner.RunUser(ctx, *user)
		if res.Outcome == advisor.OutcomeFailed {
			log.Fatal().Err(res.Err).Str("uid", *user).Msg("User processing failed")
		}
		fmt.Println("Advisor run completed successfully.")
		return
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Advisor run failed")
	}

	fmt.Printf("Advisor run completed: %d users, %d processed (%d without movements), %d errors.\n",
		summary.Users, summary.Processed, summary.NoMovements, summary.Errors)
}
