// Package config loads all process configuration once at startup into an
// explicit struct. Nothing else in the repository reads the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultGeminiModel is used when GEMINI_MODEL is not set.
const DefaultGeminiModel = "gemini-2.5-flash"

// Config carries everything the advisor binaries need. Credentials are
// opaque strings supplied by the environment.
type Config struct {
	// ProjectID and Dataset locate the BigQuery tables.
	ProjectID string
	Dataset   string

	// GeminiAPIKey authenticates against the generative backend.
	GeminiAPIKey string

	// GeminiModel is the model name passed on every generate call.
	GeminiModel string

	// ArchiveBucket enables the GCS prompt/response archive when set.
	ArchiveBucket string
}

// Load reads a .env file if present, then the environment. Missing required
// variables produce a single descriptive error so the process can abort
// before any work starts.
func Load() (*Config, error) {
	// Absence of a .env file is fine; real environments set vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		ProjectID:     os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Dataset:       os.Getenv("BIGQUERY_DATASET"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		ArchiveBucket: os.Getenv("ADVISOR_ARCHIVE_BUCKET"),
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultGeminiModel
	}

	var missing []string
	if cfg.ProjectID == "" {
		missing = append(missing, "GOOGLE_CLOUD_PROJECT")
	}
	if cfg.Dataset == "" {
		missing = append(missing, "BIGQUERY_DATASET")
	}
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config.Load: missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
