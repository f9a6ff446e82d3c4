package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("BIGQUERY_DATASET", "finance")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("ADVISOR_ARCHIVE_BUCKET", "")
}

func TestLoad(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProjectID != "test-project" {
		t.Errorf("ProjectID = %q, want %q", cfg.ProjectID, "test-project")
	}
	if cfg.Dataset != "finance" {
		t.Errorf("Dataset = %q, want %q", cfg.Dataset, "finance")
	}
	if cfg.GeminiModel != DefaultGeminiModel {
		t.Errorf("GeminiModel = %q, want default %q", cfg.GeminiModel, DefaultGeminiModel)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing project", "GOOGLE_CLOUD_PROJECT"},
		{"missing dataset", "BIGQUERY_DATASET"},
		{"missing api key", "GEMINI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.unset) {
				t.Errorf("error %q does not name missing variable %q", err, tt.unset)
			}
		})
	}
}

func TestLoad_ModelOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_MODEL", "gemini-exp")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GeminiModel != "gemini-exp" {
		t.Errorf("GeminiModel = %q, want %q", cfg.GeminiModel, "gemini-exp")
	}
}
