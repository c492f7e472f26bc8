package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"zero min chapters", func(c *Config) { c.Segmentation.MinChapters = 0 }, "min_chapters"},
		{"negative max chapters", func(c *Config) { c.Segmentation.MaxChapters = -1 }, "max_chapters"},
		{"min exceeds max", func(c *Config) { c.Segmentation.MinChapters = 60 }, "min_chapters"},
		{"zero min pages", func(c *Config) { c.Segmentation.MinPages = 0 }, "min_pages"},
		{"zero target pages", func(c *Config) { c.Segmentation.TargetPages = 0 }, "target_pages"},
		{"threshold at zero", func(c *Config) { c.Segmentation.SimilarityThreshold = 0 }, "similarity_threshold"},
		{"threshold at one", func(c *Config) { c.Segmentation.SimilarityThreshold = 1 }, "similarity_threshold"},
		{"zero max features", func(c *Config) { c.Segmentation.TFIDFMaxFeatures = 0 }, "tfidf_max_features"},
		{"zero min keywords", func(c *Config) { c.Segmentation.MinKeywords = 0 }, "min_keywords"},
		{"unknown provider", func(c *Config) { c.Keywords.Provider = "llama" }, "provider"},
		{"top_n below min_keywords", func(c *Config) { c.Keywords.TopN = 1 }, "top_n"},
		{"zero workers", func(c *Config) { c.Extract.MaxWorkers = 0 }, "max_workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("SPINE_TEST_KEY", "sk-test-123")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain value untouched", "sk-plain", "sk-plain"},
		{"env reference expanded", "${SPINE_TEST_KEY}", "sk-test-123"},
		{"embedded reference", "prefix-${SPINE_TEST_KEY}-suffix", "prefix-sk-test-123-suffix"},
		{"unset variable resolves empty", "${SPINE_TEST_UNSET_VAR}", ""},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveEnvVars(tt.input); got != tt.want {
				t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("SPINE_TEST_API_KEY", "sk-from-env")

	cfg := DefaultConfig()
	cfg.Keywords.APIKey = "${SPINE_TEST_API_KEY}"
	if got := cfg.ResolveAPIKey(); got != "sk-from-env" {
		t.Errorf("expected key from environment, got %q", got)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Spine configuration") {
		t.Error("expected explanatory header at top of file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("written config must round-trip as valid: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Segmentation != defaults.Segmentation {
		t.Errorf("segmentation settings changed in round-trip: %+v != %+v", cfg.Segmentation, defaults.Segmentation)
	}
	if cfg.Keywords.APIKey != "${OPENAI_API_KEY}" {
		t.Errorf("expected literal env reference in written file, got %q", cfg.Keywords.APIKey)
	}
}
