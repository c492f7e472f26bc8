package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when configuration validation fails.
// Segmentation never runs with a config that failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds spine configuration.
// Loaded from ./config.yaml or ~/.spine/config.yaml.
type Config struct {
	Segmentation SegmentationCfg `mapstructure:"segmentation" yaml:"segmentation"`
	Keywords     KeywordsCfg     `mapstructure:"keywords" yaml:"keywords"`
	Extract      ExtractCfg      `mapstructure:"extract" yaml:"extract"`
}

// SegmentationCfg holds the tuning knobs for the segmentation engine.
type SegmentationCfg struct {
	MinChapters         int     `mapstructure:"min_chapters" yaml:"min_chapters"`                 // Minimum acceptable chapter count
	MaxChapters         int     `mapstructure:"max_chapters" yaml:"max_chapters"`                 // Maximum acceptable chapter count
	MinPages            int     `mapstructure:"min_pages" yaml:"min_pages"`                       // Minimum pages between detected boundaries
	TargetPages         int     `mapstructure:"target_pages" yaml:"target_pages"`                 // Desired average chapter length for synthetic segments
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"` // Adjacent-page cosine cutoff for a topic shift
	TFIDFMaxFeatures    int     `mapstructure:"tfidf_max_features" yaml:"tfidf_max_features"`     // Vocabulary cap for page vectors
	MinKeywords         int     `mapstructure:"min_keywords" yaml:"min_keywords"`                 // Distinct salient terms required to accept a heading page
}

// KeywordsCfg configures the keyword extractor used as the content-validity
// oracle in the regex pass.
type KeywordsCfg struct {
	Provider  string  `mapstructure:"provider" yaml:"provider"`     // "frequency" or "openai"
	Model     string  `mapstructure:"model" yaml:"model"`           // Model name (openai provider)
	APIKey    string  `mapstructure:"api_key" yaml:"api_key"`       // API key (supports ${ENV_VAR} syntax)
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per second (openai provider)
	TopN      int     `mapstructure:"top_n" yaml:"top_n"`           // Terms requested per page; should comfortably exceed min_keywords
}

// ExtractCfg configures the upstream PDF page extraction.
type ExtractCfg struct {
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"` // Max concurrent page extractions
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Segmentation: SegmentationCfg{
			MinChapters:         3,
			MaxChapters:         50,
			MinPages:            5,
			TargetPages:         15,
			SimilarityThreshold: 0.3,
			TFIDFMaxFeatures:    1000,
			MinKeywords:         3,
		},
		Keywords: KeywordsCfg{
			Provider:  "frequency",
			Model:     "gpt-4o-mini",
			APIKey:    "${OPENAI_API_KEY}",
			RateLimit: 2.0,
			TopN:      10,
		},
		Extract: ExtractCfg{
			MaxWorkers: 8,
		},
	}
}

// Validate checks the configuration for missing or contradictory values.
// It fails fast: segmentation must never start with a broken config.
func (c *Config) Validate() error {
	if err := c.Segmentation.Validate(); err != nil {
		return err
	}

	switch c.Keywords.Provider {
	case "frequency", "openai":
	default:
		return fmt.Errorf("%w: keywords.provider must be \"frequency\" or \"openai\", got %q", ErrInvalidConfig, c.Keywords.Provider)
	}
	if c.Keywords.TopN < c.Segmentation.MinKeywords {
		return fmt.Errorf("%w: keywords.top_n (%d) must be at least segmentation.min_keywords (%d)", ErrInvalidConfig, c.Keywords.TopN, c.Segmentation.MinKeywords)
	}

	if c.Extract.MaxWorkers <= 0 {
		return fmt.Errorf("%w: extract.max_workers must be positive, got %d", ErrInvalidConfig, c.Extract.MaxWorkers)
	}

	return nil
}

// Validate checks the segmentation knobs in isolation. The engine calls this
// directly when constructed without a full Config.
func (s SegmentationCfg) Validate() error {
	switch {
	case s.MinChapters <= 0:
		return fmt.Errorf("%w: segmentation.min_chapters must be positive, got %d", ErrInvalidConfig, s.MinChapters)
	case s.MaxChapters <= 0:
		return fmt.Errorf("%w: segmentation.max_chapters must be positive, got %d", ErrInvalidConfig, s.MaxChapters)
	case s.MinChapters > s.MaxChapters:
		return fmt.Errorf("%w: segmentation.min_chapters (%d) exceeds max_chapters (%d)", ErrInvalidConfig, s.MinChapters, s.MaxChapters)
	case s.MinPages <= 0:
		return fmt.Errorf("%w: segmentation.min_pages must be positive, got %d", ErrInvalidConfig, s.MinPages)
	case s.TargetPages <= 0:
		return fmt.Errorf("%w: segmentation.target_pages must be positive, got %d", ErrInvalidConfig, s.TargetPages)
	case s.SimilarityThreshold <= 0 || s.SimilarityThreshold >= 1:
		return fmt.Errorf("%w: segmentation.similarity_threshold must be in (0, 1), got %g", ErrInvalidConfig, s.SimilarityThreshold)
	case s.TFIDFMaxFeatures <= 0:
		return fmt.Errorf("%w: segmentation.tfidf_max_features must be positive, got %d", ErrInvalidConfig, s.TFIDFMaxFeatures)
	case s.MinKeywords <= 0:
		return fmt.Errorf("%w: segmentation.min_keywords must be positive, got %d", ErrInvalidConfig, s.MinKeywords)
	}
	return nil
}
