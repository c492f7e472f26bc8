package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/spine/internal/config"
	"github.com/jackzampolin/spine/internal/keywords"
	"github.com/jackzampolin/spine/internal/segment"
	"github.com/jackzampolin/spine/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "spine",
	Short: "Chapter segmentation for extracted book pages",
	Long: `Spine segments books into chapters from extracted page text.

Detection cascades through three passes:
  - Heading patterns ("Chapter N:", "Item N:", numbered all-caps titles)
    validated against a keyword extractor
  - Topic-shift boundaries from adjacent-page TF-IDF cosine similarity
  - Synthetic target-sized segments, guaranteed to succeed

Results are validated for shape (count, coverage, gaps, chapter size)
before acceptance; only the synthetic pass is accepted unconditionally.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.spine/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: json or yaml",
	)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the CLI logger; diagnostics go to stderr so results can
// stream to stdout.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// loadConfig loads and validates configuration via the manager.
func loadConfig() (*config.Manager, error) {
	return config.NewManager(cfgFile)
}

// newSegmenter assembles the engine from config: the keyword oracle the
// regex pass consults, the tuning knobs, and the logger.
func newSegmenter(cfg *config.Config, logger *slog.Logger) (*segment.Segmenter, error) {
	var oracle keywords.Extractor
	switch cfg.Keywords.Provider {
	case "openai":
		key := cfg.ResolveAPIKey()
		if key == "" {
			return nil, fmt.Errorf("keywords.provider is openai but no API key is configured")
		}
		oracle = keywords.NewOpenAIExtractor(keywords.OpenAIConfig{
			APIKey:    key,
			Model:     cfg.Keywords.Model,
			RateLimit: cfg.Keywords.RateLimit,
		})
	default:
		oracle = keywords.NewFrequencyExtractor()
	}

	return segment.New(segment.Config{
		Segmentation: cfg.Segmentation,
		Oracle:       oracle,
		OracleTopN:   cfg.Keywords.TopN,
		Logger:       logger,
	})
}
