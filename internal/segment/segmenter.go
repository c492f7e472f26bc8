// Package segment implements the chapter segmentation engine: a cascading
// three-pass detection strategy over extracted book pages.
//
// Pass A looks for explicit heading patterns and validates candidates against
// the keyword oracle. Pass B finds topic-shift boundaries from adjacent-page
// TF-IDF cosine similarity. Pass C synthesizes target-sized segments and is
// guaranteed to produce output for any non-empty input. Pass A and B results
// must pass the segmentation validator before they are accepted; Pass C is
// accepted unconditionally.
//
// The engine performs no I/O and holds no mutable state across calls, so a
// single Segmenter is safe to use concurrently across books.
package segment

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"

	"github.com/jackzampolin/spine/internal/config"
	"github.com/jackzampolin/spine/internal/keywords"
	"github.com/jackzampolin/spine/internal/types"
)

// headingPattern pairs a compiled heading regex with the detection method it
// records. The slice ordering in New is the priority order: the first pattern
// that matches a page wins, later patterns are never tried. That makes this
// a fixed rule list, deliberately not a map.
type headingPattern struct {
	re     *regexp.Regexp
	method types.DetectionMethod
}

// Config configures a Segmenter.
type Config struct {
	Segmentation config.SegmentationCfg
	Oracle       keywords.Extractor // Required: content-validity oracle for the regex pass
	OracleTopN   int                // Terms requested per page; defaults to 3x MinKeywords (min 10)
	Logger       *slog.Logger       // Optional; defaults to slog.Default()
}

// Segmenter runs the cascading segmentation passes. Construct once with New
// and reuse; the heading patterns are compiled at construction time.
type Segmenter struct {
	cfg      config.SegmentationCfg
	oracle   keywords.Extractor
	topN     int
	logger   *slog.Logger
	patterns []headingPattern

	digitToken *regexp.Regexp
}

// New creates a Segmenter. It fails fast on an invalid segmentation config
// or a missing oracle; no segmentation ever runs with either.
func New(cfg Config) (*Segmenter, error) {
	if err := cfg.Segmentation.Validate(); err != nil {
		return nil, err
	}
	if cfg.Oracle == nil {
		return nil, fmt.Errorf("%w: keyword oracle is required", config.ErrInvalidConfig)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	topN := cfg.OracleTopN
	if topN <= 0 {
		topN = cfg.Segmentation.MinKeywords * 3
		if topN < 10 {
			topN = 10
		}
	}

	return &Segmenter{
		cfg:    cfg.Segmentation,
		oracle: cfg.Oracle,
		topN:   topN,
		logger: logger,
		patterns: []headingPattern{
			// "Chapter 7: The Reckoning" / "Chapter 12. Winter"
			{regexp.MustCompile(`(?im)^\s*chapter\s+(\d{1,3})\s*[:.]\s*(\S.*)$`), types.MethodRegexChapter},
			// "Item 4: Risk Factors" / "Item 1A - Properties"
			{regexp.MustCompile(`(?im)^\s*item\s+(\d{1,3})\s*[:.\-]\s*(\S.*)$`), types.MethodRegexItem},
			// A bare chapter number on its own line followed by an
			// all-caps title longer than 10 characters.
			{regexp.MustCompile(`(?m)^\s*(\d{1,3})\s*\n\s*([A-Z][A-Z0-9 ,'’\-:;]{10,})\s*$`), types.MethodRegexNumeric},
		},
		digitToken: regexp.MustCompile(`\b\d{1,3}\b`),
	}, nil
}

// SegmentBook produces a non-overlapping, page-covering chapter list for the
// given pages. Empty input returns an empty (non-nil) slice; for any
// non-empty input at least one chapter is returned.
func (s *Segmenter) SegmentBook(ctx context.Context, pages []types.Page) []types.Chapter {
	if len(pages) == 0 {
		return []types.Chapter{}
	}

	sorted := sortByPageNumber(pages)

	if chapters, ok := s.detectPattern(ctx, sorted); ok {
		if s.validate(chapters, len(sorted)) {
			s.logger.Info("segmentation accepted", "pass", "pattern", "chapters", len(chapters))
			return chapters
		}
		s.logger.Info("pattern pass rejected by validator", "chapters", len(chapters))
	}

	if chapters, ok := s.detectTopicShift(sorted); ok {
		if s.validate(chapters, len(sorted)) {
			s.logger.Info("segmentation accepted", "pass", "topic", "chapters", len(chapters))
			return chapters
		}
		s.logger.Info("topic pass rejected by validator", "chapters", len(chapters))
	}

	chapters := s.segmentSynthetic(sorted)
	s.logger.Info("segmentation accepted", "pass", "synthetic", "chapters", len(chapters))
	return chapters
}

// sortByPageNumber returns a copy of pages ordered by PageNumber. Input
// order carries no meaning beyond the page numbers themselves.
func sortByPageNumber(pages []types.Page) []types.Page {
	sorted := make([]types.Page, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PageNumber < sorted[j].PageNumber
	})
	return sorted
}
