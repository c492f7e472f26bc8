package segment

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jackzampolin/spine/internal/types"
)

const (
	// minHeadingPageChars is the trimmed floor below which a page is too
	// short to carry a real chapter heading.
	minHeadingPageChars = 300
	// minChapterPageChars is the whole-page floor a matched candidate must
	// clear; heading-only pages (half-title, part dividers) fall under it.
	minChapterPageChars = 800
	// headingRegionLines bounds how far into a page headings are searched.
	headingRegionLines = 25
	// tocDigitLimit flags table-of-contents pages: more isolated 1-3 digit
	// tokens than this in the heading region means page-number noise.
	tocDigitLimit = 8
	// oracleSpanChars is how much of the page the keyword oracle sees.
	oracleSpanChars = 2000
)

// patternCandidate is a page that matched a heading pattern and survived
// content validation.
type patternCandidate struct {
	pageNumber int
	label      string
	title      string
	method     types.DetectionMethod
}

// detectPattern is the first detection pass: regex heading matching with
// oracle-backed content validation. Returns (nil, false) when no candidate
// survives, signaling fallthrough to the topic pass.
func (s *Segmenter) detectPattern(ctx context.Context, pages []types.Page) ([]types.Chapter, bool) {
	var candidates []patternCandidate
	claimed := make(map[string]struct{})

	for _, page := range pages {
		cand, ok := s.matchHeadingPage(ctx, page)
		if !ok {
			continue
		}
		// First page-order occurrence of a label wins; later pages
		// claiming the same chapter are TOC echoes or running heads.
		if _, dup := claimed[cand.label]; dup {
			continue
		}
		claimed[cand.label] = struct{}{}
		candidates = append(candidates, cand)
	}

	if len(candidates) == 0 {
		return nil, false
	}

	lastPage := pages[len(pages)-1].PageNumber
	chapters := make([]types.Chapter, len(candidates))
	for i, cand := range candidates {
		endPage := lastPage
		if i+1 < len(candidates) {
			endPage = candidates[i+1].pageNumber - 1
		}
		chapters[i] = types.Chapter{
			Number:          i + 1, // sequential, not the detected label
			Title:           cand.title,
			StartPage:       cand.pageNumber,
			EndPage:         endPage,
			DetectionMethod: cand.method,
		}
	}
	return chapters, true
}

// matchHeadingPage applies the skip rules, the priority-ordered heading
// patterns, and the content/keyword gates to a single page.
func (s *Segmenter) matchHeadingPage(ctx context.Context, page types.Page) (patternCandidate, bool) {
	// Thresholds count characters, not bytes; non-ASCII pages must not
	// clear a gate on encoding width alone.
	trimmed := strings.TrimSpace(page.Content)
	if utf8.RuneCountInString(trimmed) < minHeadingPageChars {
		return patternCandidate{}, false
	}

	firstText := headingRegion(page.Content)
	if len(s.digitToken.FindAllString(firstText, tocDigitLimit+1)) > tocDigitLimit {
		return patternCandidate{}, false
	}

	for _, hp := range s.patterns {
		m := hp.re.FindStringSubmatch(firstText)
		if m == nil {
			continue
		}

		// A pattern matched. From here on the page either becomes a
		// candidate or is discarded outright; later patterns are not
		// consulted for the same page.
		if utf8.RuneCountInString(page.Content) < minChapterPageChars {
			return patternCandidate{}, false
		}

		span := truncateRunes(page.Content, oracleSpanChars)
		terms, err := s.oracle.ExtractKeywords(ctx, span, s.topN)
		if err != nil {
			// Oracle failure discards this candidate only; other pages
			// keep processing.
			s.logger.Warn("keyword oracle failed, discarding candidate",
				"page", page.PageNumber, "error", err)
			return patternCandidate{}, false
		}
		if distinctTerms(terms) < s.cfg.MinKeywords {
			return patternCandidate{}, false
		}

		return patternCandidate{
			pageNumber: page.PageNumber,
			label:      strings.TrimSpace(m[1]),
			title:      strings.TrimSpace(m[2]),
			method:     hp.method,
		}, true
	}

	return patternCandidate{}, false
}

// headingRegion returns the first headingRegionLines lines of a page.
func headingRegion(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > headingRegionLines {
		lines = lines[:headingRegionLines]
	}
	return strings.Join(lines, "\n")
}

// truncateRunes returns s cut to at most n runes, always on a rune boundary.
func truncateRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// distinctTerms counts unique terms case-insensitively.
func distinctTerms(terms []string) int {
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			seen[t] = struct{}{}
		}
	}
	return len(seen)
}
