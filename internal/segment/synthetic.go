package segment

import (
	"strings"
	"unicode"

	"github.com/jackzampolin/spine/internal/types"
)

const (
	// fallbackSimilarity substitutes for adjacent-page similarity when
	// vectorization fails inside the synthetic pass. Scoring degrades but
	// the pass never aborts.
	fallbackSimilarity = 0.5
	// boundaryWindow is how far around the rough target end the scorer
	// searches for a better cut point.
	boundaryWindow = 3
	// scorerHeadLines bounds the all-caps heading scan during scoring.
	scorerHeadLines = 10

	capsBonus    = 0.3
	prefixBonus  = 0.4
	minCapsLen   = 10
	fullDocTitle = "Full Document"
)

var headingPrefixes = []string{"Chapter ", "Item ", "Section ", "Part "}

// segmentSynthetic is the guaranteed fallback pass. It partitions the pages
// into roughly target-sized segments, nudging each cut point toward nearby
// pages that look like chapter starts. It never fails for non-empty input.
func (s *Segmenter) segmentSynthetic(pages []types.Page) []types.Chapter {
	if len(pages) == 1 {
		return []types.Chapter{{
			Number:          1,
			Title:           fullDocTitle,
			StartPage:       pages[0].PageNumber,
			EndPage:         pages[0].PageNumber,
			DetectionMethod: types.MethodSynthetic,
		}}
	}

	sims, err := s.adjacentSimilarities(pages)
	if err != nil || len(sims) != len(pages)-1 {
		// Distinct log line: a constant substitute can mask genuine
		// vectorization bugs, so this must be visible in operation.
		s.logger.Warn("synthetic pass using constant similarity fallback", "error", err)
		sims = make([]float64, len(pages)-1)
		for i := range sims {
			sims[i] = fallbackSimilarity
		}
	}

	numPages := len(pages)
	targetChapters := numPages / s.cfg.TargetPages
	if targetChapters < s.cfg.MinChapters {
		targetChapters = s.cfg.MinChapters
	}
	if targetChapters > s.cfg.MaxChapters {
		targetChapters = s.cfg.MaxChapters
	}
	actualTargetPages := numPages / targetChapters
	if actualTargetPages < s.cfg.MinPages {
		actualTargetPages = s.cfg.MinPages
	}

	var boundaries []int
	start := 0
	for start < numPages {
		boundaries = append(boundaries, start)
		end := s.pickSegmentEnd(pages, sims, start, actualTargetPages)
		start = end + 1
	}

	return s.chaptersFromBoundaries(pages, boundaries, types.MethodSynthetic)
}

// pickSegmentEnd scores a small window around the rough segment end and
// returns the index with the strictly highest score. Ties keep the earliest
// index found: replacement requires a strictly greater score.
func (s *Segmenter) pickSegmentEnd(pages []types.Page, sims []float64, start, targetPages int) int {
	numPages := len(pages)
	roughEnd := start + targetPages
	if roughEnd >= numPages {
		roughEnd = numPages - 1
	}

	lo := roughEnd - boundaryWindow
	if minEnd := start + s.cfg.MinPages - 1; minEnd > lo {
		lo = minEnd
	}
	hi := roughEnd + boundaryWindow
	if hi > numPages {
		hi = numPages
	}
	if lo >= hi {
		// Too few pages remain for a scored window; close out the book.
		return numPages - 1
	}

	best := lo
	bestScore := s.scoreBoundary(pages, sims, lo)
	for i := lo + 1; i < hi; i++ {
		if score := s.scoreBoundary(pages, sims, i); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// scoreBoundary rates page index i as a chapter-start candidate: the local
// similarity drop plus additive bonuses for textual heading cues.
func (s *Segmenter) scoreBoundary(pages []types.Page, sims []float64, i int) float64 {
	var score float64
	if i > 0 {
		score = 1 - sims[i-1]
	}

	text := pages[i].Content
	lines := strings.Split(text, "\n")
	if len(lines) > scorerHeadLines {
		lines = lines[:scorerHeadLines]
	}
	for _, line := range lines {
		if isAllCapsLine(strings.TrimSpace(line)) {
			score += capsBonus
			break
		}
	}

	trimmed := strings.TrimSpace(text)
	for _, prefix := range headingPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			score += prefixBonus
			break
		}
	}
	return score
}

// isAllCapsLine reports whether a line is longer than minCapsLen, contains
// letters, and has no lowercase letters.
func isAllCapsLine(line string) bool {
	if len(line) <= minCapsLen {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
