package segment

import (
	"fmt"

	"github.com/jackzampolin/spine/internal/types"
	"github.com/jackzampolin/spine/internal/vectorize"
)

// detectTopicShift is the second detection pass: TF-IDF page vectors and
// adjacent-page cosine similarity. A boundary is declared where similarity
// drops below the configured threshold, subject to MinPages spacing.
// Returns (nil, false) when vectorization fails or no chapter emerges —
// both expected outcomes that trigger the synthetic pass.
func (s *Segmenter) detectTopicShift(pages []types.Page) ([]types.Chapter, bool) {
	sims, err := s.adjacentSimilarities(pages)
	if err != nil {
		s.logger.Info("topic pass skipped, vectorization failed", "error", err)
		return nil, false
	}
	if len(sims) == 0 {
		return nil, false
	}

	// Boundary indices into the sorted page slice. The first page always
	// opens a segment; the spacing counter is seeded there.
	boundaries := []int{0}
	lastBoundary := 0
	for i, sim := range sims {
		candidate := i + 1
		if sim >= s.cfg.SimilarityThreshold {
			continue
		}
		if candidate-lastBoundary < s.cfg.MinPages {
			continue
		}
		boundaries = append(boundaries, candidate)
		lastBoundary = candidate
	}

	chapters := s.chaptersFromBoundaries(pages, boundaries, types.MethodTopicBoundary)
	if len(chapters) == 0 {
		return nil, false
	}
	return chapters, true
}

// adjacentSimilarities vectorizes page contents and returns the O(n)
// neighbor similarities.
func (s *Segmenter) adjacentSimilarities(pages []types.Page) ([]float64, error) {
	docs := make([]string, len(pages))
	for i, p := range pages {
		docs[i] = p.Content
	}
	vectors, err := vectorize.NewVectorizer(s.cfg.TFIDFMaxFeatures).FitTransform(docs)
	if err != nil {
		return nil, err
	}
	return vectorize.AdjacentSimilarities(vectors), nil
}

// chaptersFromBoundaries converts boundary indices into Chapters with
// synthesized segment titles and sequential numbering.
func (s *Segmenter) chaptersFromBoundaries(pages []types.Page, boundaries []int, method types.DetectionMethod) []types.Chapter {
	chapters := make([]types.Chapter, 0, len(boundaries))
	for k, startIdx := range boundaries {
		endIdx := len(pages) - 1
		if k+1 < len(boundaries) {
			endIdx = boundaries[k+1] - 1
		}
		startPage := pages[startIdx].PageNumber
		endPage := pages[endIdx].PageNumber
		chapters = append(chapters, types.Chapter{
			Number:          k + 1,
			Title:           fmt.Sprintf("Segment %d (pages %d-%d)", k+1, startPage, endPage),
			StartPage:       startPage,
			EndPage:         endPage,
			DetectionMethod: method,
		})
	}
	return chapters
}
