package segment

import "github.com/jackzampolin/spine/internal/types"

const (
	// maxFirstChapterStart tolerates front matter and TOC pages before
	// the first detected chapter.
	maxFirstChapterStart = 10
	// maxChapterGap is the largest page gap tolerated between consecutive
	// chapters.
	maxChapterGap = 5
	// overSegmentationPageFloor is the book size at which the average
	// pages-per-chapter rule kicks in.
	overSegmentationPageFloor = 50
	// minAvgPagesPerChapter rejects over-segmented books above the floor.
	minAvgPagesPerChapter = 6
)

// validate checks the shape of a candidate segmentation from the pattern or
// topic pass. The synthetic pass is never validated: it is accepted by
// construction.
func (s *Segmenter) validate(chapters []types.Chapter, numPages int) bool {
	if len(chapters) == 0 {
		return false
	}

	// Chapter-count bounds. Small books get a proportional floor so a
	// 30-page pamphlet isn't forced to MinChapters.
	countFloor := numPages / 20
	if countFloor < 1 {
		countFloor = 1
	}
	if countFloor > s.cfg.MinChapters {
		countFloor = s.cfg.MinChapters
	}
	if len(chapters) < countFloor || len(chapters) > s.cfg.MaxChapters {
		return false
	}

	if numPages >= overSegmentationPageFloor {
		if float64(numPages)/float64(len(chapters)) < minAvgPagesPerChapter {
			return false
		}
	}

	if chapters[0].StartPage < 1 || chapters[0].StartPage > maxFirstChapterStart {
		return false
	}

	minLen := s.cfg.MinPages / 2
	if minLen < 2 {
		minLen = 2
	}
	for i, ch := range chapters {
		if ch.StartPage > ch.EndPage {
			return false
		}
		if i > 0 {
			gap := ch.StartPage - chapters[i-1].EndPage - 1
			if gap < 0 || gap > maxChapterGap {
				return false
			}
		}
		// The final chapter may be a 1-page epilogue or conclusion.
		if i < len(chapters)-1 && ch.PageSpan() < minLen {
			return false
		}
	}

	return true
}
