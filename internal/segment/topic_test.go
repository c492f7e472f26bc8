package segment

import (
	"testing"

	"github.com/jackzampolin/spine/internal/types"
)

func topicPage(num int, vocabulary string) types.Page {
	return types.Page{
		PageNumber: num,
		Content:    repeatText(vocabulary, 900),
	}
}

const (
	cookingVocab   = "saffron braise simmer skillet pantry stew garlic butter seasoning broth"
	astronomyVocab = "nebula quasar telescope orbit galaxy photon spectrum parallax comet eclipse"
)

func TestDetectTopicShiftFindsBoundary(t *testing.T) {
	s := newTestSegmenter(t, nil)

	// Two blocks with disjoint vocabularies: within-block similarity is
	// high, the cross-block similarity is zero.
	var pages []types.Page
	for i := 1; i <= 8; i++ {
		pages = append(pages, topicPage(i, cookingVocab))
	}
	for i := 9; i <= 16; i++ {
		pages = append(pages, topicPage(i, astronomyVocab))
	}

	chapters, ok := s.detectTopicShift(pages)
	if !ok {
		t.Fatal("expected topic boundaries")
	}
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d: %+v", len(chapters), chapters)
	}
	if chapters[0].StartPage != 1 || chapters[0].EndPage != 8 {
		t.Errorf("chapter 1 range wrong: [%d, %d]", chapters[0].StartPage, chapters[0].EndPage)
	}
	if chapters[1].StartPage != 9 || chapters[1].EndPage != 16 {
		t.Errorf("chapter 2 range wrong: [%d, %d]", chapters[1].StartPage, chapters[1].EndPage)
	}
	for _, ch := range chapters {
		if ch.DetectionMethod != types.MethodTopicBoundary {
			t.Errorf("expected topic_boundary, got %s", ch.DetectionMethod)
		}
	}
	if chapters[0].Title != "Segment 1 (pages 1-8)" {
		t.Errorf("unexpected synthesized title %q", chapters[0].Title)
	}
}

func TestDetectTopicShiftRespectsMinPages(t *testing.T) {
	s := newTestSegmenter(t, nil) // MinPages: 4

	// Topic shift after page 2: too close to the start of the segment to
	// open a new one.
	var pages []types.Page
	for i := 1; i <= 2; i++ {
		pages = append(pages, topicPage(i, cookingVocab))
	}
	for i := 3; i <= 10; i++ {
		pages = append(pages, topicPage(i, astronomyVocab))
	}

	chapters, ok := s.detectTopicShift(pages)
	if !ok {
		t.Fatal("expected a detection")
	}
	if len(chapters) != 1 {
		t.Fatalf("expected early shift to be suppressed, got %d chapters", len(chapters))
	}
	if chapters[0].StartPage != 1 || chapters[0].EndPage != 10 {
		t.Errorf("expected single chapter covering the book, got [%d, %d]", chapters[0].StartPage, chapters[0].EndPage)
	}
}

func TestDetectTopicShiftMultipleBoundaries(t *testing.T) {
	s := newTestSegmenter(t, nil)

	vocabs := []string{cookingVocab, astronomyVocab, cookingVocab, astronomyVocab}
	var pages []types.Page
	for block := 0; block < 4; block++ {
		for i := 0; i < 4; i++ {
			num := block*4 + i + 1
			pages = append(pages, topicPage(num, vocabs[block]))
		}
	}

	chapters, ok := s.detectTopicShift(pages)
	if !ok {
		t.Fatal("expected topic boundaries")
	}
	if len(chapters) != 4 {
		t.Fatalf("expected 4 chapters, got %d", len(chapters))
	}
	for i, ch := range chapters {
		wantStart := i*4 + 1
		if ch.StartPage != wantStart || ch.EndPage != wantStart+3 {
			t.Errorf("chapter %d: expected pages [%d, %d], got [%d, %d]",
				i+1, wantStart, wantStart+3, ch.StartPage, ch.EndPage)
		}
	}
}

func TestDetectTopicShiftVectorizationFailure(t *testing.T) {
	s := newTestSegmenter(t, nil)

	pages := []types.Page{stopwordPage(1), stopwordPage(2), stopwordPage(3)}
	if _, ok := s.detectTopicShift(pages); ok {
		t.Fatal("expected topic pass to report no detection for an empty vocabulary")
	}
}

func TestChaptersFromBoundaries(t *testing.T) {
	s := newTestSegmenter(t, nil)

	pages := []types.Page{
		{PageNumber: 4}, {PageNumber: 5}, {PageNumber: 6},
		{PageNumber: 7}, {PageNumber: 8},
	}
	chapters := s.chaptersFromBoundaries(pages, []int{0, 3}, types.MethodTopicBoundary)
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}
	// Page numbers come from the pages, not the indices.
	if chapters[0].StartPage != 4 || chapters[0].EndPage != 6 {
		t.Errorf("chapter 1 range wrong: [%d, %d]", chapters[0].StartPage, chapters[0].EndPage)
	}
	if chapters[1].StartPage != 7 || chapters[1].EndPage != 8 {
		t.Errorf("chapter 2 range wrong: [%d, %d]", chapters[1].StartPage, chapters[1].EndPage)
	}
	if chapters[1].Title != "Segment 2 (pages 7-8)" {
		t.Errorf("unexpected title %q", chapters[1].Title)
	}
}
