// Package keywords provides salient-term extraction used by the regex
// detection pass as a content-validity signal. The Extractor interface is an
// injected capability: the engine never depends on a concrete implementation.
package keywords

import (
	"context"
	"sort"

	"github.com/kljensen/snowball"

	"github.com/jackzampolin/spine/internal/vectorize"
)

// Extractor returns up to topN salient terms for a text span.
type Extractor interface {
	// ExtractKeywords returns distinct salient terms from text, most
	// salient first. Implementations may return fewer than topN terms.
	ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error)
}

// FrequencyExtractor is the default oracle: stem-aware term frequency over
// the span, with stop words removed. It needs no network and is fully
// deterministic, which also makes it the reference implementation for tests.
type FrequencyExtractor struct{}

// NewFrequencyExtractor creates a frequency-based extractor.
func NewFrequencyExtractor() *FrequencyExtractor {
	return &FrequencyExtractor{}
}

// ExtractKeywords implements Extractor.
func (e *FrequencyExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	if topN <= 0 {
		return nil, nil
	}

	type termInfo struct {
		surface string // first surface form seen for the stem
		count   int
		order   int // first-occurrence rank, for deterministic ties
	}

	stems := make(map[string]*termInfo)
	next := 0
	for _, tok := range vectorize.Tokenize(text) {
		if len(tok) < 3 {
			continue
		}
		stem, err := snowball.Stem(tok, "english", true)
		if err != nil || stem == "" {
			// Stemmer rejects the token; fall back to the raw form so
			// unusual-but-real words still count.
			stem = tok
		}
		info, ok := stems[stem]
		if !ok {
			info = &termInfo{surface: tok, order: next}
			next++
			stems[stem] = info
		}
		info.count++
	}
	if len(stems) == 0 {
		return nil, nil
	}

	infos := make([]*termInfo, 0, len(stems))
	for _, info := range stems {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].count != infos[j].count {
			return infos[i].count > infos[j].count
		}
		return infos[i].order < infos[j].order
	})

	if len(infos) > topN {
		infos = infos[:topN]
	}
	terms := make([]string, len(infos))
	for i, info := range infos {
		terms[i] = info.surface
	}
	return terms, nil
}
