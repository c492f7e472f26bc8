package keywords

import (
	"context"
	"sync/atomic"
)

// MockExtractor is an Extractor for testing.
type MockExtractor struct {
	// Configurable behavior
	Terms     []string                   // Returned for every call (trimmed to topN)
	Err       error                      // Returned for every call when set
	ErrFunc   func(text string) error    // Per-text failure; takes precedence over Err
	TermsFunc func(text string) []string // Per-text override; takes precedence over Terms
	FailAfter int                        // Fail after N requests (0 = never)

	// State
	requestCount atomic.Int64
}

// NewMockExtractor creates a mock that returns the given terms.
func NewMockExtractor(terms ...string) *MockExtractor {
	return &MockExtractor{Terms: terms}
}

// ExtractKeywords implements Extractor.
func (m *MockExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	count := m.requestCount.Add(1)
	if m.ErrFunc != nil {
		if err := m.ErrFunc(text); err != nil {
			return nil, err
		}
	} else if m.Err != nil {
		return nil, m.Err
	}
	if m.FailAfter > 0 && count > int64(m.FailAfter) {
		return nil, context.DeadlineExceeded
	}

	terms := m.Terms
	if m.TermsFunc != nil {
		terms = m.TermsFunc(text)
	}
	if len(terms) > topN {
		terms = terms[:topN]
	}
	return terms, nil
}

// RequestCount returns the number of extraction calls made.
func (m *MockExtractor) RequestCount() int64 {
	return m.requestCount.Load()
}
