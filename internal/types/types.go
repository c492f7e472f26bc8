// Package types provides shared types used across multiple packages.
// This package has no dependencies on other spine packages to avoid import cycles.
package types

// DetectionMethod indicates which detection pass produced a chapter.
type DetectionMethod string

const (
	// MethodRegexChapter indicates a "Chapter N: Title" heading match.
	MethodRegexChapter DetectionMethod = "regex_chapter"
	// MethodRegexItem indicates an "Item N: Title" heading match.
	MethodRegexItem DetectionMethod = "regex_item"
	// MethodRegexNumeric indicates a bare number followed by an all-caps title line.
	MethodRegexNumeric DetectionMethod = "regex_numeric"
	// MethodTopicBoundary indicates a topic-shift boundary from adjacent-page similarity.
	MethodTopicBoundary DetectionMethod = "topic_boundary"
	// MethodSynthetic indicates a synthesized segment from the fallback pass.
	MethodSynthetic DetectionMethod = "synthetic"
)

// ParseDetectionMethod converts a string to a DetectionMethod.
// Returns MethodSynthetic if the string is not recognized.
func ParseDetectionMethod(s string) DetectionMethod {
	switch s {
	case "regex_chapter":
		return MethodRegexChapter
	case "regex_item":
		return MethodRegexItem
	case "regex_numeric":
		return MethodRegexNumeric
	case "topic_boundary":
		return MethodTopicBoundary
	case "synthetic":
		return MethodSynthetic
	default:
		return MethodSynthetic
	}
}

// Page is a single book page as produced by the upstream extraction pipeline.
// The engine never mutates pages; ordering is derived from PageNumber, not
// slice position.
type Page struct {
	PageNumber int    `json:"page_number"`
	Content    string `json:"content"`
}

// Chapter is one detected chapter. Number is assigned sequentially by the
// engine regardless of any label found on the page. StartPage <= EndPage
// always holds for engine-produced chapters.
type Chapter struct {
	Number          int             `json:"number"`
	Title           string          `json:"title"`
	StartPage       int             `json:"start_page"`
	EndPage         int             `json:"end_page"`
	DetectionMethod DetectionMethod `json:"detection_method"`
}

// PageSpan returns the number of pages the chapter covers, inclusive.
func (c Chapter) PageSpan() int {
	return c.EndPage - c.StartPage + 1
}
