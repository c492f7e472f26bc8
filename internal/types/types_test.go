package types

import (
	"encoding/json"
	"testing"
)

func TestPageSpan(t *testing.T) {
	tests := []struct {
		name    string
		chapter Chapter
		want    int
	}{
		{"multi page", Chapter{StartPage: 11, EndPage: 20}, 10},
		{"single page", Chapter{StartPage: 7, EndPage: 7}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chapter.PageSpan(); got != tt.want {
				t.Errorf("PageSpan() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDetectionMethod(t *testing.T) {
	tests := []struct {
		input string
		want  DetectionMethod
	}{
		{"regex_chapter", MethodRegexChapter},
		{"regex_item", MethodRegexItem},
		{"regex_numeric", MethodRegexNumeric},
		{"topic_boundary", MethodTopicBoundary},
		{"synthetic", MethodSynthetic},
		{"garbage", MethodSynthetic},
		{"", MethodSynthetic},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseDetectionMethod(tt.input); got != tt.want {
				t.Errorf("ParseDetectionMethod(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateChaptersJSON(t *testing.T) {
	valid := []Chapter{
		{Number: 1, Title: "The Beginning", StartPage: 1, EndPage: 10, DetectionMethod: MethodRegexChapter},
		{Number: 2, Title: "The End", StartPage: 11, EndPage: 30, DetectionMethod: MethodSynthetic},
	}
	data, err := json.Marshal(valid)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := ValidateChaptersJSON(data); err != nil {
		t.Fatalf("expected engine output to validate, got %v", err)
	}

	tests := []struct {
		name string
		json string
	}{
		{"not an array", `{"number": 1}`},
		{"missing title", `[{"number": 1, "start_page": 1, "end_page": 2, "detection_method": "synthetic"}]`},
		{"unknown method", `[{"number": 1, "title": "x", "start_page": 1, "end_page": 2, "detection_method": "guesswork"}]`},
		{"zero page number", `[{"number": 1, "title": "x", "start_page": 0, "end_page": 2, "detection_method": "synthetic"}]`},
		{"extra field", `[{"number": 1, "title": "x", "start_page": 1, "end_page": 2, "detection_method": "synthetic", "color": "red"}]`},
		{"malformed", `[{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateChaptersJSON([]byte(tt.json)); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	t.Run("empty array is valid", func(t *testing.T) {
		if err := ValidateChaptersJSON([]byte(`[]`)); err != nil {
			t.Errorf("expected empty array to validate, got %v", err)
		}
	})
}
