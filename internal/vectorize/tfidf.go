// Package vectorize builds TF-IDF weighted term vectors for page texts and
// computes the adjacent-page cosine similarities the segmentation passes
// consume. It is pure computation: no I/O, no shared state between calls.
package vectorize

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when no usable terms survive tokenization
// and stop-word removal. Callers treat this as an expected degenerate-corpus
// outcome, not a fault.
var ErrEmptyVocabulary = errors.New("empty vocabulary after stop-word removal")

var tokenPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z]+`)

// Vectorizer converts a document corpus into L2-normalized TF-IDF vectors.
// The vocabulary is capped at MaxFeatures terms, kept by descending corpus
// frequency.
type Vectorizer struct {
	MaxFeatures int
}

// NewVectorizer creates a vectorizer with the given vocabulary cap.
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// FitTransform builds the vocabulary from docs and returns one vector per
// document, aligned by index with the input.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyVocabulary
	}

	tokenized := make([][]string, len(docs))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			corpusFreq[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}
	if len(corpusFreq) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := v.buildVocabulary(corpusFreq)

	// Smoothed idf: ln((1+n)/(1+df)) + 1, so terms present in every
	// document still carry weight instead of vanishing.
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		vec := make([]float64, len(vocab))
		for _, tok := range tokens {
			if j, ok := index[tok]; ok {
				vec[j] += idf[j]
			}
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors, nil
}

// buildVocabulary selects up to MaxFeatures terms by descending corpus
// frequency, breaking ties alphabetically for determinism.
func (v *Vectorizer) buildVocabulary(corpusFreq map[string]int) []string {
	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	return terms
}

// Tokenize lowercases text and returns its non-stop-word alphabetic tokens.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
