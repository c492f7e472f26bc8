package keywords

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"
)

const openAIDefaultModel = "gpt-4o-mini"

const openAISystemPrompt = `You extract salient keywords from book page text.
Return ONLY a comma-separated list of the most important terms, lowercase,
no numbering, no commentary. Prefer topic-bearing nouns and noun phrases.`

// OpenAIConfig holds configuration for the OpenAI keyword extractor.
type OpenAIConfig struct {
	APIKey     string
	Model      string        // "gpt-4o-mini" (default)
	RateLimit  float64       // Requests per second
	MaxRetries int           // Retry attempts per extraction
	RetryDelay time.Duration // Base retry delay
	BaseURL    string        // Optional (tests)
}

// OpenAIExtractor implements Extractor using the official OpenAI SDK.
type OpenAIExtractor struct {
	model      string
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
	client     openai.Client
}

// NewOpenAIExtractor creates a new OpenAI-backed keyword extractor.
func NewOpenAIExtractor(cfg OpenAIConfig) *OpenAIExtractor {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2.0
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIExtractor{
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		client:     openai.NewClient(opts...),
	}
}

// ExtractKeywords implements Extractor.
func (e *OpenAIExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	if topN <= 0 {
		return nil, nil
	}

	var content string
	err := retry.Do(
		func() error {
			if err := e.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(e.model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(openAISystemPrompt),
					openai.UserMessage(fmt.Sprintf("Extract up to %d keywords:\n\n%s", topN, text)),
				},
			})
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("empty completion response")
			}
			content = resp.Choices[0].Message.Content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.maxRetries)),
		retry.Delay(e.retryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}

	return parseTermList(content, topN), nil
}

// parseTermList splits a comma/newline separated model response into
// distinct lowercase terms.
func parseTermList(content string, topN int) []string {
	fields := strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, topN)
	for _, f := range fields {
		term := strings.ToLower(strings.TrimSpace(f))
		term = strings.Trim(term, ".-• ")
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
		if len(terms) == topN {
			break
		}
	}
	return terms
}
