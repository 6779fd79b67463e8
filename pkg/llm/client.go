package llm

import (
	"context"
	"strings"

	"wandermind/pkg/utils"
)

// Options tunes a single completion call. Zero values fall back to the
// provider defaults.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// TextGenerator is the single seam between the planning services and a
// concrete model provider. Both Groq and Gemini implement it, and tests
// substitute canned responses.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
}

// GeneratorFactory builds a TextGenerator for a per-request provider and key.
// Keys travel with the request and are never stored, so a fresh client is
// built per call.
type GeneratorFactory func(provider, apiKey string) (TextGenerator, error)

// NewTextGenerator is the default GeneratorFactory.
func NewTextGenerator(provider, apiKey string) (TextGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, utils.ErrMissingAPIKey
	}

	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "groq":
		return NewGroqGenerator(apiKey), nil
	case "gemini":
		return NewGeminiGenerator(apiKey)
	default:
		return nil, utils.ErrUnsupportedProvider
	}
}
