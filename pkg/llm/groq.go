package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"wandermind/pkg/utils"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	// GroqPlanningModel handles full itinerary generation.
	GroqPlanningModel = "llama-3.1-8b-instant"
	// GroqEditModel handles single-event rewrites, which need far fewer tokens.
	GroqEditModel = "llama3-8b-8192"
)

// GroqGenerator talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqGenerator struct {
	client *openai.Client
}

func NewGroqGenerator(apiKey string) *GroqGenerator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &GroqGenerator{client: openai.NewClientWithConfig(cfg)}
}

func (g *GroqGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = GroqPlanningModel
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: opts.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return "", utils.ErrInvalidAPIKey
		}
		return "", fmt.Errorf("%w: groq: %v", utils.ErrProviderRequest, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: groq returned no choices", utils.ErrProviderRequest)
	}

	return resp.Choices[0].Message.Content, nil
}
