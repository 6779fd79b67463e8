package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"wandermind/pkg/utils"
)

// GeminiPlanningModel is the free tier model used for both generation and
// single-event edits.
const GeminiPlanningModel = "gemini-1.5-flash"

// GeminiGenerator wraps Google's genai SDK behind the TextGenerator seam.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini client: %v", utils.ErrProviderRequest, err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	model := opts.Model
	if model == "" || strings.HasPrefix(model, "llama") {
		model = GeminiPlanningModel
	}

	m := g.client.GenerativeModel(model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		if strings.Contains(err.Error(), "API key not valid") {
			return "", utils.ErrInvalidAPIKey
		}
		return "", fmt.Errorf("%w: gemini: %v", utils.ErrProviderRequest, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini returned no content", utils.ErrProviderRequest)
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
