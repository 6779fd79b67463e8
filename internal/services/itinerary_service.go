package services

import (
	"context"
	"log"
	"sync"

	"wandermind/internal/models/request_models"
	"wandermind/internal/models/response_models"
	"wandermind/pkg/llm"
	"wandermind/pkg/utils"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 4096
)

type ItineraryServiceInterface interface {
	Generate(ctx context.Context, req *request_models.TripRequest) (*response_models.TripPlan, error)
	FallbackLocations(destination string) []response_models.Location
}

type ItineraryService struct {
	newGenerator   llm.GeneratorFactory
	parser         ItineraryParserInterface
	normalizer     NormalizerServiceInterface
	prompts        *PromptBuilder
	resolver       DefaultLocationResolver
	minDailyBudget float64

	mu       sync.Mutex
	inFlight bool
}

func NewItineraryService(
	newGenerator llm.GeneratorFactory,
	parser ItineraryParserInterface,
	normalizer NormalizerServiceInterface,
	prompts *PromptBuilder,
	resolver DefaultLocationResolver,
	minDailyBudget float64,
) ItineraryServiceInterface {
	return &ItineraryService{
		newGenerator:   newGenerator,
		parser:         parser,
		normalizer:     normalizer,
		prompts:        prompts,
		resolver:       resolver,
		minDailyBudget: minDailyBudget,
	}
}

// Generate runs the full pipeline: validate, call the provider, repair the
// response, normalize. Only one generation runs at a time; a second request
// is rejected instead of queued so a stale response can never overwrite a
// newer plan.
func (s *ItineraryService) Generate(ctx context.Context, req *request_models.TripRequest) (*response_models.TripPlan, error) {
	if err := req.Validate(s.minDailyBudget); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, utils.ErrGenerationInFlight
	}
	s.inFlight = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	generator, err := s.newGenerator(req.Provider, req.APIKey)
	if err != nil {
		return nil, err
	}

	raw, err := generator.Generate(ctx,
		s.prompts.GenerationSystemPrompt(),
		s.prompts.GenerationUserPrompt(req),
		llm.Options{Temperature: generationTemperature, MaxTokens: generationMaxTokens},
	)
	if err != nil {
		return nil, err
	}

	parsed, synthesized := s.parser.Parse(raw, req)
	if synthesized {
		log.Printf("Provider response for %q was unparseable, using synthesized fallback", req.Destination)
		s.retargetPlaceholder(parsed, req.Destination)
	}

	plan := s.normalizer.Normalize(parsed, req)
	plan.Synthesized = synthesized
	if synthesized {
		plan.Advisories = append(plan.Advisories, "The provider response could not be read, a minimal placeholder plan is shown")
	}

	return plan, nil
}

// retargetPlaceholder moves a synthesized plan's zeroed coordinates onto the
// destination's known city center; an unrecognized destination keeps the
// zeroed placeholders.
func (s *ItineraryService) retargetPlaceholder(parsed *response_models.ProviderResponse, destination string) {
	if s.resolver == nil {
		return
	}
	loc, ok := s.resolver.Resolve(destination)
	if !ok {
		return
	}
	for di := range parsed.Itinerary.Days {
		day := &parsed.Itinerary.Days[di]
		for ai := range day.Activities {
			center := loc.Coordinates
			day.Activities[ai].Coordinates = &center
		}
		for mi := range day.Meals {
			center := loc.Coordinates
			day.Meals[mi].Coordinates = &center
		}
	}
	parsed.Locations = []response_models.Location{loc}
}

// FallbackLocations lets the caller keep the map populated after a hard
// generation failure for a recognizable destination.
func (s *ItineraryService) FallbackLocations(destination string) []response_models.Location {
	if s.resolver == nil {
		return nil
	}
	if loc, ok := s.resolver.Resolve(destination); ok {
		return []response_models.Location{loc}
	}
	return nil
}
