package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"wandermind/internal/models/request_models"
	"wandermind/internal/models/response_models"
	"wandermind/pkg/llm"
	"wandermind/pkg/utils"
)

const (
	editTemperature      = 0.4
	editRetryTemperature = 0.5
	editMaxTokens        = 1000
)

type ModifierServiceInterface interface {
	ModifyEvent(ctx context.Context, req *request_models.ModifyEventRequest) (*response_models.ModifiedEvent, error)
}

type ModifierService struct {
	newGenerator llm.GeneratorFactory
	parser       ItineraryParserInterface
	normalizer   NormalizerServiceInterface
	prompts      *PromptBuilder
	// maxDuplicateRetries bounds how many strengthened re-prompts are issued
	// after the model suggests a place already on the itinerary.
	maxDuplicateRetries int

	mu      sync.Mutex
	editing map[string]struct{}
}

func NewModifierService(
	newGenerator llm.GeneratorFactory,
	parser ItineraryParserInterface,
	normalizer NormalizerServiceInterface,
	prompts *PromptBuilder,
) ModifierServiceInterface {
	return &ModifierService{
		newGenerator:        newGenerator,
		parser:              parser,
		normalizer:          normalizer,
		prompts:             prompts,
		maxDuplicateRetries: 1,
		editing:             make(map[string]struct{}),
	}
}

// ModifyEvent rewrites one activity or meal according to a natural-language
// instruction. Edits to the same entity are single-flight; edits to different
// entities may run concurrently and merge atomically at the replace step.
func (s *ModifierService) ModifyEvent(ctx context.Context, req *request_models.ModifyEventRequest) (*response_models.ModifiedEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	eventName := req.EventName()
	editKey := strings.ToLower(eventName)

	s.mu.Lock()
	if _, busy := s.editing[editKey]; busy {
		s.mu.Unlock()
		return nil, utils.ErrEditInFlight
	}
	s.editing[editKey] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.editing, editKey)
		s.mu.Unlock()
	}()

	generator, err := s.newGenerator(req.Provider, req.APIKey)
	if err != nil {
		return nil, err
	}

	exclusions := existingEventNames(&req.Itinerary, eventName)

	systemPrompt := s.prompts.ModificationSystemPrompt(req.EventType, exclusions)
	userPrompt := s.prompts.ModificationUserPrompt(req.EventType, string(req.Event), req.Message)

	updated, err := s.requestEvent(ctx, generator, systemPrompt, userPrompt, req.EventType, editTemperature)
	if err != nil {
		return nil, err
	}

	message := "I've updated the event based on your request while ensuring it's unique in your itinerary."
	for retry := 0; collides(updated, exclusions); retry++ {
		if retry >= s.maxDuplicateRetries {
			return nil, utils.ErrDuplicateSuggestion
		}
		retryPrompt := s.prompts.ModificationRetryPrompt(userPrompt, eventNameOf(updated), exclusions)
		updated, err = s.requestEvent(ctx, generator, systemPrompt, retryPrompt, req.EventType, editRetryTemperature)
		if err != nil {
			return nil, err
		}
		message = "I've found a unique alternative that meets your requirements."
	}

	itinerary, err := mergeEvent(&req.Itinerary, req.EventType, req.Date, eventName, updated)
	if err != nil {
		return nil, err
	}

	// The location list is recomputed wholesale so the dedupe invariant
	// survives the replacement.
	locations, _ := s.normalizer.DeriveLocations(itinerary, nil, "")

	return &response_models.ModifiedEvent{
		Message:      message,
		UpdatedEvent: updated,
		Itinerary:    *itinerary,
		Locations:    locations,
	}, nil
}

func (s *ModifierService) requestEvent(ctx context.Context, generator llm.TextGenerator, systemPrompt, userPrompt, eventType string, temperature float32) (json.RawMessage, error) {
	raw, err := generator.Generate(ctx, systemPrompt, userPrompt, llm.Options{
		Model:       llm.GroqEditModel,
		Temperature: temperature,
		MaxTokens:   editMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	event, err := s.parser.ParseEvent(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedSuggestion, err)
	}
	if err := validateEventStructure(event, eventType); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedSuggestion, err)
	}
	return event, nil
}

// existingEventNames collects every entity name in the itinerary, lower-cased,
// except the entity under edit.
func existingEventNames(it *response_models.Itinerary, editedName string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, day := range it.Days {
		for _, act := range day.Activities {
			if !strings.EqualFold(act.Name, editedName) {
				names[strings.ToLower(act.Name)] = struct{}{}
			}
		}
		for _, meal := range day.Meals {
			if !strings.EqualFold(meal.Name, editedName) {
				names[strings.ToLower(meal.Name)] = struct{}{}
			}
		}
	}
	return names
}

func eventNameOf(event json.RawMessage) string {
	var probe struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(event, &probe)
	return probe.Name
}

func collides(event json.RawMessage, exclusions map[string]struct{}) bool {
	name := eventNameOf(event)
	if name == "" {
		return false
	}
	_, dup := exclusions[strings.ToLower(name)]
	return dup
}

func validateEventStructure(event json.RawMessage, eventType string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(event, &fields); err != nil {
		return fmt.Errorf("event is not a JSON object: %w", err)
	}

	required := []string{"name", "time", "description", "cost"}
	if eventType == request_models.EventTypeActivity {
		required = append(required, "coordinates", "transport")
	} else {
		required = append(required, "type")
	}

	for _, field := range required {
		raw, ok := fields[field]
		if !ok || string(raw) == "null" {
			return fmt.Errorf("missing required field %q", field)
		}
	}

	var name string
	if err := json.Unmarshal(fields["name"], &name); err != nil || strings.TrimSpace(name) == "" {
		return fmt.Errorf("event name must be a non-empty string")
	}

	if eventType == request_models.EventTypeActivity {
		var coords response_models.Coordinates
		if err := json.Unmarshal(fields["coordinates"], &coords); err != nil || !coords.Valid() {
			return fmt.Errorf("activity coordinates must be a numeric lat/lng pair")
		}

		var transport struct {
			Method   string          `json:"method"`
			Duration string          `json:"duration"`
			Cost     json.RawMessage `json:"cost"`
		}
		if err := json.Unmarshal(fields["transport"], &transport); err != nil {
			return fmt.Errorf("activity transport must be an object")
		}
		if transport.Method == "" || transport.Duration == "" {
			return fmt.Errorf("activity transport needs method and duration")
		}
		var transportCost float64
		if err := json.Unmarshal(transport.Cost, &transportCost); err != nil {
			return fmt.Errorf("activity transport cost must be numeric")
		}
	}

	return nil
}

// mergeEvent replaces the edited entity in place, matched by day, type and
// original name.
func mergeEvent(it *response_models.Itinerary, eventType, date, originalName string, updated json.RawMessage) (*response_models.Itinerary, error) {
	merged := response_models.Itinerary{Days: make([]response_models.Day, len(it.Days))}
	copy(merged.Days, it.Days)

	for i := range merged.Days {
		day := &merged.Days[i]
		if date != "" && day.Date != date {
			continue
		}

		if eventType == request_models.EventTypeActivity {
			for j, act := range day.Activities {
				if !strings.EqualFold(act.Name, originalName) {
					continue
				}
				var replacement response_models.Activity
				if err := json.Unmarshal(updated, &replacement); err != nil {
					return nil, fmt.Errorf("%w: %v", utils.ErrMalformedSuggestion, err)
				}
				activities := make([]response_models.Activity, len(day.Activities))
				copy(activities, day.Activities)
				activities[j] = replacement
				day.Activities = activities
				recomputeDailyTotal(day)
				return &merged, nil
			}
		} else {
			for j, meal := range day.Meals {
				if !strings.EqualFold(meal.Name, originalName) {
					continue
				}
				var replacement response_models.Meal
				if err := json.Unmarshal(updated, &replacement); err != nil {
					return nil, fmt.Errorf("%w: %v", utils.ErrMalformedSuggestion, err)
				}
				meals := make([]response_models.Meal, len(day.Meals))
				copy(meals, day.Meals)
				meals[j] = replacement
				day.Meals = meals
				recomputeDailyTotal(day)
				return &merged, nil
			}
		}
	}

	return nil, utils.ErrEventNotFound
}

func recomputeDailyTotal(day *response_models.Day) {
	total := 0.0
	for _, act := range day.Activities {
		total += act.CostValue() + act.TransportCost()
	}
	for _, meal := range day.Meals {
		total += meal.CostValue()
	}
	day.DailyTotal = total
}
