package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"wandermind/internal/models/request_models"
	"wandermind/internal/models/response_models"
)

// ItineraryParserInterface turns raw model output into a parsed but untrusted
// itinerary. It never fails: when neither strict parsing nor brace extraction
// yields a usable object it synthesizes a minimal placeholder plan, so the
// pipeline always ends with something renderable.
type ItineraryParserInterface interface {
	Parse(raw string, req *request_models.TripRequest) (*response_models.ProviderResponse, bool)
	ParseEvent(raw string) (json.RawMessage, error)
}

type ItineraryParser struct{}

func NewItineraryParser() ItineraryParserInterface {
	return &ItineraryParser{}
}

// Parse runs the tiered repair. The second return reports whether the result
// was synthesized rather than recovered from the model output.
func (p *ItineraryParser) Parse(raw string, req *request_models.TripRequest) (*response_models.ProviderResponse, bool) {
	cleaned := cleanModelResponse(raw)

	if resp, ok := decodeItinerary(cleaned); ok {
		return resp, false
	}

	if extracted, ok := extractJSONObject(cleaned); ok {
		if resp, ok := decodeItinerary(extracted); ok {
			return resp, false
		}
	}

	return synthesizeFallback(req), true
}

// ParseEvent recovers a single JSON object from a modification response. It
// has no synthesized tier because the caller treats an unrecoverable event as
// a hard failure.
func (p *ItineraryParser) ParseEvent(raw string) (json.RawMessage, error) {
	cleaned := cleanModelResponse(raw)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err == nil {
		return json.RawMessage(cleaned), nil
	}

	extracted, ok := extractJSONObject(cleaned)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	if err := json.Unmarshal([]byte(extracted), &probe); err != nil {
		return nil, fmt.Errorf("extracted slice is not a JSON object: %w", err)
	}
	return json.RawMessage(extracted), nil
}

func decodeItinerary(s string) (*response_models.ProviderResponse, bool) {
	var resp response_models.ProviderResponse
	if err := json.Unmarshal([]byte(s), &resp); err != nil {
		return nil, false
	}
	// Shape check: itinerary.days must be present as a sequence, otherwise
	// the next repair tier takes over.
	var shape struct {
		Itinerary struct {
			Days json.RawMessage `json:"days"`
		} `json:"itinerary"`
	}
	if err := json.Unmarshal([]byte(s), &shape); err != nil {
		return nil, false
	}
	trimmed := strings.TrimSpace(string(shape.Itinerary.Days))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	return &resp, true
}

// cleanModelResponse strips markdown fences and the chatty prefixes models
// like to add before their JSON.
func cleanModelResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")

	prefixes := []string{
		"Here's the travel plan:",
		"Here is the itinerary:",
		"The travel plan is:",
		"Travel plan:",
		"Itinerary:",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.TrimSpace(response), prefix) {
			response = strings.TrimPrefix(strings.TrimSpace(response), prefix)
			break
		}
	}

	return strings.TrimSpace(response)
}

// extractJSONObject returns the first balanced {...} substring, skipping
// braces inside string literals.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	end := findMatchingBrace(s, start)
	if end == -1 {
		return "", false
	}
	return s[start : end+1], true
}

func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// synthesizeFallback builds a one-day placeholder plan from the request so
// the caller always has something to render. Coordinates start zeroed; the
// orchestrator moves them onto the destination's city center when it
// recognizes the destination.
func synthesizeFallback(req *request_models.TripRequest) *response_models.ProviderResponse {
	date := req.StartDate
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		destination = "your destination"
	}

	return &response_models.ProviderResponse{
		Itinerary: response_models.Itinerary{
			Days: []response_models.Day{
				{
					Date: date,
					Activities: []response_models.Activity{
						{
							Name:        fmt.Sprintf("Explore %s", destination),
							Description: fmt.Sprintf("Self-guided walk around the center of %s.", destination),
							Time:        "10:00 AM",
							Coordinates: &response_models.Coordinates{},
						},
					},
					Meals: []response_models.Meal{
						{
							Name:        "Local restaurant",
							Type:        "Lunch",
							Description: fmt.Sprintf("A typical lunch spot in %s.", destination),
							Time:        "12:30 PM",
							Coordinates: &response_models.Coordinates{},
						},
					},
				},
			},
		},
	}
}
