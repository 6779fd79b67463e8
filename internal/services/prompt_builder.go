package services

import (
	"fmt"
	"sort"
	"strings"

	"wandermind/internal/models/request_models"
)

// itineraryTemplate is embedded in the generation system prompt so the model
// mirrors the exact shape the parser expects.
const itineraryTemplate = `{
  "itinerary": {
    "days": [
      {
        "date": "YYYY-MM-DD",
        "activities": [
          {
            "name": "string",
            "description": "string",
            "time": "09:00 AM",
            "cost": 50,
            "coordinates": [12.97, 77.59],
            "transport": {
              "method": "taxi",
              "duration": "20 min",
              "cost": 10
            }
          }
        ],
        "meals": [
          {
            "name": "string",
            "type": "Breakfast/Lunch/Dinner",
            "description": "string",
            "time": "08:00 AM",
            "cost": 20,
            "coordinates": [12.97, 77.59]
          }
        ],
        "dailyTotal": 80
      }
    ]
  },
  "locations": [
    {
      "name": "string",
      "coordinates": [12.97, 77.59],
      "description": "string"
    }
  ]
}`

// PromptBuilder renders the system and user messages sent to the model
// provider for generation and single-event modification.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

func (b *PromptBuilder) GenerationSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are an expert travel itinerary planner for WanderMind. ")
	sb.WriteString("Generate a daily itinerary based on the user's trip details in the following JSON format:\n\n")
	sb.WriteString(itineraryTemplate)
	sb.WriteString("\n\nRequirements:\n")
	sb.WriteString("1. Output a single, valid JSON object. No prose, no markdown.\n")
	sb.WriteString("2. Include 2-4 activities and 2-3 meals (breakfast, lunch, dinner) per day.\n")
	sb.WriteString("3. Every day must have at least one activity and one meal.\n")
	sb.WriteString("4. Provide coordinates as [latitude, longitude] for every location. ")
	sb.WriteString("Coordinates must be numeric, non-null and valid (latitude -90 to 90, longitude -180 to 180). ")
	sb.WriteString("Use city center coordinates when exact ones are unavailable.\n")
	sb.WriteString("5. Schedule activities between 08:00 and 22:00.\n")
	sb.WriteString("6. Include transport details (method, duration, cost) for each activity.\n")
	sb.WriteString("7. Ensure costs are realistic for the destination and stay within the budget per person.\n")
	sb.WriteString("8. Avoid duplicate activities or restaurants.\n")
	sb.WriteString("9. Generate itinerary entries for all provided dates.\n")
	sb.WriteString("10. Populate 'locations' with the unique locations from activities and meals, using the same coordinates.")
	return sb.String()
}

func (b *PromptBuilder) GenerationUserPrompt(req *request_models.TripRequest) string {
	dates, _ := req.Dates()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a %d-day itinerary for %s:\n", len(dates), req.Destination)
	fmt.Fprintf(&sb, "- Budget per person: %s%d\n", req.CurrencySymbol(), int(req.BudgetPerPerson()))
	fmt.Fprintf(&sb, "- Currency: %s\n", req.Currency)
	fmt.Fprintf(&sb, "- Dates: %s\n", strings.Join(dates, ", "))
	fmt.Fprintf(&sb, "- Number of people: %d\n", req.People)
	fmt.Fprintf(&sb, "- Interests: %s\n", req.InterestSummary())
	fmt.Fprintf(&sb, "- Famous places preference: %s\n", req.FamousPreference)
	if strings.TrimSpace(req.ExtraWishes) != "" {
		fmt.Fprintf(&sb, "- Extra wishes: %s\n", req.ExtraWishes)
	}
	return sb.String()
}

// ModificationSystemPrompt lists every other event name so the model cannot
// re-suggest a place already on the plan.
func (b *PromptBuilder) ModificationSystemPrompt(eventType string, existingEvents map[string]struct{}) string {
	names := make([]string, 0, len(existingEvents))
	for name := range existingEvents {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a travel planning assistant. Your task is to modify a %s based on the user's request.\n", eventType)
	sb.WriteString("Important constraints:\n")
	fmt.Fprintf(&sb, "1. NEVER suggest any of these existing places: %s\n", strings.Join(names, ", "))
	sb.WriteString("2. Keep all locations within 50km of city center\n")
	sb.WriteString("3. Activities must be between 8:00-22:00\n")
	sb.WriteString("4. Use realistic local prices\n")
	sb.WriteString("5. For activities, always include exact coordinates and transport info\n")
	sb.WriteString("6. For meals, include time, type (breakfast/lunch/dinner), and cost\n")
	sb.WriteString("7. Suggest unique places that aren't already in the itinerary\n")
	sb.WriteString("8. Ensure suggestions are location-appropriate and culturally relevant\n\n")
	sb.WriteString("The response must be a valid JSON object with the same structure as the current details.")
	return sb.String()
}

func (b *PromptBuilder) ModificationUserPrompt(eventType, currentDetails, message string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current %s details:\n%s\n\n", eventType, currentDetails)
	fmt.Fprintf(&sb, "User request: %s\n\n", message)
	sb.WriteString("Respond with a JSON object containing the modified event details. ")
	sb.WriteString("Maintain the exact structure of the current details while incorporating the requested changes.")
	return sb.String()
}

// ModificationRetryPrompt strengthens the uniqueness constraint after the
// model suggested a place already on the itinerary.
func (b *PromptBuilder) ModificationRetryPrompt(basePrompt, duplicateName string, existingEvents map[string]struct{}) string {
	names := make([]string, 0, len(existingEvents))
	for name := range existingEvents {
		names = append(names, name)
	}
	sort.Strings(names)

	return fmt.Sprintf("%s\n\nIMPORTANT: The suggested place %q is already in the itinerary. "+
		"Please suggest a completely different place that's not in this list: %s",
		basePrompt, duplicateName, strings.Join(names, ", "))
}
