package request_models

import (
	"encoding/json"
	"strings"

	"wandermind/internal/models/response_models"
	"wandermind/pkg/utils"
)

const (
	EventTypeActivity = "activity"
	EventTypeMeal     = "meal"
)

// ModifyEventRequest asks for one activity or meal to be rewritten from a
// natural-language instruction, against the full current itinerary so the
// replacement can be kept unique.
type ModifyEventRequest struct {
	Message   string                    `json:"message"`
	EventType string                    `json:"event_type"`
	Date      string                    `json:"date"`
	Event     json.RawMessage           `json:"event"`
	Itinerary response_models.Itinerary `json:"itinerary"`
	Provider  string                    `json:"provider"`
	APIKey    string                    `json:"api_key"`
}

func (r *ModifyEventRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return utils.ErrMissingEditInstruction
	}
	switch r.EventType {
	case EventTypeActivity, EventTypeMeal:
	default:
		return utils.ErrInvalidEventType
	}
	if len(r.Event) == 0 {
		return utils.ErrMissingEvent
	}
	if len(r.Itinerary.Days) == 0 {
		return utils.ErrMissingItinerary
	}
	switch r.Provider {
	case "":
		r.Provider = ProviderGroq
	case ProviderGroq, ProviderGemini:
	default:
		return utils.ErrUnsupportedProvider
	}
	return nil
}

// EventName digs the name out of the raw event payload; the merge step and
// the exclusion set both key on it.
func (r *ModifyEventRequest) EventName() string {
	var probe struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(r.Event, &probe); err != nil {
		return ""
	}
	return probe.Name
}
