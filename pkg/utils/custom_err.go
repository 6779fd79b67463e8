package utils

import "errors"

// Input validation errors are raised before any network call and are fatal to
// the current submission only.
var (
	ErrMissingDestination      = errors.New("destination is required")
	ErrInvalidDateRange        = errors.New("invalid date range: select valid travel dates")
	ErrTripTooLong             = errors.New("trip duration too long: maximum 14 days supported")
	ErrInvalidBudget           = errors.New("budget must be a positive amount")
	ErrBudgetBelowMinimum      = errors.New("budget too low: minimum per person per day not met")
	ErrInvalidPartySize        = errors.New("number of people must be at least 1")
	ErrUnsupportedCurrency     = errors.New("unsupported currency code")
	ErrInvalidFamousPreference = errors.New("unknown famous places preference")
)

// Credential and provider errors.
var (
	ErrMissingAPIKey       = errors.New("provider API key is required")
	ErrInvalidAPIKey       = errors.New("invalid API key: check your provider key")
	ErrUnsupportedProvider = errors.New("unsupported provider: use 'groq' or 'gemini'")
	ErrProviderRequest     = errors.New("provider request failed")
)

// Generation and modification pipeline errors.
var (
	ErrGenerationInFlight     = errors.New("an itinerary generation is already in progress")
	ErrEditInFlight           = errors.New("this event is already being edited")
	ErrDuplicateSuggestion    = errors.New("suggested event duplicates an existing itinerary entry")
	ErrMalformedSuggestion    = errors.New("provider returned an invalid event structure")
	ErrEventNotFound          = errors.New("event not found in itinerary")
	ErrMissingEditInstruction = errors.New("edit instruction is required")
	ErrInvalidEventType       = errors.New("event type must be 'activity' or 'meal'")
	ErrMissingEvent           = errors.New("event details are required")
	ErrMissingItinerary       = errors.New("current itinerary is required")
)
