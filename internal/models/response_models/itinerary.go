package response_models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coordinates is a validated latitude/longitude pair. Model output carries
// coordinates either as a two-element array [lat, lng] or as an object
// {"lat": .., "lng": ..}; both shapes decode into the same record. A shape or
// type mismatch never fails the enclosing decode: the pair is marked invalid
// (NaN components) and left for the normalizer to prune.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	c.Lat = math.NaN()
	c.Lng = math.NaN()

	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return nil
		}
		lat, errLat := pair[0].Float64()
		lng, errLng := pair[1].Float64()
		if errLat != nil || errLng != nil {
			return nil
		}
		c.Lat, c.Lng = lat, lng
		return nil
	}

	var keyed struct {
		Lat json.RawMessage `json:"lat"`
		Lng json.RawMessage `json:"lng"`
	}
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil
	}
	lat, okLat := decodeFinite(keyed.Lat)
	lng, okLng := decodeFinite(keyed.Lng)
	if !okLat || !okLng {
		return nil
	}
	c.Lat, c.Lng = lat, lng
	return nil
}

func decodeFinite(raw json.RawMessage) (float64, bool) {
	// Unmarshalling JSON null into a float64 is a silent no-op, so it has to
	// be rejected up front.
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Valid reports whether both components are finite and inside the geographic
// range. Every layer that receives coordinates re-checks this; an intermediate
// merge may have replaced a previously valid pair.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Money is an advisory cost figure. Models return it as a number, a numeric
// string, or not at all; anything that does not parse as a non-negative number
// counts as zero rather than an error.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	*m = 0

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		if v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			*m = Money(v)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
		*m = Money(v)
	}
	return nil
}

type Transport struct {
	Method   string `json:"method"`
	Duration string `json:"duration"`
	Cost     Money  `json:"cost"`
}

type Activity struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Time        string       `json:"time"`
	Cost        Money        `json:"cost"`
	Price       Money        `json:"price,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Transport   *Transport   `json:"transport,omitempty"`
}

// CostValue prefers the "cost" key but falls back to "price"; providers use
// the two interchangeably.
func (a Activity) CostValue() float64 {
	if a.Cost != 0 {
		return float64(a.Cost)
	}
	return float64(a.Price)
}

func (a Activity) TransportCost() float64 {
	if a.Transport == nil {
		return 0
	}
	return float64(a.Transport.Cost)
}

type Meal struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Time        string       `json:"time"`
	Cost        Money        `json:"cost"`
	Price       Money        `json:"price,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

func (m Meal) CostValue() float64 {
	if m.Cost != 0 {
		return float64(m.Cost)
	}
	return float64(m.Price)
}

type Day struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
	Meals      []Meal     `json:"meals"`
	DailyTotal float64    `json:"dailyTotal"`
	// Incomplete marks a day the normalizer left without at least one activity
	// and one meal. The day still renders; callers decide whether to hide it.
	Incomplete bool `json:"incomplete,omitempty"`
}

type Itinerary struct {
	Days []Day `json:"days"`
}

// Location is a map-ready point derived from the itinerary or taken from the
// provider's own locations array.
type Location struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Description string      `json:"description"`
}

// ProviderResponse is the parsed-but-untrusted shape the repair tier hands to
// the normalizer. A missing locations array is an empty list, not an error.
type ProviderResponse struct {
	Itinerary Itinerary  `json:"itinerary"`
	Locations []Location `json:"locations"`
}

type CostBreakdown struct {
	Activities     float64 `json:"activities"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
}

// TripPlan is the render-safe result of the full generation pipeline.
type TripPlan struct {
	Itinerary      Itinerary     `json:"itinerary"`
	Locations      []Location    `json:"locations"`
	CostBreakdown  CostBreakdown `json:"cost_breakdown"`
	PerPersonTotal float64       `json:"per_person_total"`
	GroupTotal     float64       `json:"group_total"`
	// Advisories carry non-blocking data-quality notes (pruned entities,
	// sparse days, empty map point set). They never accompany an error.
	Advisories []string `json:"advisories,omitempty"`
	// Synthesized is set when every parse tier failed and the plan is the
	// minimal placeholder itinerary.
	Synthesized bool `json:"synthesized,omitempty"`
}

// ModifiedEvent is the result of a single-entity edit.
type ModifiedEvent struct {
	Message      string          `json:"message"`
	UpdatedEvent json.RawMessage `json:"updated_event"`
	Itinerary    Itinerary       `json:"itinerary"`
	Locations    []Location      `json:"locations"`
}
