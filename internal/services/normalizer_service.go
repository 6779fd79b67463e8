package services

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"wandermind/internal/models/request_models"
	"wandermind/internal/models/response_models"
)

// DefaultLocationResolver supplies a fallback map point for a destination
// when normalization leaves zero valid locations. Resolvers are injected so
// the city table can grow without touching the pipeline.
type DefaultLocationResolver interface {
	Resolve(destination string) (response_models.Location, bool)
}

// StaticCityResolver matches by case-insensitive substring against a small
// table of known city centers.
type StaticCityResolver struct {
	cities map[string]response_models.Location
}

func NewStaticCityResolver() *StaticCityResolver {
	return &StaticCityResolver{
		cities: map[string]response_models.Location{
			"bang": {
				Name:        "Bangalore City Center",
				Coordinates: response_models.Coordinates{Lat: 12.97, Lng: 77.59},
				Description: "Fallback location for Bangalore",
			},
			"paris": {
				Name:        "Paris City Center",
				Coordinates: response_models.Coordinates{Lat: 48.8566, Lng: 2.3522},
				Description: "Fallback location for Paris",
			},
			"tokyo": {
				Name:        "Tokyo Station",
				Coordinates: response_models.Coordinates{Lat: 35.6812, Lng: 139.7671},
				Description: "Fallback location for Tokyo",
			},
			"new york": {
				Name:        "Manhattan",
				Coordinates: response_models.Coordinates{Lat: 40.7831, Lng: -73.9712},
				Description: "Fallback location for New York",
			},
			"london": {
				Name:        "London City Center",
				Coordinates: response_models.Coordinates{Lat: 51.5074, Lng: -0.1278},
				Description: "Fallback location for London",
			},
		},
	}
}

func (r *StaticCityResolver) Resolve(destination string) (response_models.Location, bool) {
	needle := strings.ToLower(strings.TrimSpace(destination))
	for key, loc := range r.cities {
		if strings.Contains(needle, key) {
			return loc, true
		}
	}
	return response_models.Location{}, false
}

// NormalizerServiceInterface converts a parsed-but-untrusted itinerary into a
// render-safe trip plan. It never fails on data quality: bad entries are
// discarded and the loss is reported through advisories.
type NormalizerServiceInterface interface {
	Normalize(resp *response_models.ProviderResponse, req *request_models.TripRequest) *response_models.TripPlan
	DeriveLocations(it *response_models.Itinerary, provided []response_models.Location, destination string) ([]response_models.Location, []string)
}

type NormalizerService struct {
	resolver DefaultLocationResolver
}

func NewNormalizerService(resolver DefaultLocationResolver) NormalizerServiceInterface {
	return &NormalizerService{resolver: resolver}
}

func (n *NormalizerService) Normalize(resp *response_models.ProviderResponse, req *request_models.TripRequest) *response_models.TripPlan {
	var advisories []string
	pruned := 0

	dates, _ := req.Dates()
	days := resp.Itinerary.Days
	if len(dates) > 0 && len(days) > len(dates) {
		advisories = append(advisories, fmt.Sprintf("Provider returned %d days for a %d-day trip, extra days were dropped", len(days), len(dates)))
		days = days[:len(dates)]
	}

	breakdown := response_models.CostBreakdown{}
	normalized := make([]response_models.Day, 0, len(days))

	for i, day := range days {
		if day.Date == "" && i < len(dates) {
			day.Date = dates[i]
		}

		activities := make([]response_models.Activity, 0, len(day.Activities))
		for _, act := range day.Activities {
			if act.Coordinates == nil || !act.Coordinates.Valid() {
				pruned++
				continue
			}
			activities = append(activities, act)
		}

		meals := make([]response_models.Meal, 0, len(day.Meals))
		for _, meal := range day.Meals {
			if meal.Coordinates == nil || !meal.Coordinates.Valid() {
				pruned++
				continue
			}
			meals = append(meals, meal)
		}

		activityCost := lo.SumBy(activities, func(a response_models.Activity) float64 { return a.CostValue() })
		mealCost := lo.SumBy(meals, func(m response_models.Meal) float64 { return m.CostValue() })
		transportCost := lo.SumBy(activities, func(a response_models.Activity) float64 { return a.TransportCost() })

		breakdown.Activities += activityCost
		breakdown.Food += mealCost
		breakdown.Transportation += transportCost

		day.Activities = activities
		day.Meals = meals
		day.DailyTotal = activityCost + mealCost + transportCost
		day.Incomplete = len(activities) == 0 || len(meals) == 0
		if day.Incomplete {
			advisories = append(advisories, fmt.Sprintf("Day %s is missing activities or meals after validation", day.Date))
		}

		normalized = append(normalized, day)
	}

	if pruned > 0 {
		advisories = append(advisories, fmt.Sprintf("%d entries had invalid coordinates and were removed", pruned))
	}

	itinerary := response_models.Itinerary{Days: normalized}

	locations, locAdvisories := n.DeriveLocations(&itinerary, resp.Locations, req.Destination)
	advisories = append(advisories, locAdvisories...)

	perPerson := lo.SumBy(normalized, func(d response_models.Day) float64 { return d.DailyTotal })

	return &response_models.TripPlan{
		Itinerary:      itinerary,
		Locations:      locations,
		CostBreakdown:  breakdown,
		PerPersonTotal: perPerson,
		GroupTotal:     perPerson * float64(req.People),
		Advisories:     advisories,
	}
}

// DeriveLocations recomputes the map point list from scratch. Provided
// locations win when present; otherwise points are flattened from the
// itinerary in day, activities, meals order and deduplicated by name with the
// first occurrence kept.
func (n *NormalizerService) DeriveLocations(it *response_models.Itinerary, provided []response_models.Location, destination string) ([]response_models.Location, []string) {
	var candidates []response_models.Location

	if len(provided) > 0 {
		for _, loc := range provided {
			if !loc.Coordinates.Valid() {
				continue
			}
			if loc.Description == "" {
				loc.Description = loc.Name
			}
			candidates = append(candidates, loc)
		}
	} else {
		for _, day := range it.Days {
			for _, act := range day.Activities {
				if act.Coordinates == nil || !act.Coordinates.Valid() {
					continue
				}
				candidates = append(candidates, response_models.Location{
					Name:        act.Name,
					Coordinates: *act.Coordinates,
					Description: act.Description,
				})
			}
			for _, meal := range day.Meals {
				if meal.Coordinates == nil || !meal.Coordinates.Valid() {
					continue
				}
				candidates = append(candidates, response_models.Location{
					Name:        meal.Name,
					Coordinates: *meal.Coordinates,
					Description: fmt.Sprintf("%s - %s", meal.Type, meal.Description),
				})
			}
		}
	}

	unique := lo.UniqBy(candidates, func(loc response_models.Location) string {
		return strings.ToLower(loc.Name)
	})

	if len(unique) > 0 {
		return unique, nil
	}

	if n.resolver != nil {
		if loc, ok := n.resolver.Resolve(destination); ok {
			return []response_models.Location{loc}, []string{"No valid map points were produced, showing the city center instead"}
		}
	}

	return []response_models.Location{}, []string{"No valid coordinates found for map points"}
}
