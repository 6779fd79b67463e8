package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"wandermind/internal/models/response_models"
	"wandermind/pkg/utils"
)

const factCheckUserAgent = "wandermind/1.0 (itinerary fact checking)"

// LocationCheck is the advisory verdict on one itinerary place. A zero-value
// verdict with Verified false is the universal degradation path: any network
// or parse failure produces it instead of an error.
type LocationCheck struct {
	Exists       bool                         `json:"exists"`
	Verified     bool                         `json:"verified"`
	TooFar       bool                         `json:"too_far,omitempty"`
	DistanceKm   float64                      `json:"distance_km,omitempty"`
	Coordinates  *response_models.Coordinates `json:"coordinates,omitempty"`
	Type         string                       `json:"type,omitempty"`
	Category     string                       `json:"category,omitempty"`
	OpeningHours string                       `json:"opening_hours,omitempty"`
	Website      string                       `json:"website,omitempty"`
	Phone        string                       `json:"phone,omitempty"`
	Description  string                       `json:"description,omitempty"`
}

type PriceCheck struct {
	Verified        bool    `json:"verified"`
	SuggestedPrice  float64 `json:"suggested_price,omitempty"`
	PriceConfidence string  `json:"price_confidence,omitempty"`
}

type FactCheckServiceInterface interface {
	ValidateLocation(ctx context.Context, name string, center response_models.Coordinates) LocationCheck
	ValidatePrice(ctx context.Context, name string, providedCost float64) PriceCheck
}

// FactCheckService verifies itinerary places against OpenStreetMap's
// Nominatim service and pulls descriptions from Wikipedia. All outbound
// calls share one rate gate regardless of origin, and verdicts live in a
// process-lifetime cache.
type FactCheckService struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        *gocache.Cache
	nominatimURL string
	wikipediaURL string
}

type FactCheckOption func(*FactCheckService)

// WithBaseURLs redirects the collaborator at test doubles.
func WithBaseURLs(nominatim, wikipedia string) FactCheckOption {
	return func(s *FactCheckService) {
		s.nominatimURL = nominatim
		s.wikipediaURL = wikipedia
	}
}

func WithHTTPClient(client *http.Client) FactCheckOption {
	return func(s *FactCheckService) {
		s.httpClient = client
	}
}

// WithCacheTTL bounds verdict lifetime; zero keeps the default
// process-lifetime behavior.
func WithCacheTTL(ttl time.Duration) FactCheckOption {
	return func(s *FactCheckService) {
		if ttl > 0 {
			s.cache = gocache.New(ttl, 2*ttl)
		}
	}
}

func NewFactCheckService(minInterval time.Duration, opts ...FactCheckOption) *FactCheckService {
	s := &FactCheckService{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		limiter:      rate.NewLimiter(rate.Every(minInterval), 1),
		cache:        gocache.New(gocache.NoExpiration, 0),
		nominatimURL: "https://nominatim.openstreetmap.org",
		wikipediaURL: "https://en.wikipedia.org",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateLocation looks the place up by name, measures its distance from
// the trip's center point and enriches the verdict with reverse-geocode
// metadata and a Wikipedia summary.
func (s *FactCheckService) ValidateLocation(ctx context.Context, name string, center response_models.Coordinates) LocationCheck {
	cacheKey := "location:" + name
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(LocationCheck)
	}

	var hits []nominatimHit
	query := url.Values{
		"q":              {name},
		"format":         {"json"},
		"limit":          {"1"},
		"addressdetails": {"1"},
		"extratags":      {"1"},
	}
	if err := s.getJSON(ctx, s.nominatimURL+"/search?"+query.Encode(), &hits); err != nil {
		return LocationCheck{}
	}
	if len(hits) == 0 {
		return LocationCheck{Exists: false, Verified: false}
	}

	lat, errLat := strconv.ParseFloat(hits[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(hits[0].Lon, 64)
	if errLat != nil || errLng != nil {
		return LocationCheck{}
	}
	coords := response_models.Coordinates{Lat: lat, Lng: lng}

	distance, ok := utils.DistanceKm(center, coords)
	if !ok {
		return LocationCheck{Exists: true, Verified: false, Coordinates: &coords}
	}

	result := LocationCheck{
		Exists:      true,
		Verified:    true,
		TooFar:      distance > 50,
		DistanceKm:  distance,
		Coordinates: &coords,
	}
	s.fillLocationDetails(ctx, name, coords, &result)

	s.cache.Set(cacheKey, result, gocache.DefaultExpiration)
	return result
}

// ValidatePrice compares the model's cost figure against OpenStreetMap fee
// tags when present.
func (s *FactCheckService) ValidatePrice(ctx context.Context, name string, providedCost float64) PriceCheck {
	cacheKey := "price:" + name
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(PriceCheck)
	}

	osmPrice, ok := s.osmFee(ctx, name)

	estimates := []float64{}
	if providedCost > 0 && !math.IsNaN(providedCost) {
		estimates = append(estimates, providedCost)
	}
	if ok {
		estimates = append(estimates, osmPrice)
	}

	result := PriceCheck{
		Verified:        true,
		SuggestedPrice:  averagePrice(estimates, providedCost),
		PriceConfidence: priceConfidence(estimates),
	}

	s.cache.Set(cacheKey, result, gocache.DefaultExpiration)
	return result
}

func (s *FactCheckService) fillLocationDetails(ctx context.Context, name string, coords response_models.Coordinates, result *LocationCheck) {
	var rev nominatimReverse
	query := url.Values{
		"lat":       {strconv.FormatFloat(coords.Lat, 'f', -1, 64)},
		"lon":       {strconv.FormatFloat(coords.Lng, 'f', -1, 64)},
		"format":    {"json"},
		"extratags": {"1"},
	}
	if err := s.getJSON(ctx, s.nominatimURL+"/reverse?"+query.Encode(), &rev); err == nil {
		result.Type = rev.Type
		result.Category = rev.Category
		result.OpeningHours = rev.ExtraTags.OpeningHours
		result.Website = rev.ExtraTags.Website
		result.Phone = rev.ExtraTags.Phone
	}

	result.Description = s.wikiDescription(ctx, name)
}

func (s *FactCheckService) wikiDescription(ctx context.Context, name string) string {
	query := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"titles":      {name},
	}

	var payload struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := s.getJSON(ctx, s.wikipediaURL+"/w/api.php?"+query.Encode(), &payload); err != nil {
		return ""
	}
	for _, page := range payload.Query.Pages {
		if page.Extract != "" {
			return page.Extract
		}
	}
	return ""
}

func (s *FactCheckService) osmFee(ctx context.Context, name string) (float64, bool) {
	var hits []nominatimHit
	query := url.Values{
		"q":         {name},
		"format":    {"json"},
		"extratags": {"1"},
	}
	if err := s.getJSON(ctx, s.nominatimURL+"/search?"+query.Encode(), &hits); err != nil {
		return 0, false
	}
	if len(hits) == 0 {
		return 0, false
	}
	fee, err := strconv.ParseFloat(hits[0].ExtraTags.Fee, 64)
	if err != nil {
		return 0, false
	}
	return fee, true
}

// getJSON waits on the shared rate gate, then issues one GET. Nominatim's
// usage policy requires an identifying User-Agent.
func (s *FactCheckService) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", factCheckUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type nominatimExtraTags struct {
	OpeningHours string `json:"opening_hours"`
	Website      string `json:"website"`
	Phone        string `json:"phone"`
	Wheelchair   string `json:"wheelchair"`
	Fee          string `json:"fee"`
}

type nominatimHit struct {
	Lat       string             `json:"lat"`
	Lon       string             `json:"lon"`
	ExtraTags nominatimExtraTags `json:"extratags"`
}

type nominatimReverse struct {
	Type      string             `json:"type"`
	Category  string             `json:"category"`
	ExtraTags nominatimExtraTags `json:"extratags"`
}

func averagePrice(estimates []float64, provided float64) float64 {
	if len(estimates) == 0 {
		if provided > 0 {
			return provided
		}
		return 0
	}
	sum := 0.0
	for _, p := range estimates {
		sum += p
	}
	return math.Round(sum / float64(len(estimates)))
}

func priceConfidence(estimates []float64) string {
	if len(estimates) < 2 {
		return "low"
	}

	avg := 0.0
	for _, p := range estimates {
		avg += p
	}
	avg /= float64(len(estimates))
	if avg == 0 {
		return "low"
	}

	variance := 0.0
	for _, p := range estimates {
		variance += (p - avg) * (p - avg)
	}
	variance /= float64(len(estimates))
	coefficient := math.Sqrt(variance) / avg * 100

	switch {
	case coefficient < 15:
		return "high"
	case coefficient < 30:
		return "medium"
	default:
		return "low"
	}
}
