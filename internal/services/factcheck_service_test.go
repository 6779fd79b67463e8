package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"wandermind/internal/models/response_models"
)

func newFactCheckFixture(t *testing.T, nominatimHandler, wikiHandler http.HandlerFunc) (*FactCheckService, *httptest.Server, *httptest.Server) {
	t.Helper()
	nominatim := httptest.NewServer(nominatimHandler)
	t.Cleanup(nominatim.Close)
	wiki := httptest.NewServer(wikiHandler)
	t.Cleanup(wiki.Close)

	svc := NewFactCheckService(time.Millisecond,
		WithBaseURLs(nominatim.URL, wiki.URL),
		WithHTTPClient(nominatim.Client()),
	)
	return svc, nominatim, wiki
}

func TestValidateLocationVerified(t *testing.T) {
	nominatimHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			w.Write([]byte(`[{"lat": "12.95", "lon": "77.58", "extratags": {}}]`))
		case "/reverse":
			w.Write([]byte(`{"type": "garden", "category": "leisure", "extratags": {"opening_hours": "06:00-19:00", "website": "https://example.org"}}`))
		default:
			http.NotFound(w, r)
		}
	}
	wikiHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query": {"pages": {"123": {"extract": "A historic botanical garden."}}}}`))
	}

	svc, _, _ := newFactCheckFixture(t, nominatimHandler, wikiHandler)

	center := response_models.Coordinates{Lat: 12.97, Lng: 77.59}
	got := svc.ValidateLocation(context.Background(), "Lalbagh Botanical Garden", center)

	if !got.Exists || !got.Verified {
		t.Fatalf("expected a verified hit, got %+v", got)
	}
	if got.TooFar {
		t.Error("a place 3km away must not be flagged too far")
	}
	if got.DistanceKm <= 0 || got.DistanceKm > 10 {
		t.Errorf("distance = %v km, want a small positive value", got.DistanceKm)
	}
	if got.Category != "leisure" || got.OpeningHours != "06:00-19:00" {
		t.Errorf("reverse geocode metadata missing: %+v", got)
	}
	if got.Description != "A historic botanical garden." {
		t.Errorf("wiki description missing: %q", got.Description)
	}
}

func TestValidateLocationFlagsDistantPlaces(t *testing.T) {
	nominatimHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			// Chennai, about 290km from the Bangalore center point.
			w.Write([]byte(`[{"lat": "13.08", "lon": "80.27", "extratags": {}}]`))
		case "/reverse":
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}
	wikiHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query": {"pages": {}}}`))
	}

	svc, _, _ := newFactCheckFixture(t, nominatimHandler, wikiHandler)

	got := svc.ValidateLocation(context.Background(), "Marina Beach", response_models.Coordinates{Lat: 12.97, Lng: 77.59})
	if !got.Verified {
		t.Fatalf("expected a verified verdict, got %+v", got)
	}
	if !got.TooFar {
		t.Errorf("a place %v km away should be flagged too far", got.DistanceKm)
	}
}

func TestValidateLocationUnknownPlace(t *testing.T) {
	svc, _, _ := newFactCheckFixture(t,
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`[]`)) },
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{}`)) },
	)

	got := svc.ValidateLocation(context.Background(), "Imaginary Palace", response_models.Coordinates{Lat: 12.97, Lng: 77.59})
	if got.Exists || got.Verified {
		t.Errorf("unknown place should be exists=false verified=false, got %+v", got)
	}
}

func TestValidateLocationDegradesOnFailure(t *testing.T) {
	svc, _, _ := newFactCheckFixture(t,
		func(w http.ResponseWriter, r *http.Request) { http.Error(w, "rate limited", http.StatusTooManyRequests) },
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{}`)) },
	)

	got := svc.ValidateLocation(context.Background(), "Anywhere", response_models.Coordinates{Lat: 12.97, Lng: 77.59})
	if got.Verified {
		t.Errorf("network failure must degrade to verified=false, got %+v", got)
	}
}

func TestValidateLocationUsesCache(t *testing.T) {
	var searches int32
	nominatimHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			atomic.AddInt32(&searches, 1)
			w.Write([]byte(`[{"lat": "12.95", "lon": "77.58", "extratags": {}}]`))
		case "/reverse":
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}
	wikiHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query": {"pages": {}}}`))
	}

	svc, _, _ := newFactCheckFixture(t, nominatimHandler, wikiHandler)
	center := response_models.Coordinates{Lat: 12.97, Lng: 77.59}

	first := svc.ValidateLocation(context.Background(), "Lalbagh", center)
	second := svc.ValidateLocation(context.Background(), "Lalbagh", center)

	if got := atomic.LoadInt32(&searches); got != 1 {
		t.Errorf("got %d search calls, want 1 (second lookup served from cache)", got)
	}
	if first.DistanceKm != second.DistanceKm {
		t.Error("cached verdict should match the original")
	}
}

func TestFactCheckCallsShareOneRateGate(t *testing.T) {
	var hits int32
	count := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			h(w, r)
		}
	}
	nominatimHandler := count(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			w.Write([]byte(`[{"lat": "12.95", "lon": "77.58", "extratags": {"fee": "20"}}]`))
		case "/reverse":
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	})
	wikiHandler := count(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query": {"pages": {}}}`))
	})

	nominatim := httptest.NewServer(nominatimHandler)
	t.Cleanup(nominatim.Close)
	wiki := httptest.NewServer(wikiHandler)
	t.Cleanup(wiki.Close)

	const interval = 40 * time.Millisecond
	svc := NewFactCheckService(interval,
		WithBaseURLs(nominatim.URL, wiki.URL),
		WithHTTPClient(nominatim.Client()),
	)

	center := response_models.Coordinates{Lat: 12.97, Lng: 77.59}
	start := time.Now()
	svc.ValidateLocation(context.Background(), "Lalbagh Botanical Garden", center)
	svc.ValidatePrice(context.Background(), "Cubbon Park", 30)
	elapsed := time.Since(start)

	n := atomic.LoadInt32(&hits)
	if n < 2 {
		t.Fatalf("expected both checks to reach the collaborators, got %d outbound calls", n)
	}
	// The gate starts with one free token; every later call pays the full
	// interval, whichever check issued it.
	if want := time.Duration(n-1) * interval; elapsed < want {
		t.Errorf("%d outbound calls completed in %v, want at least %v of enforced spacing", n, elapsed, want)
	}
}

func TestValidatePrice(t *testing.T) {
	nominatimHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat": "12.95", "lon": "77.58", "extratags": {"fee": "20"}}]`))
	}
	svc, _, _ := newFactCheckFixture(t, nominatimHandler,
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{}`)) })

	got := svc.ValidatePrice(context.Background(), "Bannerghatta Safari", 30)
	if !got.Verified {
		t.Fatalf("expected a verified price, got %+v", got)
	}
	if got.SuggestedPrice != 25 {
		t.Errorf("suggestedPrice = %v, want 25 (average of 30 and 20)", got.SuggestedPrice)
	}
	if got.PriceConfidence != "medium" {
		t.Errorf("priceConfidence = %q, want medium", got.PriceConfidence)
	}
}

func TestValidatePriceWithoutOSMData(t *testing.T) {
	svc, _, _ := newFactCheckFixture(t,
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`[]`)) },
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{}`)) })

	got := svc.ValidatePrice(context.Background(), "Street Food Tour", 15)
	if got.SuggestedPrice != 15 {
		t.Errorf("suggestedPrice = %v, want the provided 15", got.SuggestedPrice)
	}
	if got.PriceConfidence != "low" {
		t.Errorf("priceConfidence = %q, want low with a single estimate", got.PriceConfidence)
	}
}
