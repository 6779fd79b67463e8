package request_models

import (
	"errors"
	"strings"
	"testing"

	"wandermind/pkg/utils"
)

func validRequest() *TripRequest {
	return &TripRequest{
		Destination: "Bangalore",
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-03",
		Budget:      900,
		Currency:    "USD",
		People:      2,
		Interests:   []string{"food", "history"},
		Provider:    ProviderGroq,
		APIKey:      "key",
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	req := validRequest()
	if err := req.Validate(50); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*TripRequest)
		wantErr error
	}{
		{"missing destination", func(r *TripRequest) { r.Destination = "  " }, utils.ErrMissingDestination},
		{"inverted dates", func(r *TripRequest) { r.StartDate, r.EndDate = r.EndDate, r.StartDate }, utils.ErrInvalidDateRange},
		{"unparseable date", func(r *TripRequest) { r.StartDate = "01/09/2026" }, utils.ErrInvalidDateRange},
		{"trip too long", func(r *TripRequest) { r.EndDate = "2026-09-20" }, utils.ErrTripTooLong},
		{"zero budget", func(r *TripRequest) { r.Budget = 0 }, utils.ErrInvalidBudget},
		{"negative budget", func(r *TripRequest) { r.Budget = -100 }, utils.ErrInvalidBudget},
		{"budget below minimum", func(r *TripRequest) { r.Budget = 200 }, utils.ErrBudgetBelowMinimum},
		{"zero people", func(r *TripRequest) { r.People = 0 }, utils.ErrInvalidPartySize},
		{"unsupported currency", func(r *TripRequest) { r.Currency = "XBT" }, utils.ErrUnsupportedCurrency},
		{"unsupported provider", func(r *TripRequest) { r.Provider = "mistral" }, utils.ErrUnsupportedProvider},
	}

	for _, tc := range cases {
		req := validRequest()
		tc.mutate(req)
		if err := req.Validate(50); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestValidateCurrencyAgainstISOTable(t *testing.T) {
	// A code the ISO 4217 table does not know.
	req := validRequest()
	req.Currency = "DOLLARS"
	if err := req.Validate(50); !errors.Is(err, utils.ErrUnsupportedCurrency) {
		t.Fatalf("got %v, want ErrUnsupportedCurrency for a non-ISO code", err)
	}

	// A real ISO code the form does not offer.
	req = validRequest()
	req.Currency = "THB"
	if err := req.Validate(50); !errors.Is(err, utils.ErrUnsupportedCurrency) {
		t.Fatalf("got %v, want ErrUnsupportedCurrency for a code outside the form set", err)
	}

	// Accepted codes canonicalize to the ISO spelling.
	req = validRequest()
	req.Currency = "eur"
	if err := req.Validate(50); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if req.Currency != "EUR" {
		t.Errorf("currency = %q, want EUR", req.Currency)
	}
	if got := req.CurrencySymbol(); got != "€" {
		t.Errorf("CurrencySymbol = %q, want €", got)
	}
}

func TestValidateFourteenDayBoundary(t *testing.T) {
	req := validRequest()
	req.EndDate = "2026-09-14" // 14 days inclusive
	req.Budget = 2000
	if err := req.Validate(50); err != nil {
		t.Fatalf("a 14-day trip should validate: %v", err)
	}

	req = validRequest()
	req.EndDate = "2026-09-15" // 15 days inclusive
	req.Budget = 2000
	if err := req.Validate(50); !errors.Is(err, utils.ErrTripTooLong) {
		t.Fatalf("got %v, want ErrTripTooLong", err)
	}
}

func TestValidateDefaults(t *testing.T) {
	req := validRequest()
	req.Currency = ""
	req.Provider = ""
	req.FamousPreference = ""
	if err := req.Validate(50); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if req.Currency != "USD" {
		t.Errorf("currency default = %q, want USD", req.Currency)
	}
	if req.Provider != ProviderGroq {
		t.Errorf("provider default = %q, want groq", req.Provider)
	}
}

func TestDates(t *testing.T) {
	req := validRequest()
	dates, err := req.Dates()
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	want := []string{"2026-09-01", "2026-09-02", "2026-09-03"}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %q, want %q", i, dates[i], want[i])
		}
	}
}

func TestBudgetPerPerson(t *testing.T) {
	req := validRequest()
	req.Budget = 901
	if got := req.BudgetPerPerson(); got != 450 {
		t.Errorf("BudgetPerPerson = %v, want 450 (floored)", got)
	}
}

func TestCurrencySymbol(t *testing.T) {
	req := validRequest()
	req.Currency = "EUR"
	if got := req.CurrencySymbol(); got != "€" {
		t.Errorf("CurrencySymbol = %q, want €", got)
	}
}

func TestInterestSummary(t *testing.T) {
	req := validRequest()
	if got := req.InterestSummary(); got != "food, history" {
		t.Errorf("InterestSummary = %q", got)
	}

	req.Interests = nil
	if got := req.InterestSummary(); !strings.Contains(got, "general travel") {
		t.Errorf("empty interests should read as general travel, got %q", got)
	}
}
