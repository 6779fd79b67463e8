package request_models

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"

	"wandermind/pkg/utils"
)

const (
	maxTripDays = 14

	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Famous-place preferences accepted on the form.
const (
	FamousCityHighlights = "city_highlights"
	FamousNearbyDayTrips = "nearby_day_trips"
	FamousBoth           = "both"
	FamousHiddenGems     = "hidden_gems"
)

// currencySymbols doubles as the supported-currency set. Keys are ISO 4217
// units, so a code has to clear currency.ParseISO before it can be looked up;
// the entries match the options offered by the trip form.
var currencySymbols = map[currency.Unit]string{
	currency.MustParseISO("USD"): "$",
	currency.MustParseISO("EUR"): "€",
	currency.MustParseISO("GBP"): "£",
	currency.MustParseISO("INR"): "₹",
	currency.MustParseISO("JPY"): "¥",
	currency.MustParseISO("AUD"): "A$",
	currency.MustParseISO("CAD"): "C$",
	currency.MustParseISO("CHF"): "CHF",
	currency.MustParseISO("CNY"): "¥",
	currency.MustParseISO("SEK"): "kr",
	currency.MustParseISO("NZD"): "NZ$",
	currency.MustParseISO("MXN"): "Mex$",
	currency.MustParseISO("SGD"): "S$",
	currency.MustParseISO("HKD"): "HK$",
	currency.MustParseISO("NOK"): "kr",
	currency.MustParseISO("KRW"): "₩",
	currency.MustParseISO("TRY"): "₺",
	currency.MustParseISO("BRL"): "R$",
	currency.MustParseISO("ZAR"): "R",
	currency.MustParseISO("AED"): "د.إ",
}

// TripRequest carries the trip parameters from the form. The provider API key
// lives in the browser's local storage and travels only in this request body;
// it is never persisted server-side.
type TripRequest struct {
	Destination      string   `json:"destination"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Budget           float64  `json:"budget"`
	Currency         string   `json:"currency"`
	People           int      `json:"people"`
	Interests        []string `json:"interests"`
	ExtraWishes      string   `json:"extra_wishes"`
	FamousPreference string   `json:"famous_preference"`
	Provider         string   `json:"provider"`
	APIKey           string   `json:"api_key"`
}

// Validate enforces the pre-flight rules; nothing here touches the network.
// minDailyBudget is the per-person-per-day floor in the request currency.
func (r *TripRequest) Validate(minDailyBudget float64) error {
	if strings.TrimSpace(r.Destination) == "" {
		return utils.ErrMissingDestination
	}
	days, err := r.DayCount()
	if err != nil {
		return err
	}
	if days > maxTripDays {
		return utils.ErrTripTooLong
	}
	if r.Budget <= 0 || math.IsNaN(r.Budget) || math.IsInf(r.Budget, 0) {
		return utils.ErrInvalidBudget
	}
	if r.People < 1 {
		return utils.ErrInvalidPartySize
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	unit, err := currency.ParseISO(strings.ToUpper(r.Currency))
	if err != nil {
		return utils.ErrUnsupportedCurrency
	}
	if _, ok := currencySymbols[unit]; !ok {
		return utils.ErrUnsupportedCurrency
	}
	r.Currency = unit.String()
	if r.Budget/float64(r.People)/float64(days) < minDailyBudget {
		return utils.ErrBudgetBelowMinimum
	}
	switch r.FamousPreference {
	case "":
		r.FamousPreference = FamousCityHighlights
	case FamousCityHighlights, FamousNearbyDayTrips, FamousBoth, FamousHiddenGems:
	default:
		return utils.ErrInvalidFamousPreference
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

// Dates expands the inclusive date range into ISO calendar dates.
func (r *TripRequest) Dates() ([]string, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, utils.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return nil, utils.ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, utils.ErrInvalidDateRange
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, nil
}

func (r *TripRequest) DayCount() (int, error) {
	dates, err := r.Dates()
	if err != nil {
		return 0, err
	}
	return len(dates), nil
}

// BudgetPerPerson is the whole-trip budget share quoted to the provider.
func (r *TripRequest) BudgetPerPerson() float64 {
	if r.People < 1 {
		return r.Budget
	}
	return math.Floor(r.Budget / float64(r.People))
}

func (r *TripRequest) CurrencySymbol() string {
	unit, err := currency.ParseISO(strings.ToUpper(r.Currency))
	if err != nil {
		return "$"
	}
	if sym, ok := currencySymbols[unit]; ok {
		return sym
	}
	return "$"
}

// InterestSummary renders the interest tags for prompt interpolation.
func (r *TripRequest) InterestSummary() string {
	if len(r.Interests) == 0 {
		return "general travel"
	}
	return strings.Join(r.Interests, ", ")
}
