package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID, _ := c.Get("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID.(string),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID, _ := c.Get("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID.(string),
	})
}

// HandleServiceError maps service layer sentinel errors onto HTTP statuses.
// Anything unrecognized is logged and reported as a 500 without leaking the
// underlying error text.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingDestination),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrTripTooLong),
		errors.Is(err, ErrInvalidBudget),
		errors.Is(err, ErrBudgetBelowMinimum),
		errors.Is(err, ErrInvalidPartySize),
		errors.Is(err, ErrUnsupportedCurrency),
		errors.Is(err, ErrInvalidFamousPreference),
		errors.Is(err, ErrMissingEditInstruction),
		errors.Is(err, ErrInvalidEventType),
		errors.Is(err, ErrMissingEvent),
		errors.Is(err, ErrMissingItinerary),
		errors.Is(err, ErrUnsupportedProvider):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrMissingAPIKey), errors.Is(err, ErrInvalidAPIKey):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEventNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrGenerationInFlight), errors.Is(err, ErrEditInFlight):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrDuplicateSuggestion), errors.Is(err, ErrMalformedSuggestion):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrProviderRequest):
		log.Printf("Provider error: %v", err)
		RespondError(c, http.StatusBadGateway, "Itinerary provider is unavailable, try again shortly")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
