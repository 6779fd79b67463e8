package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wandermind/internal/models/request_models"
	"wandermind/internal/services"
	"wandermind/pkg/utils"
)

type TripController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewTripController(itineraryService services.ItineraryServiceInterface) *TripController {
	return &TripController{
		itineraryService: itineraryService,
	}
}

func (tc *TripController) GenerateItineraryHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	plan, err := tc.itineraryService.Generate(c.Request.Context(), &req)
	if err != nil {
		// A provider failure for a recognizable destination still gets map
		// points so the client is never left with a blank result screen.
		if errors.Is(err, utils.ErrProviderRequest) {
			if fallback := tc.itineraryService.FallbackLocations(req.Destination); len(fallback) > 0 {
				traceID, _ := c.Get("trace_id")
				c.JSON(http.StatusBadGateway, utils.APIResponse{
					Status:  "error",
					Code:    http.StatusBadGateway,
					Message: "Itinerary provider is unavailable, try again shortly",
					TraceID: traceID.(string),
					Data:    gin.H{"locations": fallback},
				})
				return
			}
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Itinerary generated successfully")
}
