package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wandermind/internal/models/response_models"
	"wandermind/internal/services"
	"wandermind/pkg/utils"
)

type FactCheckController struct {
	factCheckService services.FactCheckServiceInterface
}

func NewFactCheckController(factCheckService services.FactCheckServiceInterface) *FactCheckController {
	return &FactCheckController{
		factCheckService: factCheckService,
	}
}

type factCheckRequest struct {
	Name   string                      `json:"name"`
	Center response_models.Coordinates `json:"center"`
	Cost   float64                     `json:"cost"`
}

// FactCheckHandler verifies one location and its price. Verdicts are
// advisory: a failed lookup reports verified false instead of an error.
func (fc *FactCheckController) FactCheckHandler(c *gin.Context) {
	var req factCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, "Location name is required")
		return
	}

	location := fc.factCheckService.ValidateLocation(c.Request.Context(), req.Name, req.Center)
	price := fc.factCheckService.ValidatePrice(c.Request.Context(), req.Name, req.Cost)

	utils.RespondSuccess(c, gin.H{
		"location": location,
		"price":    price,
	}, "Fact check completed")
}
