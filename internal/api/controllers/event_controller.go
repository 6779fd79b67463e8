package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wandermind/internal/models/request_models"
	"wandermind/internal/services"
	"wandermind/pkg/utils"
)

type EventController struct {
	modifierService services.ModifierServiceInterface
}

func NewEventController(modifierService services.ModifierServiceInterface) *EventController {
	return &EventController{
		modifierService: modifierService,
	}
}

func (ec *EventController) ModifyEventHandler(c *gin.Context) {
	var req request_models.ModifyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := ec.modifierService.ModifyEvent(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Event modified successfully")
}
