package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
	"github.com/hfa-project/home_finance_app/internal/middleware"
)

// householdHandler handles HTTP requests related to households.
type householdHandler struct {
	householdService portssvc.HouseholdSvcFacade
}

func newHouseholdHandler(hs portssvc.HouseholdSvcFacade) *householdHandler {
	return &householdHandler{householdService: hs}
}

// registerHouseholdRoutes registers routes related to households.
func registerHouseholdRoutes(rg *gin.RouterGroup, householdService portssvc.HouseholdSvcFacade) {
	h := newHouseholdHandler(householdService)

	households := rg.Group("/households")
	{
		households.POST("", h.createHousehold)
		households.GET("/:householdID", h.getHousehold)
	}
}

func (h *householdHandler) createHousehold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateHousehold", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID := middleware.GetActorUserID(c)
	household, err := h.householdService.CreateHousehold(c.Request.Context(), req, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create household", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create household"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToHouseholdResponse(household))
}

func (h *householdHandler) getHousehold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	household, err := h.householdService.GetHousehold(c.Request.Context(), householdID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Household not found"})
		} else {
			logger.Error("Failed to get household", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve household"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToHouseholdResponse(household))
}
