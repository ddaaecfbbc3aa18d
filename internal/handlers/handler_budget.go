package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
	"github.com/hfa-project/home_finance_app/internal/middleware"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.PUT("", h.upsertBudget)
		budgets.GET("/evaluate", h.evaluateMonth)
		budgets.GET("/alerts", h.listAlerts)
		budgets.POST("/copy-month", h.copyMonth)
	}
}

func (h *budgetHandler) upsertBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	var req dto.UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID := middleware.GetActorUserID(c)
	budget, err := h.budgetService.UpsertBudget(c.Request.Context(), householdID, req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to upsert budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) evaluateMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}
	month := c.DefaultQuery("month", time.Now().UTC().Format("2006-01"))

	evaluations, err := h.budgetService.EvaluateMonth(c.Request.Context(), householdID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to evaluate budgets", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate budgets"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetEvaluationResponseSlice(evaluations))
}

func (h *budgetHandler) listAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}
	month := c.DefaultQuery("month", time.Now().UTC().Format("2006-01"))

	alerts, err := h.budgetService.ListAlerts(c.Request.Context(), householdID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list budget alerts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budget alerts"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetEvaluationResponseSlice(alerts))
}

func (h *budgetHandler) copyMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	var req dto.CopyMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID := middleware.GetActorUserID(c)
	copied, err := h.budgetService.CopyMonth(c.Request.Context(), householdID, req.FromMonth, req.ToMonth, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to copy budgets", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to copy budgets"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CopyMonthResponse{Copied: copied})
}
