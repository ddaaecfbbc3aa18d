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

// ruleHandler handles HTTP requests related to categorization rules.
type ruleHandler struct {
	ruleService portssvc.RuleSvcFacade
}

func newRuleHandler(rs portssvc.RuleSvcFacade) *ruleHandler {
	return &ruleHandler{ruleService: rs}
}

// registerRuleRoutes registers routes related to categorization rules.
func registerRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.RuleSvcFacade) {
	h := newRuleHandler(ruleService)

	rules := rg.Group("/rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.POST("/test", h.testRule)
		rules.POST("/from-transaction", h.createRuleFromTransaction)
		rules.POST("/batch-delete", h.batchDelete)
		rules.POST("/batch-toggle", h.batchToggle)
	}
}

func (h *ruleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID := middleware.GetActorUserID(c)
	rule, err := h.ruleService.CreateRule(c.Request.Context(), householdID, req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Target category not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create rule", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRuleResponse(rule))
}

func (h *ruleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	rules, err := h.ruleService.ListRules(c.Request.Context(), householdID)
	if err != nil {
		logger.Error("Failed to list rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rules"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRuleResponseSlice(rules))
}

// testRule never fails across the boundary: a malformed regex is reported in
// the response body with a 200.
func (h *ruleHandler) testRule(c *gin.Context) {
	var req dto.RuleTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.ruleService.TestRule(req))
}

func (h *ruleHandler) createRuleFromTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	var req dto.CreateRuleFromTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID := middleware.GetActorUserID(c)
	rule, err := h.ruleService.CreateRuleFromTransaction(c.Request.Context(), householdID, req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create rule from transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRuleResponse(rule))
}

func (h *ruleHandler) batchDelete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	var req dto.BatchRuleIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	affected, err := h.ruleService.BatchDeleteRules(c.Request.Context(), householdID, req.RuleIDs)
	if err != nil {
		logger.Error("Failed to batch delete rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rules"})
		return
	}

	c.JSON(http.StatusOK, dto.BatchRuleResponse{Affected: affected})
}

func (h *ruleHandler) batchToggle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	var req dto.BatchRuleToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	affected, err := h.ruleService.BatchSetRulesActive(c.Request.Context(), householdID, req.RuleIDs, *req.Active)
	if err != nil {
		logger.Error("Failed to batch toggle rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle rules"})
		return
	}

	c.JSON(http.StatusOK, dto.BatchRuleResponse{Affected: affected})
}
