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

// connectionHandler handles HTTP requests related to bank connections.
type connectionHandler struct {
	connectionService portssvc.ConnectionSvcFacade
}

func newConnectionHandler(cs portssvc.ConnectionSvcFacade) *connectionHandler {
	return &connectionHandler{connectionService: cs}
}

// registerConnectionRoutes registers routes related to bank connections.
func registerConnectionRoutes(rg *gin.RouterGroup, connectionService portssvc.ConnectionSvcFacade) {
	h := newConnectionHandler(connectionService)

	connections := rg.Group("/connections")
	{
		connections.POST("", h.createConnection)
		connections.GET("", h.listConnections)
		connections.GET("/:connectionID", h.getConnection)
		connections.PUT("/:connectionID/active", h.setConnectionActive)
	}
}

func (h *connectionHandler) createConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConnection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID := middleware.GetActorUserID(c)
	connection, err := h.connectionService.CreateConnection(c.Request.Context(), householdID, req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConfiguration):
			logger.Error("Connection creation refused: vault not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server is not configured for credential encryption"})
		default:
			logger.Error("Failed to create connection", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create connection"})
		}
		return
	}

	logger.Info("Connection created", slog.String("connection_id", connection.ConnectionID))
	c.JSON(http.StatusCreated, dto.ToConnectionResponse(connection))
}

func (h *connectionHandler) listConnections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	connections, err := h.connectionService.ListConnections(c.Request.Context(), householdID)
	if err != nil {
		logger.Error("Failed to list connections", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list connections"})
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionResponseSlice(connections))
}

func (h *connectionHandler) getConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}
	connectionID := c.Param("connectionID")

	connection, err := h.connectionService.GetConnection(c.Request.Context(), householdID, connectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
		} else {
			logger.Error("Failed to get connection", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve connection"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionResponse(connection))
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *connectionHandler) setConnectionActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}
	connectionID := c.Param("connectionID")

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID := middleware.GetActorUserID(c)
	if err := h.connectionService.SetConnectionActive(c.Request.Context(), householdID, connectionID, *req.Active, actorUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
		} else {
			logger.Error("Failed to toggle connection", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update connection"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
