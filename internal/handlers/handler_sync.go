package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
	"github.com/hfa-project/home_finance_app/internal/middleware"
)

// syncHandler handles the sync trigger and the sync audit trail.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

func newSyncHandler(ss portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{syncService: ss}
}

// RegisterSyncRoutes registers the sync trigger and audit routes.
func RegisterSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade) {
	h := newSyncHandler(syncService)

	sync := rg.Group("/sync")
	{
		sync.POST("", h.triggerSync)
		sync.GET("/status", h.syncStatus)
		sync.GET("/jobs/:connectionID", h.listSyncJobs)
	}
}

// triggerSync runs a sync cycle. A partial failure still returns 200 with
// the per-connection errors listed; only a server misconfiguration (missing
// master secret) or a rejected concurrent trigger map to error statuses.
func (h *syncHandler) triggerSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	var req dto.TriggerSyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	result, err := h.syncService.SyncCycle(c.Request.Context(), householdID, req.ConnectionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSyncInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "Sync already in progress for this connection"})
		case errors.Is(err, apperrors.ErrConfiguration):
			logger.Error("Sync refused: server misconfigured", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server is not configured for syncing"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
		default:
			logger.Error("Sync cycle failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync cycle failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncResultResponse(result))
}

// syncStatus reports which connections have a sync in flight right now.
func (h *syncHandler) syncStatus(c *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activeSyncs": h.syncService.ActiveSyncs(householdID)})
}

func (h *syncHandler) listSyncJobs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	householdID, ok := middleware.GetHouseholdIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Household ID missing"})
		return
	}
	connectionID := c.Param("connectionID")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	jobs, err := h.syncService.ListSyncJobs(c.Request.Context(), householdID, connectionID, limit)
	if err != nil {
		logger.Error("Failed to list sync jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sync jobs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncJobResponseSlice(jobs))
}
