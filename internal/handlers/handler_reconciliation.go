package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hms-suite/hms_accounting/internal/core/ports/services"
	"github.com/hms-suite/hms_accounting/internal/dto"
	"github.com/hms-suite/hms_accounting/internal/middleware"
)

// reconciliationHandler handles HTTP requests for bank reconciliations.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers routes related to bank reconciliations.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.POST("", h.createReconciliation)
		reconciliations.GET("/:id", h.getReconciliation)
		reconciliations.POST("/:id/entries", h.addEntry)
		reconciliations.POST("/:id/entries/:entryID/clear", h.clearEntry)
		reconciliations.POST("/:id/complete", h.complete)
		reconciliations.POST("/:id/cancel", h.cancel)
	}
}

func (h *reconciliationHandler) createReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reconciliation, err := h.reconciliationService.CreateReconciliation(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create reconciliation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(reconciliation))
}

func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	reconciliation, err := h.reconciliationService.GetReconciliationByID(c.Request.Context(), reconciliationID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(reconciliation))
}

func (h *reconciliationHandler) addEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	var req dto.AddReconciliationEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddReconciliationEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.reconciliationService.AddEntry(c.Request.Context(), reconciliationID, req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add reconciliation entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReconciliationEntryResponse(entry))
}

func (h *reconciliationHandler) clearEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")
	reconciliationEntryID := c.Param("entryID")

	// Body is optional; clearing defaults to the current date.
	var req dto.ClearReconciliationEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ClearReconciliationEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reconciliationService.ClearEntry(c.Request.Context(), reconciliationID, reconciliationEntryID, req, actorUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to clear reconciliation entry")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *reconciliationHandler) complete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reconciliation, err := h.reconciliationService.Complete(c.Request.Context(), reconciliationID, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to complete reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(reconciliation))
}

func (h *reconciliationHandler) cancel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reconciliationID := c.Param("id")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reconciliationService.Cancel(c.Request.Context(), reconciliationID, actorUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to cancel reconciliation")
		return
	}

	c.Status(http.StatusNoContent)
}
