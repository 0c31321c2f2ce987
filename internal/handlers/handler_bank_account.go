package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hms-suite/hms_accounting/internal/core/ports/services"
	"github.com/hms-suite/hms_accounting/internal/dto"
	"github.com/hms-suite/hms_accounting/internal/middleware"
)

// bankAccountHandler handles HTTP requests for bank accounts.
type bankAccountHandler struct {
	bankAccountService    portssvc.BankAccountSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newBankAccountHandler(bs portssvc.BankAccountSvcFacade, rs portssvc.ReconciliationSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{
		bankAccountService:    bs,
		reconciliationService: rs,
	}
}

// registerBankAccountRoutes registers routes related to bank accounts.
func registerBankAccountRoutes(rg *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newBankAccountHandler(bankAccountService, reconciliationService)

	bankAccounts := rg.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.createBankAccount)
		bankAccounts.GET("", h.listBankAccounts)
		bankAccounts.GET("/:id", h.getBankAccount)
		bankAccounts.PUT("/:id", h.updateBankAccount)
		bankAccounts.POST("/:id/balance/recompute", h.recomputeBalance)
		bankAccounts.GET("/:id/reconciliations", h.listReconciliations)
	}
}

func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bankAccount, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create bank account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(bankAccount))
}

func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	bankAccount, err := h.bankAccountService.GetBankAccountByID(c.Request.Context(), bankAccountID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve bank account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(bankAccount))
}

func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params struct {
		ActiveOnly bool `form:"activeOnly"`
		Limit      int  `form:"limit"`
		Offset     int  `form:"offset"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	bankAccounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list bank accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bankAccounts": dto.ToBankAccountResponses(bankAccounts)})
}

func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bankAccount, err := h.bankAccountService.UpdateBankAccount(c.Request.Context(), bankAccountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update bank account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(bankAccount))
}

func (h *bankAccountHandler) recomputeBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.bankAccountService.RecomputeBalance(c.Request.Context(), bankAccountID, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recompute bank balance")
		return
	}

	c.JSON(http.StatusOK, dto.BankBalanceResponse{
		BankAccountID:  bankAccountID,
		CurrentBalance: balance,
	})
}

func (h *bankAccountHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	var params dto.ListReconciliationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reconciliationService.ListReconciliations(c.Request.Context(), bankAccountID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list reconciliations")
		return
	}

	c.JSON(http.StatusOK, resp)
}
