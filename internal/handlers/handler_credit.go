package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
	"github.com/lgu-treasury/rpt_ledger_app/internal/dto"
	"github.com/lgu-treasury/rpt_ledger_app/internal/middleware"
)

// creditHandler handles HTTP requests for tax credit rows.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(creditService portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: creditService}
}

func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credits")
	{
		credits.POST("", h.addCredit)
		credits.DELETE("", h.removeCreditForDue)
	}

	taxpayers := rg.Group("/taxpayers")
	{
		taxpayers.DELETE("/:taxpayerID/credits", h.removeCredits)
		taxpayers.DELETE("/:taxpayerID/penalty-discount", h.removePenaltyDiscount)
	}
}

// addCredit godoc
// @Summary Record a tax credit against a due
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   credit body dto.AddCreditRequest true "Credit to record"
// @Success 200 {object} dto.CreditResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to record credit"
// @Router /credits [post]
func (h *creditHandler) addCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.AddCreditRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.creditService.AddTaxCredit(
		c.Request.Context(),
		req.TaxpayerID,
		req.PropertyID,
		req.TaxYear,
		domain.TaxPeriod(req.TaxPeriod),
		req.JournalID,
		req.Amount,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record credit", slog.String("taxpayer_id", req.TaxpayerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record credit"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponse(entry))
}

// removeCreditForDue godoc
// @Summary Remove the open credit rows of a single due
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   due body dto.RemoveCreditForDueRequest true "Due whose credits to remove"
// @Success 200 {object} dto.DeletedResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to remove credits"
// @Router /credits [delete]
func (h *creditHandler) removeCreditForDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.RemoveCreditForDueRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for removeCreditForDue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	deleted, err := h.creditService.RemoveCreditForDue(
		c.Request.Context(),
		req.TaxpayerID,
		req.PropertyID,
		req.TaxYear,
		domain.TaxPeriod(req.TaxPeriod),
		req.JournalID,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to remove credits for due", slog.String("taxpayer_id", req.TaxpayerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove credits"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: deleted})
}

// removeCredits godoc
// @Summary Remove all open credit rows of a taxpayer
// @Tags credits
// @Produce  json
// @Param   taxpayerID path string true "Taxpayer ID"
// @Success 200 {object} dto.DeletedResponse
// @Failure 500 {object} map[string]string "Failed to remove credits"
// @Router /taxpayers/{taxpayerID}/credits [delete]
func (h *creditHandler) removeCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxpayerID := c.Param("taxpayerID")

	deleted, err := h.creditService.RemoveCredits(c.Request.Context(), taxpayerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to remove credits", slog.String("taxpayer_id", taxpayerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove credits"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: deleted})
}

// removePenaltyDiscount godoc
// @Summary Remove the open penalty/discount rows of a taxpayer
// @Tags credits
// @Produce  json
// @Param   taxpayerID path string true "Taxpayer ID"
// @Success 200 {object} dto.DeletedResponse
// @Failure 500 {object} map[string]string "Failed to remove penalty/discount rows"
// @Router /taxpayers/{taxpayerID}/penalty-discount [delete]
func (h *creditHandler) removePenaltyDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxpayerID := c.Param("taxpayerID")

	deleted, err := h.creditService.RemovePenaltyDiscount(c.Request.Context(), taxpayerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to remove penalty/discount rows", slog.String("taxpayer_id", taxpayerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove penalty/discount rows"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: deleted})
}
