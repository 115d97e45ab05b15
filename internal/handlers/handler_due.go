package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
	"github.com/lgu-treasury/rpt_ledger_app/internal/dto"
	"github.com/lgu-treasury/rpt_ledger_app/internal/middleware"
)

// dueHandler handles HTTP requests for due summaries and assessment views.
type dueHandler struct {
	dueService portssvc.DueSvcFacade
}

func newDueHandler(dueService portssvc.DueSvcFacade) *dueHandler {
	return &dueHandler{dueService: dueService}
}

func registerDueRoutes(rg *gin.RouterGroup, dueService portssvc.DueSvcFacade) {
	h := newDueHandler(dueService)

	taxpayers := rg.Group("/taxpayers")
	{
		taxpayers.GET("/:taxpayerID/dues", h.getTaxDue)
		taxpayers.GET("/:taxpayerID/dues/:tdno", h.getTaxDueByTdno)
		taxpayers.GET("/:taxpayerID/assessments", h.getAssessmentDetails)
	}
}

// getTaxDue godoc
// @Summary Get the per-year outstanding balances of a taxpayer
// @Tags dues
// @Produce  json
// @Param   taxpayerID path string true "Taxpayer ID"
// @Success 200 {array} dto.TaxYearSummaryResponse
// @Failure 500 {object} map[string]string "Failed to retrieve dues"
// @Router /taxpayers/{taxpayerID}/dues [get]
func (h *dueHandler) getTaxDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxpayerID := c.Param("taxpayerID")

	summaries, err := h.dueService.GetTaxDue(c.Request.Context(), taxpayerID)
	if err != nil {
		h.respondError(c, logger, taxpayerID, err, "Failed to retrieve dues")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxYearSummaryResponses(summaries))
}

// getTaxDueByTdno godoc
// @Summary Get the per-year due breakdown of one tax declaration
// @Tags dues
// @Produce  json
// @Param   taxpayerID path string true "Taxpayer ID"
// @Param   tdno path string true "Tax declaration number"
// @Success 200 {array} dto.DueSummaryResponse
// @Failure 404 {object} map[string]string "Tax declaration not found"
// @Failure 500 {object} map[string]string "Failed to retrieve dues"
// @Router /taxpayers/{taxpayerID}/dues/{tdno} [get]
func (h *dueHandler) getTaxDueByTdno(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxpayerID := c.Param("taxpayerID")
	tdno := c.Param("tdno")

	summaries, err := h.dueService.GetTaxDueByTdno(c.Request.Context(), taxpayerID, tdno)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Tax declaration not found", slog.String("td_number", tdno))
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax declaration not found"})
			return
		}
		h.respondError(c, logger, taxpayerID, err, "Failed to retrieve dues")
		return
	}

	c.JSON(http.StatusOK, dto.ToDueSummaryResponses(summaries))
}

// getAssessmentDetails godoc
// @Summary Get the assessment roll rows of a taxpayer
// @Tags dues
// @Produce  json
// @Param   taxpayerID path string true "Taxpayer ID"
// @Success 200 {array} dto.AssessmentDetailResponse
// @Failure 500 {object} map[string]string "Failed to retrieve assessments"
// @Router /taxpayers/{taxpayerID}/assessments [get]
func (h *dueHandler) getAssessmentDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxpayerID := c.Param("taxpayerID")

	details, err := h.dueService.GetAssessmentDetails(c.Request.Context(), taxpayerID)
	if err != nil {
		h.respondError(c, logger, taxpayerID, err, "Failed to retrieve assessments")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentDetailResponses(details))
}

func (h *dueHandler) respondError(c *gin.Context, logger *slog.Logger, taxpayerID string, err error, message string) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Error(message, slog.String("taxpayer_id", taxpayerID), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
