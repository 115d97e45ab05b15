package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
	"github.com/lgu-treasury/rpt_ledger_app/internal/dto"
	"github.com/lgu-treasury/rpt_ledger_app/internal/middleware"
	"github.com/lgu-treasury/rpt_ledger_app/internal/platform/config"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// postingHandler handles HTTP requests for the posting engine.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
	dueService     portssvc.DueSvcFacade
}

func newPostingHandler(postingService portssvc.PostingSvcFacade, dueService portssvc.DueSvcFacade) *postingHandler {
	return &postingHandler{
		postingService: postingService,
		dueService:     dueService,
	}
}

func registerPostingRoutes(rg *gin.RouterGroup, cfg *config.Config, postingService portssvc.PostingSvcFacade, dueService portssvc.DueSvcFacade) {
	h := newPostingHandler(postingService, dueService)

	// Posting runs rewrite ledger rows in bulk, so they sit behind an IP limit.
	period, err := time.ParseDuration(cfg.RateLimitPeriod)
	if err != nil {
		period = time.Minute
	}
	rate := limiter.Rate{Period: period, Limit: cfg.RateLimitMax}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limit := middleware.RateLimit(ipLimiter)

	posting := rg.Group("/posting")
	{
		posting.POST("/penalties", limit, h.postPenalties)
		posting.GET("/candidates", h.listCandidates)
	}

	taxpayers := rg.Group("/taxpayers")
	{
		taxpayers.POST("/:taxpayerID/penalty-discount", limit, h.computePenaltyDiscount)
		taxpayers.POST("/:taxpayerID/debits", limit, h.initializeDebit)
	}
}

// postPenalties godoc
// @Summary Run a batch penalty/discount posting
// @Description Recomputes the derived penalty and discount ledger rows for the given dues as of a date
// @Tags posting
// @Accept  json
// @Produce  json
// @Param   run body dto.PostPenaltiesRequest true "As-of date and due keys"
// @Success 200 {object} dto.PostingRunResponse "Run outcome, including per-record errors on partial success"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to run posting"
// @Router /posting/penalties [post]
func (h *postingHandler) postPenalties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.PostPenaltiesRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postPenalties", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	asOf, err := domain.ParseAsOf(req.AsOfDate)
	if err != nil {
		logger.Warn("Invalid as-of date", slog.String("as_of", req.AsOfDate))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.postingService.PostPenalties(c.Request.Context(), req.ToDomainDueKeys(), asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error running posting", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to run posting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run posting"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingRunResponse(result))
}

// listCandidates godoc
// @Summary List dues eligible for a posting run
// @Tags posting
// @Produce  json
// @Param   taxYear query int false "Filter by tax year"
// @Param   tdNumber query string false "Filter by tax declaration number"
// @Success 200 {array} dto.PenaltyCandidateResponse
// @Failure 400 {object} map[string]string "Invalid tax year"
// @Failure 500 {object} map[string]string "Failed to list candidates"
// @Router /posting/candidates [get]
func (h *postingHandler) listCandidates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter := domain.CandidateFilter{TDNumber: c.Query("tdNumber")}
	if yearStr := c.Query("taxYear"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tax year"})
			return
		}
		filter.TaxYear = year
	}

	candidates, err := h.dueService.ListPenaltyCandidates(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list posting candidates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list candidates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPenaltyCandidateResponses(candidates))
}

// computePenaltyDiscount godoc
// @Summary Recompute penalty/discount rows for one taxpayer
// @Tags posting
// @Accept  json
// @Produce  json
// @Param   taxpayerID path string true "Taxpayer ID"
// @Param   body body dto.RecomputeRequest true "As-of date, defaults to today when omitted"
// @Success 200 {object} dto.RecomputeResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to recompute"
// @Router /taxpayers/{taxpayerID}/penalty-discount [post]
func (h *postingHandler) computePenaltyDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxpayerID := c.Param("taxpayerID")

	req := dto.RecomputeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for computePenaltyDiscount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	asOf := domain.AsOfFromTime(time.Now().UTC())
	if req.AsOfDate != "" {
		var err error
		asOf, err = domain.ParseAsOf(req.AsOfDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.postingService.ComputePenaltyDiscount(c.Request.Context(), taxpayerID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to recompute penalty/discount", slog.String("taxpayer_id", taxpayerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRecomputeResponse(result))
}

// initializeDebit godoc
// @Summary Seed missing assessment ledger rows from the posting journal
// @Tags posting
// @Produce  json
// @Param   taxpayerID path string true "Taxpayer ID"
// @Success 200 {object} dto.InitializeDebitResponse
// @Failure 400 {object} map[string]string "Invalid taxpayer"
// @Failure 500 {object} map[string]string "Failed to initialize debits"
// @Router /taxpayers/{taxpayerID}/debits [post]
func (h *postingHandler) initializeDebit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxpayerID := c.Param("taxpayerID")

	rows, err := h.postingService.InitializeTaxpayerDebit(c.Request.Context(), taxpayerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to initialize taxpayer debits", slog.String("taxpayer_id", taxpayerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize debits"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.InitializeDebitResponse{JournalRows: rows})
}
