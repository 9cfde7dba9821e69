package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/SscSPs/mei_retail_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to cash-flow and profit reports
type reportingHandler struct {
	ownerService     portssvc.OwnerSvc
	profitService    portssvc.ProfitSvc
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(owners portssvc.OwnerSvc, ps portssvc.ProfitSvc, rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{ownerService: owners, profitService: ps, reportingService: rs}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, ownerService portssvc.OwnerSvc, profitService portssvc.ProfitSvc, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(ownerService, profitService, reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/cash-flow", h.getCashFlowSummary)
		reports.GET("/cash-flow/monthly", h.getMonthlyCashFlowBreakdown)
		reports.GET("/cash-flow/monthly/:yearMonth", h.getMonthlyCashFlow)
		reports.GET("/profit", h.getProfitSummary)
		reports.GET("/profit/monthly", h.getMonthlyProfitBreakdown)
		reports.GET("/profit/monthly/:yearMonth", h.getMonthlyProfit)
		reports.GET("/profit/net", h.getNetProfit)
		reports.GET("/profit/gross", h.getGrossProfit)
		reports.GET("/expenses", h.getOperationalExpenses)
		reports.GET("/months", h.listReportMonths)
	}
}

// listReportMonths godoc
// @Summary Months with ledger activity
// @Description The months a monthly cash-flow or profit report exists for, ascending.
// @Tags reports
// @Produce json
// @Success 200 {array} domain.YearMonth
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/months [get]
func (h *reportingHandler) listReportMonths(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	months, err := h.reportingService.ListReportMonths(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err, "list report months")
		return
	}
	c.JSON(http.StatusOK, months)
}

// getCashFlowSummary godoc
// @Summary Cash-flow summary
// @Description Inflows, outflows and the current BANK and CASH balances.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.CashFlowSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlowSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.GetCashFlowSummary(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err, "generate cash-flow summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getMonthlyCashFlowBreakdown godoc
// @Summary Monthly cash flow
// @Description One entry per month with activity, with cumulative wallet balances.
// @Tags reports
// @Produce json
// @Success 200 {array} domain.MonthlyCashFlow
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/cash-flow/monthly [get]
func (h *reportingHandler) getMonthlyCashFlowBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	months, err := h.reportingService.GetMonthlyCashFlowBreakdown(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err, "generate monthly cash flow")
		return
	}
	c.JSON(http.StatusOK, months)
}

// getMonthlyCashFlow godoc
// @Summary Cash flow of one month
// @Tags reports
// @Produce json
// @Param yearMonth path string true "Month (YYYY-MM)"
// @Success 200 {object} domain.MonthlyCashFlow
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No activity in the month"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/cash-flow/monthly/{yearMonth} [get]
func (h *reportingHandler) getMonthlyCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ym, ok := h.yearMonthParam(c, logger)
	if !ok {
		return
	}
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	month, err := h.reportingService.GetMonthlyCashFlow(c.Request.Context(), email, ym)
	if err != nil {
		respondError(c, logger, err, "generate monthly cash flow")
		return
	}
	c.JSON(http.StatusOK, month)
}

// getProfitSummary godoc
// @Summary Profit summary
// @Description Gross profit, operational expenses and net profit.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.ProfitSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit [get]
func (h *reportingHandler) getProfitSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.GetProfitSummary(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err, "generate profit summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getMonthlyProfitBreakdown godoc
// @Summary Monthly profit
// @Tags reports
// @Produce json
// @Success 200 {array} domain.MonthlyProfit
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit/monthly [get]
func (h *reportingHandler) getMonthlyProfitBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	months, err := h.reportingService.GetMonthlyProfitBreakdown(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err, "generate monthly profit")
		return
	}
	c.JSON(http.StatusOK, months)
}

// getMonthlyProfit godoc
// @Summary Profit of one month
// @Tags reports
// @Produce json
// @Param yearMonth path string true "Month (YYYY-MM)"
// @Success 200 {object} domain.MonthlyProfit
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No activity in the month"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit/monthly/{yearMonth} [get]
func (h *reportingHandler) getMonthlyProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ym, ok := h.yearMonthParam(c, logger)
	if !ok {
		return
	}
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	month, err := h.reportingService.GetMonthlyProfit(c.Request.Context(), email, ym)
	if err != nil {
		respondError(c, logger, err, "generate monthly profit")
		return
	}
	c.JSON(http.StatusOK, month)
}

// getNetProfit godoc
// @Summary Total net profit
// @Tags reports
// @Produce json
// @Success 200 {object} dto.AmountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit/net [get]
func (h *reportingHandler) getNetProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	amount, err := h.profitService.CalculateTotalNetProfit(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err, "calculate net profit")
		return
	}
	c.JSON(http.StatusOK, dto.AmountResponse{Amount: amount})
}

// getGrossProfit godoc
// @Summary Gross profit
// @Description Sum of the active item profits, optionally limited to sales dated in [from, to).
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD), exclusive"
// @Success 200 {object} dto.AmountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit/gross [get]
func (h *reportingHandler) getGrossProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	from, to, err := parseDateRange(params.From, params.To)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}
	if (from == nil) != (to == nil) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "from and to must be given together"})
		return
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var amountErr error
	var resp dto.AmountResponse
	if from != nil {
		resp.Amount, amountErr = h.profitService.CalculateGrossProfitByDateRange(ctx, owner.Inventory, *from, *to)
	} else {
		resp.Amount, amountErr = h.profitService.CalculateTotalGrossProfit(ctx, owner.Inventory)
	}
	if amountErr != nil {
		respondError(c, logger, amountErr, "calculate gross profit")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getOperationalExpenses godoc
// @Summary Total operational expenses
// @Tags reports
// @Produce json
// @Success 200 {object} dto.AmountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/expenses [get]
func (h *reportingHandler) getOperationalExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email, ok := ownerEmail(c)
	if !ok {
		return
	}

	amount, err := h.profitService.CalculateTotalOperationalExpenses(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err, "calculate operational expenses")
		return
	}
	c.JSON(http.StatusOK, dto.AmountResponse{Amount: amount})
}

func (h *reportingHandler) yearMonthParam(c *gin.Context, logger *slog.Logger) (domain.YearMonth, bool) {
	raw := c.Param("yearMonth")
	ym, err := domain.ParseYearMonth(raw)
	if err != nil {
		logger.Warn("Invalid year-month", slog.String("yearMonth", raw))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "Invalid month. Use YYYY-MM"})
		return domain.YearMonth{}, false
	}
	return ym, true
}
