package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/SscSPs/mei_retail_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles sales, cancellations and exchanges.
type saleHandler struct {
	ownerService    portssvc.OwnerSvc
	saleService     portssvc.SaleSvcFacade
	exchangeService portssvc.ExchangeSvc
}

func newSaleHandler(owners portssvc.OwnerSvc, ss portssvc.SaleSvcFacade, es portssvc.ExchangeSvc) *saleHandler {
	return &saleHandler{ownerService: owners, saleService: ss, exchangeService: es}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, ownerService portssvc.OwnerSvc, saleService portssvc.SaleSvcFacade, exchangeService portssvc.ExchangeSvc) {
	h := newSaleHandler(ownerService, saleService, exchangeService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.POST("/:saleID/cancel", h.cancelSale)
		sales.POST("/:saleID/exchange", h.exchangeProduct)
	}
	rg.GET("/exchanges", h.listExchanges)
}

// createSale godoc
// @Summary Register a sale
// @Description Reserves stock, freezes the cost basis of every line and books SALE and COGS entries.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Sale lines and payments"
// @Success 201 {object} dto.SaleResult
// @Failure 400 {object} ErrorResponse "Invalid input or payments do not match the total"
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient stock"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	logger.Info("Received request to create sale", slog.Int("lines", len(req.Items)))
	result, err := h.saleService.CreateSale(c.Request.Context(), *owner, req)
	if err != nil {
		respondError(c, logger, err, "create sale")
		return
	}

	logger.Info("Sale created", slog.String("sale_id", result.Sale.SaleID))
	c.JSON(http.StatusCreated, result)
}

// listSales godoc
// @Summary List sales
// @Description Lists the sales of the owner, newest first, optionally bounded by date.
// @Tags sales
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD), inclusive"
// @Param to query string false "End date (YYYY-MM-DD), exclusive"
// @Success 200 {array} domain.Sale
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	from, to, err := parseDateRange(params.From, params.To)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), *owner, from, to)
	if err != nil {
		respondError(c, logger, err, "list sales")
		return
	}
	c.JSON(http.StatusOK, sales)
}

// getSale godoc
// @Summary Get a sale
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} domain.Sale
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), *owner, c.Param("saleID"))
	if err != nil {
		respondError(c, logger, err, "get sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// cancelSale godoc
// @Summary Cancel a sale
// @Description Cancels the listed lines, or every remaining line when the list is empty.
// @Tags sales
// @Accept json
// @Produce json
// @Param saleID path string true "Sale ID"
// @Param cancel body dto.CancelSaleRequest false "Lines to cancel"
// @Success 200 {object} dto.SaleResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale already cancelled or exchanged"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID}/cancel [post]
func (h *saleHandler) cancelSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CancelSaleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, err)
			return
		}
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	saleID := c.Param("saleID")
	logger = logger.With(slog.String("sale_id", saleID))
	result, err := h.saleService.CancelSale(c.Request.Context(), *owner, saleID, req.SaleItemIDs)
	if err != nil {
		respondError(c, logger, err, "cancel sale")
		return
	}

	logger.Info("Sale cancelled", slog.String("status", string(result.Sale.Status)))
	c.JSON(http.StatusOK, result)
}

// exchangeProduct godoc
// @Summary Exchange goods of a sale
// @Description Returns lines of the sale to stock and sells new goods against their value.
// @Tags sales
// @Accept json
// @Produce json
// @Param saleID path string true "Original sale ID"
// @Param exchange body dto.ExchangeRequest true "Returned and new goods"
// @Success 201 {object} dto.ExchangeResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient stock"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID}/exchange [post]
func (h *saleHandler) exchangeProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	req.OriginalSaleID = c.Param("saleID")
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	logger = logger.With(slog.String("sale_id", req.OriginalSaleID))
	result, err := h.exchangeService.ExchangeProduct(c.Request.Context(), *owner, req)
	if err != nil {
		respondError(c, logger, err, "exchange product")
		return
	}

	logger.Info("Exchange completed", slog.String("exchange_id", result.Exchange.ExchangeID))
	c.JSON(http.StatusCreated, result)
}

// listExchanges godoc
// @Summary List exchanges
// @Tags sales
// @Produce json
// @Success 200 {array} domain.ProductExchange
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchanges [get]
func (h *saleHandler) listExchanges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	exchanges, err := h.exchangeService.ListExchanges(c.Request.Context(), *owner)
	if err != nil {
		respondError(c, logger, err, "list exchanges")
		return
	}
	c.JSON(http.StatusOK, exchanges)
}
