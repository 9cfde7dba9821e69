package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/SscSPs/mei_retail_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inventoryHandler handles stock positions and purchase orders.
type inventoryHandler struct {
	ownerService     portssvc.OwnerSvc
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(owners portssvc.OwnerSvc, is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{ownerService: owners, inventoryService: is}
}

// registerInventoryRoutes registers routes related to stock and purchasing.
func registerInventoryRoutes(rg *gin.RouterGroup, ownerService portssvc.OwnerSvc, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(ownerService, inventoryService)

	rg.GET("/inventory", h.listInventory)
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.createPurchaseOrder)
		orders.GET("", h.listPurchaseOrders)
		orders.POST("/:purchaseOrderID/receive", h.receivePurchaseOrder)
		orders.POST("/:purchaseOrderID/cancel", h.cancelPurchaseOrder)
	}
}

// listInventory godoc
// @Summary List stock positions
// @Description Quantity, weighted-average cost, stock value and last purchase of every variant.
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.InventoryItemResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) listInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	items, err := h.inventoryService.ListInventory(c.Request.Context(), *owner)
	if err != nil {
		respondError(c, logger, err, "list inventory")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponses(items))
}

// createPurchaseOrder godoc
// @Summary Place a purchase order
// @Tags inventory
// @Accept json
// @Produce json
// @Param order body dto.CreatePurchaseOrderRequest true "Supplier, payment method and lines"
// @Success 201 {object} domain.PurchaseOrder
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders [post]
func (h *inventoryHandler) createPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	order, err := h.inventoryService.CreatePurchaseOrder(c.Request.Context(), *owner, req)
	if err != nil {
		respondError(c, logger, err, "create purchase order")
		return
	}

	logger.Info("Purchase order created", slog.String("purchase_order_id", order.PurchaseOrderID))
	c.JSON(http.StatusCreated, order)
}

// listPurchaseOrders godoc
// @Summary List purchase orders
// @Tags inventory
// @Produce json
// @Success 200 {array} domain.PurchaseOrder
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders [get]
func (h *inventoryHandler) listPurchaseOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	orders, err := h.inventoryService.ListPurchaseOrders(c.Request.Context(), *owner)
	if err != nil {
		respondError(c, logger, err, "list purchase orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// receivePurchaseOrder godoc
// @Summary Receive a purchase order
// @Description Stocks every line at its unit price and pays the supplier from the order's wallet.
// @Tags inventory
// @Produce json
// @Param purchaseOrderID path string true "Purchase order ID"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order is not pending"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders/{purchaseOrderID}/receive [post]
func (h *inventoryHandler) receivePurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	orderID := c.Param("purchaseOrderID")
	logger = logger.With(slog.String("purchase_order_id", orderID))
	order, err := h.inventoryService.ReceivePurchaseOrder(c.Request.Context(), *owner, orderID)
	if err != nil {
		respondError(c, logger, err, "receive purchase order")
		return
	}

	logger.Info("Purchase order received")
	c.JSON(http.StatusOK, order)
}

// cancelPurchaseOrder godoc
// @Summary Cancel a pending purchase order
// @Tags inventory
// @Produce json
// @Param purchaseOrderID path string true "Purchase order ID"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order is not pending"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchase-orders/{purchaseOrderID}/cancel [post]
func (h *inventoryHandler) cancelPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	order, err := h.inventoryService.CancelPurchaseOrder(c.Request.Context(), *owner, c.Param("purchaseOrderID"))
	if err != nil {
		respondError(c, logger, err, "cancel purchase order")
		return
	}
	c.JSON(http.StatusOK, order)
}
