package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/SscSPs/mei_retail_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles the ledger listing and the manual money movements.
type ledgerHandler struct {
	ownerService  portssvc.OwnerSvc
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(owners portssvc.OwnerSvc, ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ownerService: owners, ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the ledger and wallets.
func registerLedgerRoutes(rg *gin.RouterGroup, ownerService portssvc.OwnerSvc, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ownerService, ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/transactions", h.listTransactions)
		ledger.POST("/entries", h.recordEntry)
		ledger.POST("/transfers", h.transfer)
		ledger.POST("/profit/withdraw", h.withdrawProfit)
		ledger.POST("/profit/reinvest", h.reinvestProfit)
	}
	rg.GET("/wallets", h.getWalletBalances)
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Lists the owner-visible entries in date order. Cost of goods sold rows are omitted.
// @Tags ledger
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD), inclusive"
// @Param to query string false "End date (YYYY-MM-DD), exclusive"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
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
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), *owner, from, to)
	if err != nil {
		respondError(c, logger, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txns})
}

// recordEntry godoc
// @Summary Record a manual entry
// @Description Records an investment or an expense. Outflows must be covered by the wallet balance.
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.RecordEntryRequest true "Entry"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *ledgerHandler) recordEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	txn, err := h.ledgerService.RecordEntry(c.Request.Context(), *owner, req)
	if err != nil {
		respondError(c, logger, err, "record entry")
		return
	}

	logger.Info("Entry recorded", slog.String("transaction_id", txn.TransactionID), slog.String("detail", string(txn.Detail)))
	c.JSON(http.StatusCreated, txn)
}

// transfer godoc
// @Summary Move money between wallets
// @Tags ledger
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer"
// @Success 201 {array} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/transfers [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	txns, err := h.ledgerService.Transfer(c.Request.Context(), *owner, req)
	if err != nil {
		respondError(c, logger, err, "transfer")
		return
	}
	c.JSON(http.StatusCreated, txns)
}

// withdrawProfit godoc
// @Summary Withdraw profit
// @Description Takes profit out of a wallet. The amount must not exceed the net profit nor the wallet balance.
// @Tags ledger
// @Accept json
// @Produce json
// @Param withdrawal body dto.WithdrawProfitRequest true "Withdrawal"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient profit or funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/profit/withdraw [post]
func (h *ledgerHandler) withdrawProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	txn, err := h.ledgerService.WithdrawProfit(c.Request.Context(), *owner, req)
	if err != nil {
		respondError(c, logger, err, "withdraw profit")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// reinvestProfit godoc
// @Summary Reinvest profit
// @Description Withdraws profit from one wallet and books it as invested money in another.
// @Tags ledger
// @Accept json
// @Produce json
// @Param reinvestment body dto.ReinvestProfitRequest true "Reinvestment"
// @Success 201 {array} domain.Transaction
// @Failure 400 {object} ErrorResponse "Invalid reinvestment"
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/profit/reinvest [post]
func (h *ledgerHandler) reinvestProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReinvestProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	txns, err := h.ledgerService.ReinvestProfit(c.Request.Context(), *owner, req)
	if err != nil {
		respondError(c, logger, err, "reinvest profit")
		return
	}
	c.JSON(http.StatusCreated, txns)
}

// getWalletBalances godoc
// @Summary Wallet balances
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.WalletBalances
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets [get]
func (h *ledgerHandler) getWalletBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}

	balances, err := h.ledgerService.GetWalletBalances(c.Request.Context(), *owner)
	if err != nil {
		respondError(c, logger, err, "get wallet balances")
		return
	}
	c.JSON(http.StatusOK, balances)
}
