package dto

import (
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one line of a new sale.
type SaleItemRequest struct {
	ProductVariantID string          `json:"productVariantID" binding:"required"`
	Quantity         int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"dgte0"`
}

// PaymentRequest is one tender of a sale.
type PaymentRequest struct {
	Method domain.PaymentMethod `json:"method" binding:"required,oneof=CASH PIX DEBIT_CARD CREDIT_CARD BANK_TRANSFER"`
	Amount decimal.Decimal      `json:"amount" binding:"dgt0"`
}

// CreateSaleRequest is the payload of a new sale. Payments must add up to the items total.
type CreateSaleRequest struct {
	Items    []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Payments []PaymentRequest  `json:"payments" binding:"required,min=1,dive"`
	Date     *time.Time        `json:"date,omitempty"`
}

// CancelSaleRequest lists the lines to cancel. An empty list cancels the whole sale.
type CancelSaleRequest struct {
	SaleItemIDs []string `json:"saleItemIDs"`
}

// ListSalesParams bounds a sale listing by date (YYYY-MM-DD, to exclusive).
type ListSalesParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// SaleResult is returned by sale creation and cancellation.
type SaleResult struct {
	Sale         domain.Sale          `json:"sale"`
	Transactions []domain.Transaction `json:"transactions"`
}
