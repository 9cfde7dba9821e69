package dto

import (
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

// ReturnItemRequest is a line of the original sale handed back.
type ReturnItemRequest struct {
	SaleItemID       string `json:"saleItemID" binding:"required"`
	QuantityToReturn int    `json:"quantityToReturn" binding:"required,gt=0"`
}

// ExchangeRequest swaps returned goods for new ones.
type ExchangeRequest struct {
	OriginalSaleID      string                `json:"-"`
	ItemsToReturn       []ReturnItemRequest   `json:"itemsToReturn" binding:"required,min=1,dive"`
	NewItems            []SaleItemRequest     `json:"newItems" binding:"required,min=1,dive"`
	NewPayments         []PaymentRequest      `json:"newPayments" binding:"omitempty,dive"`
	RefundPaymentMethod *domain.PaymentMethod `json:"refundPaymentMethod,omitempty" binding:"omitempty,oneof=CASH PIX DEBIT_CARD CREDIT_CARD BANK_TRANSFER"`
}

// ExchangeResult links both sales and the ledger rows of the exchange.
type ExchangeResult struct {
	Exchange     domain.ProductExchange `json:"exchange"`
	OriginalSale domain.Sale            `json:"originalSale"`
	NewSale      domain.Sale            `json:"newSale"`
	Transactions []domain.Transaction   `json:"transactions"`
}
