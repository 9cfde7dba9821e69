package dto

import (
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest is one ordered variant.
type PurchaseOrderItemRequest struct {
	ProductVariantID string          `json:"productVariantID" binding:"required"`
	Quantity         int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"dgte0"`
}

// CreatePurchaseOrderRequest places a supplier order.
type CreatePurchaseOrderRequest struct {
	Supplier      string                     `json:"supplier" binding:"required,max=200"`
	PaymentMethod domain.PaymentMethod       `json:"paymentMethod" binding:"required,oneof=CASH PIX DEBIT_CARD CREDIT_CARD BANK_TRANSFER"`
	Items         []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}
