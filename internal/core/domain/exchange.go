package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductExchange links a returned sale to the sale that replaced it.
// AmountDifference is newSaleAmount - returnedAmount: positive means the
// customer paid more, negative means a refund was given.
type ProductExchange struct {
	ExchangeID          string          `json:"exchangeID"`
	UserID              string          `json:"userID"`
	OriginalSaleID      string          `json:"originalSaleID"`
	NewSaleID           string          `json:"newSaleID"`
	ReturnedAmount      decimal.Decimal `json:"returnedAmount"`
	NewSaleAmount       decimal.Decimal `json:"newSaleAmount"`
	AmountDifference    decimal.Decimal `json:"amountDifference"`
	HasRefund           bool            `json:"hasRefund"`
	RefundAmount        decimal.Decimal `json:"refundAmount"`
	RefundPaymentMethod *PaymentMethod  `json:"refundPaymentMethod,omitempty"`
	Date                time.Time       `json:"date"`
	AuditFields
}
