package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus mirrors the status column of sales.
type SaleStatus string

// Sale is a row of the sales table. Items and payments live in their own tables.
type Sale struct {
	SaleID      string          `db:"sale_id"`
	InventoryID string          `db:"inventory_id"`
	UserID      string          `db:"user_id"`
	Date        time.Time       `db:"date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Status      SaleStatus      `db:"status"`
	AuditFields
}

// SaleItem is a sold line. Position keeps the order the lines were entered in.
type SaleItem struct {
	SaleItemID        string          `db:"sale_item_id"`
	SaleID            string          `db:"sale_id"`
	Position          int             `db:"position"`
	ProductVariantID  string          `db:"product_variant_id"`
	Quantity          int             `db:"quantity"`
	CancelledQuantity int             `db:"cancelled_quantity"`
	ReturnedQuantity  int             `db:"returned_quantity"`
	UnitPrice         decimal.Decimal `db:"unit_price"`
	CostBasisAtSale   decimal.Decimal `db:"cost_basis_at_sale"`
	UnitProfit        decimal.Decimal `db:"unit_profit"`
	TotalItemPrice    decimal.Decimal `db:"total_item_price"`
	TotalItemProfit   decimal.Decimal `db:"total_item_profit"`
	SoldAt            time.Time       `db:"sold_at"`
}

// SalePayment is one tender of a sale. Refunds follow Position order.
type SalePayment struct {
	SalePaymentID  string          `db:"sale_payment_id"`
	SaleID         string          `db:"sale_id"`
	Position       int             `db:"position"`
	Method         string          `db:"method"`
	Amount         decimal.Decimal `db:"amount"`
	RefundedAmount decimal.Decimal `db:"refunded_amount"`
}

// ProductExchange is a row of the product_exchanges table.
type ProductExchange struct {
	ExchangeID          string          `db:"exchange_id"`
	UserID              string          `db:"user_id"`
	OriginalSaleID      string          `db:"original_sale_id"`
	NewSaleID           string          `db:"new_sale_id"`
	ReturnedAmount      decimal.Decimal `db:"returned_amount"`
	NewSaleAmount       decimal.Decimal `db:"new_sale_amount"`
	AmountDifference    decimal.Decimal `db:"amount_difference"`
	HasRefund           bool            `db:"has_refund"`
	RefundAmount        decimal.Decimal `db:"refund_amount"`
	RefundPaymentMethod sql.NullString  `db:"refund_payment_method"`
	Date                time.Time       `db:"date"`
	AuditFields
}
