package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is a row of the purchase_orders table.
type PurchaseOrder struct {
	PurchaseOrderID string          `db:"purchase_order_id"`
	InventoryID     string          `db:"inventory_id"`
	UserID          string          `db:"user_id"`
	Supplier        string          `db:"supplier"`
	Status          string          `db:"status"`
	PaymentMethod   string          `db:"payment_method"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	OrderedAt       time.Time       `db:"ordered_at"`
	ReceivedAt      *time.Time      `db:"received_at"` // Nullable
	AuditFields
}

// PurchaseOrderItem is one ordered line.
type PurchaseOrderItem struct {
	PurchaseOrderItemID string          `db:"purchase_order_item_id"`
	PurchaseOrderID     string          `db:"purchase_order_id"`
	Position            int             `db:"position"`
	ProductVariantID    string          `db:"product_variant_id"`
	Quantity            int             `db:"quantity"`
	UnitPrice           decimal.Decimal `db:"unit_price"`
}
