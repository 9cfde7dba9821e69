package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the stock position of one variant.
type InventoryItem struct {
	InventoryItemID   string          `db:"inventory_item_id"`
	InventoryID       string          `db:"inventory_id"`
	ProductVariantID  string          `db:"product_variant_id"`
	Quantity          int             `db:"quantity"`
	AverageCost       decimal.Decimal `db:"average_cost"`
	LastPurchasePrice decimal.Decimal `db:"last_purchase_price"`
	LastPurchaseDate  *time.Time      `db:"last_purchase_date"` // Nullable
	AuditFields
}
