package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CostScale is the number of decimal places kept for unit costs.
const CostScale = 4

// InventoryItem is the stock position of one product variant.
type InventoryItem struct {
	InventoryItemID   string          `json:"inventoryItemID"`
	InventoryID       string          `json:"inventoryID"`
	ProductVariantID  string          `json:"productVariantID"`
	Quantity          int             `json:"quantity"`
	AverageCost       decimal.Decimal `json:"averageCost"`
	LastPurchasePrice decimal.Decimal `json:"lastPurchasePrice"`
	LastPurchaseDate  *time.Time      `json:"lastPurchaseDate,omitempty"`
	AuditFields
}

// ReceiveStock adds a received lot and recomputes the weighted-average cost:
// (oldQty*oldAvg + qty*price) / (oldQty+qty).
func (i *InventoryItem) ReceiveStock(qty int, unitPrice decimal.Decimal, at time.Time) error {
	if qty <= 0 {
		return fmt.Errorf("%w: received quantity must be positive, got %d", apperrors.ErrInvalidQuantity, qty)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}

	oldQty := decimal.NewFromInt(int64(i.Quantity))
	inQty := decimal.NewFromInt(int64(qty))
	total := oldQty.Mul(i.AverageCost).Add(inQty.Mul(unitPrice))

	i.AverageCost = total.DivRound(oldQty.Add(inQty), CostScale)
	i.Quantity += qty
	i.LastPurchasePrice = unitPrice
	received := at
	i.LastPurchaseDate = &received
	return nil
}

// ReserveForSale takes qty units out of stock. Average cost is untouched.
func (i *InventoryItem) ReserveForSale(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: sale quantity must be positive, got %d", apperrors.ErrInvalidQuantity, qty)
	}
	if i.Quantity < qty {
		return &apperrors.InsufficientStockError{
			VariantID: i.ProductVariantID,
			Available: i.Quantity,
			Required:  qty,
		}
	}
	i.Quantity -= qty
	return nil
}

// ReturnToStock puts qty units back. Returned units join the existing stock
// at its current average cost.
func (i *InventoryItem) ReturnToStock(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: returned quantity must be positive, got %d", apperrors.ErrInvalidQuantity, qty)
	}
	i.Quantity += qty
	return nil
}

// SnapshotCostBasis returns the unit cost to freeze on a sale item.
func (i InventoryItem) SnapshotCostBasis() decimal.Decimal {
	return i.AverageCost
}

// StockValue is quantity times average cost.
func (i InventoryItem) StockValue() decimal.Decimal {
	return decimal.NewFromInt(int64(i.Quantity)).Mul(i.AverageCost)
}
