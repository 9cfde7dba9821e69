package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus tracks a supplier order.
type PurchaseOrderStatus string

const (
	PurchaseOrderPending   PurchaseOrderStatus = "PENDING"
	PurchaseOrderReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder is a stock purchase. Receiving it updates average costs and
// pays the supplier.
type PurchaseOrder struct {
	PurchaseOrderID string              `json:"purchaseOrderID"`
	InventoryID     string              `json:"inventoryID"`
	UserID          string              `json:"userID"`
	Supplier        string              `json:"supplier"`
	Status          PurchaseOrderStatus `json:"status"`
	PaymentMethod   PaymentMethod       `json:"paymentMethod"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Items           []PurchaseOrderItem `json:"items"`
	OrderedAt       time.Time           `json:"orderedAt"`
	ReceivedAt      *time.Time          `json:"receivedAt,omitempty"`
	AuditFields
}

// PurchaseOrderItem is one ordered variant.
type PurchaseOrderItem struct {
	PurchaseOrderItemID string          `json:"purchaseOrderItemID"`
	PurchaseOrderID     string          `json:"purchaseOrderID"`
	ProductVariantID    string          `json:"productVariantID"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
}

// LineTotal is quantity times unit price.
func (i PurchaseOrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
