package repositories

import (
	"context"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

// PurchaseOrderReader defines read operations on purchase orders.
type PurchaseOrderReader interface {
	FindPurchaseOrderByID(ctx context.Context, inventoryID, purchaseOrderID string) (*domain.PurchaseOrder, error)

	// ListPurchaseOrders returns the orders of an inventory, newest first.
	ListPurchaseOrders(ctx context.Context, inventoryID string) ([]domain.PurchaseOrder, error)
}

// PurchaseOrderWriter defines write operations on purchase orders.
type PurchaseOrderWriter interface {
	// FindPurchaseOrderForUpdate loads an order and locks it until the unit of work ends.
	FindPurchaseOrderForUpdate(ctx context.Context, inventoryID, purchaseOrderID string) (*domain.PurchaseOrder, error)

	SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error

	// UpdatePurchaseOrderStatus persists Status and ReceivedAt.
	UpdatePurchaseOrderStatus(ctx context.Context, order domain.PurchaseOrder) error
}

// PurchaseOrderRepositoryFacade combines all purchase order repository interfaces.
type PurchaseOrderRepositoryFacade interface {
	PurchaseOrderReader
	PurchaseOrderWriter
}
