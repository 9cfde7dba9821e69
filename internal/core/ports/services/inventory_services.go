package services

import (
	"context"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/dto"
)

// PurchaseOrderSvc defines the purchasing workflow.
type PurchaseOrderSvc interface {
	CreatePurchaseOrder(ctx context.Context, owner domain.OwnerContext, req dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error)

	// ReceivePurchaseOrder stocks every line at its price and pays the supplier atomically.
	ReceivePurchaseOrder(ctx context.Context, owner domain.OwnerContext, purchaseOrderID string) (*domain.PurchaseOrder, error)

	CancelPurchaseOrder(ctx context.Context, owner domain.OwnerContext, purchaseOrderID string) (*domain.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, owner domain.OwnerContext) ([]domain.PurchaseOrder, error)
}

// InventoryReaderSvc exposes the stock positions.
type InventoryReaderSvc interface {
	ListInventory(ctx context.Context, owner domain.OwnerContext) ([]domain.InventoryItem, error)
}

// InventorySvcFacade combines all inventory-related service interfaces.
type InventorySvcFacade interface {
	PurchaseOrderSvc
	InventoryReaderSvc
}
