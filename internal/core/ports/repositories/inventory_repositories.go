package repositories

import (
	"context"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

// InventoryReader defines read operations on stock positions.
type InventoryReader interface {
	ListInventoryItems(ctx context.Context, inventoryID string) ([]domain.InventoryItem, error)

	// FindInventoryItem returns apperrors.ErrNotFound when the variant was never stocked.
	FindInventoryItem(ctx context.Context, inventoryID, variantID string) (*domain.InventoryItem, error)
}

// InventoryWriter defines write operations on stock positions.
type InventoryWriter interface {
	// LockInventoryItems locks the stock rows of the given variants in
	// ascending variant order and returns them keyed by variant ID.
	// Variants without a stock row are absent from the map.
	LockInventoryItems(ctx context.Context, inventoryID string, variantIDs []string) (map[string]*domain.InventoryItem, error)

	// SaveInventoryItems inserts or updates stock rows.
	SaveInventoryItems(ctx context.Context, items []domain.InventoryItem) error
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
