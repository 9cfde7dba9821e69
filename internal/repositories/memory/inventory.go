package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

func (s *Store) ListInventoryItems(_ context.Context, inventoryID string) ([]domain.InventoryItem, error) {
	defer s.rlock()()
	out := make([]domain.InventoryItem, 0, len(s.st.inventoryItems[inventoryID]))
	for _, it := range s.st.inventoryItems[inventoryID] {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductVariantID < out[j].ProductVariantID })
	return out, nil
}

func (s *Store) FindInventoryItem(_ context.Context, inventoryID, variantID string) (*domain.InventoryItem, error) {
	defer s.rlock()()
	it, ok := s.st.inventoryItems[inventoryID][variantID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &it, nil
}

// LockInventoryItems returns copies of the stock rows; the unit of work
// lock already serialises writers.
func (s *Store) LockInventoryItems(_ context.Context, inventoryID string, variantIDs []string) (map[string]*domain.InventoryItem, error) {
	defer s.rlock()()
	out := make(map[string]*domain.InventoryItem, len(variantIDs))
	for _, id := range variantIDs {
		if it, ok := s.st.inventoryItems[inventoryID][id]; ok {
			c := it
			out[id] = &c
		}
	}
	return out, nil
}

func (s *Store) SaveInventoryItems(_ context.Context, items []domain.InventoryItem) error {
	defer s.lock()()
	for _, it := range items {
		byVariant, ok := s.st.inventoryItems[it.InventoryID]
		if !ok {
			byVariant = make(map[string]domain.InventoryItem)
			s.st.inventoryItems[it.InventoryID] = byVariant
		}
		byVariant[it.ProductVariantID] = it
	}
	return nil
}
