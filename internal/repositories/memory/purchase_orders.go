package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

func (s *Store) FindPurchaseOrderByID(_ context.Context, inventoryID, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	defer s.rlock()()
	return s.findPurchaseOrder(inventoryID, purchaseOrderID)
}

func (s *Store) findPurchaseOrder(inventoryID, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	po, ok := s.st.purchaseOrders[purchaseOrderID]
	if !ok || po.InventoryID != inventoryID {
		return nil, apperrors.ErrNotFound
	}
	c := clonePurchaseOrder(po)
	return &c, nil
}

func (s *Store) ListPurchaseOrders(_ context.Context, inventoryID string) ([]domain.PurchaseOrder, error) {
	defer s.rlock()()
	out := make([]domain.PurchaseOrder, 0)
	for _, po := range s.st.purchaseOrders {
		if po.InventoryID == inventoryID {
			out = append(out, clonePurchaseOrder(po))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderedAt.After(out[j].OrderedAt) })
	return out, nil
}

func (s *Store) FindPurchaseOrderForUpdate(_ context.Context, inventoryID, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	defer s.rlock()()
	return s.findPurchaseOrder(inventoryID, purchaseOrderID)
}

func (s *Store) SavePurchaseOrder(_ context.Context, order domain.PurchaseOrder) error {
	defer s.lock()()
	if _, exists := s.st.purchaseOrders[order.PurchaseOrderID]; exists {
		return apperrors.ErrDuplicate
	}
	s.st.purchaseOrders[order.PurchaseOrderID] = clonePurchaseOrder(order)
	return nil
}

func (s *Store) UpdatePurchaseOrderStatus(_ context.Context, order domain.PurchaseOrder) error {
	defer s.lock()()
	existing, ok := s.st.purchaseOrders[order.PurchaseOrderID]
	if !ok {
		return apperrors.ErrNotFound
	}
	existing.Status = order.Status
	existing.ReceivedAt = order.ReceivedAt
	existing.LastUpdatedAt = order.LastUpdatedAt
	existing.LastUpdatedBy = order.LastUpdatedBy
	s.st.purchaseOrders[order.PurchaseOrderID] = clonePurchaseOrder(existing)
	return nil
}
