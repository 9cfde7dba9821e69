package mapping

import (
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to a model InventoryItem
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		InventoryItemID:   d.InventoryItemID,
		InventoryID:       d.InventoryID,
		ProductVariantID:  d.ProductVariantID,
		Quantity:          d.Quantity,
		AverageCost:       d.AverageCost,
		LastPurchasePrice: d.LastPurchasePrice,
		LastPurchaseDate:  d.LastPurchaseDate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts a model InventoryItem to a domain InventoryItem
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		InventoryItemID:   m.InventoryItemID,
		InventoryID:       m.InventoryID,
		ProductVariantID:  m.ProductVariantID,
		Quantity:          m.Quantity,
		AverageCost:       m.AverageCost,
		LastPurchasePrice: m.LastPurchasePrice,
		LastPurchaseDate:  m.LastPurchaseDate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchaseOrder converts a domain PurchaseOrder header to a model PurchaseOrder
func ToModelPurchaseOrder(d domain.PurchaseOrder) models.PurchaseOrder {
	return models.PurchaseOrder{
		PurchaseOrderID: d.PurchaseOrderID,
		InventoryID:     d.InventoryID,
		UserID:          d.UserID,
		Supplier:        d.Supplier,
		Status:          string(d.Status),
		PaymentMethod:   string(d.PaymentMethod),
		TotalAmount:     d.TotalAmount,
		OrderedAt:       d.OrderedAt,
		ReceivedAt:      d.ReceivedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToModelPurchaseOrderItems converts order lines, numbering them in order.
func ToModelPurchaseOrderItems(d domain.PurchaseOrder) []models.PurchaseOrderItem {
	ms := make([]models.PurchaseOrderItem, len(d.Items))
	for i, it := range d.Items {
		ms[i] = models.PurchaseOrderItem{
			PurchaseOrderItemID: it.PurchaseOrderItemID,
			PurchaseOrderID:     d.PurchaseOrderID,
			Position:            i,
			ProductVariantID:    it.ProductVariantID,
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
		}
	}
	return ms
}

// ToDomainPurchaseOrder assembles a domain PurchaseOrder from its header and lines
func ToDomainPurchaseOrder(m models.PurchaseOrder, items []models.PurchaseOrderItem) domain.PurchaseOrder {
	d := domain.PurchaseOrder{
		PurchaseOrderID: m.PurchaseOrderID,
		InventoryID:     m.InventoryID,
		UserID:          m.UserID,
		Supplier:        m.Supplier,
		Status:          domain.PurchaseOrderStatus(m.Status),
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		TotalAmount:     m.TotalAmount,
		OrderedAt:       m.OrderedAt,
		ReceivedAt:      m.ReceivedAt,
		Items:           make([]domain.PurchaseOrderItem, len(items)),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	for i, it := range items {
		d.Items[i] = domain.PurchaseOrderItem{
			PurchaseOrderItemID: it.PurchaseOrderItemID,
			PurchaseOrderID:     it.PurchaseOrderID,
			ProductVariantID:    it.ProductVariantID,
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
		}
	}
	return d
}
