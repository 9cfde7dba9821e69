package mapping

import (
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/models"
)

// ToModelSale converts a domain Sale header to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:      d.SaleID,
		InventoryID: d.InventoryID,
		UserID:      d.UserID,
		Date:        d.Date,
		TotalAmount: d.TotalAmount,
		Status:      models.SaleStatus(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToModelSaleItems converts the lines of a sale, numbering them in order.
func ToModelSaleItems(d domain.Sale) []models.SaleItem {
	ms := make([]models.SaleItem, len(d.Items))
	for i, it := range d.Items {
		ms[i] = models.SaleItem{
			SaleItemID:        it.SaleItemID,
			SaleID:            d.SaleID,
			Position:          i,
			ProductVariantID:  it.ProductVariantID,
			Quantity:          it.Quantity,
			CancelledQuantity: it.CancelledQuantity,
			ReturnedQuantity:  it.ReturnedQuantity,
			UnitPrice:         it.UnitPrice,
			CostBasisAtSale:   it.CostBasisAtSale,
			UnitProfit:        it.UnitProfit,
			TotalItemPrice:    it.TotalItemPrice,
			TotalItemProfit:   it.TotalItemProfit,
			SoldAt:            it.SoldAt,
		}
	}
	return ms
}

// ToModelSalePayments converts the tenders of a sale, numbering them in order.
func ToModelSalePayments(d domain.Sale) []models.SalePayment {
	ms := make([]models.SalePayment, len(d.Payments))
	for i, p := range d.Payments {
		ms[i] = models.SalePayment{
			SalePaymentID:  p.SalePaymentID,
			SaleID:         d.SaleID,
			Position:       i,
			Method:         string(p.Method),
			Amount:         p.Amount,
			RefundedAmount: p.RefundedAmount,
		}
	}
	return ms
}

// ToDomainSaleItem converts a model SaleItem to a domain SaleItem
func ToDomainSaleItem(m models.SaleItem) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID:        m.SaleItemID,
		SaleID:            m.SaleID,
		ProductVariantID:  m.ProductVariantID,
		Quantity:          m.Quantity,
		CancelledQuantity: m.CancelledQuantity,
		ReturnedQuantity:  m.ReturnedQuantity,
		UnitPrice:         m.UnitPrice,
		CostBasisAtSale:   m.CostBasisAtSale,
		UnitProfit:        m.UnitProfit,
		TotalItemPrice:    m.TotalItemPrice,
		TotalItemProfit:   m.TotalItemProfit,
		SoldAt:            m.SoldAt,
	}
}

// ToDomainSale assembles a domain Sale from its header, lines and tenders.
// Lines and tenders are expected in position order.
func ToDomainSale(m models.Sale, items []models.SaleItem, payments []models.SalePayment) domain.Sale {
	d := domain.Sale{
		SaleID:      m.SaleID,
		InventoryID: m.InventoryID,
		UserID:      m.UserID,
		Date:        m.Date,
		TotalAmount: m.TotalAmount,
		Status:      domain.SaleStatus(m.Status),
		Items:       make([]domain.SaleItem, len(items)),
		Payments:    make([]domain.SalePayment, len(payments)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for i, it := range items {
		d.Items[i] = ToDomainSaleItem(it)
	}
	for i, p := range payments {
		d.Payments[i] = domain.SalePayment{
			SalePaymentID:  p.SalePaymentID,
			SaleID:         p.SaleID,
			Method:         domain.PaymentMethod(p.Method),
			Amount:         p.Amount,
			RefundedAmount: p.RefundedAmount,
		}
	}
	return d
}

// ToModelProductExchange converts a domain ProductExchange to a model ProductExchange
func ToModelProductExchange(d domain.ProductExchange) models.ProductExchange {
	m := models.ProductExchange{
		ExchangeID:       d.ExchangeID,
		UserID:           d.UserID,
		OriginalSaleID:   d.OriginalSaleID,
		NewSaleID:        d.NewSaleID,
		ReturnedAmount:   d.ReturnedAmount,
		NewSaleAmount:    d.NewSaleAmount,
		AmountDifference: d.AmountDifference,
		HasRefund:        d.HasRefund,
		RefundAmount:     d.RefundAmount,
		Date:             d.Date,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.RefundPaymentMethod != nil {
		m.RefundPaymentMethod = nullString(string(*d.RefundPaymentMethod))
	}
	return m
}

// ToDomainProductExchange converts a model ProductExchange to a domain ProductExchange
func ToDomainProductExchange(m models.ProductExchange) domain.ProductExchange {
	d := domain.ProductExchange{
		ExchangeID:       m.ExchangeID,
		UserID:           m.UserID,
		OriginalSaleID:   m.OriginalSaleID,
		NewSaleID:        m.NewSaleID,
		ReturnedAmount:   m.ReturnedAmount,
		NewSaleAmount:    m.NewSaleAmount,
		AmountDifference: m.AmountDifference,
		HasRefund:        m.HasRefund,
		RefundAmount:     m.RefundAmount,
		Date:             m.Date,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.RefundPaymentMethod.Valid {
		method := domain.PaymentMethod(m.RefundPaymentMethod.String)
		d.RefundPaymentMethod = &method
	}
	return d
}
