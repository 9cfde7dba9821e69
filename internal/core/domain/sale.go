package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle flag of a sale.
type SaleStatus string

const (
	SaleCompleted          SaleStatus = "COMPLETED"
	SaleCancelled          SaleStatus = "CANCELLED"
	SalePartiallyCancelled SaleStatus = "PARTIALLY_CANCELLED"
	SaleExchanged          SaleStatus = "EXCHANGED"
)

// IsTerminal reports whether no further transition is allowed.
func (s SaleStatus) IsTerminal() bool {
	return s == SaleCancelled || s == SaleExchanged
}

// CanCancel reports whether items of a sale in this status may be cancelled.
func (s SaleStatus) CanCancel() bool {
	return s == SaleCompleted || s == SalePartiallyCancelled
}

// CanExchange reports whether a sale in this status may be exchanged.
func (s SaleStatus) CanExchange() bool {
	return s == SaleCompleted || s == SalePartiallyCancelled
}

// Sale is the header of a sale.
type Sale struct {
	SaleID      string          `json:"saleID"`
	InventoryID string          `json:"inventoryID"`
	UserID      string          `json:"userID"`
	Date        time.Time       `json:"date"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      SaleStatus      `json:"status"`
	Items       []SaleItem      `json:"items"`
	Payments    []SalePayment   `json:"payments"`
	AuditFields
}

// SaleItem is a sold line. CostBasisAtSale is frozen when the sale is made
// and never changes afterwards.
type SaleItem struct {
	SaleItemID        string          `json:"saleItemID"`
	SaleID            string          `json:"saleID"`
	ProductVariantID  string          `json:"productVariantID"`
	Quantity          int             `json:"quantity"`
	CancelledQuantity int             `json:"cancelledQuantity"`
	ReturnedQuantity  int             `json:"returnedQuantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	CostBasisAtSale   decimal.Decimal `json:"costBasisAtSale"`
	UnitProfit        decimal.Decimal `json:"unitProfit"`
	TotalItemPrice    decimal.Decimal `json:"totalItemPrice"`
	TotalItemProfit   decimal.Decimal `json:"totalItemProfit"`
	SoldAt            time.Time       `json:"soldAt"`
}

// NewSaleItem prices a line against a frozen cost basis.
func NewSaleItem(id, saleID, variantID string, qty int, unitPrice, costBasis decimal.Decimal, soldAt time.Time) SaleItem {
	q := decimal.NewFromInt(int64(qty))
	unitProfit := unitPrice.Sub(costBasis)
	return SaleItem{
		SaleItemID:       id,
		SaleID:           saleID,
		ProductVariantID: variantID,
		Quantity:         qty,
		UnitPrice:        unitPrice,
		CostBasisAtSale:  costBasis,
		UnitProfit:       unitProfit,
		TotalItemPrice:   unitPrice.Mul(q),
		TotalItemProfit:  unitProfit.Mul(q),
		SoldAt:           soldAt,
	}
}

// ActiveQuantity is what is still sold: neither cancelled nor returned.
func (it SaleItem) ActiveQuantity() int {
	return it.Quantity - it.CancelledQuantity - it.ReturnedQuantity
}

// ActiveProfit is the margin of the still-sold units at the frozen cost basis.
func (it SaleItem) ActiveProfit() decimal.Decimal {
	return it.UnitProfit.Mul(decimal.NewFromInt(int64(it.ActiveQuantity())))
}

// SalePayment is one tender used to pay a sale. RefundedAmount tracks how
// much of it cancellations have already given back.
type SalePayment struct {
	SalePaymentID  string          `json:"salePaymentID"`
	SaleID         string          `json:"saleID"`
	Method         PaymentMethod   `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	RefundedAmount decimal.Decimal `json:"refundedAmount"`
}

// Refundable is what is left of the payment to give back.
func (p SalePayment) Refundable() decimal.Decimal {
	return p.Amount.Sub(p.RefundedAmount)
}

// ItemsTotal sums unitPrice*quantity over the lines.
func ItemsTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalItemPrice)
	}
	return total
}

// PaymentsTotal sums the payment amounts.
func PaymentsTotal(payments []SalePayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// FindItem returns the line with the given ID.
func (s *Sale) FindItem(saleItemID string) (*SaleItem, bool) {
	for i := range s.Items {
		if s.Items[i].SaleItemID == saleItemID {
			return &s.Items[i], true
		}
	}
	return nil, false
}

// HasActiveItems reports whether any unit is still sold.
func (s *Sale) HasActiveItems() bool {
	for _, it := range s.Items {
		if it.ActiveQuantity() > 0 {
			return true
		}
	}
	return false
}

// HasCreditPayment reports whether part of the sale was paid with store credit.
func (s *Sale) HasCreditPayment() bool {
	for _, p := range s.Payments {
		if !p.Method.IsMonetary() {
			return true
		}
	}
	return false
}

// FirstMonetaryMethod returns the first payment method that moved money.
func (s *Sale) FirstMonetaryMethod() (PaymentMethod, bool) {
	for _, p := range s.Payments {
		if p.Method.IsMonetary() {
			return p.Method, true
		}
	}
	return "", false
}
