package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewSaleItem(t *testing.T) {
	soldAt := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	it := domain.NewSaleItem("i1", "s1", "v1", 3, decimal.NewFromInt(100), decimal.NewFromInt(65), soldAt)

	assert.True(t, decimal.NewFromInt(35).Equal(it.UnitProfit))
	assert.True(t, decimal.NewFromInt(300).Equal(it.TotalItemPrice))
	assert.True(t, decimal.NewFromInt(105).Equal(it.TotalItemProfit))
	assert.Equal(t, 3, it.ActiveQuantity())

	it.CancelledQuantity = 1
	it.ReturnedQuantity = 1
	assert.Equal(t, 1, it.ActiveQuantity())
	assert.True(t, decimal.NewFromInt(35).Equal(it.ActiveProfit()))
}

func TestSaleStatus_Transitions(t *testing.T) {
	tests := []struct {
		status   domain.SaleStatus
		cancel   bool
		exchange bool
	}{
		{domain.SaleCompleted, true, true},
		{domain.SalePartiallyCancelled, true, true},
		{domain.SaleCancelled, false, false},
		{domain.SaleExchanged, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.cancel, tt.status.CanCancel())
			assert.Equal(t, tt.exchange, tt.status.CanExchange())
			assert.Equal(t, !tt.cancel, tt.status.IsTerminal())
		})
	}
}

func TestSale_Totals(t *testing.T) {
	s := domain.Sale{
		Items: []domain.SaleItem{
			domain.NewSaleItem("a", "s", "v1", 2, decimal.NewFromInt(10), decimal.NewFromInt(4), time.Time{}),
			domain.NewSaleItem("b", "s", "v2", 1, decimal.NewFromInt(5), decimal.NewFromInt(1), time.Time{}),
		},
		Payments: []domain.SalePayment{
			{Method: domain.PaymentCash, Amount: decimal.NewFromInt(20)},
			{Method: domain.PaymentPix, Amount: decimal.NewFromInt(5)},
		},
	}
	assert.True(t, decimal.NewFromInt(25).Equal(domain.ItemsTotal(s.Items)))
	assert.True(t, decimal.NewFromInt(25).Equal(domain.PaymentsTotal(s.Payments)))

	item, ok := s.FindItem("b")
	assert.True(t, ok)
	assert.Equal(t, "v2", item.ProductVariantID)
	_, ok = s.FindItem("zz")
	assert.False(t, ok)
	assert.True(t, s.HasActiveItems())
	assert.False(t, s.HasCreditPayment())
	m, ok := s.FirstMonetaryMethod()
	assert.True(t, ok)
	assert.Equal(t, domain.PaymentCash, m)
}

func TestSale_CreditPayments(t *testing.T) {
	s := domain.Sale{Payments: []domain.SalePayment{
		{Method: domain.PaymentStoreCredit, Amount: decimal.NewFromInt(40)},
		{Method: domain.PaymentPix, Amount: decimal.NewFromInt(60)},
	}}
	assert.True(t, s.HasCreditPayment())
	m, ok := s.FirstMonetaryMethod()
	assert.True(t, ok)
	assert.Equal(t, domain.PaymentPix, m)

	s.Payments = s.Payments[:1]
	_, ok = s.FirstMonetaryMethod()
	assert.False(t, ok)
}

func TestYearMonth(t *testing.T) {
	ym, err := domain.ParseYearMonth("2024-02")
	assert.NoError(t, err)
	assert.Equal(t, "2024-02", ym.String())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ym.End())
	assert.True(t, ym.Before(domain.YearMonth{Year: 2024, Month: time.March}))
	assert.False(t, ym.Before(domain.YearMonth{Year: 2023, Month: time.December}))

	_, err = domain.ParseYearMonth("2024/02")
	assert.Error(t, err)

	b := domain.NewWalletBalances(decimal.NewFromInt(10), decimal.NewFromInt(5)).Add(domain.WalletCash, decimal.NewFromInt(-2))
	assert.True(t, decimal.NewFromInt(13).Equal(b.Total))
	assert.True(t, decimal.NewFromInt(3).Equal(b.Of(domain.WalletCash)))
}
