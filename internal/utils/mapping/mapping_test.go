package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_EmptyPaymentMethodIsNull(t *testing.T) {
	cogs := domain.Transaction{
		TransactionID:     "t1",
		Amount:            decimal.RequireFromString("-65"),
		WalletDestination: domain.WalletBank,
		Detail:            domain.DetailCostOfGoodsSold,
	}

	m := mapping.ToModelTransaction(cogs)
	assert.False(t, m.PaymentMethod.Valid)

	back := mapping.ToDomainTransaction(m)
	assert.Equal(t, domain.PaymentMethod(""), back.PaymentMethod)
	assert.Equal(t, cogs.Detail, back.Detail)
	assert.True(t, cogs.Amount.Equal(back.Amount))

	sale := cogs
	sale.PaymentMethod = domain.PaymentPix
	assert.Equal(t, "PIX", mapping.ToModelTransaction(sale).PaymentMethod.String)
}

func TestSale_KeepsLineAndTenderOrder(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sale := domain.Sale{
		SaleID: "s1",
		Status: domain.SalePartiallyCancelled,
		Items: []domain.SaleItem{
			domain.NewSaleItem("i1", "s1", "v1", 2, decimal.NewFromInt(100), decimal.NewFromInt(65), now),
			domain.NewSaleItem("i2", "s1", "v2", 1, decimal.NewFromInt(40), decimal.NewFromInt(20), now),
		},
		Payments: []domain.SalePayment{
			{SalePaymentID: "p1", Method: domain.PaymentCash, Amount: decimal.NewFromInt(40)},
			{SalePaymentID: "p2", Method: domain.PaymentPix, Amount: decimal.NewFromInt(200), RefundedAmount: decimal.NewFromInt(10)},
		},
	}

	items := mapping.ToModelSaleItems(sale)
	payments := mapping.ToModelSalePayments(sale)
	assert.Equal(t, 1, items[1].Position)
	assert.Equal(t, "s1", payments[0].SaleID)

	back := mapping.ToDomainSale(mapping.ToModelSale(sale), items, payments)
	assert.Equal(t, domain.SalePartiallyCancelled, back.Status)
	assert.Equal(t, "i2", back.Items[1].SaleItemID)
	assert.Equal(t, domain.PaymentPix, back.Payments[1].Method)
	assert.True(t, back.Payments[1].Refundable().Equal(decimal.NewFromInt(190)))
}

func TestProductExchange_RefundMethod(t *testing.T) {
	cash := domain.PaymentCash
	withRefund := domain.ProductExchange{ExchangeID: "e1", HasRefund: true, RefundPaymentMethod: &cash}

	m := mapping.ToModelProductExchange(withRefund)
	assert.True(t, m.RefundPaymentMethod.Valid)
	back := mapping.ToDomainProductExchange(m)
	if assert.NotNil(t, back.RefundPaymentMethod) {
		assert.Equal(t, domain.PaymentCash, *back.RefundPaymentMethod)
	}

	noRefund := mapping.ToDomainProductExchange(mapping.ToModelProductExchange(domain.ProductExchange{ExchangeID: "e2"}))
	assert.Nil(t, noRefund.RefundPaymentMethod)
}
