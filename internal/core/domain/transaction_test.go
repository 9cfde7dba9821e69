package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		detail domain.TransactionDetail
		profit bool
		cash   bool
	}{
		{domain.DetailSale, true, true},
		{domain.DetailOwnerInvestment, false, true},
		{domain.DetailProductPurchase, false, true},
		{domain.DetailRent, true, true},
		{domain.DetailElectricity, true, true},
		{domain.DetailMachinePurchase, true, true},
		{domain.DetailOther, true, true},
		{domain.DetailProfitWithdrawal, true, true},
		{domain.DetailMoneyInvestment, false, true},
		{domain.DetailCostOfGoodsSold, true, false},
		{domain.DetailCOGSReversal, true, false},
		{domain.DetailTransfer, false, true},
	}

	assert.Len(t, domain.DetailsWhere(func(domain.DetailClassification) bool { return true }), len(tests))
	for _, tt := range tests {
		t.Run(string(tt.detail), func(t *testing.T) {
			c := domain.Classify(tt.detail)
			assert.Equal(t, tt.profit, c.AffectsProfit)
			assert.Equal(t, tt.cash, c.AffectsCash)
			assert.True(t, tt.detail.IsValid())
		})
	}

	assert.False(t, domain.TransactionDetail("BOGUS").IsValid())
	assert.Equal(t, domain.DetailClassification{}, domain.Classify("BOGUS"))
}

func TestPaymentMethod_Wallet(t *testing.T) {
	assert.Equal(t, domain.WalletCash, domain.PaymentCash.Wallet())
	for _, m := range []domain.PaymentMethod{domain.PaymentPix, domain.PaymentDebitCard, domain.PaymentCreditCard, domain.PaymentBankTransfer} {
		assert.Equal(t, domain.WalletBank, m.Wallet(), m)
		assert.True(t, m.IsMonetary())
	}
	assert.True(t, domain.PaymentStoreCredit.IsValid())
	assert.False(t, domain.PaymentStoreCredit.IsMonetary())
	assert.False(t, domain.PaymentMethod("CHEQUE").IsValid())
}

func TestTransactionFilter_Matches(t *testing.T) {
	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	sale := domain.Transaction{Date: jan, Amount: decimal.NewFromInt(100), Detail: domain.DetailSale, WalletDestination: domain.WalletCash}
	cogs := domain.Transaction{Date: jan, Amount: decimal.NewFromInt(-40), Detail: domain.DetailCostOfGoodsSold, WalletDestination: domain.WalletBank}
	rent := domain.Transaction{Date: feb, Amount: decimal.NewFromInt(-30), Detail: domain.DetailRent, WalletDestination: domain.WalletBank}
	purchase := domain.Transaction{Date: jan, Amount: decimal.NewFromInt(-200), Detail: domain.DetailProductPurchase, WalletDestination: domain.WalletBank}

	t.Run("profit", func(t *testing.T) {
		f := domain.ProfitFilter()
		assert.True(t, f.Matches(sale))
		assert.True(t, f.Matches(cogs))
		assert.True(t, f.Matches(rent))
		assert.False(t, f.Matches(purchase))
	})

	t.Run("operational expenses exclude cogs and inflows", func(t *testing.T) {
		f := domain.OperationalExpenseFilter()
		assert.False(t, f.Matches(sale))
		assert.False(t, f.Matches(cogs))
		assert.True(t, f.Matches(rent))
	})

	t.Run("wallet", func(t *testing.T) {
		f := domain.WalletFilter(domain.WalletBank)
		assert.False(t, f.Matches(sale))
		assert.False(t, f.Matches(cogs))
		assert.True(t, f.Matches(purchase))
	})

	t.Run("range is half open", func(t *testing.T) {
		f := domain.ProfitFilter().Between(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), feb)
		assert.True(t, f.Matches(sale))
		assert.False(t, f.Matches(rent))
	})
}

func TestTransactionFilter_ResolvedDetails(t *testing.T) {
	assert.ElementsMatch(t,
		[]domain.TransactionDetail{domain.DetailSale, domain.DetailRent, domain.DetailElectricity, domain.DetailMachinePurchase, domain.DetailOther, domain.DetailProfitWithdrawal, domain.DetailCOGSReversal},
		domain.OperationalExpenseFilter().ResolvedDetails(),
	)
	assert.ElementsMatch(t,
		[]domain.TransactionDetail{domain.DetailCostOfGoodsSold, domain.DetailCOGSReversal},
		domain.DetailsWhere(func(c domain.DetailClassification) bool { return c.AffectsProfit && !c.AffectsCash }),
	)
}

func TestManualEntryDetails(t *testing.T) {
	for d, sign := range domain.ManualEntryDetails {
		assert.True(t, domain.Classify(d).AffectsCash, d)
		assert.Contains(t, []domain.AmountSign{domain.PositiveOnly, domain.NegativeOnly}, sign, d)
	}
	assert.Equal(t, domain.PositiveOnly, domain.ManualEntryDetails[domain.DetailOwnerInvestment])
	assert.Equal(t, domain.NegativeOnly, domain.ManualEntryDetails[domain.DetailRent])
	assert.NotContains(t, domain.ManualEntryDetails, domain.DetailSale)
	assert.NotContains(t, domain.ManualEntryDetails, domain.DetailCostOfGoodsSold)
}

func TestTransaction_IsVisible(t *testing.T) {
	assert.False(t, domain.Transaction{Detail: domain.DetailCostOfGoodsSold}.IsVisible())
	assert.True(t, domain.Transaction{Detail: domain.DetailCOGSReversal}.IsVisible())
	assert.True(t, domain.Transaction{Detail: domain.DetailSale}.IsVisible())
}
