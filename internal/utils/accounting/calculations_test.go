package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func txn(at time.Time, amount int64, detail domain.TransactionDetail, wallet domain.WalletType) domain.Transaction {
	return domain.Transaction{Date: at, Amount: decimal.NewFromInt(amount), Detail: detail, WalletDestination: wallet}
}

func ledger() []domain.Transaction {
	return []domain.Transaction{
		txn(day(2024, 1, 2), 1000, domain.DetailOwnerInvestment, domain.WalletBank),
		txn(day(2024, 1, 3), -500, domain.DetailProductPurchase, domain.WalletBank),
		txn(day(2024, 1, 10), 150, domain.DetailSale, domain.WalletCash),
		txn(day(2024, 1, 10), -100, domain.DetailCostOfGoodsSold, domain.WalletBank),
		txn(day(2024, 1, 20), -40, domain.DetailRent, domain.WalletBank),
		// no entries in February
		txn(day(2024, 3, 5), 200, domain.DetailSale, domain.WalletBank),
		txn(day(2024, 3, 5), -120, domain.DetailCostOfGoodsSold, domain.WalletBank),
		txn(day(2024, 3, 6), 50, domain.DetailCOGSReversal, domain.WalletBank),
		txn(day(2024, 3, 7), -30, domain.DetailProfitWithdrawal, domain.WalletCash),
		txn(day(2024, 4, 1), -20, domain.DetailCostOfGoodsSold, domain.WalletBank),
	}
}

func saleItems() []domain.SaleItem {
	return []domain.SaleItem{
		domain.NewSaleItem("a", "s1", "v1", 1, decimal.NewFromInt(150), decimal.NewFromInt(100), day(2024, 1, 10)),
		domain.NewSaleItem("b", "s2", "v2", 2, decimal.NewFromInt(100), decimal.NewFromInt(60), day(2024, 3, 5)),
	}
}

func TestProfitFigures(t *testing.T) {
	txns := ledger()

	// 150 - 100 - 40 + 200 - 120 + 50 - 30 - 20
	assert.Equal(t, "90", accounting.NetProfit(txns).String())
	// rent, withdrawal
	assert.Equal(t, "-70", accounting.OperationalExpenses(txns).String())
	assert.Equal(t, "130", accounting.GrossProfit(saleItems()).String())
	assert.Equal(t, "80", accounting.GrossProfitBetween(saleItems(), day(2024, 3, 1), day(2024, 4, 1)).String())
}

func TestNetProfit_PathsAgree(t *testing.T) {
	txns := ledger()
	incremental := decimal.Zero
	for _, month := range accounting.BuildMonthlyProfit(txns, nil) {
		incremental = incremental.Add(month.NetProfit)
	}
	assert.True(t, accounting.NetProfit(txns).Equal(incremental))
}

func TestCashFigures(t *testing.T) {
	txns := ledger()

	assert.Equal(t, "1350", accounting.CashIncome(txns).String())
	assert.Equal(t, "570", accounting.CashExpense(txns).String())
	assert.Equal(t, "780", accounting.NetCashFlow(txns).String())

	b := accounting.WalletBalances(txns)
	assert.Equal(t, "660", b.Bank.String())
	assert.Equal(t, "120", b.Cash.String())
	assert.Equal(t, "780", b.Total.String())
}

func TestBuildMonthlyCashFlow(t *testing.T) {
	txns := ledger()
	series := accounting.BuildMonthlyCashFlow(txns, saleItems())

	require.Len(t, series, 3)
	assert.Equal(t, "2024-01", series[0].YearMonth.String())
	assert.Equal(t, "2024-03", series[1].YearMonth.String())
	assert.Equal(t, "2024-04", series[2].YearMonth.String())

	for i := 1; i < len(series); i++ {
		assert.True(t, series[i-1].ClosingBalances.Total.Equal(series[i].OpeningBalances.Total))
		assert.True(t, series[i-1].ClosingBalances.Bank.Equal(series[i].OpeningBalances.Bank))
		assert.True(t, series[i-1].ClosingBalances.Cash.Equal(series[i].OpeningBalances.Cash))
	}

	jan := series[0]
	assert.Equal(t, "610", jan.ClosingBalances.Total.String())
	assert.Equal(t, "50", jan.GrossProfit.String())
	assert.Equal(t, "10", jan.NetProfit.String())
	assert.Len(t, jan.Transactions, 4, "COGS row is hidden")

	// April holds only a COGS row: zero flow, balances carried over.
	apr := series[2]
	assert.True(t, apr.NetCashFlow.IsZero())
	assert.True(t, apr.Income.IsZero())
	assert.True(t, apr.Expense.IsZero())
	assert.True(t, apr.OpeningBalances.Total.Equal(apr.ClosingBalances.Total))
	assert.Empty(t, apr.Transactions)
}

func TestBuildMonthlyProfit_OperationalExpensesDistinctFromNetProfit(t *testing.T) {
	series := accounting.BuildMonthlyProfit(ledger(), saleItems())
	require.Len(t, series, 3)

	mar := series[1]
	assert.Equal(t, "100", mar.NetProfit.String())
	assert.Equal(t, "-30", mar.OperationalExpenses.String())
}

func TestDistinctYearMonths_Empty(t *testing.T) {
	assert.Empty(t, accounting.DistinctYearMonths(nil))
	assert.Empty(t, accounting.BuildMonthlyCashFlow(nil, nil))
}
