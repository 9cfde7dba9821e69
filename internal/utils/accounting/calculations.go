// Package accounting holds the pure profit and cash-flow calculations used
// when transactions and sale items are already loaded in memory. Each
// function has a query-backed twin in the services that must agree exactly.
package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumWhere sums the amounts of the transactions selected by filter.
func SumWhere(txns []domain.Transaction, filter domain.TransactionFilter) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		if filter.Matches(t) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// NetProfit is the sum of every profit-affecting entry.
func NetProfit(txns []domain.Transaction) decimal.Decimal {
	return SumWhere(txns, domain.ProfitFilter())
}

// OperationalExpenses is the signed sum of profit-affecting outflows other
// than COGS. The result is zero or negative.
func OperationalExpenses(txns []domain.Transaction) decimal.Decimal {
	return SumWhere(txns, domain.OperationalExpenseFilter())
}

// GrossProfit is the margin recorded on the sold lines at their frozen cost basis.
func GrossProfit(items []domain.SaleItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalItemProfit)
	}
	return sum
}

// GrossProfitBetween is GrossProfit restricted to lines sold in [from, to).
func GrossProfitBetween(items []domain.SaleItem, from, to time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		if !it.SoldAt.Before(from) && it.SoldAt.Before(to) {
			sum = sum.Add(it.TotalItemProfit)
		}
	}
	return sum
}

// CashIncome sums the cash-affecting inflows.
func CashIncome(txns []domain.Transaction) decimal.Decimal {
	f := domain.CashFilter()
	f.Sign = domain.PositiveOnly
	return SumWhere(txns, f)
}

// CashExpense is the absolute value of the cash-affecting outflows.
func CashExpense(txns []domain.Transaction) decimal.Decimal {
	f := domain.CashFilter()
	f.Sign = domain.NegativeOnly
	return SumWhere(txns, f).Abs()
}

// NetCashFlow sums every cash-affecting entry.
func NetCashFlow(txns []domain.Transaction) decimal.Decimal {
	return SumWhere(txns, domain.CashFilter())
}

// WalletBalances folds the cash-affecting entries into per-wallet balances.
func WalletBalances(txns []domain.Transaction) domain.WalletBalances {
	return ApplyToBalances(domain.NewWalletBalances(decimal.Zero, decimal.Zero), txns)
}

// ApplyToBalances adds the cash-affecting entries to start.
func ApplyToBalances(start domain.WalletBalances, txns []domain.Transaction) domain.WalletBalances {
	b := start
	for _, t := range txns {
		if t.AffectsCash() {
			b = b.Add(t.WalletDestination, t.Amount)
		}
	}
	return b
}

// VisibleTransactions drops the COGS rows the owner never sees.
func VisibleTransactions(txns []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.IsVisible() {
			out = append(out, t)
		}
	}
	return out
}

// DistinctYearMonths returns the months holding any entry, ascending.
func DistinctYearMonths(txns []domain.Transaction) []domain.YearMonth {
	seen := make(map[domain.YearMonth]struct{})
	months := make([]domain.YearMonth, 0)
	for _, t := range txns {
		ym := domain.YearMonthOf(t.Date)
		if _, ok := seen[ym]; ok {
			continue
		}
		seen[ym] = struct{}{}
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// InMonth returns the entries dated inside ym.
func InMonth(txns []domain.Transaction, ym domain.YearMonth) []domain.Transaction {
	f := domain.TransactionFilter{}.Between(ym.Start(), ym.End())
	out := make([]domain.Transaction, 0)
	for _, t := range txns {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// BuildMonthlyCashFlow builds the sparse monthly cash series, carrying the
// cumulative wallet balances forward month by month.
func BuildMonthlyCashFlow(txns []domain.Transaction, items []domain.SaleItem) []domain.MonthlyCashFlow {
	months := DistinctYearMonths(txns)
	out := make([]domain.MonthlyCashFlow, 0, len(months))
	running := domain.NewWalletBalances(decimal.Zero, decimal.Zero)
	for _, ym := range months {
		monthTxns := InMonth(txns, ym)
		opening := running
		running = ApplyToBalances(running, monthTxns)
		out = append(out, cashFlowMonth(ym, opening, running, monthTxns, items))
	}
	return out
}

func cashFlowMonth(ym domain.YearMonth, opening, closing domain.WalletBalances, monthTxns []domain.Transaction, items []domain.SaleItem) domain.MonthlyCashFlow {
	return domain.MonthlyCashFlow{
		YearMonth:       ym,
		OpeningBalances: opening,
		ClosingBalances: closing,
		Income:          CashIncome(monthTxns),
		Expense:         CashExpense(monthTxns),
		NetCashFlow:     NetCashFlow(monthTxns),
		GrossProfit:     GrossProfitBetween(items, ym.Start(), ym.End()),
		NetProfit:       NetProfit(monthTxns),
		Transactions:    VisibleTransactions(monthTxns),
	}
}

// BuildMonthlyProfit builds the sparse monthly profit series.
func BuildMonthlyProfit(txns []domain.Transaction, items []domain.SaleItem) []domain.MonthlyProfit {
	months := DistinctYearMonths(txns)
	out := make([]domain.MonthlyProfit, 0, len(months))
	running := domain.NewWalletBalances(decimal.Zero, decimal.Zero)
	for _, ym := range months {
		monthTxns := InMonth(txns, ym)
		running = ApplyToBalances(running, monthTxns)
		out = append(out, profitMonth(ym, running, monthTxns, items))
	}
	return out
}

func profitMonth(ym domain.YearMonth, closing domain.WalletBalances, monthTxns []domain.Transaction, items []domain.SaleItem) domain.MonthlyProfit {
	return domain.MonthlyProfit{
		YearMonth:           ym,
		ClosingBalances:     closing,
		GrossProfit:         GrossProfitBetween(items, ym.Start(), ym.End()),
		NetProfit:           NetProfit(monthTxns),
		OperationalExpenses: OperationalExpenses(monthTxns),
		Transactions:        VisibleTransactions(monthTxns),
	}
}
