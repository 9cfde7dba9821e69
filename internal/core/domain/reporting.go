package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// YearMonth identifies a calendar month. Months are bucketed in UTC.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month" swaggertype:"integer"`
}

// YearMonthOf returns the month t falls in.
func YearMonthOf(t time.Time) YearMonth {
	u := t.UTC()
	return YearMonth{Year: u.Year(), Month: u.Month()}
}

// ParseYearMonth parses "2006-01".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Start is the first instant of the month.
func (ym YearMonth) Start() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant of the following month (exclusive bound).
func (ym YearMonth) End() time.Time {
	return ym.Start().AddDate(0, 1, 0)
}

// Before reports whether ym is earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// WalletBalances holds the cash position per wallet.
type WalletBalances struct {
	Bank  decimal.Decimal `json:"bank"`
	Cash  decimal.Decimal `json:"cash"`
	Total decimal.Decimal `json:"total"`
}

// NewWalletBalances fills Total from the two wallets.
func NewWalletBalances(bank, cash decimal.Decimal) WalletBalances {
	return WalletBalances{Bank: bank, Cash: cash, Total: bank.Add(cash)}
}

// Of returns the balance of one wallet.
func (b WalletBalances) Of(w WalletType) decimal.Decimal {
	if w == WalletCash {
		return b.Cash
	}
	return b.Bank
}

// Add applies a signed amount to a wallet.
func (b WalletBalances) Add(w WalletType, amount decimal.Decimal) WalletBalances {
	if w == WalletCash {
		return NewWalletBalances(b.Bank, b.Cash.Add(amount))
	}
	return NewWalletBalances(b.Bank.Add(amount), b.Cash)
}

// CashFlowSummary is the all-time cash view.
type CashFlowSummary struct {
	Balances WalletBalances  `json:"balances"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	NetFlow  decimal.Decimal `json:"netFlow"`
}

// ProfitSummary is the all-time profit view.
type ProfitSummary struct {
	Balances            WalletBalances  `json:"balances"`
	GrossProfit         decimal.Decimal `json:"grossProfit"`
	NetProfit           decimal.Decimal `json:"netProfit"`
	OperationalExpenses decimal.Decimal `json:"operationalExpenses"`
}

// MonthlyCashFlow is the cash view of one month. Closing balances are
// cumulative from the first transaction.
type MonthlyCashFlow struct {
	YearMonth       YearMonth       `json:"yearMonth"`
	OpeningBalances WalletBalances  `json:"openingBalances"`
	ClosingBalances WalletBalances  `json:"closingBalances"`
	Income          decimal.Decimal `json:"income"`
	Expense         decimal.Decimal `json:"expense"`
	NetCashFlow     decimal.Decimal `json:"netCashFlow"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	Transactions    []Transaction   `json:"transactions"`
}

// MonthlyProfit is the profit view of one month.
type MonthlyProfit struct {
	YearMonth           YearMonth       `json:"yearMonth"`
	ClosingBalances     WalletBalances  `json:"closingBalances"`
	GrossProfit         decimal.Decimal `json:"grossProfit"`
	NetProfit           decimal.Decimal `json:"netProfit"`
	OperationalExpenses decimal.Decimal `json:"operationalExpenses"`
	Transactions        []Transaction   `json:"transactions"`
}
