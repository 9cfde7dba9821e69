package pgsql

import (
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionWhere(t *testing.T) {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	t.Run("owner only", func(t *testing.T) {
		where, args := transactionWhere("u1", domain.TransactionFilter{})
		assert.Equal(t, "user_id = $1", where)
		assert.Equal(t, []any{"u1"}, args)
	})

	t.Run("wallet filter folds cash flag into details", func(t *testing.T) {
		where, args := transactionWhere("u1", domain.WalletFilter(domain.WalletCash))
		assert.Equal(t, "user_id = $1 AND wallet_destination = $2 AND detail = ANY($3)", where)
		assert.Equal(t, "CASH", args[1])
		details := args[2].([]string)
		assert.Contains(t, details, "SALE")
		assert.Contains(t, details, "TRANSFER")
		assert.NotContains(t, details, "COST_OF_GOODS_SOLD")
		assert.NotContains(t, details, "COGS_REVERSAL")
	})

	t.Run("operational expenses in a month", func(t *testing.T) {
		where, args := transactionWhere("u1", domain.OperationalExpenseFilter().Between(from, to))
		assert.Equal(t, "user_id = $1 AND date >= $2 AND date < $3 AND detail = ANY($4) AND amount < 0", where)
		assert.Equal(t, from, args[1])
		assert.Equal(t, to, args[2])
		details := args[3].([]string)
		assert.Contains(t, details, "RENT")
		assert.Contains(t, details, "PROFIT_WITHDRAWAL")
		assert.NotContains(t, details, "COST_OF_GOODS_SOLD")
		assert.NotContains(t, details, "OWNER_INVESTMENT")
	})

	t.Run("inflows", func(t *testing.T) {
		where, _ := transactionWhere("u1", domain.TransactionFilter{Sign: domain.PositiveOnly})
		assert.Equal(t, "user_id = $1 AND amount > 0", where)
	})
}

// evalWhere applies a clause rendered by transactionWhere to one row.
func evalWhere(t *testing.T, where string, args []any, row domain.Transaction) bool {
	t.Helper()
	for _, cond := range strings.Split(where, " AND ") {
		switch cond {
		case "amount > 0":
			if !row.Amount.IsPositive() {
				return false
			}
			continue
		case "amount < 0":
			if !row.Amount.IsNegative() {
				return false
			}
			continue
		}

		var n int
		if _, err := fmt.Sscanf(cond, "detail = ANY($%d)", &n); err == nil {
			if !slices.Contains(args[n-1].([]string), string(row.Detail)) {
				return false
			}
			continue
		}
		var col, op string
		_, err := fmt.Sscanf(cond, "%s %s $%d", &col, &op, &n)
		require.NoError(t, err, cond)
		arg := args[n-1]
		var ok bool
		switch col + " " + op {
		case "user_id =":
			ok = row.UserID == arg.(string)
		case "wallet_destination =":
			ok = string(row.WalletDestination) == arg.(string)
		case "date >=":
			ok = !row.Date.Before(arg.(time.Time))
		case "date <":
			ok = row.Date.Before(arg.(time.Time))
		default:
			t.Fatalf("unexpected condition %q", cond)
		}
		if !ok {
			return false
		}
	}
	return true
}

func TestTransactionWhere_AgreesWithMatches(t *testing.T) {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	yes, no := true, false
	bank := domain.WalletBank

	details := domain.DetailsWhere(func(domain.DetailClassification) bool { return true })
	rows := make([]domain.Transaction, 0)
	for _, d := range details {
		for _, amount := range []int64{10, -10, 0} {
			for _, w := range domain.Wallets {
				for _, at := range []time.Time{from.AddDate(0, 0, -1), from, to.Add(-time.Second), to} {
					rows = append(rows, domain.Transaction{
						UserID: "u1", Detail: d, Amount: decimal.NewFromInt(amount),
						WalletDestination: w, Date: at,
					})
				}
			}
		}
	}

	filters := map[string]domain.TransactionFilter{
		"empty":             {},
		"profit":            domain.ProfitFilter(),
		"cash":              domain.CashFilter(),
		"operational":       domain.OperationalExpenseFilter(),
		"bank wallet":       domain.WalletFilter(domain.WalletBank),
		"cash wallet":       domain.WalletFilter(domain.WalletCash),
		"non profit":        {ProfitAffecting: &no},
		"non cash":          {CashAffecting: &no},
		"explicit details":  {Details: []domain.TransactionDetail{domain.DetailSale, domain.DetailCostOfGoodsSold}},
		"details and flags": {Details: []domain.TransactionDetail{domain.DetailSale, domain.DetailCostOfGoodsSold}, CashAffecting: &yes},
		"excluded details":  {ExcludeDetails: []domain.TransactionDetail{domain.DetailSale, domain.DetailTransfer}},
		"wallet only":       {Wallet: &bank},
		"profit in a month": domain.ProfitFilter().Between(from, to),
		"nothing can match": {ProfitAffecting: &no, CashAffecting: &no},
		"explicit excluded": {Details: []domain.TransactionDetail{domain.DetailRent}, ExcludeDetails: []domain.TransactionDetail{domain.DetailRent}},
	}
	signs := map[string]domain.AmountSign{"any": domain.AnySign, "positive": domain.PositiveOnly, "negative": domain.NegativeOnly}

	for name, base := range filters {
		for signName, sign := range signs {
			f := base
			f.Sign = sign
			t.Run(name+"/"+signName, func(t *testing.T) {
				where, args := transactionWhere("u1", f)
				for _, row := range rows {
					assert.Equal(t, f.Matches(row), evalWhere(t, where, args, row),
						"%s %s %s at %s", row.Detail, row.Amount, row.WalletDestination, row.Date.Format(time.RFC3339))
				}
			})
		}
	}

	other := rows[0]
	other.UserID = "u2"
	where, args := transactionWhere("u1", domain.TransactionFilter{})
	assert.False(t, evalWhere(t, where, args, other))
}

func TestDateRange(t *testing.T) {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	bounds, args := dateRange("si.sold_at", &from, nil, []any{"inv"})
	assert.Equal(t, " AND si.sold_at >= $2", bounds)
	assert.Len(t, args, 2)

	bounds, args = dateRange("date", nil, nil, []any{"inv"})
	assert.Empty(t, bounds)
	assert.Len(t, args, 1)
}

func TestPrefixColumns(t *testing.T) {
	assert.Equal(t, "si.a, si.b, si.c", prefixColumns("si", "a, b,c"))
}
