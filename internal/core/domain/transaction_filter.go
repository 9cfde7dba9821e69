package domain

import "time"

// AmountSign restricts a filter to inflows or outflows.
type AmountSign int

const (
	AnySign AmountSign = iota
	PositiveOnly
	NegativeOnly
)

// TransactionFilter is the predicate shared by the in-memory calculations and
// the aggregate queries of the persistence layer. Both must select exactly
// the same rows for the same filter.
type TransactionFilter struct {
	// From is inclusive, To is exclusive.
	From            *time.Time
	To              *time.Time
	Wallet          *WalletType
	Details         []TransactionDetail
	ExcludeDetails  []TransactionDetail
	ProfitAffecting *bool
	CashAffecting   *bool
	Sign            AmountSign
}

// Matches reports whether t is selected by f.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Date.Before(*f.To) {
		return false
	}
	if f.Wallet != nil && t.WalletDestination != *f.Wallet {
		return false
	}
	if len(f.Details) > 0 && !containsDetail(f.Details, t.Detail) {
		return false
	}
	if containsDetail(f.ExcludeDetails, t.Detail) {
		return false
	}
	if !f.selectsClass(Classify(t.Detail)) {
		return false
	}
	switch f.Sign {
	case PositiveOnly:
		return t.Amount.IsPositive()
	case NegativeOnly:
		return t.Amount.IsNegative()
	}
	return true
}

// Between returns a copy of f restricted to [from, to).
func (f TransactionFilter) Between(from, to time.Time) TransactionFilter {
	f.From = &from
	f.To = &to
	return f
}

// ResolvedDetails returns the explicit set of details f can select, folding
// the classification flags into a detail list. Persistence layers use it to
// express the classification in a query.
func (f TransactionFilter) ResolvedDetails() []TransactionDetail {
	classified := DetailsWhere(f.selectsClass)
	out := make([]TransactionDetail, 0, len(classified))
	for _, d := range classified {
		if len(f.Details) > 0 && !containsDetail(f.Details, d) {
			continue
		}
		if containsDetail(f.ExcludeDetails, d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (f TransactionFilter) selectsClass(c DetailClassification) bool {
	if f.ProfitAffecting != nil && c.AffectsProfit != *f.ProfitAffecting {
		return false
	}
	if f.CashAffecting != nil && c.AffectsCash != *f.CashAffecting {
		return false
	}
	return true
}

// ProfitFilter selects every profit-affecting entry.
func ProfitFilter() TransactionFilter {
	yes := true
	return TransactionFilter{ProfitAffecting: &yes}
}

// CashFilter selects every cash-affecting entry.
func CashFilter() TransactionFilter {
	yes := true
	return TransactionFilter{CashAffecting: &yes}
}

// OperationalExpenseFilter selects profit-affecting outflows other than COGS.
func OperationalExpenseFilter() TransactionFilter {
	f := ProfitFilter()
	f.Sign = NegativeOnly
	f.ExcludeDetails = []TransactionDetail{DetailCostOfGoodsSold}
	return f
}

// WalletFilter selects the cash-affecting entries of one wallet.
func WalletFilter(w WalletType) TransactionFilter {
	f := CashFilter()
	f.Wallet = &w
	return f
}

func containsDetail(list []TransactionDetail, d TransactionDetail) bool {
	for _, x := range list {
		if x == d {
			return true
		}
	}
	return false
}
