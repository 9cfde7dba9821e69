package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

func (s *Store) FindAccountsByUser(_ context.Context, userID string) ([]domain.Account, error) {
	defer s.rlock()()
	return append([]domain.Account(nil), s.st.accounts[userID]...), nil
}

func (s *Store) SaveAccounts(_ context.Context, accounts []domain.Account) error {
	defer s.lock()()
	for _, a := range accounts {
		s.st.accounts[a.UserID] = append(s.st.accounts[a.UserID], a)
	}
	return nil
}

// LockAccounts is a no-op: a unit of work already holds the store lock.
func (s *Store) LockAccounts(_ context.Context, _ string) error {
	return nil
}

func (s *Store) ListTransactions(_ context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	defer s.rlock()()
	out := make([]domain.Transaction, 0)
	for _, t := range s.st.transactions {
		if t.UserID == userID && filter.Matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) SumTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (decimal.Decimal, error) {
	txns, err := s.ListTransactions(ctx, userID, filter)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.SumWhere(txns, filter), nil
}

func (s *Store) ListYearMonths(ctx context.Context, userID string) ([]domain.YearMonth, error) {
	txns, err := s.ListTransactions(ctx, userID, domain.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	return accounting.DistinctYearMonths(txns), nil
}

func (s *Store) AppendTransactions(_ context.Context, txns []domain.Transaction) error {
	defer s.lock()()
	s.st.transactions = append(s.st.transactions, txns...)
	return nil
}
