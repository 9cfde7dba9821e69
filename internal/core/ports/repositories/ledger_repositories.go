package repositories

import (
	"context"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for wallet accounts.
type AccountReader interface {
	// FindAccountsByUser returns the wallet accounts of an owner.
	FindAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for wallet accounts.
type AccountWriter interface {
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// LockAccounts serialises balance checks of one owner until the unit of
	// work ends.
	LockAccounts(ctx context.Context, userID string) error
}

// TransactionReader defines read and aggregate operations on the ledger.
type TransactionReader interface {
	// ListTransactions returns the entries of an owner selected by filter,
	// ordered by date ascending.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// SumTransactions returns the sum of the amounts selected by filter
	// without materialising the rows.
	SumTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (decimal.Decimal, error)

	// ListYearMonths returns the distinct months holding any entry, ascending.
	ListYearMonths(ctx context.Context, userID string) ([]domain.YearMonth, error)
}

// TransactionWriter appends ledger entries. Entries are never updated.
type TransactionWriter interface {
	AppendTransactions(ctx context.Context, txns []domain.Transaction) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	AccountReader
	AccountWriter
	TransactionReader
	TransactionWriter
}
