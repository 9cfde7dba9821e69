package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	"github.com/SscSPs/mei_retail_app/internal/models"
	"github.com/SscSPs/mei_retail_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository stores wallet accounts and the append-only transaction log.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db querier) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository{db: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) FindAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, user_id, wallet_type, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE user_id = $1
		ORDER BY wallet_type;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts of user %s: %w", userID, err)
	}
	ms, err := scanAll(rows, func(rows pgx.Rows) (models.Account, error) {
		var m models.Account
		err := rows.Scan(&m.AccountID, &m.UserID, &m.WalletType, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
		return m, err
	})
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *PgxLedgerRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, user_id, wallet_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, a := range accounts {
		m := mapping.ToModelAccount(a)
		batch.Queue(query, m.AccountID, m.UserID, m.WalletType, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	}
	return r.sendBatch(ctx, batch, "save accounts")
}

// LockAccounts takes row locks on every account of the owner. Balance checks
// made afterwards in the same transaction cannot race another writer.
func (r *PgxLedgerRepository) LockAccounts(ctx context.Context, userID string) error {
	query := `SELECT account_id FROM accounts WHERE user_id = $1 ORDER BY wallet_type FOR UPDATE;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to lock accounts of user %s: %w", userID, err)
	}
	_, err = scanAll(rows, func(rows pgx.Rows) (string, error) {
		var id string
		err := rows.Scan(&id)
		return id, err
	})
	return err
}

const transactionColumns = `transaction_id, account_id, user_id, date, amount, payment_method, wallet_destination, detail, reference, description, created_at`

func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args := transactionWhere(userID, filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where + ` ORDER BY date, seq;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of user %s: %w", userID, err)
	}
	ms, err := scanAll(rows, func(rows pgx.Rows) (models.Transaction, error) {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.AccountID,
			&m.UserID,
			&m.Date,
			&m.Amount,
			&m.PaymentMethod,
			&m.WalletDestination,
			&m.Detail,
			&m.Reference,
			&m.Description,
			&m.CreatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainTransaction(m)
	}
	return out, nil
}

func (r *PgxLedgerRepository) SumTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (decimal.Decimal, error) {
	where, args := transactionWhere(userID, filter)
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE ` + where + `;`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions of user %s: %w", userID, err)
	}
	return sum, nil
}

func (r *PgxLedgerRepository) ListYearMonths(ctx context.Context, userID string) ([]domain.YearMonth, error) {
	query := `
		SELECT DISTINCT
			EXTRACT(YEAR FROM date AT TIME ZONE 'UTC')::int AS y,
			EXTRACT(MONTH FROM date AT TIME ZONE 'UTC')::int AS m
		FROM transactions
		WHERE user_id = $1
		ORDER BY y, m;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query months of user %s: %w", userID, err)
	}
	return scanAll(rows, func(rows pgx.Rows) (domain.YearMonth, error) {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return domain.YearMonth{}, err
		}
		return domain.YearMonth{Year: year, Month: time.Month(month)}, nil
	})
}

func (r *PgxLedgerRepository) AppendTransactions(ctx context.Context, txns []domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	batch := &pgx.Batch{}
	for _, t := range txns {
		m := mapping.ToModelTransaction(t)
		batch.Queue(query,
			m.TransactionID,
			m.AccountID,
			m.UserID,
			m.Date,
			m.Amount,
			m.PaymentMethod,
			m.WalletDestination,
			m.Detail,
			m.Reference,
			m.Description,
			m.CreatedAt,
		)
	}
	return r.sendBatch(ctx, batch, "append transactions")
}

// transactionWhere renders filter as a WHERE clause over the transactions
// table. It selects exactly the rows filter.Matches accepts; the
// classification flags are folded into an explicit detail list.
func transactionWhere(userID string, f domain.TransactionFilter) (string, []any) {
	args := []any{userID}
	conds := []string{"user_id = $1"}
	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.From != nil {
		add("date >= $%d", *f.From)
	}
	if f.To != nil {
		add("date < $%d", *f.To)
	}
	if f.Wallet != nil {
		add("wallet_destination = $%d", string(*f.Wallet))
	}
	if restrictsDetails(f) {
		resolved := f.ResolvedDetails()
		details := make([]string, len(resolved))
		for i, d := range resolved {
			details[i] = string(d)
		}
		add("detail = ANY($%d)", details)
	}
	switch f.Sign {
	case domain.PositiveOnly:
		conds = append(conds, "amount > 0")
	case domain.NegativeOnly:
		conds = append(conds, "amount < 0")
	}
	return strings.Join(conds, " AND "), args
}

func restrictsDetails(f domain.TransactionFilter) bool {
	return len(f.Details) > 0 || len(f.ExcludeDetails) > 0 || f.ProfitAffecting != nil || f.CashAffecting != nil
}
