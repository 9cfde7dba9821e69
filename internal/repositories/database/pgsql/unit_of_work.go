package pgsql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork runs a function inside one database transaction. The
// repositories handed to the function are bound to that transaction, so
// their row locks hold until commit or rollback.
type PgxUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPgxUnitOfWork creates a unit of work on the pool.
func NewPgxUnitOfWork(pool *pgxpool.Pool) *PgxUnitOfWork {
	return &PgxUnitOfWork{pool: pool}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// Begin starts a new database transaction
func (u *PgxUnitOfWork) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (u *PgxUnitOfWork) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
func (u *PgxUnitOfWork) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx commits when fn succeeds and rolls back otherwise, including on panic.
func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := u.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "Rollback failed", slog.String("error", rbErr.Error()))
		}
	}()

	if err := fn(ctx, newTxRepositories(tx)); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}

func newTxRepositories(tx pgx.Tx) portsrepo.TxRepositories {
	return portsrepo.TxRepositories{
		Users:          newPgxUserRepository(tx),
		Ledger:         newPgxLedgerRepository(tx),
		Sales:          newPgxSaleRepository(tx),
		Inventory:      newPgxInventoryRepository(tx),
		PurchaseOrders: newPgxPurchaseOrderRepository(tx),
	}
}
