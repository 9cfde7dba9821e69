package pgsql

import (
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository on the pool. Reads made
// through the returned repositories run outside any transaction.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:          newPgxUserRepository(dbPool),
		LedgerRepo:        newPgxLedgerRepository(dbPool),
		SaleRepo:          newPgxSaleRepository(dbPool),
		InventoryRepo:     newPgxInventoryRepository(dbPool),
		PurchaseOrderRepo: newPgxPurchaseOrderRepository(dbPool),
		UnitOfWork:        NewPgxUnitOfWork(dbPool),
	}
}
