package repositories

import "context"

// TxRepositories is the set of repositories bound to one unit of work.
// Every read made through it sees the writes made through it.
type TxRepositories struct {
	Users          UserRepositoryFacade
	Ledger         LedgerRepositoryFacade
	Sales          SaleRepositoryFacade
	Inventory      InventoryRepositoryFacade
	PurchaseOrders PurchaseOrderRepositoryFacade
}

// UnitOfWork runs fn atomically: either everything written through the
// repositories handed to fn is committed, or nothing is.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
