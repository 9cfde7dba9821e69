package services

import (
	"context"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/dto"
)

// TreasurySvc defines the manual money movements of an owner.
type TreasurySvc interface {
	RecordEntry(ctx context.Context, owner domain.OwnerContext, req dto.RecordEntryRequest) (*domain.Transaction, error)
	Transfer(ctx context.Context, owner domain.OwnerContext, req dto.TransferRequest) ([]domain.Transaction, error)
	WithdrawProfit(ctx context.Context, owner domain.OwnerContext, req dto.WithdrawProfitRequest) (*domain.Transaction, error)
	ReinvestProfit(ctx context.Context, owner domain.OwnerContext, req dto.ReinvestProfitRequest) ([]domain.Transaction, error)
}

// LedgerReaderSvc exposes the owner-visible ledger.
type LedgerReaderSvc interface {
	// ListTransactions returns the visible entries in [from, to); COGS rows are omitted.
	ListTransactions(ctx context.Context, owner domain.OwnerContext, from, to *time.Time) ([]domain.Transaction, error)
	GetWalletBalances(ctx context.Context, owner domain.OwnerContext) (*domain.WalletBalances, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces.
type LedgerSvcFacade interface {
	TreasurySvc
	LedgerReaderSvc
}
