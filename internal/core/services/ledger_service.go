package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	BaseService
	uow        portsrepo.UnitOfWork
	ledgerRepo portsrepo.TransactionReader
}

// NewLedgerService creates the treasury and ledger listing service.
func NewLedgerService(uow portsrepo.UnitOfWork, ledgerRepo portsrepo.TransactionReader, options ...ServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{uow: uow, ledgerRepo: ledgerRepo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordEntry(ctx context.Context, owner domain.OwnerContext, req dto.RecordEntryRequest) (*domain.Transaction, error) {
	sign, ok := domain.ManualEntryDetails[req.Detail]
	if !ok {
		return nil, fmt.Errorf("%w: %q cannot be recorded manually", apperrors.ErrValidation, req.Detail)
	}
	direction := dto.DirectionOut
	if sign == domain.PositiveOnly {
		direction = dto.DirectionIn
	}
	if req.Direction != "" {
		direction = req.Direction
	}
	if direction != dto.DirectionIn && direction != dto.DirectionOut {
		return nil, fmt.Errorf("%w: unknown direction %q", apperrors.ErrValidation, req.Direction)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.PaymentMethod.IsMonetary() {
		return nil, fmt.Errorf("%w: unsupported payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}

	at := s.Now()
	if req.Date != nil {
		at = req.Date.UTC()
	}
	wallet := req.PaymentMethod.Wallet()
	amount := req.Amount
	if direction == dto.DirectionOut {
		amount = amount.Neg()
	}

	var recorded domain.Transaction
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if amount.IsNegative() {
			if err := ensureFunds(ctx, repos.Ledger, owner, wallet, req.Amount); err != nil {
				return err
			}
		}
		t, err := entry(owner, wallet, req.PaymentMethod, req.Detail, amount, at, "", req.Description)
		if err != nil {
			return err
		}
		if err := repos.Ledger.AppendTransactions(ctx, []domain.Transaction{t}); err != nil {
			return fmt.Errorf("failed to append ledger row: %w", err)
		}
		recorded = t
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record entry", slog.String("detail", string(req.Detail)))
		return nil, err
	}

	s.afterWrite(ctx, owner)
	s.LogInfo(ctx, "Entry recorded",
		slog.String("transaction_id", recorded.TransactionID),
		slog.String("detail", string(recorded.Detail)),
		slog.String("amount", recorded.Amount.String()))
	return &recorded, nil
}

func (s *ledgerService) Transfer(ctx context.Context, owner domain.OwnerContext, req dto.TransferRequest) ([]domain.Transaction, error) {
	if !req.From.IsValid() || !req.To.IsValid() || req.From == req.To {
		return nil, fmt.Errorf("%w: transfer needs two distinct wallets", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	at := s.Now()
	reference := domain.RefTransfer + uuid.NewString()

	var txns []domain.Transaction
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := ensureFunds(ctx, repos.Ledger, owner, req.From, req.Amount); err != nil {
			return err
		}
		out, err := entry(owner, req.From, methodForWallet(req.From), domain.DetailTransfer, req.Amount.Neg(), at, reference, "transfer to "+string(req.To))
		if err != nil {
			return err
		}
		in, err := entry(owner, req.To, methodForWallet(req.To), domain.DetailTransfer, req.Amount, at, reference, "transfer from "+string(req.From))
		if err != nil {
			return err
		}
		txns = []domain.Transaction{out, in}
		return repos.Ledger.AppendTransactions(ctx, txns)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to transfer", slog.String("from", string(req.From)), slog.String("to", string(req.To)))
		return nil, err
	}

	s.afterWrite(ctx, owner)
	return txns, nil
}

func (s *ledgerService) WithdrawProfit(ctx context.Context, owner domain.OwnerContext, req dto.WithdrawProfitRequest) (*domain.Transaction, error) {
	if !req.Wallet.IsValid() {
		return nil, fmt.Errorf("%w: unknown wallet %q", apperrors.ErrValidation, req.Wallet)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	at := s.Now()
	var withdrawal domain.Transaction
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := ensureProfit(ctx, repos.Ledger, owner, req.Amount); err != nil {
			return err
		}
		if err := ensureFunds(ctx, repos.Ledger, owner, req.Wallet, req.Amount); err != nil {
			return err
		}
		t, err := entry(owner, req.Wallet, methodForWallet(req.Wallet), domain.DetailProfitWithdrawal, req.Amount.Neg(), at, "", "profit withdrawal")
		if err != nil {
			return err
		}
		withdrawal = t
		return repos.Ledger.AppendTransactions(ctx, []domain.Transaction{t})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to withdraw profit", slog.String("wallet", string(req.Wallet)))
		return nil, err
	}

	s.afterWrite(ctx, owner)
	s.LogInfo(ctx, "Profit withdrawn", slog.String("amount", req.Amount.String()))
	return &withdrawal, nil
}

// ReinvestProfit moves profit into invested capital: the withdrawal lowers
// net profit, the investment row puts the money back in a wallet.
func (s *ledgerService) ReinvestProfit(ctx context.Context, owner domain.OwnerContext, req dto.ReinvestProfitRequest) ([]domain.Transaction, error) {
	if !req.Amount.IsPositive() || !req.FromWallet.IsValid() || !req.ToWallet.IsValid() {
		return nil, fmt.Errorf("%w: amount must be positive and both wallets known", apperrors.ErrInvalidReinvestment)
	}

	at := s.Now()
	reference := domain.RefReinvestment + uuid.NewString()

	var txns []domain.Transaction
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := ensureProfit(ctx, repos.Ledger, owner, req.Amount); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidReinvestment, err)
		}
		if err := ensureFunds(ctx, repos.Ledger, owner, req.FromWallet, req.Amount); err != nil {
			return err
		}
		out, err := entry(owner, req.FromWallet, methodForWallet(req.FromWallet), domain.DetailProfitWithdrawal, req.Amount.Neg(), at, reference, "profit reinvested")
		if err != nil {
			return err
		}
		in, err := entry(owner, req.ToWallet, methodForWallet(req.ToWallet), domain.DetailMoneyInvestment, req.Amount, at, reference, "reinvested profit")
		if err != nil {
			return err
		}
		txns = []domain.Transaction{out, in}
		return repos.Ledger.AppendTransactions(ctx, txns)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reinvest profit")
		return nil, err
	}

	s.afterWrite(ctx, owner)
	return txns, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, owner domain.OwnerContext, from, to *time.Time) ([]domain.Transaction, error) {
	filter := domain.TransactionFilter{
		From:           from,
		To:             to,
		ExcludeDetails: []domain.TransactionDetail{domain.DetailCostOfGoodsSold},
	}
	txns, err := s.ledgerRepo.ListTransactions(ctx, owner.User.UserID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *ledgerService) GetWalletBalances(ctx context.Context, owner domain.OwnerContext) (*domain.WalletBalances, error) {
	bank, err := s.ledgerRepo.SumTransactions(ctx, owner.User.UserID, domain.WalletFilter(domain.WalletBank))
	if err != nil {
		return nil, fmt.Errorf("failed to read bank balance: %w", err)
	}
	cash, err := s.ledgerRepo.SumTransactions(ctx, owner.User.UserID, domain.WalletFilter(domain.WalletCash))
	if err != nil {
		return nil, fmt.Errorf("failed to read cash balance: %w", err)
	}
	balances := domain.NewWalletBalances(bank, cash)
	return &balances, nil
}

// ensureProfit checks that amount does not exceed the accumulated net profit.
func ensureProfit(ctx context.Context, ledger portsrepo.LedgerRepositoryFacade, owner domain.OwnerContext, amount decimal.Decimal) error {
	if err := ledger.LockAccounts(ctx, owner.User.UserID); err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	profit, err := ledger.SumTransactions(ctx, owner.User.UserID, domain.ProfitFilter())
	if err != nil {
		return fmt.Errorf("failed to read net profit: %w", err)
	}
	if profit.LessThan(amount) {
		return fmt.Errorf("%w: net profit %s, requested %s", apperrors.ErrInsufficientProfit, profit, amount)
	}
	return nil
}
