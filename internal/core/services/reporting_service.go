package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portscache "github.com/SscSPs/mei_retail_app/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Report names used in cache keys.
const (
	reportCashFlowSummary = "cashflow-summary"
	reportCashFlowMonthly = "cashflow-monthly"
	reportCashFlowMonth   = "cashflow-month"
	reportProfitSummary   = "profit-summary"
	reportProfitMonthly   = "profit-monthly"
	reportProfitMonth     = "profit-month"
	reportMonths          = "months"
)

type reportingService struct {
	BaseService
	owners     portssvc.OwnerSvc
	ledgerRepo portsrepo.TransactionReader
	saleRepo   portsrepo.SaleReader
	cache      portscache.ReportCache
	ttl        time.Duration
}

// NewReportingService creates the cash-flow and profit reporting service.
// Summaries and breakdowns are computed from the loaded ledger, single months
// from aggregate queries.
func NewReportingService(owners portssvc.OwnerSvc, ledgerRepo portsrepo.TransactionReader, saleRepo portsrepo.SaleReader, cache portscache.ReportCache, ttl time.Duration) portssvc.ReportingSvc {
	return &reportingService{owners: owners, ledgerRepo: ledgerRepo, saleRepo: saleRepo, cache: cache, ttl: ttl}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// ledgerData is everything the list-based reports need.
type ledgerData struct {
	txns  []domain.Transaction
	items []domain.SaleItem
}

func (s *reportingService) load(ctx context.Context, owner *domain.OwnerContext) (*ledgerData, error) {
	txns, err := s.ledgerRepo.ListTransactions(ctx, owner.User.UserID, domain.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	items, err := s.saleRepo.ListSaleItems(ctx, owner.Inventory.InventoryID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale items: %w", err)
	}
	return &ledgerData{txns: txns, items: items}, nil
}

// cached returns the value stored under key or computes and stores it.
// Cache failures never fail the report.
func cached[T any](ctx context.Context, s *reportingService, key string, compute func() (T, error)) (T, error) {
	var value T
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, &value)
		if err != nil {
			s.LogError(ctx, err, "Report cache read failed", slog.String("key", key))
		} else if hit {
			s.LogDebug(ctx, "Report cache hit", slog.String("key", key))
			return value, nil
		}
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
			s.LogError(ctx, err, "Report cache write failed", slog.String("key", key))
		}
	}
	return value, nil
}

func (s *reportingService) GetCashFlowSummary(ctx context.Context, userEmail string) (*domain.CashFlowSummary, error) {
	return cached(ctx, s, portscache.Key(userEmail, reportCashFlowSummary), func() (*domain.CashFlowSummary, error) {
		data, err := s.loadFor(ctx, userEmail)
		if err != nil {
			return nil, err
		}
		return &domain.CashFlowSummary{
			Balances: accounting.WalletBalances(data.txns),
			Income:   accounting.CashIncome(data.txns),
			Expense:  accounting.CashExpense(data.txns),
			NetFlow:  accounting.NetCashFlow(data.txns),
		}, nil
	})
}

func (s *reportingService) GetMonthlyCashFlowBreakdown(ctx context.Context, userEmail string) ([]domain.MonthlyCashFlow, error) {
	return cached(ctx, s, portscache.Key(userEmail, reportCashFlowMonthly), func() ([]domain.MonthlyCashFlow, error) {
		data, err := s.loadFor(ctx, userEmail)
		if err != nil {
			return nil, err
		}
		return accounting.BuildMonthlyCashFlow(data.txns, data.items), nil
	})
}

func (s *reportingService) GetMonthlyCashFlow(ctx context.Context, userEmail string, ym domain.YearMonth) (*domain.MonthlyCashFlow, error) {
	return cached(ctx, s, portscache.MonthKey(userEmail, reportCashFlowMonth, ym), func() (*domain.MonthlyCashFlow, error) {
		owner, monthTxns, err := s.monthFor(ctx, userEmail, ym)
		if err != nil {
			return nil, err
		}
		userID := owner.User.UserID
		opening, err := s.balancesAt(ctx, userID, ym.Start())
		if err != nil {
			return nil, err
		}
		closing, err := s.balancesAt(ctx, userID, ym.End())
		if err != nil {
			return nil, err
		}

		income := domain.CashFilter().Between(ym.Start(), ym.End())
		income.Sign = domain.PositiveOnly
		expense := domain.CashFilter().Between(ym.Start(), ym.End())
		expense.Sign = domain.NegativeOnly

		sums, err := s.sums(ctx, userID, map[string]domain.TransactionFilter{
			"income":  income,
			"expense": expense,
			"net":     domain.CashFilter().Between(ym.Start(), ym.End()),
			"profit":  domain.ProfitFilter().Between(ym.Start(), ym.End()),
		})
		if err != nil {
			return nil, err
		}
		gross, err := s.grossBetween(ctx, owner, ym)
		if err != nil {
			return nil, err
		}

		return &domain.MonthlyCashFlow{
			YearMonth:       ym,
			OpeningBalances: opening,
			ClosingBalances: closing,
			Income:          sums["income"],
			Expense:         sums["expense"].Abs(),
			NetCashFlow:     sums["net"],
			GrossProfit:     gross,
			NetProfit:       sums["profit"],
			Transactions:    accounting.VisibleTransactions(monthTxns),
		}, nil
	})
}

func (s *reportingService) GetProfitSummary(ctx context.Context, userEmail string) (*domain.ProfitSummary, error) {
	return cached(ctx, s, portscache.Key(userEmail, reportProfitSummary), func() (*domain.ProfitSummary, error) {
		data, err := s.loadFor(ctx, userEmail)
		if err != nil {
			return nil, err
		}
		return &domain.ProfitSummary{
			Balances:            accounting.WalletBalances(data.txns),
			GrossProfit:         accounting.GrossProfit(data.items),
			NetProfit:           accounting.NetProfit(data.txns),
			OperationalExpenses: accounting.OperationalExpenses(data.txns),
		}, nil
	})
}

func (s *reportingService) GetMonthlyProfitBreakdown(ctx context.Context, userEmail string) ([]domain.MonthlyProfit, error) {
	return cached(ctx, s, portscache.Key(userEmail, reportProfitMonthly), func() ([]domain.MonthlyProfit, error) {
		data, err := s.loadFor(ctx, userEmail)
		if err != nil {
			return nil, err
		}
		return accounting.BuildMonthlyProfit(data.txns, data.items), nil
	})
}

func (s *reportingService) GetMonthlyProfit(ctx context.Context, userEmail string, ym domain.YearMonth) (*domain.MonthlyProfit, error) {
	return cached(ctx, s, portscache.MonthKey(userEmail, reportProfitMonth, ym), func() (*domain.MonthlyProfit, error) {
		owner, monthTxns, err := s.monthFor(ctx, userEmail, ym)
		if err != nil {
			return nil, err
		}
		userID := owner.User.UserID
		closing, err := s.balancesAt(ctx, userID, ym.End())
		if err != nil {
			return nil, err
		}
		sums, err := s.sums(ctx, userID, map[string]domain.TransactionFilter{
			"profit": domain.ProfitFilter().Between(ym.Start(), ym.End()),
			"opex":   domain.OperationalExpenseFilter().Between(ym.Start(), ym.End()),
		})
		if err != nil {
			return nil, err
		}
		gross, err := s.grossBetween(ctx, owner, ym)
		if err != nil {
			return nil, err
		}

		return &domain.MonthlyProfit{
			YearMonth:           ym,
			ClosingBalances:     closing,
			GrossProfit:         gross,
			NetProfit:           sums["profit"],
			OperationalExpenses: sums["opex"],
			Transactions:        accounting.VisibleTransactions(monthTxns),
		}, nil
	})
}

func (s *reportingService) ListReportMonths(ctx context.Context, userEmail string) ([]domain.YearMonth, error) {
	return cached(ctx, s, portscache.Key(userEmail, reportMonths), func() ([]domain.YearMonth, error) {
		owner, err := s.owners.ResolveOwner(ctx, userEmail)
		if err != nil {
			return nil, err
		}
		return s.months(ctx, owner.User.UserID)
	})
}

func (s *reportingService) months(ctx context.Context, userID string) ([]domain.YearMonth, error) {
	months, err := s.ledgerRepo.ListYearMonths(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger months: %w", err)
	}
	return months, nil
}

func (s *reportingService) InvalidateOwner(ctx context.Context, userEmail string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userEmail); err != nil {
		s.LogError(ctx, err, "Failed to invalidate report cache", slog.String("user_email", userEmail))
	}
}

// WarmOwner drops and rebuilds the summaries and breakdowns of an owner.
func (s *reportingService) WarmOwner(ctx context.Context, userEmail string) error {
	s.InvalidateOwner(ctx, userEmail)
	if _, err := s.GetCashFlowSummary(ctx, userEmail); err != nil {
		return err
	}
	if _, err := s.GetMonthlyCashFlowBreakdown(ctx, userEmail); err != nil {
		return err
	}
	if _, err := s.GetProfitSummary(ctx, userEmail); err != nil {
		return err
	}
	_, err := s.GetMonthlyProfitBreakdown(ctx, userEmail)
	return err
}

func (s *reportingService) loadFor(ctx context.Context, userEmail string) (*ledgerData, error) {
	owner, err := s.owners.ResolveOwner(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	data, err := s.load(ctx, owner)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for report", slog.String("user_email", userEmail))
		return nil, err
	}
	return data, nil
}

// monthFor resolves the owner and the month's entries. A month with no entry
// at all is not part of the series.
func (s *reportingService) monthFor(ctx context.Context, userEmail string, ym domain.YearMonth) (*domain.OwnerContext, []domain.Transaction, error) {
	owner, err := s.owners.ResolveOwner(ctx, userEmail)
	if err != nil {
		return nil, nil, err
	}
	months, err := s.months(ctx, owner.User.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !slices.Contains(months, ym) {
		return nil, nil, fmt.Errorf("no transactions in %s: %w", ym, apperrors.ErrNotFound)
	}
	monthTxns, err := s.ledgerRepo.ListTransactions(ctx, owner.User.UserID, domain.TransactionFilter{}.Between(ym.Start(), ym.End()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transactions of %s: %w", ym, err)
	}
	return owner, monthTxns, nil
}

// balancesAt returns the cumulative wallet balances of every entry before at.
func (s *reportingService) balancesAt(ctx context.Context, userID string, at time.Time) (domain.WalletBalances, error) {
	values := make(map[domain.WalletType]decimal.Decimal, len(domain.Wallets))
	for _, w := range domain.Wallets {
		f := domain.WalletFilter(w)
		f.To = &at
		sum, err := s.ledgerRepo.SumTransactions(ctx, userID, f)
		if err != nil {
			return domain.WalletBalances{}, fmt.Errorf("failed to sum %s balance: %w", w, err)
		}
		values[w] = sum
	}
	return domain.NewWalletBalances(values[domain.WalletBank], values[domain.WalletCash]), nil
}

func (s *reportingService) sums(ctx context.Context, userID string, filters map[string]domain.TransactionFilter) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(filters))
	var errs []error
	for name, f := range filters {
		sum, err := s.ledgerRepo.SumTransactions(ctx, userID, f)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		out[name] = sum
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", errors.Join(errs...))
	}
	return out, nil
}

func (s *reportingService) grossBetween(ctx context.Context, owner *domain.OwnerContext, ym domain.YearMonth) (decimal.Decimal, error) {
	start, end := ym.Start(), ym.End()
	gross, err := s.saleRepo.SumGrossProfit(ctx, owner.Inventory.InventoryID, &start, &end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum gross profit of %s: %w", ym, err)
	}
	return gross, nil
}
