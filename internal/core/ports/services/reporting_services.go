package services

import (
	"context"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProfitSvc computes the profit figures straight from aggregate queries.
type ProfitSvc interface {
	CalculateTotalNetProfit(ctx context.Context, userEmail string) (decimal.Decimal, error)
	CalculateTotalGrossProfit(ctx context.Context, inventory domain.Inventory) (decimal.Decimal, error)
	CalculateGrossProfitByDateRange(ctx context.Context, inventory domain.Inventory, start, end time.Time) (decimal.Decimal, error)
	CalculateTotalOperationalExpenses(ctx context.Context, userEmail string) (decimal.Decimal, error)
}

// ReportingSvc builds the cash-flow and profit reports of an owner.
type ReportingSvc interface {
	GetCashFlowSummary(ctx context.Context, userEmail string) (*domain.CashFlowSummary, error)
	GetMonthlyCashFlowBreakdown(ctx context.Context, userEmail string) ([]domain.MonthlyCashFlow, error)
	GetMonthlyCashFlow(ctx context.Context, userEmail string, ym domain.YearMonth) (*domain.MonthlyCashFlow, error)
	GetProfitSummary(ctx context.Context, userEmail string) (*domain.ProfitSummary, error)
	GetMonthlyProfitBreakdown(ctx context.Context, userEmail string) ([]domain.MonthlyProfit, error)
	GetMonthlyProfit(ctx context.Context, userEmail string, ym domain.YearMonth) (*domain.MonthlyProfit, error)

	// ListReportMonths returns the months with at least one ledger entry,
	// ascending. Only these months have a monthly report.
	ListReportMonths(ctx context.Context, userEmail string) ([]domain.YearMonth, error)

	// InvalidateOwner drops the cached reports of an owner after a write.
	InvalidateOwner(ctx context.Context, userEmail string)

	// WarmOwner recomputes and caches the summaries and breakdowns of an owner.
	WarmOwner(ctx context.Context, userEmail string) error
}
