package jobs_test

import (
	"context"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
)

// reportingSvc satisfies portssvc.ReportingSvc; only WarmOwner is exercised.
type reportingSvc struct {
	*fakeReporting
}

var _ portssvc.ReportingSvc = reportingSvc{}

func (reportingSvc) GetCashFlowSummary(context.Context, string) (*domain.CashFlowSummary, error) {
	return nil, nil
}

func (reportingSvc) GetMonthlyCashFlowBreakdown(context.Context, string) ([]domain.MonthlyCashFlow, error) {
	return nil, nil
}

func (reportingSvc) GetMonthlyCashFlow(context.Context, string, domain.YearMonth) (*domain.MonthlyCashFlow, error) {
	return nil, nil
}

func (reportingSvc) GetProfitSummary(context.Context, string) (*domain.ProfitSummary, error) {
	return nil, nil
}

func (reportingSvc) GetMonthlyProfitBreakdown(context.Context, string) ([]domain.MonthlyProfit, error) {
	return nil, nil
}

func (reportingSvc) GetMonthlyProfit(context.Context, string, domain.YearMonth) (*domain.MonthlyProfit, error) {
	return nil, nil
}

func (reportingSvc) InvalidateOwner(context.Context, string) {}

func (reportingSvc) ListReportMonths(context.Context, string) ([]domain.YearMonth, error) {
	return nil, nil
}
