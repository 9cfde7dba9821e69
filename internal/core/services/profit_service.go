package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// profitService answers profit questions with aggregate queries. The list
// based equivalents live in utils/accounting.
type profitService struct {
	BaseService
	owners     portssvc.OwnerSvc
	ledgerRepo portsrepo.TransactionReader
	saleRepo   portsrepo.SaleReader
}

// NewProfitService creates the query-backed profit calculator.
func NewProfitService(owners portssvc.OwnerSvc, ledgerRepo portsrepo.TransactionReader, saleRepo portsrepo.SaleReader) portssvc.ProfitSvc {
	return &profitService{owners: owners, ledgerRepo: ledgerRepo, saleRepo: saleRepo}
}

var _ portssvc.ProfitSvc = (*profitService)(nil)

func (s *profitService) CalculateTotalNetProfit(ctx context.Context, userEmail string) (decimal.Decimal, error) {
	return s.sumForOwner(ctx, userEmail, domain.ProfitFilter())
}

func (s *profitService) CalculateTotalOperationalExpenses(ctx context.Context, userEmail string) (decimal.Decimal, error) {
	return s.sumForOwner(ctx, userEmail, domain.OperationalExpenseFilter())
}

func (s *profitService) CalculateTotalGrossProfit(ctx context.Context, inventory domain.Inventory) (decimal.Decimal, error) {
	gross, err := s.saleRepo.SumGrossProfit(ctx, inventory.InventoryID, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum gross profit")
		return decimal.Zero, fmt.Errorf("failed to sum gross profit: %w", err)
	}
	return gross, nil
}

func (s *profitService) CalculateGrossProfitByDateRange(ctx context.Context, inventory domain.Inventory, start, end time.Time) (decimal.Decimal, error) {
	if !start.Before(end) {
		return decimal.Zero, fmt.Errorf("%w: start must be before end", apperrors.ErrValidation)
	}
	gross, err := s.saleRepo.SumGrossProfit(ctx, inventory.InventoryID, &start, &end)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum gross profit by range")
		return decimal.Zero, fmt.Errorf("failed to sum gross profit: %w", err)
	}
	return gross, nil
}

func (s *profitService) sumForOwner(ctx context.Context, userEmail string, filter domain.TransactionFilter) (decimal.Decimal, error) {
	owner, err := s.owners.ResolveOwner(ctx, userEmail)
	if err != nil {
		return decimal.Zero, err
	}
	sum, err := s.ledgerRepo.SumTransactions(ctx, owner.User.UserID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum transactions")
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}
