package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock OwnerService ---
type MockOwnerService struct {
	mock.Mock
}

func (m *MockOwnerService) ResolveOwner(ctx context.Context, userEmail string) (*domain.OwnerContext, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnerContext), args.Error(1)
}
func (m *MockOwnerService) ListOwners(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portssvc.OwnerSvc = (*MockOwnerService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RegisterOwner(ctx context.Context, req dto.RegisterRequest) (*domain.OwnerContext, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnerContext), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, owner domain.OwnerContext, req dto.CreateSaleRequest) (*dto.SaleResult, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SaleResult), args.Error(1)
}
func (m *MockSaleService) CancelSale(ctx context.Context, owner domain.OwnerContext, saleID string, saleItemIDs []string) (*dto.SaleResult, error) {
	args := m.Called(ctx, owner, saleID, saleItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SaleResult), args.Error(1)
}
func (m *MockSaleService) GetSale(ctx context.Context, owner domain.OwnerContext, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, owner, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListSales(ctx context.Context, owner domain.OwnerContext, from, to *time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, owner, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Mock InventoryService ---
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) CreatePurchaseOrder(ctx context.Context, owner domain.OwnerContext, req dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}
func (m *MockInventoryService) ReceivePurchaseOrder(ctx context.Context, owner domain.OwnerContext, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, owner, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}
func (m *MockInventoryService) CancelPurchaseOrder(ctx context.Context, owner domain.OwnerContext, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, owner, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}
func (m *MockInventoryService) ListPurchaseOrders(ctx context.Context, owner domain.OwnerContext) ([]domain.PurchaseOrder, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseOrder), args.Error(1)
}
func (m *MockInventoryService) ListInventory(ctx context.Context, owner domain.OwnerContext) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

var _ portssvc.InventorySvcFacade = (*MockInventoryService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordEntry(ctx context.Context, owner domain.OwnerContext, req dto.RecordEntryRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) Transfer(ctx context.Context, owner domain.OwnerContext, req dto.TransferRequest) ([]domain.Transaction, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) WithdrawProfit(ctx context.Context, owner domain.OwnerContext, req dto.WithdrawProfitRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ReinvestProfit(ctx context.Context, owner domain.OwnerContext, req dto.ReinvestProfitRequest) ([]domain.Transaction, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, owner domain.OwnerContext, from, to *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, owner, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) GetWalletBalances(ctx context.Context, owner domain.OwnerContext) (*domain.WalletBalances, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletBalances), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock ProfitService ---
type MockProfitService struct {
	mock.Mock
}

func (m *MockProfitService) CalculateTotalNetProfit(ctx context.Context, userEmail string) (decimal.Decimal, error) {
	args := m.Called(ctx, userEmail)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockProfitService) CalculateTotalGrossProfit(ctx context.Context, inventory domain.Inventory) (decimal.Decimal, error) {
	args := m.Called(ctx, inventory)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockProfitService) CalculateGrossProfitByDateRange(ctx context.Context, inventory domain.Inventory, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, inventory, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockProfitService) CalculateTotalOperationalExpenses(ctx context.Context, userEmail string) (decimal.Decimal, error) {
	args := m.Called(ctx, userEmail)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.ProfitSvc = (*MockProfitService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetCashFlowSummary(ctx context.Context, userEmail string) (*domain.CashFlowSummary, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowSummary), args.Error(1)
}
func (m *MockReportingService) GetMonthlyCashFlowBreakdown(ctx context.Context, userEmail string) ([]domain.MonthlyCashFlow, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyCashFlow), args.Error(1)
}
func (m *MockReportingService) GetMonthlyCashFlow(ctx context.Context, userEmail string, ym domain.YearMonth) (*domain.MonthlyCashFlow, error) {
	args := m.Called(ctx, userEmail, ym)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyCashFlow), args.Error(1)
}
func (m *MockReportingService) GetProfitSummary(ctx context.Context, userEmail string) (*domain.ProfitSummary, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitSummary), args.Error(1)
}
func (m *MockReportingService) GetMonthlyProfitBreakdown(ctx context.Context, userEmail string) ([]domain.MonthlyProfit, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyProfit), args.Error(1)
}
func (m *MockReportingService) GetMonthlyProfit(ctx context.Context, userEmail string, ym domain.YearMonth) (*domain.MonthlyProfit, error) {
	args := m.Called(ctx, userEmail, ym)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyProfit), args.Error(1)
}
func (m *MockReportingService) ListReportMonths(ctx context.Context, userEmail string) ([]domain.YearMonth, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YearMonth), args.Error(1)
}
func (m *MockReportingService) InvalidateOwner(ctx context.Context, userEmail string) {
	m.Called(ctx, userEmail)
}
func (m *MockReportingService) WarmOwner(ctx context.Context, userEmail string) error {
	args := m.Called(ctx, userEmail)
	return args.Error(0)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)
