package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock OwnerSvc ---
type MockOwnerSvc struct {
	mock.Mock
}

var _ portssvc.OwnerSvc = (*MockOwnerSvc)(nil)

func (m *MockOwnerSvc) ResolveOwner(ctx context.Context, userEmail string) (*domain.OwnerContext, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnerContext), args.Error(1)
}

func (m *MockOwnerSvc) ListOwners(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Mock TransactionReader ---
type MockTransactionReader struct {
	mock.Mock
}

var _ portsrepo.TransactionReader = (*MockTransactionReader)(nil)

func (m *MockTransactionReader) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) SumTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionReader) ListYearMonths(ctx context.Context, userID string) ([]domain.YearMonth, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YearMonth), args.Error(1)
}

func TestProfitService_NetProfitUsesProfitFilter(t *testing.T) {
	ctx := context.Background()
	owners := new(MockOwnerSvc)
	ledger := new(MockTransactionReader)
	svc := services.NewProfitService(owners, ledger, nil)

	owner := &domain.OwnerContext{User: domain.User{UserID: "user-1", Email: "a@shop.com"}}
	owners.On("ResolveOwner", ctx, "a@shop.com").Return(owner, nil)
	ledger.On("SumTransactions", ctx, "user-1", domain.ProfitFilter()).Return(decimal.NewFromInt(42), nil)

	got, err := svc.CalculateTotalNetProfit(ctx, "a@shop.com")
	require.NoError(t, err)
	assert.Equal(t, "42", got.String())
	owners.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestProfitService_OperationalExpensesUsesExpenseFilter(t *testing.T) {
	ctx := context.Background()
	owners := new(MockOwnerSvc)
	ledger := new(MockTransactionReader)
	svc := services.NewProfitService(owners, ledger, nil)

	owner := &domain.OwnerContext{User: domain.User{UserID: "user-1"}}
	owners.On("ResolveOwner", ctx, "a@shop.com").Return(owner, nil)
	ledger.On("SumTransactions", ctx, "user-1", domain.OperationalExpenseFilter()).Return(decimal.NewFromInt(-70), nil)

	got, err := svc.CalculateTotalOperationalExpenses(ctx, "a@shop.com")
	require.NoError(t, err)
	assert.Equal(t, "-70", got.String())
}

func TestProfitService_Errors(t *testing.T) {
	ctx := context.Background()
	owners := new(MockOwnerSvc)
	ledger := new(MockTransactionReader)
	svc := services.NewProfitService(owners, ledger, nil)

	owners.On("ResolveOwner", ctx, "ghost@shop.com").Return(nil, apperrors.ErrNotFound)
	_, err := svc.CalculateTotalNetProfit(ctx, "ghost@shop.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	owners.On("ResolveOwner", ctx, "a@shop.com").Return(&domain.OwnerContext{User: domain.User{UserID: "user-1"}}, nil)
	dbErr := errors.New("connection reset")
	ledger.On("SumTransactions", ctx, "user-1", domain.ProfitFilter()).Return(decimal.Zero, dbErr)
	_, err = svc.CalculateTotalNetProfit(ctx, "a@shop.com")
	assert.ErrorIs(t, err, dbErr)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.CalculateGrossProfitByDateRange(ctx, domain.Inventory{InventoryID: "inv"}, day, day)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
