package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/cache"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/core/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/SscSPs/mei_retail_app/internal/platform/config"
	"github.com/SscSPs/mei_retail_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const ownerEmail = "owner@shop.com"

// RetailSuite runs the services against the in-memory store. Every test
// starts with an owner holding 200 BANK and 100 CASH, 20 units of v1 at an
// average cost of 65 and 5 units of v2 at 20. Net profit starts at zero.
type RetailSuite struct {
	suite.Suite
	ctx   context.Context
	now   time.Time
	store *memory.Store
	cache *cache.MemoryReportCache
	svc   *portssvc.ServiceContainer
	owner domain.OwnerContext
}

func (s *RetailSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	s.store = memory.NewStore()
	s.cache = cache.NewMemoryReportCache(func() time.Time { return s.now })

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "mei-test",
		JWTExpiryDuration: time.Hour,
		ReportCacheTTL:    time.Hour,
	}
	s.svc = services.NewServiceContainer(cfg, memory.NewRepositoryProvider(s.store), s.cache,
		services.WithClock(func() time.Time { return s.now }))

	owner, err := s.svc.Auth.RegisterOwner(s.ctx, dto.RegisterRequest{Email: ownerEmail, Name: "Owner", Password: "correct-horse"})
	s.Require().NoError(err)
	s.owner = *owner

	s.invest("1500", domain.PaymentBankTransfer)
	s.invest("200", domain.PaymentCash)
	s.stock("v1", 10, "50", domain.PaymentBankTransfer)
	s.stock("v1", 10, "80", domain.PaymentBankTransfer)
	s.stock("v2", 5, "20", domain.PaymentCash)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *RetailSuite) assertDec(want string, got decimal.Decimal, msgAndArgs ...any) {
	s.T().Helper()
	s.Truef(dec(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func (s *RetailSuite) invest(amount string, method domain.PaymentMethod) {
	_, err := s.svc.Ledger.RecordEntry(s.ctx, s.owner, dto.RecordEntryRequest{
		Detail:        domain.DetailOwnerInvestment,
		Amount:        dec(amount),
		PaymentMethod: method,
	})
	s.Require().NoError(err)
}

func (s *RetailSuite) stock(variant string, qty int, price string, method domain.PaymentMethod) {
	po, err := s.svc.Inventory.CreatePurchaseOrder(s.ctx, s.owner, dto.CreatePurchaseOrderRequest{
		Supplier:      "Acme",
		PaymentMethod: method,
		Items:         []dto.PurchaseOrderItemRequest{{ProductVariantID: variant, Quantity: qty, UnitPrice: dec(price)}},
	})
	s.Require().NoError(err)
	_, err = s.svc.Inventory.ReceivePurchaseOrder(s.ctx, s.owner, po.PurchaseOrderID)
	s.Require().NoError(err)
}

func (s *RetailSuite) sell(items []dto.SaleItemRequest, payments ...dto.PaymentRequest) *dto.SaleResult {
	res, err := s.svc.Sale.CreateSale(s.ctx, s.owner, dto.CreateSaleRequest{Items: items, Payments: payments})
	s.Require().NoError(err)
	return res
}

func line(variant string, qty int, price string) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductVariantID: variant, Quantity: qty, UnitPrice: dec(price)}
}

func pay(method domain.PaymentMethod, amount string) dto.PaymentRequest {
	return dto.PaymentRequest{Method: method, Amount: dec(amount)}
}

func (s *RetailSuite) quantity(variant string) int {
	item, err := s.store.FindInventoryItem(s.ctx, s.owner.Inventory.InventoryID, variant)
	s.Require().NoError(err)
	return item.Quantity
}

func (s *RetailSuite) netProfit() decimal.Decimal {
	v, err := s.svc.Profit.CalculateTotalNetProfit(s.ctx, ownerEmail)
	s.Require().NoError(err)
	return v
}

func (s *RetailSuite) grossProfit() decimal.Decimal {
	v, err := s.svc.Profit.CalculateTotalGrossProfit(s.ctx, s.owner.Inventory)
	s.Require().NoError(err)
	return v
}

func (s *RetailSuite) balances() domain.WalletBalances {
	b, err := s.svc.Ledger.GetWalletBalances(s.ctx, s.owner)
	s.Require().NoError(err)
	return *b
}

func (s *RetailSuite) ledgerSize() int {
	txns, err := s.store.ListTransactions(s.ctx, s.owner.User.UserID, domain.TransactionFilter{})
	s.Require().NoError(err)
	return len(txns)
}
