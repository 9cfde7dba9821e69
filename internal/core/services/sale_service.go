package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceOption configures the clock and report invalidation of a write service.
type ServiceOption func(*BaseService)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

// WithReportInvalidator drops cached reports after every successful write.
func WithReportInvalidator(inv ReportInvalidator) ServiceOption {
	return func(b *BaseService) {
		b.Invalidator = inv
	}
}

type saleService struct {
	BaseService
	uow      portsrepo.UnitOfWork
	saleRepo portsrepo.SaleReader
}

// NewSaleService creates the sale state machine.
func NewSaleService(uow portsrepo.UnitOfWork, saleRepo portsrepo.SaleReader, options ...ServiceOption) portssvc.SaleSvcFacade {
	svc := &saleService{uow: uow, saleRepo: saleRepo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func (s *saleService) CreateSale(ctx context.Context, owner domain.OwnerContext, req dto.CreateSaleRequest) (*dto.SaleResult, error) {
	if err := validateSaleItems(req.Items); err != nil {
		return nil, err
	}
	payments, err := monetaryPayments(req.Payments)
	if err != nil {
		return nil, err
	}

	at := s.Now()
	if req.Date != nil {
		at = req.Date.UTC()
	}

	var result dto.SaleResult
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		locked, err := repos.Inventory.LockInventoryItems(ctx, owner.Inventory.InventoryID, variantIDs(req.Items, nil))
		if err != nil {
			return fmt.Errorf("failed to lock stock: %w", err)
		}

		sale, txns, err := placeSale(owner, locked, req.Items, payments, at, "")
		if err != nil {
			return err
		}

		if err := repos.Inventory.SaveInventoryItems(ctx, lockedItems(locked)); err != nil {
			return fmt.Errorf("failed to save stock: %w", err)
		}
		if err := repos.Sales.SaveSale(ctx, *sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}
		if err := repos.Ledger.AppendTransactions(ctx, txns); err != nil {
			return fmt.Errorf("failed to append ledger rows: %w", err)
		}
		result = dto.SaleResult{Sale: *sale, Transactions: txns}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create sale", slog.String("inventory_id", owner.Inventory.InventoryID))
		return nil, err
	}

	s.afterWrite(ctx, owner)
	s.LogInfo(ctx, "Sale created",
		slog.String("sale_id", result.Sale.SaleID),
		slog.String("total", result.Sale.TotalAmount.String()),
		slog.Int("ledger_rows", len(result.Transactions)))
	return &result, nil
}

func (s *saleService) CancelSale(ctx context.Context, owner domain.OwnerContext, saleID string, saleItemIDs []string) (*dto.SaleResult, error) {
	at := s.Now()

	var result dto.SaleResult
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		sale, err := repos.Sales.FindSaleForUpdate(ctx, owner.Inventory.InventoryID, saleID)
		if err != nil {
			return fmt.Errorf("sale %s: %w", saleID, err)
		}
		switch {
		case sale.Status == domain.SaleCancelled:
			return fmt.Errorf("sale %s: %w", saleID, apperrors.ErrAlreadyCancelled)
		case !sale.Status.CanCancel():
			return fmt.Errorf("%w: sale %s is %s", apperrors.ErrConflict, saleID, sale.Status)
		}

		targets, err := cancellationTargets(sale, saleItemIDs)
		if err != nil {
			return err
		}

		variants := make([]string, 0, len(targets))
		for _, idx := range targets {
			variants = append(variants, sale.Items[idx].ProductVariantID)
		}
		locked, err := repos.Inventory.LockInventoryItems(ctx, owner.Inventory.InventoryID, uniqueSorted(variants))
		if err != nil {
			return fmt.Errorf("failed to lock stock: %w", err)
		}

		revenue, cost := decimal.Zero, decimal.Zero
		for _, idx := range targets {
			item := &sale.Items[idx]
			qty := item.ActiveQuantity()
			q := decimal.NewFromInt(int64(qty))
			revenue = revenue.Add(item.UnitPrice.Mul(q))
			cost = cost.Add(item.CostBasisAtSale.Mul(q))

			item.CancelledQuantity += qty
			item.TotalItemProfit = item.ActiveProfit()

			if err := restock(locked, owner.Inventory.InventoryID, *item, qty, at); err != nil {
				return err
			}
		}

		creditMethod, err := creditRefundMethod(ctx, repos, owner, sale)
		if err != nil {
			return err
		}
		reference := domain.RefSaleCancel + sale.SaleID
		txns, err := refundRows(owner, sale, revenue, creditMethod, at, reference)
		if err != nil {
			return err
		}
		if cost.IsPositive() {
			reversal, err := entry(owner, domain.WalletBank, "", domain.DetailCOGSReversal, cost, at, reference, "cost reversal of cancelled items")
			if err != nil {
				return err
			}
			txns = append(txns, reversal)
		}

		if sale.HasActiveItems() {
			sale.Status = domain.SalePartiallyCancelled
		} else {
			sale.Status = domain.SaleCancelled
		}
		sale.LastUpdatedAt = at
		sale.LastUpdatedBy = owner.User.UserID

		if err := repos.Inventory.SaveInventoryItems(ctx, lockedItems(locked)); err != nil {
			return fmt.Errorf("failed to save stock: %w", err)
		}
		if err := repos.Sales.UpdateSale(ctx, *sale); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		if err := repos.Ledger.AppendTransactions(ctx, txns); err != nil {
			return fmt.Errorf("failed to append ledger rows: %w", err)
		}
		result = dto.SaleResult{Sale: *sale, Transactions: txns}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel sale", slog.String("sale_id", saleID))
		return nil, err
	}

	s.afterWrite(ctx, owner)
	s.LogInfo(ctx, "Sale cancelled", slog.String("sale_id", saleID), slog.String("status", string(result.Sale.Status)))
	return &result, nil
}

func (s *saleService) GetSale(ctx context.Context, owner domain.OwnerContext, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, owner.Inventory.InventoryID, saleID)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", saleID, err)
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, owner domain.OwnerContext, from, to *time.Time) ([]domain.Sale, error) {
	return s.saleRepo.ListSales(ctx, owner.Inventory.InventoryID, from, to)
}

// cancellationTargets returns the indexes of the lines to cancel.
func cancellationTargets(sale *domain.Sale, saleItemIDs []string) ([]int, error) {
	targets := make([]int, 0, len(sale.Items))
	if len(saleItemIDs) == 0 {
		for i, it := range sale.Items {
			if it.ActiveQuantity() > 0 {
				targets = append(targets, i)
			}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrAlreadyCancelled)
		}
		return targets, nil
	}

	seen := make(map[string]bool, len(saleItemIDs))
	for _, id := range saleItemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		idx := -1
		for i := range sale.Items {
			if sale.Items[i].SaleItemID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("sale item %s: %w", id, apperrors.ErrNotFound)
		}
		if sale.Items[idx].ActiveQuantity() == 0 {
			return nil, fmt.Errorf("sale item %s: %w", id, apperrors.ErrAlreadyCancelled)
		}
		targets = append(targets, idx)
	}
	return targets, nil
}

// creditRefundMethod picks the money method that pays back a store credit
// share: the first monetary payment of the exchanged sale, then the exchange's
// refund method, then the sale's own first monetary payment, then CASH.
func creditRefundMethod(ctx context.Context, repos portsrepo.TxRepositories, owner domain.OwnerContext, sale *domain.Sale) (domain.PaymentMethod, error) {
	if !sale.HasCreditPayment() {
		return "", nil
	}
	exchanges, err := repos.Sales.ListExchanges(ctx, owner.User.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to list exchanges: %w", err)
	}
	for _, ex := range exchanges {
		if ex.NewSaleID != sale.SaleID {
			continue
		}
		original, err := repos.Sales.FindSaleByID(ctx, owner.Inventory.InventoryID, ex.OriginalSaleID)
		if err != nil {
			return "", fmt.Errorf("sale %s: %w", ex.OriginalSaleID, err)
		}
		if m, ok := original.FirstMonetaryMethod(); ok {
			return m, nil
		}
		if ex.RefundPaymentMethod != nil && ex.RefundPaymentMethod.IsMonetary() {
			return *ex.RefundPaymentMethod, nil
		}
		break
	}
	if m, ok := sale.FirstMonetaryMethod(); ok {
		return m, nil
	}
	return domain.PaymentCash, nil
}

// refundRows gives back revenue through the sale's own payments, in payment
// order. Store credit is consumed last and paid back in money through
// creditMethod.
func refundRows(owner domain.OwnerContext, sale *domain.Sale, revenue decimal.Decimal, creditMethod domain.PaymentMethod, at time.Time, reference string) ([]domain.Transaction, error) {
	remaining := revenue
	byMethod := make(map[domain.PaymentMethod]decimal.Decimal)
	order := make([]domain.PaymentMethod, 0)
	book := func(m domain.PaymentMethod, amount decimal.Decimal) {
		if _, ok := byMethod[m]; !ok {
			order = append(order, m)
		}
		byMethod[m] = byMethod[m].Add(amount)
	}

	allocate := func(monetary bool) {
		for i := range sale.Payments {
			p := &sale.Payments[i]
			if p.Method.IsMonetary() != monetary || !remaining.IsPositive() {
				continue
			}
			share := decimal.Min(remaining, p.Refundable())
			if !share.IsPositive() {
				continue
			}
			p.RefundedAmount = p.RefundedAmount.Add(share)
			remaining = remaining.Sub(share)
			if monetary {
				book(p.Method, share)
			} else {
				book(creditMethod, share)
			}
		}
	}
	allocate(true)
	allocate(false)

	txns := make([]domain.Transaction, 0, len(order))
	for _, m := range order {
		t, err := entry(owner, m.Wallet(), m, domain.DetailSale, byMethod[m].Neg(), at, reference, "refund of cancelled items")
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// placeSale builds a sale against already locked stock: reserve, snapshot
// cost, price each line, then one SALE row per monetary method and one COGS row.
func placeSale(owner domain.OwnerContext, locked map[string]*domain.InventoryItem, items []dto.SaleItemRequest, payments []domain.SalePayment, at time.Time, reference string) (*domain.Sale, []domain.Transaction, error) {
	saleID := uuid.NewString()
	if reference == "" {
		reference = domain.RefSale + saleID
	}

	sale := &domain.Sale{
		SaleID:      saleID,
		InventoryID: owner.Inventory.InventoryID,
		UserID:      owner.User.UserID,
		Date:        at,
		Status:      domain.SaleCompleted,
		Items:       make([]domain.SaleItem, 0, len(items)),
		Payments:    make([]domain.SalePayment, 0, len(payments)),
		AuditFields: auditFields(owner.User.UserID, at),
	}

	totalCost := decimal.Zero
	for _, req := range items {
		stock, ok := locked[req.ProductVariantID]
		if !ok {
			return nil, nil, &apperrors.InsufficientStockError{VariantID: req.ProductVariantID, Available: 0, Required: req.Quantity}
		}
		costBasis := stock.SnapshotCostBasis()
		if err := stock.ReserveForSale(req.Quantity); err != nil {
			return nil, nil, err
		}
		stock.LastUpdatedAt = at
		stock.LastUpdatedBy = owner.User.UserID

		line := domain.NewSaleItem(uuid.NewString(), saleID, req.ProductVariantID, req.Quantity, req.UnitPrice, costBasis, at)
		sale.Items = append(sale.Items, line)
		totalCost = totalCost.Add(costBasis.Mul(decimal.NewFromInt(int64(req.Quantity))))
	}
	sale.TotalAmount = domain.ItemsTotal(sale.Items)

	for _, p := range payments {
		p.SalePaymentID = uuid.NewString()
		p.SaleID = saleID
		sale.Payments = append(sale.Payments, p)
	}
	if !domain.PaymentsTotal(sale.Payments).Equal(sale.TotalAmount) {
		return nil, nil, fmt.Errorf("%w: payments %s, items %s", apperrors.ErrPaymentMismatch, domain.PaymentsTotal(sale.Payments), sale.TotalAmount)
	}

	txns := make([]domain.Transaction, 0, len(payments)+1)
	for _, group := range groupByMethod(sale.Payments) {
		t, err := entry(owner, group.Method.Wallet(), group.Method, domain.DetailSale, group.Amount, at, reference, "sale "+saleID)
		if err != nil {
			return nil, nil, err
		}
		txns = append(txns, t)
	}
	if totalCost.IsPositive() {
		t, err := entry(owner, domain.WalletBank, "", domain.DetailCostOfGoodsSold, totalCost.Neg(), at, reference, "cost of goods sold "+saleID)
		if err != nil {
			return nil, nil, err
		}
		txns = append(txns, t)
	}
	return sale, txns, nil
}

// groupByMethod sums monetary payments per method in first-seen order.
func groupByMethod(payments []domain.SalePayment) []domain.SalePayment {
	out := make([]domain.SalePayment, 0, len(payments))
	index := make(map[domain.PaymentMethod]int)
	for _, p := range payments {
		if !p.Method.IsMonetary() {
			continue
		}
		if i, ok := index[p.Method]; ok {
			out[i].Amount = out[i].Amount.Add(p.Amount)
			continue
		}
		index[p.Method] = len(out)
		out = append(out, domain.SalePayment{Method: p.Method, Amount: p.Amount})
	}
	return out
}

// restock puts qty units of a sold line back, recreating the stock row at
// the frozen cost basis if it no longer exists.
func restock(locked map[string]*domain.InventoryItem, inventoryID string, line domain.SaleItem, qty int, at time.Time) error {
	stock, ok := locked[line.ProductVariantID]
	if !ok {
		stock = &domain.InventoryItem{
			InventoryItemID:   uuid.NewString(),
			InventoryID:       inventoryID,
			ProductVariantID:  line.ProductVariantID,
			AverageCost:       line.CostBasisAtSale,
			LastPurchasePrice: line.CostBasisAtSale,
			AuditFields:       domain.AuditFields{CreatedAt: at},
		}
		locked[line.ProductVariantID] = stock
	}
	stock.LastUpdatedAt = at
	return stock.ReturnToStock(qty)
}

func validateSaleItems(items []dto.SaleItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: a sale needs at least one item", apperrors.ErrValidation)
	}
	for _, it := range items {
		if it.ProductVariantID == "" {
			return fmt.Errorf("%w: productVariantID is required", apperrors.ErrValidation)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity of %s must be positive", apperrors.ErrInvalidQuantity, it.ProductVariantID)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: unit price of %s must not be negative", apperrors.ErrValidation, it.ProductVariantID)
		}
	}
	return nil
}

func monetaryPayments(reqs []dto.PaymentRequest) ([]domain.SalePayment, error) {
	out := make([]domain.SalePayment, 0, len(reqs))
	for _, p := range reqs {
		if !p.Method.IsMonetary() {
			return nil, fmt.Errorf("%w: unsupported payment method %q", apperrors.ErrValidation, p.Method)
		}
		if !p.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amounts must be positive", apperrors.ErrValidation)
		}
		out = append(out, domain.SalePayment{Method: p.Method, Amount: p.Amount, RefundedAmount: decimal.Zero})
	}
	return out, nil
}

// variantIDs returns the distinct variants of the lines plus extra, sorted.
func variantIDs(items []dto.SaleItemRequest, extra []string) []string {
	ids := append([]string(nil), extra...)
	for _, it := range items {
		ids = append(ids, it.ProductVariantID)
	}
	return uniqueSorted(ids)
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func lockedItems(locked map[string]*domain.InventoryItem) []domain.InventoryItem {
	keys := make([]string, 0, len(locked))
	for k := range locked {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]domain.InventoryItem, 0, len(keys))
	for _, k := range keys {
		out = append(out, *locked[k])
	}
	return out
}
