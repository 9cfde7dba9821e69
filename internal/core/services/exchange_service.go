package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type exchangeService struct {
	BaseService
	uow      portsrepo.UnitOfWork
	saleRepo portsrepo.SaleReader
}

// NewExchangeService creates the product exchange workflow.
func NewExchangeService(uow portsrepo.UnitOfWork, saleRepo portsrepo.SaleReader, options ...ServiceOption) portssvc.ExchangeSvc {
	svc := &exchangeService{uow: uow, saleRepo: saleRepo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.ExchangeSvc = (*exchangeService)(nil)

// ExchangeProduct settles returned goods against new goods. The value of the
// returned units pays the new sale as store credit, so no SALE reversal is
// booked for them; only the difference moves money.
func (s *exchangeService) ExchangeProduct(ctx context.Context, owner domain.OwnerContext, req dto.ExchangeRequest) (*dto.ExchangeResult, error) {
	if len(req.ItemsToReturn) == 0 {
		return nil, fmt.Errorf("%w: nothing to return", apperrors.ErrValidation)
	}
	if err := validateSaleItems(req.NewItems); err != nil {
		return nil, err
	}
	extraPayments, err := monetaryPayments(req.NewPayments)
	if err != nil {
		return nil, err
	}

	returns := make(map[string]int, len(req.ItemsToReturn))
	order := make([]string, 0, len(req.ItemsToReturn))
	for _, r := range req.ItemsToReturn {
		if r.QuantityToReturn <= 0 {
			return nil, fmt.Errorf("%w: quantity to return must be positive", apperrors.ErrInvalidQuantity)
		}
		if _, ok := returns[r.SaleItemID]; !ok {
			order = append(order, r.SaleItemID)
		}
		returns[r.SaleItemID] += r.QuantityToReturn
	}

	at := s.Now()
	exchangeID := uuid.NewString()
	reference := domain.RefExchange + exchangeID

	var result dto.ExchangeResult
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		original, err := repos.Sales.FindSaleForUpdate(ctx, owner.Inventory.InventoryID, req.OriginalSaleID)
		if err != nil {
			return fmt.Errorf("sale %s: %w", req.OriginalSaleID, err)
		}
		if !original.Status.CanExchange() {
			return fmt.Errorf("%w: sale %s is %s", apperrors.ErrConflict, original.SaleID, original.Status)
		}

		returnedVariants := make([]string, 0, len(order))
		for _, id := range order {
			line, ok := original.FindItem(id)
			if !ok {
				return fmt.Errorf("sale item %s: %w", id, apperrors.ErrNotFound)
			}
			if returns[id] > line.ActiveQuantity() {
				return fmt.Errorf("%w: returning %d of sale item %s, only %d still sold",
					apperrors.ErrInvalidQuantity, returns[id], id, line.ActiveQuantity())
			}
			returnedVariants = append(returnedVariants, line.ProductVariantID)
		}

		locked, err := repos.Inventory.LockInventoryItems(ctx, owner.Inventory.InventoryID, variantIDs(req.NewItems, returnedVariants))
		if err != nil {
			return fmt.Errorf("failed to lock stock: %w", err)
		}

		// Returned units go back first so they can be sold again in the same exchange.
		returnedAmount, returnedCost := decimal.Zero, decimal.Zero
		for _, id := range order {
			line, _ := original.FindItem(id)
			qty := returns[id]
			q := decimal.NewFromInt(int64(qty))
			returnedAmount = returnedAmount.Add(line.UnitPrice.Mul(q))
			returnedCost = returnedCost.Add(line.CostBasisAtSale.Mul(q))

			line.ReturnedQuantity += qty
			line.TotalItemProfit = line.ActiveProfit()
			if err := restock(locked, owner.Inventory.InventoryID, *line, qty, at); err != nil {
				return err
			}
		}

		newAmount := decimal.Zero
		for _, it := range req.NewItems {
			newAmount = newAmount.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		diff := newAmount.Sub(returnedAmount)
		extraTotal := decimal.Zero
		for _, p := range extraPayments {
			extraTotal = extraTotal.Add(p.Amount)
		}

		switch {
		case diff.IsPositive() && !extraTotal.Equal(diff):
			return fmt.Errorf("%w: difference %s, payments %s", apperrors.ErrPaymentMismatch, diff, extraTotal)
		case !diff.IsPositive() && len(extraPayments) > 0:
			return fmt.Errorf("%w: no payment is due on this exchange", apperrors.ErrPaymentMismatch)
		case diff.IsNegative() && (req.RefundPaymentMethod == nil || !req.RefundPaymentMethod.IsMonetary()):
			return fmt.Errorf("%w: a refund payment method is required", apperrors.ErrValidation)
		}

		payments := make([]domain.SalePayment, 0, len(extraPayments)+1)
		if credit := decimal.Min(returnedAmount, newAmount); credit.IsPositive() {
			payments = append(payments, domain.SalePayment{Method: domain.PaymentStoreCredit, Amount: credit, RefundedAmount: decimal.Zero})
		}
		payments = append(payments, extraPayments...)

		newSale, txns, err := placeSale(owner, locked, req.NewItems, payments, at, reference)
		if err != nil {
			return err
		}

		exchange := domain.ProductExchange{
			ExchangeID:       exchangeID,
			UserID:           owner.User.UserID,
			OriginalSaleID:   original.SaleID,
			NewSaleID:        newSale.SaleID,
			ReturnedAmount:   returnedAmount,
			NewSaleAmount:    newAmount,
			AmountDifference: diff,
			RefundAmount:     decimal.Zero,
			Date:             at,
			AuditFields:      auditFields(owner.User.UserID, at),
		}

		if diff.IsNegative() {
			method := *req.RefundPaymentMethod
			refund, err := entry(owner, method.Wallet(), method, domain.DetailSale, diff, at, reference, "exchange refund")
			if err != nil {
				return err
			}
			txns = append(txns, refund)
			exchange.HasRefund = true
			exchange.RefundAmount = diff.Neg()
			exchange.RefundPaymentMethod = &method
		}
		if returnedCost.IsPositive() {
			reversal, err := entry(owner, domain.WalletBank, "", domain.DetailCOGSReversal, returnedCost, at, reference, "cost reversal of returned items")
			if err != nil {
				return err
			}
			txns = append(txns, reversal)
		}

		original.Status = domain.SaleExchanged
		original.LastUpdatedAt = at
		original.LastUpdatedBy = owner.User.UserID

		if err := repos.Inventory.SaveInventoryItems(ctx, lockedItems(locked)); err != nil {
			return fmt.Errorf("failed to save stock: %w", err)
		}
		if err := repos.Sales.UpdateSale(ctx, *original); err != nil {
			return fmt.Errorf("failed to update original sale: %w", err)
		}
		if err := repos.Sales.SaveSale(ctx, *newSale); err != nil {
			return fmt.Errorf("failed to save new sale: %w", err)
		}
		if err := repos.Sales.SaveExchange(ctx, exchange); err != nil {
			return fmt.Errorf("failed to save exchange: %w", err)
		}
		if err := repos.Ledger.AppendTransactions(ctx, txns); err != nil {
			return fmt.Errorf("failed to append ledger rows: %w", err)
		}

		result = dto.ExchangeResult{Exchange: exchange, OriginalSale: *original, NewSale: *newSale, Transactions: txns}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange products", slog.String("original_sale_id", req.OriginalSaleID))
		return nil, err
	}

	s.afterWrite(ctx, owner)
	s.LogInfo(ctx, "Products exchanged",
		slog.String("exchange_id", exchangeID),
		slog.String("difference", result.Exchange.AmountDifference.String()))
	return &result, nil
}

func (s *exchangeService) ListExchanges(ctx context.Context, owner domain.OwnerContext) ([]domain.ProductExchange, error) {
	return s.saleRepo.ListExchanges(ctx, owner.User.UserID)
}
