package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type inventoryService struct {
	BaseService
	uow           portsrepo.UnitOfWork
	inventoryRepo portsrepo.InventoryReader
	orderRepo     portsrepo.PurchaseOrderRepositoryFacade
}

// NewInventoryService creates the purchasing and stock service.
func NewInventoryService(uow portsrepo.UnitOfWork, inventoryRepo portsrepo.InventoryReader, orderRepo portsrepo.PurchaseOrderRepositoryFacade, options ...ServiceOption) portssvc.InventorySvcFacade {
	svc := &inventoryService{uow: uow, inventoryRepo: inventoryRepo, orderRepo: orderRepo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreatePurchaseOrder(ctx context.Context, owner domain.OwnerContext, req dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	if strings.TrimSpace(req.Supplier) == "" {
		return nil, fmt.Errorf("%w: supplier is required", apperrors.ErrValidation)
	}
	if !req.PaymentMethod.IsMonetary() {
		return nil, fmt.Errorf("%w: unsupported payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: a purchase order needs at least one item", apperrors.ErrValidation)
	}

	at := s.Now()
	order := domain.PurchaseOrder{
		PurchaseOrderID: uuid.NewString(),
		InventoryID:     owner.Inventory.InventoryID,
		UserID:          owner.User.UserID,
		Supplier:        strings.TrimSpace(req.Supplier),
		Status:          domain.PurchaseOrderPending,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     decimal.Zero,
		Items:           make([]domain.PurchaseOrderItem, 0, len(req.Items)),
		OrderedAt:       at,
		AuditFields:     auditFields(owner.User.UserID, at),
	}
	for _, it := range req.Items {
		if it.ProductVariantID == "" {
			return nil, fmt.Errorf("%w: productVariantID is required", apperrors.ErrValidation)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity of %s must be positive", apperrors.ErrInvalidQuantity, it.ProductVariantID)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price of %s must not be negative", apperrors.ErrValidation, it.ProductVariantID)
		}
		line := domain.PurchaseOrderItem{
			PurchaseOrderItemID: uuid.NewString(),
			PurchaseOrderID:     order.PurchaseOrderID,
			ProductVariantID:    it.ProductVariantID,
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
		}
		order.Items = append(order.Items, line)
		order.TotalAmount = order.TotalAmount.Add(line.LineTotal())
	}

	if err := s.orderRepo.SavePurchaseOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save purchase order", slog.String("supplier", order.Supplier))
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}
	s.LogInfo(ctx, "Purchase order created",
		slog.String("purchase_order_id", order.PurchaseOrderID),
		slog.String("total", order.TotalAmount.String()))
	return &order, nil
}

func (s *inventoryService) ReceivePurchaseOrder(ctx context.Context, owner domain.OwnerContext, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	at := s.Now()

	var received domain.PurchaseOrder
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		order, err := repos.PurchaseOrders.FindPurchaseOrderForUpdate(ctx, owner.Inventory.InventoryID, purchaseOrderID)
		if err != nil {
			return fmt.Errorf("purchase order %s: %w", purchaseOrderID, err)
		}
		if order.Status != domain.PurchaseOrderPending {
			return fmt.Errorf("%w: purchase order %s is %s", apperrors.ErrConflict, purchaseOrderID, order.Status)
		}

		wallet := order.PaymentMethod.Wallet()
		if err := ensureFunds(ctx, repos.Ledger, owner, wallet, order.TotalAmount); err != nil {
			return err
		}

		variants := make([]string, 0, len(order.Items))
		for _, it := range order.Items {
			variants = append(variants, it.ProductVariantID)
		}
		locked, err := repos.Inventory.LockInventoryItems(ctx, owner.Inventory.InventoryID, uniqueSorted(variants))
		if err != nil {
			return fmt.Errorf("failed to lock stock: %w", err)
		}

		for _, it := range order.Items {
			stock, ok := locked[it.ProductVariantID]
			if !ok {
				stock = &domain.InventoryItem{
					InventoryItemID:   uuid.NewString(),
					InventoryID:       owner.Inventory.InventoryID,
					ProductVariantID:  it.ProductVariantID,
					AverageCost:       decimal.Zero,
					LastPurchasePrice: decimal.Zero,
					AuditFields:       auditFields(owner.User.UserID, at),
				}
				locked[it.ProductVariantID] = stock
			}
			if err := stock.ReceiveStock(it.Quantity, it.UnitPrice, at); err != nil {
				return fmt.Errorf("variant %s: %w", it.ProductVariantID, err)
			}
			stock.LastUpdatedAt = at
			stock.LastUpdatedBy = owner.User.UserID
		}

		txns := make([]domain.Transaction, 0, 1)
		if order.TotalAmount.IsPositive() {
			payment, err := entry(owner, wallet, order.PaymentMethod, domain.DetailProductPurchase, order.TotalAmount.Neg(), at,
				domain.RefPurchaseOrder+order.PurchaseOrderID, "purchase from "+order.Supplier)
			if err != nil {
				return err
			}
			txns = append(txns, payment)
		}

		order.Status = domain.PurchaseOrderReceived
		order.ReceivedAt = &at
		order.LastUpdatedAt = at
		order.LastUpdatedBy = owner.User.UserID

		if err := repos.Inventory.SaveInventoryItems(ctx, lockedItems(locked)); err != nil {
			return fmt.Errorf("failed to save stock: %w", err)
		}
		if err := repos.PurchaseOrders.UpdatePurchaseOrderStatus(ctx, *order); err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}
		if len(txns) > 0 {
			if err := repos.Ledger.AppendTransactions(ctx, txns); err != nil {
				return fmt.Errorf("failed to append ledger rows: %w", err)
			}
		}
		received = *order
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to receive purchase order", slog.String("purchase_order_id", purchaseOrderID))
		return nil, err
	}

	s.afterWrite(ctx, owner)
	s.LogInfo(ctx, "Purchase order received", slog.String("purchase_order_id", purchaseOrderID))
	return &received, nil
}

func (s *inventoryService) CancelPurchaseOrder(ctx context.Context, owner domain.OwnerContext, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	at := s.Now()

	var cancelled domain.PurchaseOrder
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		order, err := repos.PurchaseOrders.FindPurchaseOrderForUpdate(ctx, owner.Inventory.InventoryID, purchaseOrderID)
		if err != nil {
			return fmt.Errorf("purchase order %s: %w", purchaseOrderID, err)
		}
		if order.Status != domain.PurchaseOrderPending {
			return fmt.Errorf("%w: purchase order %s is %s", apperrors.ErrConflict, purchaseOrderID, order.Status)
		}
		order.Status = domain.PurchaseOrderCancelled
		order.LastUpdatedAt = at
		order.LastUpdatedBy = owner.User.UserID
		if err := repos.PurchaseOrders.UpdatePurchaseOrderStatus(ctx, *order); err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}
		cancelled = *order
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel purchase order", slog.String("purchase_order_id", purchaseOrderID))
		return nil, err
	}
	return &cancelled, nil
}

func (s *inventoryService) ListPurchaseOrders(ctx context.Context, owner domain.OwnerContext) ([]domain.PurchaseOrder, error) {
	return s.orderRepo.ListPurchaseOrders(ctx, owner.Inventory.InventoryID)
}

func (s *inventoryService) ListInventory(ctx context.Context, owner domain.OwnerContext) ([]domain.InventoryItem, error) {
	return s.inventoryRepo.ListInventoryItems(ctx, owner.Inventory.InventoryID)
}

// ensureFunds locks the owner's accounts and checks the wallet can pay amount.
func ensureFunds(ctx context.Context, ledger portsrepo.LedgerRepositoryFacade, owner domain.OwnerContext, wallet domain.WalletType, amount decimal.Decimal) error {
	if err := ledger.LockAccounts(ctx, owner.User.UserID); err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	balance, err := ledger.SumTransactions(ctx, owner.User.UserID, domain.WalletFilter(wallet))
	if err != nil {
		return fmt.Errorf("failed to read %s balance: %w", wallet, err)
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("%w: %s balance %s, required %s", apperrors.ErrInsufficientFunds, wallet, balance, amount)
	}
	return nil
}
