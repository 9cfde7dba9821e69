package services_test

import (
	"testing"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type InventoryServiceSuite struct {
	RetailSuite
}

func TestInventoryServiceSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceSuite))
}

func (s *InventoryServiceSuite) createOrder(variant string, qty int, price string, method domain.PaymentMethod) *domain.PurchaseOrder {
	po, err := s.svc.Inventory.CreatePurchaseOrder(s.ctx, s.owner, dto.CreatePurchaseOrderRequest{
		Supplier:      "Acme",
		PaymentMethod: method,
		Items:         []dto.PurchaseOrderItemRequest{{ProductVariantID: variant, Quantity: qty, UnitPrice: dec(price)}},
	})
	s.Require().NoError(err)
	return po
}

func (s *InventoryServiceSuite) TestReceive_CreatesItemAndPaysSupplier() {
	po := s.createOrder("v3", 4, "12.5", domain.PaymentCash)
	s.Equal(domain.PurchaseOrderPending, po.Status)
	s.assertDec("50", po.TotalAmount)

	received, err := s.svc.Inventory.ReceivePurchaseOrder(s.ctx, s.owner, po.PurchaseOrderID)
	s.Require().NoError(err)
	s.Equal(domain.PurchaseOrderReceived, received.Status)
	s.Require().NotNil(received.ReceivedAt)

	item, err := s.store.FindInventoryItem(s.ctx, s.owner.Inventory.InventoryID, "v3")
	s.Require().NoError(err)
	s.Equal(4, item.Quantity)
	s.assertDec("12.5", item.AverageCost)
	s.assertDec("50", s.balances().Cash)
	s.True(s.netProfit().IsZero())

	_, err = s.svc.Inventory.ReceivePurchaseOrder(s.ctx, s.owner, po.PurchaseOrderID)
	s.ErrorIs(err, apperrors.ErrConflict)
	_, err = s.svc.Inventory.CancelPurchaseOrder(s.ctx, s.owner, po.PurchaseOrderID)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *InventoryServiceSuite) TestReceive_RoundsAverageCost() {
	s.stock("v4", 1, "10", domain.PaymentCash)
	s.stock("v4", 2, "11", domain.PaymentCash)

	item, err := s.store.FindInventoryItem(s.ctx, s.owner.Inventory.InventoryID, "v4")
	s.Require().NoError(err)
	s.Equal("10.6667", item.AverageCost.String())
}

func (s *InventoryServiceSuite) TestReceive_InsufficientFundsKeepsOrderPending() {
	po := s.createOrder("v1", 10, "100", domain.PaymentBankTransfer)

	_, err := s.svc.Inventory.ReceivePurchaseOrder(s.ctx, s.owner, po.PurchaseOrderID)
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Equal(20, s.quantity("v1"))

	orders, err := s.svc.Inventory.ListPurchaseOrders(s.ctx, s.owner)
	s.Require().NoError(err)
	for _, o := range orders {
		if o.PurchaseOrderID == po.PurchaseOrderID {
			s.Equal(domain.PurchaseOrderPending, o.Status)
		}
	}

	cancelled, err := s.svc.Inventory.CancelPurchaseOrder(s.ctx, s.owner, po.PurchaseOrderID)
	s.Require().NoError(err)
	s.Equal(domain.PurchaseOrderCancelled, cancelled.Status)
}

func (s *InventoryServiceSuite) TestCreate_Validation() {
	_, err := s.svc.Inventory.CreatePurchaseOrder(s.ctx, s.owner, dto.CreatePurchaseOrderRequest{
		Supplier: "Acme", PaymentMethod: domain.PaymentStoreCredit,
		Items: []dto.PurchaseOrderItemRequest{{ProductVariantID: "v1", Quantity: 1, UnitPrice: dec("1")}},
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Inventory.CreatePurchaseOrder(s.ctx, s.owner, dto.CreatePurchaseOrderRequest{
		Supplier: "Acme", PaymentMethod: domain.PaymentCash,
		Items: []dto.PurchaseOrderItemRequest{{ProductVariantID: "v1", Quantity: 0, UnitPrice: dec("1")}},
	})
	s.ErrorIs(err, apperrors.ErrInvalidQuantity)
}

func (s *InventoryServiceSuite) TestListInventory() {
	items, err := s.svc.Inventory.ListInventory(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("v1", items[0].ProductVariantID)
	s.Equal("v2", items[1].ProductVariantID)
}
