// Package memory is an in-process implementation of every repository port.
// It backs the memory storage mode and the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
)

type state struct {
	users          map[string]domain.User
	inventories    map[string]domain.Inventory
	accounts       map[string][]domain.Account
	transactions   []domain.Transaction
	inventoryItems map[string]map[string]domain.InventoryItem
	sales          map[string]domain.Sale
	exchanges      []domain.ProductExchange
	purchaseOrders map[string]domain.PurchaseOrder
}

func newState() *state {
	return &state{
		users:          make(map[string]domain.User),
		inventories:    make(map[string]domain.Inventory),
		accounts:       make(map[string][]domain.Account),
		inventoryItems: make(map[string]map[string]domain.InventoryItem),
		sales:          make(map[string]domain.Sale),
		purchaseOrders: make(map[string]domain.PurchaseOrder),
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.inventories {
		c.inventories[k] = v
	}
	for k, v := range st.accounts {
		c.accounts[k] = append([]domain.Account(nil), v...)
	}
	c.transactions = append([]domain.Transaction(nil), st.transactions...)
	for inv, items := range st.inventoryItems {
		m := make(map[string]domain.InventoryItem, len(items))
		for k, v := range items {
			m[k] = v
		}
		c.inventoryItems[inv] = m
	}
	for k, v := range st.sales {
		c.sales[k] = cloneSale(v)
	}
	c.exchanges = append([]domain.ProductExchange(nil), st.exchanges...)
	for k, v := range st.purchaseOrders {
		c.purchaseOrders[k] = clonePurchaseOrder(v)
	}
	return c
}

// Store keeps all data in memory behind one RWMutex. A unit of work holds
// the write lock for its whole duration and restores a snapshot when it
// fails, so no partial write is ever observable.
type Store struct {
	mu   *sync.RWMutex
	st   *state
	inTx bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{mu: &sync.RWMutex{}, st: newState()}
}

var (
	_ portsrepo.UserRepositoryFacade          = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade        = (*Store)(nil)
	_ portsrepo.SaleRepositoryFacade          = (*Store)(nil)
	_ portsrepo.InventoryRepositoryFacade     = (*Store)(nil)
	_ portsrepo.PurchaseOrderRepositoryFacade = (*Store)(nil)
	_ portsrepo.UnitOfWork                    = (*Store)(nil)
)

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:          s,
		LedgerRepo:        s,
		SaleRepo:          s,
		InventoryRepo:     s,
		PurchaseOrderRepo: s,
		UnitOfWork:        s,
	}
}

func (s *Store) repos() portsrepo.TxRepositories {
	return portsrepo.TxRepositories{
		Users:          s,
		Ledger:         s,
		Sales:          s,
		Inventory:      s,
		PurchaseOrders: s,
	}
}

// WithinTx implements portsrepo.UnitOfWork. Nested calls join the outer unit.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if s.inTx {
		return fn(ctx, s.repos())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	tx := &Store{mu: s.mu, st: s.st, inTx: true}
	if err := fn(ctx, tx.repos()); err != nil {
		*s.st = *snapshot
		return err
	}
	return nil
}

func (s *Store) rlock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func cloneSale(src domain.Sale) domain.Sale {
	dst := src
	dst.Items = append([]domain.SaleItem(nil), src.Items...)
	dst.Payments = append([]domain.SalePayment(nil), src.Payments...)
	return dst
}

func clonePurchaseOrder(src domain.PurchaseOrder) domain.PurchaseOrder {
	dst := src
	dst.Items = append([]domain.PurchaseOrderItem(nil), src.Items...)
	if src.ReceivedAt != nil {
		at := *src.ReceivedAt
		dst.ReceivedAt = &at
	}
	return dst
}
