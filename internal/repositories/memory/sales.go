package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

func inRange(at time.Time, from, to *time.Time) bool {
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && !at.Before(*to) {
		return false
	}
	return true
}

func (s *Store) FindSaleByID(_ context.Context, inventoryID, saleID string) (*domain.Sale, error) {
	defer s.rlock()()
	return s.findSale(inventoryID, saleID)
}

func (s *Store) findSale(inventoryID, saleID string) (*domain.Sale, error) {
	sale, ok := s.st.sales[saleID]
	if !ok || sale.InventoryID != inventoryID {
		return nil, apperrors.ErrNotFound
	}
	c := cloneSale(sale)
	return &c, nil
}

func (s *Store) ListSales(_ context.Context, inventoryID string, from, to *time.Time) ([]domain.Sale, error) {
	defer s.rlock()()
	out := make([]domain.Sale, 0)
	for _, sale := range s.st.sales {
		if sale.InventoryID == inventoryID && inRange(sale.Date, from, to) {
			out = append(out, cloneSale(sale))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Store) ListSaleItems(ctx context.Context, inventoryID string, from, to *time.Time) ([]domain.SaleItem, error) {
	defer s.rlock()()
	out := make([]domain.SaleItem, 0)
	for _, sale := range s.st.sales {
		if sale.InventoryID != inventoryID {
			continue
		}
		for _, it := range sale.Items {
			if inRange(it.SoldAt, from, to) {
				out = append(out, it)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SoldAt.Before(out[j].SoldAt) })
	return out, nil
}

func (s *Store) SumGrossProfit(ctx context.Context, inventoryID string, from, to *time.Time) (decimal.Decimal, error) {
	items, err := s.ListSaleItems(ctx, inventoryID, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.GrossProfit(items), nil
}

func (s *Store) ListExchanges(_ context.Context, userID string) ([]domain.ProductExchange, error) {
	defer s.rlock()()
	out := make([]domain.ProductExchange, 0)
	for _, ex := range s.st.exchanges {
		if ex.UserID == userID {
			out = append(out, ex)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// FindSaleForUpdate reads the sale; the unit of work lock already serialises writers.
func (s *Store) FindSaleForUpdate(_ context.Context, inventoryID, saleID string) (*domain.Sale, error) {
	defer s.rlock()()
	return s.findSale(inventoryID, saleID)
}

func (s *Store) SaveSale(_ context.Context, sale domain.Sale) error {
	defer s.lock()()
	if _, exists := s.st.sales[sale.SaleID]; exists {
		return apperrors.ErrDuplicate
	}
	s.st.sales[sale.SaleID] = cloneSale(sale)
	return nil
}

func (s *Store) UpdateSale(_ context.Context, sale domain.Sale) error {
	defer s.lock()()
	if _, exists := s.st.sales[sale.SaleID]; !exists {
		return apperrors.ErrNotFound
	}
	s.st.sales[sale.SaleID] = cloneSale(sale)
	return nil
}

func (s *Store) SaveExchange(_ context.Context, exchange domain.ProductExchange) error {
	defer s.lock()()
	s.st.exchanges = append(s.st.exchanges, exchange)
	return nil
}
