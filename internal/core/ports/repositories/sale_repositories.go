package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleReader defines read and aggregate operations on sales.
// Date bounds are optional; from is inclusive and to exclusive.
type SaleReader interface {
	// FindSaleByID loads a sale with its items and payments.
	FindSaleByID(ctx context.Context, inventoryID, saleID string) (*domain.Sale, error)

	// ListSales returns the sales of an inventory, newest first.
	ListSales(ctx context.Context, inventoryID string, from, to *time.Time) ([]domain.Sale, error)

	// ListSaleItems returns every sold line of an inventory.
	ListSaleItems(ctx context.Context, inventoryID string, from, to *time.Time) ([]domain.SaleItem, error)

	// SumGrossProfit returns the sum of TotalItemProfit over the sold lines.
	SumGrossProfit(ctx context.Context, inventoryID string, from, to *time.Time) (decimal.Decimal, error)

	// ListExchanges returns the exchanges of an owner, newest first.
	ListExchanges(ctx context.Context, userID string) ([]domain.ProductExchange, error)
}

// SaleWriter defines write operations on sales.
type SaleWriter interface {
	// FindSaleForUpdate loads a sale and locks it until the unit of work ends.
	FindSaleForUpdate(ctx context.Context, inventoryID, saleID string) (*domain.Sale, error)

	SaveSale(ctx context.Context, sale domain.Sale) error

	// UpdateSale persists the status, item quantities and payment refunds of a sale.
	UpdateSale(ctx context.Context, sale domain.Sale) error

	SaveExchange(ctx context.Context, exchange domain.ProductExchange) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
