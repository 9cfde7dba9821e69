package services

import (
	"context"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/dto"
)

// SaleWriterSvc defines the sale state transitions.
type SaleWriterSvc interface {
	// CreateSale reserves stock, freezes cost bases and books SALE and COGS rows atomically.
	CreateSale(ctx context.Context, owner domain.OwnerContext, req dto.CreateSaleRequest) (*dto.SaleResult, error)

	// CancelSale returns the cancelled lines to stock and books the compensating rows.
	// An empty saleItemIDs cancels every remaining line.
	CancelSale(ctx context.Context, owner domain.OwnerContext, saleID string, saleItemIDs []string) (*dto.SaleResult, error)
}

// SaleReaderSvc defines sale lookups.
type SaleReaderSvc interface {
	GetSale(ctx context.Context, owner domain.OwnerContext, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, owner domain.OwnerContext, from, to *time.Time) ([]domain.Sale, error)
}

// SaleSvcFacade combines all sale-related service interfaces.
type SaleSvcFacade interface {
	SaleWriterSvc
	SaleReaderSvc
}

// ExchangeSvc swaps goods of a past sale for new goods.
type ExchangeSvc interface {
	ExchangeProduct(ctx context.Context, owner domain.OwnerContext, req dto.ExchangeRequest) (*dto.ExchangeResult, error)
	ListExchanges(ctx context.Context, owner domain.OwnerContext) ([]domain.ProductExchange, error)
}
