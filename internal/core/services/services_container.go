package services

import (
	portscache "github.com/SscSPs/mei_retail_app/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, reportCache portscache.ReportCache, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Owner resolution comes first since every other service works on an owner context
	container.Owner = NewOwnerService(repos.UserRepo, repos.LedgerRepo)
	container.Auth = NewAuthService(cfg, repos.UnitOfWork, repos.UserRepo, container.Owner)

	container.Reporting = NewReportingService(container.Owner, repos.LedgerRepo, repos.SaleRepo, reportCache, cfg.ReportCacheTTL)
	container.Profit = NewProfitService(container.Owner, repos.LedgerRepo, repos.SaleRepo)

	// Every write drops the owner's cached reports
	writeOptions := append([]ServiceOption{WithReportInvalidator(container.Reporting)}, options...)

	container.Sale = NewSaleService(repos.UnitOfWork, repos.SaleRepo, writeOptions...)
	container.Exchange = NewExchangeService(repos.UnitOfWork, repos.SaleRepo, writeOptions...)
	container.Inventory = NewInventoryService(repos.UnitOfWork, repos.InventoryRepo, repos.PurchaseOrderRepo, writeOptions...)
	container.Ledger = NewLedgerService(repos.UnitOfWork, repos.LedgerRepo, writeOptions...)

	return container
}
