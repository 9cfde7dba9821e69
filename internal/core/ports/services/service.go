package services

// ServiceContainer holds all service interfaces, injected into the handlers.
type ServiceContainer struct {
	Auth      AuthSvc
	Owner     OwnerSvc
	Sale      SaleSvcFacade
	Exchange  ExchangeSvc
	Inventory InventorySvcFacade
	Ledger    LedgerSvcFacade
	Profit    ProfitSvc
	Reporting ReportingSvc
}
