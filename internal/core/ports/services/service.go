package services

// ServiceContainer holds instances of all the application services. It is
// the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Price    PriceSvcFacade
	GoldType GoldTypeSvcFacade
	Currency CurrencySvcFacade
	Settings SettingsSvcFacade
	Auth     AuthSvcFacade
	APIToken APITokenSvc
	Audit    AuditSvc
}
