package services

// ServiceContainer bundles the application services handed to the HTTP layer.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	BankAccount    BankAccountSvcFacade
	Reconciliation ReconciliationSvcFacade
}
