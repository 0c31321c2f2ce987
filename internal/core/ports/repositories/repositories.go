package repositories

// RepositoryProvider bundles the concrete repositories handed to the service layer.
type RepositoryProvider struct {
	AccountRepo        AccountRepositoryFacade
	JournalRepo        JournalRepositoryFacade
	BankAccountRepo    BankAccountRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
}
