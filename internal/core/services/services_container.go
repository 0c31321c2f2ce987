package services

import (
	portsrepo "github.com/hms-suite/hms_accounting/internal/core/ports/repositories"
	portssvc "github.com/hms-suite/hms_accounting/internal/core/ports/services"
)

// NewServiceContainer wires all application services over the repository provider.
// The journal service validates entry lines through the account service so both
// share one set of account lookup semantics.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	return &portssvc.ServiceContainer{
		Account:        accountSvc,
		Journal:        NewJournalService(repos.JournalRepo, accountSvc),
		BankAccount:    NewBankAccountService(repos.BankAccountRepo, repos.AccountRepo),
		Reconciliation: NewReconciliationService(repos.ReconciliationRepo, repos.BankAccountRepo, repos.JournalRepo),
	}
}
