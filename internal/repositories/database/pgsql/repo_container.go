package pgsql

import (
	portsrepo "github.com/hms-suite/hms_accounting/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	bankAccountRepo := newPgxBankAccountRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		JournalRepo:        journalRepo,
		BankAccountRepo:    bankAccountRepo,
		ReconciliationRepo: reconciliationRepo,
	}
}
