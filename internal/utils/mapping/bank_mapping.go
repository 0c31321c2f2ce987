package mapping

import (
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/hms-suite/hms_accounting/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to its model form.
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		AccountID:      d.AccountID,
		BankName:       d.BankName,
		BranchName:     d.BranchName,
		AccountName:    d.AccountName,
		AccountNumber:  d.AccountNumber,
		IBAN:           d.IBAN,
		SwiftCode:      d.SwiftCode,
		Currency:       d.Currency,
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to its domain form.
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		AccountID:      m.AccountID,
		BankName:       m.BankName,
		BranchName:     m.BranchName,
		AccountName:    m.AccountName,
		AccountNumber:  m.AccountNumber,
		IBAN:           m.IBAN,
		SwiftCode:      m.SwiftCode,
		Currency:       m.Currency,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankReconciliation converts a domain BankReconciliation to its model
// form. Difference is left zero; the column is generated by the database.
func ToModelBankReconciliation(d domain.BankReconciliation) models.BankReconciliation {
	return models.BankReconciliation{
		ReconciliationID: d.ReconciliationID,
		BankAccountID:    d.BankAccountID,
		StatementDate:    d.StatementDate,
		StatementBalance: d.StatementBalance,
		BookBalance:      d.BookBalance,
		Status:           models.ReconciliationStatus(d.Status),
		ReconciledBy:     d.ReconciledBy,
		ReconciledAt:     d.ReconciledAt,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToModelReconciliationEntry converts a domain ReconciliationEntry to its model form.
func ToModelReconciliationEntry(d domain.ReconciliationEntry) models.ReconciliationEntry {
	return models.ReconciliationEntry{
		ReconciliationEntryID: d.ReconciliationEntryID,
		ReconciliationID:      d.ReconciliationID,
		EntryID:               d.EntryID,
		IsCleared:             d.IsCleared,
		ClearedDate:           d.ClearedDate,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankReconciliation converts a model BankReconciliation to its domain form.
func ToDomainBankReconciliation(m models.BankReconciliation) domain.BankReconciliation {
	return domain.BankReconciliation{
		ReconciliationID: m.ReconciliationID,
		BankAccountID:    m.BankAccountID,
		StatementDate:    m.StatementDate,
		StatementBalance: m.StatementBalance,
		BookBalance:      m.BookBalance,
		Status:           domain.ReconciliationStatus(m.Status),
		ReconciledBy:     m.ReconciledBy,
		ReconciledAt:     m.ReconciledAt,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReconciliationEntry converts a model ReconciliationEntry to its domain form.
func ToDomainReconciliationEntry(m models.ReconciliationEntry) domain.ReconciliationEntry {
	return domain.ReconciliationEntry{
		ReconciliationEntryID: m.ReconciliationEntryID,
		ReconciliationID:      m.ReconciliationID,
		EntryID:               m.EntryID,
		IsCleared:             m.IsCleared,
		ClearedDate:           m.ClearedDate,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
