package mapping

import (
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/hms-suite/hms_accounting/internal/models"
)

func toModelReference(ref *domain.Reference) (*string, *string) {
	if ref == nil {
		return nil, nil
	}
	refType := string(ref.Type)
	refID := ref.ID
	return &refType, &refID
}

func toDomainReference(refType, refID *string) *domain.Reference {
	if refType == nil || refID == nil {
		return nil
	}
	return &domain.Reference{Type: domain.ReferenceType(*refType), ID: *refID}
}

// ToModelJournalEntry converts a domain JournalEntry to its model form.
// Lines are mapped separately; the entry row does not carry them.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	refType, refID := toModelReference(d.Reference)
	return models.JournalEntry{
		EntryID:          d.EntryID,
		EntryNumber:      d.EntryNumber,
		Description:      d.Description,
		EntryDate:        d.EntryDate,
		PeriodYear:       d.PeriodYear,
		PeriodMonth:      d.PeriodMonth,
		ReferenceType:    refType,
		ReferenceID:      refID,
		IsReversal:       d.IsReversal,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		ReversedBy:       d.ReversedBy,
		ReversalDate:     d.ReversalDate,
		ApprovedBy:       d.ApprovedBy,
		ApprovedAt:       d.ApprovedAt,
		Status:           models.EntryStatus(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to its domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		EntryNumber:      m.EntryNumber,
		Description:      m.Description,
		EntryDate:        m.EntryDate,
		PeriodYear:       m.PeriodYear,
		PeriodMonth:      m.PeriodMonth,
		Reference:        toDomainReference(m.ReferenceType, m.ReferenceID),
		IsReversal:       m.IsReversal,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		ReversedBy:       m.ReversedBy,
		ReversalDate:     m.ReversalDate,
		ApprovedBy:       m.ApprovedBy,
		ApprovedAt:       m.ApprovedAt,
		Status:           domain.EntryStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to its model form.
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	refType, refID := toModelReference(d.Reference)
	return models.JournalEntryLine{
		LineID:        d.LineID,
		EntryID:       d.EntryID,
		AccountID:     d.AccountID,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		Description:   d.Description,
		ReferenceType: refType,
		ReferenceID:   refID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryLine converts a model line to its domain form.
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
		Reference:    toDomainReference(m.ReferenceType, m.ReferenceID),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntryLineSlice converts a slice of model lines to domain lines.
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}
