package dto

import (
	"time"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReferenceRequest links an entry or line to the business event that produced it.
type ReferenceRequest struct {
	Type string `json:"type" binding:"required,referencetype"`
	ID   string `json:"id" binding:"required"`
}

// ToDomainReference converts a reference request to its domain form.
func (r *ReferenceRequest) ToDomainReference() *domain.Reference {
	if r == nil {
		return nil
	}
	return &domain.Reference{Type: domain.ReferenceType(r.Type), ID: r.ID}
}

// CreateEntryLineRequest is one debit/credit line in a create request.
type CreateEntryLineRequest struct {
	AccountID    string            `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal   `json:"debitAmount"`
	CreditAmount decimal.Decimal   `json:"creditAmount"`
	Description  string            `json:"description"`
	Reference    *ReferenceRequest `json:"reference"`
}

// CreateJournalEntryRequest is the payload for creating a draft journal entry.
// Balance is not enforced at creation, only at posting.
type CreateJournalEntryRequest struct {
	EntryNumber string                   `json:"entryNumber"` // Generated when absent
	Description string                   `json:"description" binding:"required"`
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Reference   *ReferenceRequest        `json:"reference"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReverseEntryRequest is the payload for reversing a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason"`
}

// ListEntriesParams holds query parameters for listing journal entries.
type ListEntriesParams struct {
	Status       *string `form:"status"`
	PeriodYear   *int    `form:"periodYear"`
	PeriodMonth  *int    `form:"periodMonth"`
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
	IncludeLines bool    `form:"includeLines"`
}

// EntryLineResponse is the API representation of a journal entry line.
type EntryLineResponse struct {
	LineID       string            `json:"lineID"`
	EntryID      string            `json:"entryID"`
	AccountID    string            `json:"accountID"`
	DebitAmount  decimal.Decimal   `json:"debitAmount"`
	CreditAmount decimal.Decimal   `json:"creditAmount"`
	Description  string            `json:"description,omitempty"`
	Reference    *domain.Reference `json:"reference,omitempty"`
}

// JournalEntryResponse is the API representation of a journal entry.
type JournalEntryResponse struct {
	EntryID      string              `json:"entryID"`
	EntryNumber  string              `json:"entryNumber"`
	Description  string              `json:"description"`
	EntryDate    time.Time           `json:"entryDate"`
	PeriodYear   int                 `json:"periodYear"`
	PeriodMonth  int                 `json:"periodMonth"`
	Status       string              `json:"status"`
	Reference    *domain.Reference   `json:"reference,omitempty"`
	IsReversal   bool                `json:"isReversal"`
	OriginalID   *string             `json:"originalEntryID,omitempty"`
	ReversingID  *string             `json:"reversingEntryID,omitempty"`
	ApprovedBy   *string             `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time          `json:"approvedAt,omitempty"`
	ReversedBy   *string             `json:"reversedBy,omitempty"`
	ReversalDate *time.Time          `json:"reversalDate,omitempty"`
	CreatedBy    string              `json:"createdBy"`
	CreatedAt    time.Time           `json:"createdAt"`
	Lines        []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListEntryLinesResponse is a page of journal entry lines.
type ListEntryLinesResponse struct {
	Lines     []EntryLineResponse `json:"lines"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain line to its API representation.
func ToEntryLineResponse(l *domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:       l.LineID,
		EntryID:      l.EntryID,
		AccountID:    l.AccountID,
		DebitAmount:  l.DebitAmount,
		CreditAmount: l.CreditAmount,
		Description:  l.Description,
		Reference:    l.Reference,
	}
}

// ToEntryLineResponses converts a slice of domain lines.
func ToEntryLineResponses(lines []domain.JournalEntryLine) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToEntryLineResponse(&lines[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain entry to its API representation.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		Description:  e.Description,
		EntryDate:    e.EntryDate,
		PeriodYear:   e.PeriodYear,
		PeriodMonth:  e.PeriodMonth,
		Status:       string(e.Status),
		Reference:    e.Reference,
		IsReversal:   e.IsReversal,
		OriginalID:   e.OriginalEntryID,
		ReversingID:  e.ReversingEntryID,
		ApprovedBy:   e.ApprovedBy,
		ApprovedAt:   e.ApprovedAt,
		ReversedBy:   e.ReversedBy,
		ReversalDate: e.ReversalDate,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToEntryLineResponses(e.Lines)
	}
	return resp
}
