package dto

import (
	"time"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReconciliationRequest is the payload for opening a reconciliation session.
// Book balance is snapshotted server-side from a fresh recompute.
type CreateReconciliationRequest struct {
	BankAccountID    string          `json:"bankAccountID" binding:"required"`
	StatementDate    time.Time       `json:"statementDate" binding:"required"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	Notes            string          `json:"notes"`
}

// AddReconciliationEntryRequest matches one journal entry into a reconciliation.
type AddReconciliationEntryRequest struct {
	EntryID     string     `json:"entryID" binding:"required"`
	IsCleared   bool       `json:"isCleared"`
	ClearedDate *time.Time `json:"clearedDate"`
}

// ClearReconciliationEntryRequest marks a matched entry as cleared.
type ClearReconciliationEntryRequest struct {
	ClearedDate *time.Time `json:"clearedDate"` // Defaults to now when absent
}

// ListReconciliationsParams holds query parameters for listing reconciliations.
type ListReconciliationsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ReconciliationEntryResponse is the API representation of a matched entry.
type ReconciliationEntryResponse struct {
	ReconciliationEntryID string     `json:"reconciliationEntryID"`
	EntryID               string     `json:"entryID"`
	IsCleared             bool       `json:"isCleared"`
	ClearedDate           *time.Time `json:"clearedDate,omitempty"`
}

// ReconciliationResponse is the API representation of a reconciliation session.
type ReconciliationResponse struct {
	ReconciliationID string                        `json:"reconciliationID"`
	BankAccountID    string                        `json:"bankAccountID"`
	StatementDate    time.Time                     `json:"statementDate"`
	StatementBalance decimal.Decimal               `json:"statementBalance"`
	BookBalance      decimal.Decimal               `json:"bookBalance"`
	Difference       decimal.Decimal               `json:"difference"`
	Status           string                        `json:"status"`
	ReconciledBy     *string                       `json:"reconciledBy,omitempty"`
	ReconciledAt     *time.Time                    `json:"reconciledAt,omitempty"`
	Notes            string                        `json:"notes,omitempty"`
	Entries          []ReconciliationEntryResponse `json:"entries,omitempty"`
}

// ListReconciliationsResponse is a page of reconciliations.
type ListReconciliationsResponse struct {
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
	NextToken       *string                  `json:"nextToken,omitempty"`
}

// ToReconciliationEntryResponse converts a domain matched entry.
func ToReconciliationEntryResponse(e *domain.ReconciliationEntry) ReconciliationEntryResponse {
	return ReconciliationEntryResponse{
		ReconciliationEntryID: e.ReconciliationEntryID,
		EntryID:               e.EntryID,
		IsCleared:             e.IsCleared,
		ClearedDate:           e.ClearedDate,
	}
}

// ToReconciliationResponse converts a domain reconciliation to its API representation.
func ToReconciliationResponse(r *domain.BankReconciliation) ReconciliationResponse {
	resp := ReconciliationResponse{
		ReconciliationID: r.ReconciliationID,
		BankAccountID:    r.BankAccountID,
		StatementDate:    r.StatementDate,
		StatementBalance: r.StatementBalance,
		BookBalance:      r.BookBalance,
		Difference:       r.Difference(),
		Status:           string(r.Status),
		ReconciledBy:     r.ReconciledBy,
		ReconciledAt:     r.ReconciledAt,
		Notes:            r.Notes,
	}
	if len(r.Entries) > 0 {
		resp.Entries = make([]ReconciliationEntryResponse, len(r.Entries))
		for i := range r.Entries {
			resp.Entries[i] = ToReconciliationEntryResponse(&r.Entries[i])
		}
	}
	return resp
}

// ToReconciliationResponses converts a slice of domain reconciliations.
func ToReconciliationResponses(recs []domain.BankReconciliation) []ReconciliationResponse {
	responses := make([]ReconciliationResponse, len(recs))
	for i := range recs {
		responses[i] = ToReconciliationResponse(&recs[i])
	}
	return responses
}
