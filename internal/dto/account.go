package dto

import (
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a chart of accounts entry.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Type        domain.AccountType `json:"type" binding:"required,accounttype"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	ParentID    *string            `json:"parentID"`
	IsSystem    bool               `json:"isSystem"`
}

// UpdateAccountRequest is the payload for updating a chart of accounts entry.
// The account type is deliberately absent: it is immutable after creation.
// Setting ParentID to an empty string detaches the account from its parent.
type UpdateAccountRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	ParentID    *string `json:"parentID"`
}

// ListAccountsParams holds query parameters for listing accounts.
type ListAccountsParams struct {
	Type       *string `form:"type"`
	ActiveOnly bool    `form:"activeOnly"`
	Limit      int     `form:"limit"`
	Offset     int     `form:"offset"`
}

// AccountResponse is the API representation of a chart of accounts entry.
type AccountResponse struct {
	AccountID   string  `json:"accountID"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
	IsSystem    bool    `json:"isSystem"`
	ParentID    *string `json:"parentID,omitempty"`
}

// AccountBalanceResponse carries a derived account balance.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.ChartOfAccount) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		Type:        string(a.Type),
		Category:    a.Category,
		Description: a.Description,
		IsActive:    a.IsActive,
		IsSystem:    a.IsSystem,
		ParentID:    a.ParentID,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.ChartOfAccount) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
