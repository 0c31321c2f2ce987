package dto

import (
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest is the payload for registering a bank account against
// an existing chart of accounts entry.
type CreateBankAccountRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	BankName       string          `json:"bankName" binding:"required"`
	BranchName     string          `json:"branchName"`
	AccountName    string          `json:"accountName" binding:"required"`
	AccountNumber  string          `json:"accountNumber" binding:"required"`
	IBAN           string          `json:"iban"`
	SwiftCode      string          `json:"swiftCode"`
	Currency       string          `json:"currency" binding:"required,len=3"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateBankAccountRequest is the payload for editing bank metadata.
type UpdateBankAccountRequest struct {
	BankName    *string `json:"bankName"`
	BranchName  *string `json:"branchName"`
	AccountName *string `json:"accountName"`
	IBAN        *string `json:"iban"`
	SwiftCode   *string `json:"swiftCode"`
	IsActive    *bool   `json:"isActive"`
}

// BankAccountResponse is the API representation of a bank account.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	AccountID      string          `json:"accountID"`
	BankName       string          `json:"bankName"`
	BranchName     string          `json:"branchName,omitempty"`
	AccountName    string          `json:"accountName"`
	AccountNumber  string          `json:"accountNumber"`
	IBAN           string          `json:"iban,omitempty"`
	SwiftCode      string          `json:"swiftCode,omitempty"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}

// BankBalanceResponse carries the result of an explicit balance recomputation.
type BankBalanceResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// ToBankAccountResponse converts a domain bank account to its API representation.
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  b.BankAccountID,
		AccountID:      b.AccountID,
		BankName:       b.BankName,
		BranchName:     b.BranchName,
		AccountName:    b.AccountName,
		AccountNumber:  b.AccountNumber,
		IBAN:           b.IBAN,
		SwiftCode:      b.SwiftCode,
		Currency:       b.Currency,
		OpeningBalance: b.OpeningBalance,
		CurrentBalance: b.CurrentBalance,
		IsActive:       b.IsActive,
	}
}

// ToBankAccountResponses converts a slice of domain bank accounts.
func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	responses := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToBankAccountResponse(&accounts[i])
	}
	return responses
}
