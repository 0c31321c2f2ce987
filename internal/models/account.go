package models

import "time"

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ChartOfAccount is the DB representation of a ledger account.
type ChartOfAccount struct {
	AccountID   string
	Code        string
	Name        string
	Type        AccountType
	Category    string
	Description string
	IsActive    bool
	IsSystem    bool
	ParentID    *string
	AuditFields
}
