package domain

// AccountType defines the fundamental accounting type of a ledger account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the five known types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// ChartOfAccount represents one account in the hierarchical chart of accounts.
// Balance is derived from posted journal entry lines and is never stored here.
type ChartOfAccount struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	Code        string      `json:"code"`      // Unique account code, e.g. "1010"
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`     // Immutable after creation
	Category    string      `json:"category"` // Optional grouping, e.g. "Current Assets"
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	IsSystem    bool        `json:"isSystem"` // Built-in accounts protected from deletion
	ParentID    *string     `json:"parentID"` // Nullable self-reference forming a tree
	AuditFields
}
