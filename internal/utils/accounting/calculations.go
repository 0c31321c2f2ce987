package accounting

import (
	"fmt"

	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DirectedBalance applies the sign convention for an account type to raw debit and
// credit totals. Asset and expense accounts grow with debits; liability, equity and
// revenue accounts grow with credits. Only lines of posted entries should be summed
// into the inputs.
func DirectedBalance(accountType domain.AccountType, totalDebits, totalCredits decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return totalDebits.Sub(totalCredits), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return totalCredits.Sub(totalDebits), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// BankBalance derives a bank account's current balance from its opening balance
// and the posted debit and credit totals on the linked ledger account. Bank
// accounts sit on the asset side, so debits increase the balance.
func BankBalance(openingBalance, postedDebits, postedCredits decimal.Decimal) decimal.Decimal {
	return openingBalance.Add(postedDebits).Sub(postedCredits)
}

// LinesBalance checks that the given lines balance within domain.BalanceTolerance.
// Used by the journal service as the posting gate.
func LinesBalance(lines []domain.JournalEntryLine) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}

	if debits.Sub(credits).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return fmt.Errorf("entry is not balanced: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}
	return nil
}
