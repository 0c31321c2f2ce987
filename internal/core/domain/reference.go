package domain

// ReferenceType identifies the kind of business event a journal entry or line
// was generated from.
type ReferenceType string

const (
	RefOrderPayment     ReferenceType = "ORDER_PAYMENT"
	RefPurchaseReceipt  ReferenceType = "PURCHASE_RECEIPT"
	RefPayrollRun       ReferenceType = "PAYROLL_RUN"
	RefManualAdjustment ReferenceType = "MANUAL_ADJUSTMENT"
)

// IsValid reports whether the reference type is a known business event kind.
func (t ReferenceType) IsValid() bool {
	switch t {
	case RefOrderPayment, RefPurchaseReceipt, RefPayrollRun, RefManualAdjustment:
		return true
	}
	return false
}

// Reference links a ledger record back to the business record that produced it.
type Reference struct {
	Type ReferenceType `json:"type"`
	ID   string        `json:"id"`
}
