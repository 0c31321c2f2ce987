package mapping

import (
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	"github.com/hms-suite/hms_accounting/internal/models"
)

// ToModelChartOfAccount converts a domain ChartOfAccount to its model form.
func ToModelChartOfAccount(d domain.ChartOfAccount) models.ChartOfAccount {
	return models.ChartOfAccount{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		Type:        models.AccountType(d.Type),
		Category:    d.Category,
		Description: d.Description,
		IsActive:    d.IsActive,
		IsSystem:    d.IsSystem,
		ParentID:    d.ParentID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChartOfAccount converts a model ChartOfAccount to its domain form.
func ToDomainChartOfAccount(m models.ChartOfAccount) domain.ChartOfAccount {
	return domain.ChartOfAccount{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		Type:        domain.AccountType(m.Type),
		Category:    m.Category,
		Description: m.Description,
		IsActive:    m.IsActive,
		IsSystem:    m.IsSystem,
		ParentID:    m.ParentID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
