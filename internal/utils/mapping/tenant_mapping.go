package mapping

import (
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/models"
)

// ToDomainTenant converts a tenant record, including its payments, to a domain Tenant.
// The balance is computed here so a tenant is never handed out without one.
func ToDomainTenant(m models.TenantRecord) domain.Tenant {
	t := domain.Tenant{
		ID:            m.ID,
		Name:          stringOrEmpty(m.Name),
		Phone:         stringOrEmpty(m.Phone),
		Email:         stringOrEmpty(m.Email),
		NationalID:    stringOrEmpty(m.NationalID),
		GuardianName:  stringOrEmpty(m.GuardianName),
		GuardianPhone: stringOrEmpty(m.GuardianPhone),
		Address:       stringOrEmpty(m.Address),
		TotalFees:     decimalOrZero("tenant", m.ID, "total_fees", m.TotalFees),
		Deposit:       decimalOrZero("tenant", m.ID, "deposit", m.Deposit),
		StartDate:     timeOrZero(m.StartDate),
		EndDate:       m.EndDate,
		RoomID:        stringOrEmpty(m.RoomID),
		PropertyID:    stringOrEmpty(m.PropertyID),
		Payments:      ToDomainPayments(m.Payments),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	for i := range t.Payments {
		if t.Payments[i].TenantID == "" {
			t.Payments[i].TenantID = t.ID
		}
	}
	t.Balance = domain.ComputeBalance(t.TotalFees, t.Payments)
	return t
}

// ToTenantRecord converts a domain Tenant to its wire form, payments included.
func ToTenantRecord(d domain.Tenant) models.TenantRecord {
	rec := models.TenantRecord{
		ID:            d.ID,
		Name:          stringPtr(d.Name),
		Phone:         optionalString(d.Phone),
		Email:         optionalString(d.Email),
		NationalID:    optionalString(d.NationalID),
		GuardianName:  optionalString(d.GuardianName),
		GuardianPhone: optionalString(d.GuardianPhone),
		Address:       optionalString(d.Address),
		TotalFees:     nullDecimal(d.TotalFees),
		Deposit:       nullDecimal(d.Deposit),
		StartDate:     timePtr(d.StartDate),
		EndDate:       d.EndDate,
		RoomID:        stringPtr(d.RoomID),
		PropertyID:    stringPtr(d.PropertyID),
		Payments:      make([]models.PaymentRecord, len(d.Payments)),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	for i, p := range d.Payments {
		rec.Payments[i] = ToPaymentRecord(p)
	}
	return rec
}

// ToDomainTenants converts a slice of records; nil yields an empty slice.
func ToDomainTenants(ms []models.TenantRecord) []domain.Tenant {
	ds := make([]domain.Tenant, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTenant(m)
	}
	return ds
}
