package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tenant is a resident assigned to exactly one room ("student").
type Tenant struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	NationalID    string          `json:"nationalId"`
	GuardianName  string          `json:"guardianName"`
	GuardianPhone string          `json:"guardianPhone"`
	Address       string          `json:"address"`
	TotalFees     decimal.Decimal `json:"totalFees"`
	Deposit       decimal.Decimal `json:"deposit"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	RoomID        string          `json:"roomId"`
	PropertyID    string          `json:"propertyId"`
	Payments      []Payment       `json:"payments"`
	Balance       Balance         `json:"balance"`
	AuditFields
}

// SharesIdentity reports whether the tenant has the given phone or national id.
// Empty values never match.
func (t Tenant) SharesIdentity(phone, nationalID string) bool {
	if p := normalizeIdentity(phone); p != "" && p == normalizeIdentity(t.Phone) {
		return true
	}
	if n := normalizeIdentity(nationalID); n != "" && n == normalizeIdentity(t.NationalID) {
		return true
	}
	return false
}

// FindPayment returns the payment with id, if present.
func (t Tenant) FindPayment(id string) (Payment, bool) {
	for _, p := range t.Payments {
		if p.ID == id {
			return p, true
		}
	}
	return Payment{}, false
}

func normalizeIdentity(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.ToUpper(s))
}
