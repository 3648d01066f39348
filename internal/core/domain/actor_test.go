package domain_test

import (
	"testing"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestActor_Can(t *testing.T) {
	tests := []struct {
		role domain.Role
		cap  domain.Capability
		want bool
	}{
		{domain.RoleAdmin, domain.CapManageProperties, true},
		{domain.RoleAdmin, domain.CapVerifyPayments, false},
		{domain.RoleManager, domain.CapManageOccupancy, true},
		{domain.RoleManager, domain.CapManageProperties, false},
		{domain.RoleManager, domain.CapVerifyPayments, false},
		{domain.RoleAccountant, domain.CapVerifyPayments, true},
		{domain.RoleAccountant, domain.CapRecordPayments, true},
		{domain.RoleAccountant, domain.CapManageOccupancy, false},
		{domain.RoleViewer, domain.CapRead, true},
		{domain.RoleViewer, domain.CapRecordPayments, false},
		{domain.Role("owner"), domain.CapRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			a := &domain.Actor{ID: "u1", Role: tt.role, Status: domain.UserActive}
			assert.Equal(t, tt.want, a.Can(tt.cap))
		})
	}
}

func TestActor_InactiveAndNil(t *testing.T) {
	inactive := &domain.Actor{Role: domain.RoleAdmin, Status: domain.UserInactive}
	assert.False(t, inactive.Can(domain.CapRead))

	var none *domain.Actor
	assert.False(t, none.Can(domain.CapRead))
	assert.False(t, none.HasFullVisibility())
	assert.False(t, none.IsAssignedTo("Sunrise"))
}

func TestActor_IsAssignedTo(t *testing.T) {
	a := &domain.Actor{Role: domain.RoleManager, AssignedProperties: []string{"Sunrise ", "Comfort"}}
	assert.True(t, a.IsAssignedTo("Sunrise"))
	assert.True(t, a.IsAssignedTo("Comfort"))
	assert.False(t, a.IsAssignedTo("sunrise"))
	assert.False(t, a.IsAssignedTo("Lakeview"))
}

func TestTenant_SharesIdentity(t *testing.T) {
	tenant := domain.Tenant{Phone: "98765 43210", NationalID: "abcd-1234"}
	assert.True(t, tenant.SharesIdentity("9876543210", ""))
	assert.True(t, tenant.SharesIdentity("", "ABCD1234"))
	assert.False(t, tenant.SharesIdentity("", ""))
	assert.False(t, tenant.SharesIdentity("111", "zzz"))

	blank := domain.Tenant{}
	assert.False(t, blank.SharesIdentity("", ""))
}

func TestProperty_CapacityChanges(t *testing.T) {
	p := domain.Property{RoomTypes: []domain.RoomTypeSpec{
		{Name: "single", Capacity: 1, Rent: decimal.NewFromInt(9000)},
		{Name: "double", Capacity: 2, Rent: decimal.NewFromInt(7000)},
	}}

	changes := p.CapacityChanges([]domain.RoomTypeSpec{
		{Name: "single", Capacity: 1},
		{Name: "double", Capacity: 3},
		{Name: "dorm", Capacity: 8},
	})

	assert.Equal(t, map[string]int{"double": 3}, changes)
}
