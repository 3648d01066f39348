package demo

import (
	"context"
	"time"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/shopspring/decimal"
)

const seedActor = "demo-seed"

// Seed writes the demo dataset unless the store already holds users.
// It reports whether anything was written.
func (s *Store) Seed(ctx context.Context, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok, err := s.kv.Get(ctx, KeyUsers); err != nil || ok {
		return false, err
	}

	audit := domain.NewAuditFields(seedActor, now)
	props, rooms, tenants, users := seedData(audit)
	if err := save(ctx, s.kv, KeyProperties, props); err != nil {
		return false, err
	}
	if err := save(ctx, s.kv, KeyRooms, rooms); err != nil {
		return false, err
	}
	if err := save(ctx, s.kv, KeyTenants, tenants); err != nil {
		return false, err
	}
	if err := save(ctx, s.kv, KeyUsers, users); err != nil {
		return false, err
	}
	return true, nil
}

// Reset removes every demo collection.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{KeyProperties, KeyRooms, KeyTenants, KeyUsers} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func seedData(audit domain.AuditFields) ([]domain.Property, []domain.Room, []domain.Tenant, []domain.Actor) {
	rent := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	start := audit.CreatedAt.AddDate(0, -2, 0)

	props := []domain.Property{
		{
			ID: "demo-prop-sunrise", Name: "Sunrise", Type: domain.PropertyUnisex, Location: "Koramangala",
			FloorCount: 3, AuditFields: audit,
			RoomTypes: []domain.RoomTypeSpec{
				{Name: "single", Capacity: 1, Rent: rent(9000)},
				{Name: "double", Capacity: 2, Rent: rent(6500)},
			},
		},
		{
			ID: "demo-prop-comfort", Name: "Comfort", Type: domain.PropertyResidentialFemale, Location: "Indiranagar",
			FloorCount: 2, AuditFields: audit,
			RoomTypes: []domain.RoomTypeSpec{{Name: "triple", Capacity: 3, Rent: rent(5000)}},
		},
	}

	rooms := []domain.Room{
		{ID: "demo-room-101", Number: "101", PropertyID: "demo-prop-sunrise", Floor: 1, RoomType: "double", Capacity: 2, Rent: rent(6500), AuditFields: audit},
		{ID: "demo-room-102", Number: "102", PropertyID: "demo-prop-sunrise", Floor: 1, RoomType: "single", Capacity: 1, Rent: rent(9000), AuditFields: audit},
		{ID: "demo-room-201", Number: "201", PropertyID: "demo-prop-sunrise", Floor: 2, RoomType: "double", Capacity: 2, Rent: rent(6500), UnderMaintenance: true, AuditFields: audit},
		{ID: "demo-room-g1", Number: "G1", PropertyID: "demo-prop-comfort", Floor: 1, RoomType: "triple", Capacity: 3, Rent: rent(5000), AuditFields: audit},
	}

	payment := func(id, tenant string, amount int64, status domain.ApprovalStatus, mode domain.PaymentMode) domain.Payment {
		p := domain.Payment{
			ID: id, TenantID: tenant, Date: start.AddDate(0, 0, 5), Amount: rent(amount), Mode: mode,
			ApprovalStatus: domain.ApprovalPending, RecordedBy: "demo-manager", AuditFields: audit,
		}
		if status.IsTerminal() {
			_ = p.Decide(status, "demo-accountant", audit.CreatedAt)
		}
		return p
	}
	tenant := func(id, name, phone, room, prop string, fees int64, payments ...domain.Payment) domain.Tenant {
		if payments == nil {
			payments = []domain.Payment{}
		}
		t := domain.Tenant{
			ID: id, Name: name, Phone: phone, RoomID: room, PropertyID: prop,
			TotalFees: rent(fees), Deposit: rent(fees / 2), StartDate: start,
			Payments: payments, AuditFields: audit,
		}
		t.Balance = domain.ComputeBalance(t.TotalFees, t.Payments)
		return t
	}
	tenants := []domain.Tenant{
		tenant("demo-tenant-asha", "Asha Rao", "98450 11111", "demo-room-101", "demo-prop-sunrise", 13000,
			payment("demo-pay-1", "demo-tenant-asha", 6500, domain.ApprovalApproved, domain.PaymentBankTransfer),
			payment("demo-pay-2", "demo-tenant-asha", 6500, domain.ApprovalPending, domain.PaymentElectronicTransfer)),
		tenant("demo-tenant-bela", "Bela Shah", "98450 22222", "demo-room-101", "demo-prop-sunrise", 13000,
			payment("demo-pay-3", "demo-tenant-bela", 3000, domain.ApprovalRejected, domain.PaymentCash)),
		tenant("demo-tenant-chen", "Chen Li", "98450 33333", "demo-room-g1", "demo-prop-comfort", 10000,
			payment("demo-pay-4", "demo-tenant-chen", 10000, domain.ApprovalApproved, domain.PaymentCash)),
	}

	user := func(id, name string, role domain.Role, assigned ...string) domain.Actor {
		if assigned == nil {
			assigned = []string{}
		}
		return domain.Actor{
			ID: id, Name: name, Email: id + "@demo.local", Role: role,
			AssignedProperties: assigned, Status: domain.UserActive, IsDemo: true, AuditFields: audit,
		}
	}
	users := []domain.Actor{
		user("demo-admin", "Demo Admin", domain.RoleAdmin),
		user("demo-manager", "Demo Manager", domain.RoleManager, "Sunrise"),
		user("demo-accountant", "Demo Accountant", domain.RoleAccountant),
		user("demo-viewer", "Demo Viewer", domain.RoleViewer, "Comfort"),
	}
	return props, rooms, tenants, users
}
