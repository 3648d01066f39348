package domain_test

import (
	"testing"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveRoomStatus(t *testing.T) {
	tests := []struct {
		name        string
		occupants   int
		capacity    int
		maintenance bool
		want        domain.RoomStatus
	}{
		{name: "empty room is vacant", occupants: 0, capacity: 3, want: domain.RoomVacant},
		{name: "some beds taken is partial", occupants: 1, capacity: 3, want: domain.RoomPartial},
		{name: "all beds taken is full", occupants: 3, capacity: 3, want: domain.RoomFull},
		{name: "overfilled is still full", occupants: 4, capacity: 3, want: domain.RoomFull},
		{name: "maintenance overrides occupancy", occupants: 2, capacity: 3, maintenance: true, want: domain.RoomMaintenance},
		{name: "maintenance overrides vacant", occupants: 0, capacity: 1, maintenance: true, want: domain.RoomMaintenance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DeriveRoomStatus(tt.occupants, tt.capacity, tt.maintenance))
		})
	}
}

func TestDeriveRoomStatus_Exhaustive(t *testing.T) {
	for capacity := 1; capacity <= 6; capacity++ {
		for n := 0; n <= capacity+2; n++ {
			got := domain.DeriveRoomStatus(n, capacity, false)
			assert.Equal(t, n >= capacity, got == domain.RoomFull, "n=%d cap=%d", n, capacity)
			assert.Equal(t, n == 0, got == domain.RoomVacant, "n=%d cap=%d", n, capacity)
			if n > 0 && n < capacity {
				assert.Equal(t, domain.RoomPartial, got)
			}
		}
	}
}

func TestRoom_CanAccept(t *testing.T) {
	room := domain.Room{Capacity: 2, Occupants: []domain.Tenant{{ID: "t1"}}}
	assert.True(t, room.CanAccept())
	assert.Equal(t, 1, room.AvailableBeds())

	room.Occupants = append(room.Occupants, domain.Tenant{ID: "t2"})
	assert.False(t, room.CanAccept())
	assert.Equal(t, domain.RoomFull, room.CurrentStatus())

	room = domain.Room{Capacity: 2, UnderMaintenance: true}
	assert.False(t, room.CanAccept())
	assert.Equal(t, 2, room.AvailableBeds())
}

func TestComputeBalance(t *testing.T) {
	payments := []domain.Payment{
		{Amount: decimal.NewFromInt(100), ApprovalStatus: domain.ApprovalApproved},
		{Amount: decimal.NewFromInt(50), ApprovalStatus: domain.ApprovalPending},
		{Amount: decimal.NewFromInt(30), ApprovalStatus: domain.ApprovalRejected},
	}

	b := domain.ComputeBalance(decimal.NewFromInt(200), payments)

	assert.True(t, decimal.NewFromInt(100).Equal(b.Paid), "paid=%s", b.Paid)
	assert.True(t, decimal.NewFromInt(50).Equal(b.Pending), "pending=%s", b.Pending)
	assert.True(t, decimal.NewFromInt(30).Equal(b.Rejected), "rejected=%s", b.Rejected)
	assert.True(t, decimal.NewFromInt(100).Equal(b.Due), "due=%s", b.Due)
}

func TestComputeBalance_OverpaidClampsDue(t *testing.T) {
	payments := []domain.Payment{
		{Amount: decimal.NewFromInt(250), ApprovalStatus: domain.ApprovalApproved},
	}
	b := domain.ComputeBalance(decimal.NewFromInt(200), payments)
	assert.True(t, b.Due.IsZero())

	empty := domain.ComputeBalance(decimal.NewFromInt(200), nil)
	assert.True(t, decimal.NewFromInt(200).Equal(empty.Due))
	assert.True(t, empty.Paid.IsZero())
}

func TestOccupancyRate(t *testing.T) {
	rooms := []domain.Room{
		{Capacity: 2, Occupants: []domain.Tenant{{ID: "a"}, {ID: "b"}}},
		{Capacity: 3, Occupants: []domain.Tenant{{ID: "c"}}},
		{Capacity: 1, Occupants: []domain.Tenant{{ID: "d"}, {ID: "e"}}},
	}
	// 2 + 1 + 1 (capped) of 6 beds
	assert.InDelta(t, 66.67, domain.OccupancyRate(rooms), 0.001)
	assert.Equal(t, 0.0, domain.OccupancyRate(nil))
}

func TestRevenue(t *testing.T) {
	tenants := []domain.Tenant{
		{Payments: []domain.Payment{
			{Amount: decimal.NewFromInt(100), ApprovalStatus: domain.ApprovalApproved},
			{Amount: decimal.NewFromInt(40), ApprovalStatus: domain.ApprovalPending},
		}},
		{Payments: []domain.Payment{
			{Amount: decimal.NewFromInt(60), ApprovalStatus: domain.ApprovalApproved},
		}},
	}
	assert.True(t, decimal.NewFromInt(160).Equal(domain.Revenue(tenants)))
}
