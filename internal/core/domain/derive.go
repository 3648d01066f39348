package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Balance is the fee position of a tenant. Only approved payments count as paid.
type Balance struct {
	Paid     decimal.Decimal `json:"paid"`
	Pending  decimal.Decimal `json:"pending"` // awaiting verification
	Rejected decimal.Decimal `json:"rejected"`
	Due      decimal.Decimal `json:"due"`
}

// ComputeBalance aggregates payments against totalFees. Due never goes negative.
func ComputeBalance(totalFees decimal.Decimal, payments []Payment) Balance {
	b := Balance{Paid: decimal.Zero, Pending: decimal.Zero, Rejected: decimal.Zero}
	for _, p := range payments {
		switch p.ApprovalStatus {
		case ApprovalApproved:
			b.Paid = b.Paid.Add(p.Amount)
		case ApprovalPending:
			b.Pending = b.Pending.Add(p.Amount)
		case ApprovalRejected:
			b.Rejected = b.Rejected.Add(p.Amount)
		}
	}
	b.Due = totalFees.Sub(b.Paid)
	if b.Due.IsNegative() {
		b.Due = decimal.Zero
	}
	return b
}

// OccupancyRate is occupied beds over total beds as a percentage with two decimals.
// Overfilled rooms count at most their capacity.
func OccupancyRate(rooms []Room) float64 {
	var beds, occupied int
	for _, r := range rooms {
		beds += r.Capacity
		occupied += min(len(r.Occupants), r.Capacity)
	}
	if beds == 0 {
		return 0
	}
	rate := float64(occupied) / float64(beds) * 100
	return math.Round(rate*100) / 100
}

// Revenue sums approved payments over tenants.
func Revenue(tenants []Tenant) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tenants {
		total = total.Add(ComputeBalance(decimal.Zero, t.Payments).Paid)
	}
	return total
}
