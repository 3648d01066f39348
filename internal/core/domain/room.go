package domain

import "github.com/shopspring/decimal"

// RoomStatus is derived from occupancy and never stored.
type RoomStatus string

const (
	RoomVacant      RoomStatus = "vacant"
	RoomPartial     RoomStatus = "partial"
	RoomFull        RoomStatus = "full"
	RoomMaintenance RoomStatus = "maintenance"
)

// Room belongs to one property and holds up to Capacity tenants.
type Room struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	PropertyID       string          `json:"propertyId"`
	Floor            int             `json:"floor"`
	RoomType         string          `json:"roomType"`
	Capacity         int             `json:"capacity"`
	Rent             decimal.Decimal `json:"rent"`
	UnderMaintenance bool            `json:"underMaintenance"`
	Occupants        []Tenant        `json:"occupants"`
	Status           RoomStatus      `json:"status"`
	AuditFields
}

// DeriveRoomStatus is the only place room status is computed.
func DeriveRoomStatus(occupants, capacity int, underMaintenance bool) RoomStatus {
	switch {
	case underMaintenance:
		return RoomMaintenance
	case occupants <= 0:
		return RoomVacant
	case occupants >= capacity:
		return RoomFull
	default:
		return RoomPartial
	}
}

// CurrentStatus derives the status from the live occupant list.
func (r Room) CurrentStatus() RoomStatus {
	return DeriveRoomStatus(len(r.Occupants), r.Capacity, r.UnderMaintenance)
}

// AvailableBeds is never negative.
func (r Room) AvailableBeds() int {
	if free := r.Capacity - len(r.Occupants); free > 0 {
		return free
	}
	return 0
}

// CanAccept reports whether one more tenant may be assigned to the room.
func (r Room) CanAccept() bool {
	return !r.UnderMaintenance && len(r.Occupants) < r.Capacity
}
