package dto

import "github.com/shopspring/decimal"

// RoomRequest carries the editable fields of a room.
type RoomRequest struct {
	Number     string          `json:"number" binding:"required,max=20"`
	PropertyID string          `json:"propertyId" binding:"required"`
	Floor      int             `json:"floor" binding:"omitempty,min=1"`
	RoomType   string          `json:"roomType" binding:"max=60"`
	Capacity   int             `json:"capacity" binding:"required,min=1,max=20"`
	Rent       decimal.Decimal `json:"rent"`
}

// SetMaintenanceRequest toggles the maintenance override of a room.
type SetMaintenanceRequest struct {
	UnderMaintenance *bool `json:"underMaintenance" binding:"required"`
}
