package models

import "github.com/shopspring/decimal"

// RoomTypeRecord is one element of the room_types jsonb column.
type RoomTypeRecord struct {
	Name     *string             `json:"name"`
	Capacity *int                `json:"capacity"`
	Rent     decimal.NullDecimal `json:"rent"`
}

// PropertyRecord is a row of the properties table as the store returns it.
// Every column other than id may be null.
type PropertyRecord struct {
	ID         string           `db:"id" json:"id"`
	Name       *string          `db:"name" json:"name"`
	Type       *string          `db:"type" json:"type"`
	Location   *string          `db:"location" json:"location"`
	TotalRooms *int             `db:"total_rooms" json:"total_rooms"`
	TotalBeds  *int             `db:"total_beds" json:"total_beds"`
	Floors     *int             `db:"floors" json:"floors"`
	ManagerID  *string          `db:"manager_id" json:"manager_id"`
	RoomTypes  []RoomTypeRecord `db:"room_types" json:"room_types"`
	AuditFields
}
