package models

import "github.com/shopspring/decimal"

// RoomRecord is a row of the rooms table. There is no status column;
// status is always derived from occupancy.
type RoomRecord struct {
	ID               string              `db:"id" json:"id"`
	Number           *string             `db:"room_number" json:"room_number"`
	PropertyID       *string             `db:"property_id" json:"property_id"`
	Floor            *int                `db:"floor" json:"floor"`
	RoomType         *string             `db:"room_type" json:"room_type"`
	Capacity         *int                `db:"capacity" json:"capacity"`
	Rent             decimal.NullDecimal `db:"rent" json:"rent"`
	UnderMaintenance *bool               `db:"under_maintenance" json:"under_maintenance"`
	AuditFields
}
