package dto

import (
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoomTypeRequest is one entry of a property's room type catalog.
type RoomTypeRequest struct {
	Name     string          `json:"name" binding:"required,max=60"`
	Capacity int             `json:"capacity" binding:"required,min=1,max=20"`
	Rent     decimal.Decimal `json:"rent"`
}

// PropertyRequest carries the editable fields of a property. It is used for
// both create and full update.
type PropertyRequest struct {
	Name           string              `json:"name" binding:"required,max=120"`
	Type           domain.PropertyType `json:"type" binding:"required,oneof=residential-male residential-female unisex"`
	Location       string              `json:"location" binding:"max=250"`
	FloorCount     int                 `json:"floorCount" binding:"omitempty,min=1"`
	TotalRoomCount int                 `json:"totalRoomCount" binding:"min=0"`
	TotalBedCount  int                 `json:"totalBedCount" binding:"min=0"`
	ManagerID      *string             `json:"managerId"`
	RoomTypes      []RoomTypeRequest   `json:"roomTypeCatalog" binding:"dive"`
}

// RoomTypeSpecs converts the catalog to domain form.
func (r PropertyRequest) RoomTypeSpecs() []domain.RoomTypeSpec {
	specs := make([]domain.RoomTypeSpec, len(r.RoomTypes))
	for i, rt := range r.RoomTypes {
		specs[i] = domain.RoomTypeSpec{Name: rt.Name, Capacity: rt.Capacity, Rent: rt.Rent}
	}
	return specs
}
