package domain

import "github.com/shopspring/decimal"

// PropertyType restricts who a property houses.
type PropertyType string

const (
	PropertyResidentialMale   PropertyType = "residential-male"
	PropertyResidentialFemale PropertyType = "residential-female"
	PropertyUnisex            PropertyType = "unisex"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyResidentialMale, PropertyResidentialFemale, PropertyUnisex:
		return true
	}
	return false
}

// RoomTypeSpec is one entry of a property's room type catalog.
type RoomTypeSpec struct {
	Name     string          `json:"name"`
	Capacity int             `json:"capacity"`
	Rent     decimal.Decimal `json:"rent"`
}

// Property is a managed building or site ("PG").
// Revenue, OccupancyRate and the room/bed totals are derived on every load.
type Property struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           PropertyType    `json:"type"`
	Location       string          `json:"location"`
	TotalRoomCount int             `json:"totalRoomCount"`
	TotalBedCount  int             `json:"totalBedCount"`
	FloorCount     int             `json:"floorCount"`
	ManagerID      *string         `json:"managerId,omitempty"`
	RoomTypes      []RoomTypeSpec  `json:"roomTypeCatalog"`
	Revenue        decimal.Decimal `json:"revenue"`
	OccupancyRate  float64         `json:"occupancyRate"`
	AuditFields
}

// RoomType looks up a catalog entry by name.
func (p Property) RoomType(name string) (RoomTypeSpec, bool) {
	for _, rt := range p.RoomTypes {
		if rt.Name == name {
			return rt, true
		}
	}
	return RoomTypeSpec{}, false
}

// CapacityChanges returns the room types whose capacity differs between p and updated.
// Types that only exist in one of the two catalogs are ignored.
func (p Property) CapacityChanges(updated []RoomTypeSpec) map[string]int {
	changes := make(map[string]int)
	for _, next := range updated {
		prev, ok := p.RoomType(next.Name)
		if ok && prev.Capacity != next.Capacity {
			changes[next.Name] = next.Capacity
		}
	}
	return changes
}
