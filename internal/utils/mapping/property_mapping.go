package mapping

import (
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/shopspring/decimal"
)

// ToDomainProperty converts a property record to a domain Property.
// Revenue and OccupancyRate are left zero; they are derived after the join.
func ToDomainProperty(m models.PropertyRecord) domain.Property {
	p := domain.Property{
		ID:             m.ID,
		Name:           stringOrEmpty(m.Name),
		Type:           domain.PropertyUnisex,
		Location:       stringOrEmpty(m.Location),
		TotalRoomCount: nonNegativeInt(m.TotalRooms),
		TotalBedCount:  nonNegativeInt(m.TotalBeds),
		FloorCount:     positiveInt("property", m.ID, "floors", m.Floors, DefaultFloor),
		ManagerID:      m.ManagerID,
		RoomTypes:      make([]domain.RoomTypeSpec, 0, len(m.RoomTypes)),
		Revenue:        decimal.Zero,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.Type != nil {
		if t := domain.PropertyType(*m.Type); t.Valid() {
			p.Type = t
		} else {
			warnDefaulted("property", m.ID, "type", *m.Type, domain.PropertyUnisex)
		}
	}
	for _, rt := range m.RoomTypes {
		name := stringOrEmpty(rt.Name)
		if name == "" {
			warnDefaulted("property", m.ID, "room_types.name", nil, "skipped")
			continue
		}
		p.RoomTypes = append(p.RoomTypes, domain.RoomTypeSpec{
			Name:     name,
			Capacity: positiveInt("property", m.ID, "room_types.capacity", rt.Capacity, DefaultCapacity),
			Rent:     decimalOrZero("property", m.ID, "room_types.rent", rt.Rent),
		})
	}
	return p
}

// ToPropertyRecord converts a domain Property to its wire form.
// Derived fields are not written.
func ToPropertyRecord(d domain.Property) models.PropertyRecord {
	rec := models.PropertyRecord{
		ID:          d.ID,
		Name:        stringPtr(d.Name),
		Type:        stringPtr(string(d.Type)),
		Location:    stringPtr(d.Location),
		TotalRooms:  intPtr(d.TotalRoomCount),
		TotalBeds:   intPtr(d.TotalBedCount),
		Floors:      intPtr(d.FloorCount),
		ManagerID:   d.ManagerID,
		RoomTypes:   make([]models.RoomTypeRecord, len(d.RoomTypes)),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	for i, rt := range d.RoomTypes {
		rec.RoomTypes[i] = models.RoomTypeRecord{
			Name:     stringPtr(rt.Name),
			Capacity: intPtr(rt.Capacity),
			Rent:     nullDecimal(rt.Rent),
		}
	}
	return rec
}

// ToDomainProperties converts a slice of records; nil yields an empty slice.
func ToDomainProperties(ms []models.PropertyRecord) []domain.Property {
	ds := make([]domain.Property, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProperty(m)
	}
	return ds
}
