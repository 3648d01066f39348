package mapping

import (
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/models"
)

// ToDomainRoom converts a room record to a domain Room with no occupants.
// Status is derived for the empty room and recomputed once occupants are joined.
func ToDomainRoom(m models.RoomRecord) domain.Room {
	r := domain.Room{
		ID:               m.ID,
		Number:           stringOrEmpty(m.Number),
		PropertyID:       stringOrEmpty(m.PropertyID),
		Floor:            positiveInt("room", m.ID, "floor", m.Floor, DefaultFloor),
		RoomType:         stringOrEmpty(m.RoomType),
		Capacity:         positiveInt("room", m.ID, "capacity", m.Capacity, DefaultCapacity),
		Rent:             decimalOrZero("room", m.ID, "rent", m.Rent),
		UnderMaintenance: m.UnderMaintenance != nil && *m.UnderMaintenance,
		Occupants:        []domain.Tenant{},
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	r.Status = r.CurrentStatus()
	return r
}

// ToRoomRecord converts a domain Room to its wire form. Occupants and status are not written.
func ToRoomRecord(d domain.Room) models.RoomRecord {
	return models.RoomRecord{
		ID:               d.ID,
		Number:           stringPtr(d.Number),
		PropertyID:       stringPtr(d.PropertyID),
		Floor:            intPtr(d.Floor),
		RoomType:         optionalString(d.RoomType),
		Capacity:         intPtr(d.Capacity),
		Rent:             nullDecimal(d.Rent),
		UnderMaintenance: boolPtr(d.UnderMaintenance),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRooms converts a slice of records; nil yields an empty slice.
func ToDomainRooms(ms []models.RoomRecord) []domain.Room {
	ds := make([]domain.Room, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRoom(m)
	}
	return ds
}
