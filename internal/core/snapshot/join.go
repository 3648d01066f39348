package snapshot

import (
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/fetch"
	"github.com/SscSPs/pg_console/internal/core/visibility"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
)

// Join transforms raw records and links them into the denormalized graph:
// tenants into their rooms, derived room status, tenant balances and the
// per-property room, bed, occupancy and revenue aggregates.
func Join(raw *fetch.Raw) visibility.Collections {
	properties := mapping.ToDomainProperties(raw.Properties)
	rooms := mapping.ToDomainRooms(raw.Rooms)
	tenants := mapping.ToDomainTenants(raw.Tenants)
	users := mapping.ToDomainActors(raw.Users)

	roomProperty := make(map[string]string, len(rooms))
	for _, r := range rooms {
		roomProperty[r.ID] = r.PropertyID
	}

	occupants := make(map[string][]domain.Tenant, len(rooms))
	for i := range tenants {
		t := &tenants[i]
		if t.PropertyID == "" {
			t.PropertyID = roomProperty[t.RoomID]
		}
		occupants[t.RoomID] = append(occupants[t.RoomID], *t)
	}

	roomsByProperty := make(map[string][]domain.Room, len(properties))
	for i := range rooms {
		r := &rooms[i]
		r.Occupants = occupants[r.ID]
		if r.Occupants == nil {
			r.Occupants = []domain.Tenant{}
		}
		r.Status = r.CurrentStatus()
		roomsByProperty[r.PropertyID] = append(roomsByProperty[r.PropertyID], *r)
	}

	tenantsByProperty := make(map[string][]domain.Tenant, len(properties))
	for _, t := range tenants {
		tenantsByProperty[t.PropertyID] = append(tenantsByProperty[t.PropertyID], t)
	}

	for i := range properties {
		p := &properties[i]
		own := roomsByProperty[p.ID]
		if len(own) > 0 {
			p.TotalRoomCount = len(own)
			p.TotalBedCount = 0
			for _, r := range own {
				p.TotalBedCount += r.Capacity
			}
		}
		p.OccupancyRate = domain.OccupancyRate(own)
		p.Revenue = domain.Revenue(tenantsByProperty[p.ID])
	}

	return visibility.Collections{
		Properties: properties,
		Rooms:      rooms,
		Tenants:    tenants,
		Users:      users,
	}
}

// Build joins raw and filters the result for actor.
func Build(raw *fetch.Raw, actor *domain.Actor) *Dataset {
	all := Join(raw)
	ix := visibility.NewIndex(all.Properties, all.Rooms)
	return newDataset(visibility.FilterWithIndex(all, ix, actor))
}
