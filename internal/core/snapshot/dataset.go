package snapshot

import (
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/visibility"
)

// Dataset is one published, role-filtered view. It is never modified after
// construction; readers may share it freely.
type Dataset struct {
	Properties []domain.Property
	Rooms      []domain.Room
	Tenants    []domain.Tenant
	Users      []domain.Actor

	propertyByID map[string]int
	roomByID     map[string]int
	tenantByID   map[string]int
	paymentOwner map[string]int
}

// EmptyDataset has every collection empty and non-nil.
func EmptyDataset() *Dataset {
	return newDataset(visibility.Collections{
		Properties: []domain.Property{},
		Rooms:      []domain.Room{},
		Tenants:    []domain.Tenant{},
		Users:      []domain.Actor{},
	})
}

func newDataset(c visibility.Collections) *Dataset {
	d := &Dataset{
		Properties:   c.Properties,
		Rooms:        c.Rooms,
		Tenants:      c.Tenants,
		Users:        c.Users,
		propertyByID: make(map[string]int, len(c.Properties)),
		roomByID:     make(map[string]int, len(c.Rooms)),
		tenantByID:   make(map[string]int, len(c.Tenants)),
		paymentOwner: make(map[string]int),
	}
	for i, p := range d.Properties {
		d.propertyByID[p.ID] = i
	}
	for i, r := range d.Rooms {
		d.roomByID[r.ID] = i
	}
	for i, t := range d.Tenants {
		d.tenantByID[t.ID] = i
		for _, p := range t.Payments {
			d.paymentOwner[p.ID] = i
		}
	}
	return d
}

// Property looks up a visible property.
func (d *Dataset) Property(id string) (domain.Property, bool) {
	i, ok := d.propertyByID[id]
	if !ok {
		return domain.Property{}, false
	}
	return d.Properties[i], true
}

// Room looks up a visible room with its occupants.
func (d *Dataset) Room(id string) (domain.Room, bool) {
	i, ok := d.roomByID[id]
	if !ok {
		return domain.Room{}, false
	}
	return d.Rooms[i], true
}

// Tenant looks up a visible tenant.
func (d *Dataset) Tenant(id string) (domain.Tenant, bool) {
	i, ok := d.tenantByID[id]
	if !ok {
		return domain.Tenant{}, false
	}
	return d.Tenants[i], true
}

// Payment looks up a visible payment and the tenant that made it.
func (d *Dataset) Payment(id string) (domain.Payment, domain.Tenant, bool) {
	i, ok := d.paymentOwner[id]
	if !ok {
		return domain.Payment{}, domain.Tenant{}, false
	}
	t := d.Tenants[i]
	p, _ := t.FindPayment(id)
	return p, t, true
}

// RoomsOf returns the visible rooms of a property.
func (d *Dataset) RoomsOf(propertyID string) []domain.Room {
	var out []domain.Room
	for _, r := range d.Rooms {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out
}

// TenantsOf returns the visible tenants of a property.
func (d *Dataset) TenantsOf(propertyID string) []domain.Tenant {
	var out []domain.Tenant
	for _, t := range d.Tenants {
		if t.PropertyID == propertyID {
			out = append(out, t)
		}
	}
	return out
}
