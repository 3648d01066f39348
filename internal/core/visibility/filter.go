// Package visibility partitions loaded collections into what an actor may see.
//
// Assignment is stored by property name. Names are resolved to property ids
// once, through an Index, and every later check works on ids.
package visibility

import (
	"strings"

	"github.com/SscSPs/pg_console/internal/core/domain"
)

// Collections is a set of joined entity collections.
type Collections struct {
	Properties []domain.Property
	Rooms      []domain.Room
	Tenants    []domain.Tenant
	Users      []domain.Actor
}

// Index resolves property names and room ownership to property ids.
type Index struct {
	idsByName    map[string][]string
	roomProperty map[string]string
}

// NewIndex builds the name and room indexes for one load.
func NewIndex(properties []domain.Property, rooms []domain.Room) *Index {
	ix := &Index{
		idsByName:    make(map[string][]string, len(properties)),
		roomProperty: make(map[string]string, len(rooms)),
	}
	for _, p := range properties {
		key := strings.TrimSpace(p.Name)
		ix.idsByName[key] = append(ix.idsByName[key], p.ID)
	}
	for _, r := range rooms {
		ix.roomProperty[r.ID] = r.PropertyID
	}
	return ix
}

// PropertyIDs resolves names to the set of matching property ids.
// Two properties with the same name both match.
func (ix *Index) PropertyIDs(names []string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, name := range names {
		for _, id := range ix.idsByName[strings.TrimSpace(name)] {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// TenantPropertyID returns the tenant's property, falling back to its room's property.
func (ix *Index) TenantPropertyID(t domain.Tenant) string {
	if t.PropertyID != "" {
		return t.PropertyID
	}
	return ix.roomProperty[t.RoomID]
}

// Filter returns the subset of all the actor may see.
func Filter(all Collections, actor *domain.Actor) Collections {
	return FilterWithIndex(all, NewIndex(all.Properties, all.Rooms), actor)
}

// FilterWithIndex is Filter with a prebuilt index.
//
// Admins and accountants see everything. Managers and viewers see only
// properties assigned to them and the rooms and tenants under those. Any other
// role, a nil actor, or an empty assignment list sees nothing.
func FilterWithIndex(all Collections, ix *Index, actor *domain.Actor) Collections {
	if actor == nil {
		return empty()
	}

	switch actor.Role {
	case domain.RoleAdmin, domain.RoleAccountant:
		return Collections{
			Properties: nonNil(all.Properties),
			Rooms:      nonNil(all.Rooms),
			Tenants:    nonNil(all.Tenants),
			Users:      usersFor(all.Users, actor),
		}
	case domain.RoleManager, domain.RoleViewer:
		// handled below
	default:
		return empty()
	}

	allowed := ix.PropertyIDs(actor.AssignedProperties)
	if len(allowed) == 0 {
		out := empty()
		out.Users = usersFor(all.Users, actor)
		return out
	}

	out := Collections{
		Properties: make([]domain.Property, 0, len(allowed)),
		Rooms:      make([]domain.Room, 0),
		Tenants:    make([]domain.Tenant, 0),
		Users:      usersFor(all.Users, actor),
	}
	for _, p := range all.Properties {
		if _, ok := allowed[p.ID]; ok {
			out.Properties = append(out.Properties, p)
		}
	}
	for _, r := range all.Rooms {
		if _, ok := allowed[r.PropertyID]; ok {
			out.Rooms = append(out.Rooms, r)
		}
	}
	for _, t := range all.Tenants {
		if _, ok := allowed[ix.TenantPropertyID(t)]; ok {
			out.Tenants = append(out.Tenants, t)
		}
	}
	return out
}

// usersFor returns every user for admins and only the actor's own record otherwise.
func usersFor(users []domain.Actor, actor *domain.Actor) []domain.Actor {
	if actor.Role == domain.RoleAdmin {
		return nonNil(users)
	}
	out := make([]domain.Actor, 0, 1)
	for _, u := range users {
		if u.ID == actor.ID {
			out = append(out, u)
		}
	}
	return out
}

func empty() Collections {
	return Collections{
		Properties: []domain.Property{},
		Rooms:      []domain.Room{},
		Tenants:    []domain.Tenant{},
		Users:      []domain.Actor{},
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
