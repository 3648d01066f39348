package visibility_test

import (
	"testing"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() visibility.Collections {
	return visibility.Collections{
		Properties: []domain.Property{
			{ID: "p-sun", Name: "Sunrise"},
			{ID: "p-com", Name: "Comfort"},
		},
		Rooms: []domain.Room{
			{ID: "r1", PropertyID: "p-sun", Number: "101"},
			{ID: "r2", PropertyID: "p-sun", Number: "102"},
			{ID: "r3", PropertyID: "p-com", Number: "201"},
		},
		Tenants: []domain.Tenant{
			{ID: "t1", RoomID: "r1", PropertyID: "p-sun"},
			{ID: "t2", RoomID: "r3", PropertyID: "p-com"},
			{ID: "t3", RoomID: "r2"}, // property inherited from room
			{ID: "t4", RoomID: "r3"},
		},
		Users: []domain.Actor{
			{ID: "admin", Role: domain.RoleAdmin},
			{ID: "mgr", Role: domain.RoleManager},
		},
	}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func propertyIDs(c visibility.Collections) []string {
	return ids(c.Properties, func(p domain.Property) string { return p.ID })
}
func roomIDs(c visibility.Collections) []string {
	return ids(c.Rooms, func(r domain.Room) string { return r.ID })
}
func tenantIDs(c visibility.Collections) []string {
	return ids(c.Tenants, func(t domain.Tenant) string { return t.ID })
}

func TestFilter_ManagerScopedToAssignedProperty(t *testing.T) {
	actor := &domain.Actor{ID: "mgr", Role: domain.RoleManager, AssignedProperties: []string{"Sunrise"}}

	got := visibility.Filter(fixture(), actor)

	assert.Equal(t, []string{"p-sun"}, propertyIDs(got))
	assert.Equal(t, []string{"r1", "r2"}, roomIDs(got))
	assert.Equal(t, []string{"t1", "t3"}, tenantIDs(got))
	require.Len(t, got.Users, 1)
	assert.Equal(t, "mgr", got.Users[0].ID)
}

func TestFilter_FullVisibilityRoles(t *testing.T) {
	all := fixture()
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAccountant} {
		t.Run(string(role), func(t *testing.T) {
			// assignment is ignored for these roles
			actor := &domain.Actor{ID: "x", Role: role, AssignedProperties: []string{"Comfort"}}
			got := visibility.Filter(all, actor)
			assert.Equal(t, all.Properties, got.Properties)
			assert.Equal(t, all.Rooms, got.Rooms)
			assert.Equal(t, all.Tenants, got.Tenants)
		})
	}
}

func TestFilter_UsersOnlyForAdmin(t *testing.T) {
	all := fixture()
	admin := visibility.Filter(all, &domain.Actor{ID: "admin", Role: domain.RoleAdmin})
	assert.Len(t, admin.Users, 2)

	accountant := visibility.Filter(all, &domain.Actor{ID: "acct", Role: domain.RoleAccountant})
	assert.Empty(t, accountant.Users)
}

func TestFilter_FailsClosed(t *testing.T) {
	all := fixture()
	cases := map[string]*domain.Actor{
		"nil actor":             nil,
		"manager no assignment": {ID: "m", Role: domain.RoleManager},
		"viewer empty list":     {ID: "v", Role: domain.RoleViewer, AssignedProperties: []string{}},
		"unknown role":          {ID: "u", Role: domain.Role("owner"), AssignedProperties: []string{"Sunrise"}},
		"missing role":          {ID: "u", AssignedProperties: []string{"Sunrise"}},
		"unmatched name":        {ID: "v", Role: domain.RoleViewer, AssignedProperties: []string{"Lakeview"}},
	}

	for name, actor := range cases {
		t.Run(name, func(t *testing.T) {
			got := visibility.Filter(all, actor)
			assert.NotNil(t, got.Properties)
			assert.Empty(t, got.Properties)
			assert.Empty(t, got.Rooms)
			assert.Empty(t, got.Tenants)
		})
	}
}

func TestFilter_DuplicateNamesAreIndistinguishable(t *testing.T) {
	all := fixture()
	all.Properties = append(all.Properties, domain.Property{ID: "p-sun-2", Name: "Sunrise"})
	all.Rooms = append(all.Rooms, domain.Room{ID: "r9", PropertyID: "p-sun-2"})

	actor := &domain.Actor{ID: "v", Role: domain.RoleViewer, AssignedProperties: []string{"Sunrise"}}
	got := visibility.Filter(all, actor)

	assert.ElementsMatch(t, []string{"p-sun", "p-sun-2"}, propertyIDs(got))
	assert.Contains(t, roomIDs(got), "r9")
}

func TestIndex_TenantPropertyID(t *testing.T) {
	all := fixture()
	ix := visibility.NewIndex(all.Properties, all.Rooms)

	assert.Equal(t, "p-sun", ix.TenantPropertyID(domain.Tenant{RoomID: "r2"}))
	assert.Equal(t, "p-com", ix.TenantPropertyID(domain.Tenant{RoomID: "r1", PropertyID: "p-com"}))
	assert.Equal(t, "", ix.TenantPropertyID(domain.Tenant{RoomID: "missing"}))
}
