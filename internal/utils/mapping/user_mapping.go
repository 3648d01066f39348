package mapping

import (
	"strings"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/models"
)

// ToDomainActor converts a user record. An unknown role becomes viewer and an
// unknown status inactive, so a malformed row never gains access.
func ToDomainActor(m models.UserRecord) domain.Actor {
	a := domain.Actor{
		ID:                 m.ID,
		Name:               stringOrEmpty(m.Name),
		Email:              stringOrEmpty(m.Email),
		Role:               domain.RoleViewer,
		AssignedProperties: make([]string, 0, len(m.AssignedProperties)),
		Status:             domain.UserInactive,
		IsDemo:             m.IsDemo != nil && *m.IsDemo,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.Role != nil {
		if role := domain.Role(strings.ToLower(*m.Role)); role.Valid() {
			a.Role = role
		} else {
			warnDefaulted("user", m.ID, "role", *m.Role, domain.RoleViewer)
		}
	}
	if m.Status != nil {
		switch s := domain.UserStatus(strings.ToLower(*m.Status)); s {
		case domain.UserActive, domain.UserInactive:
			a.Status = s
		default:
			warnDefaulted("user", m.ID, "status", *m.Status, domain.UserInactive)
		}
	}
	for _, name := range m.AssignedProperties {
		if name = strings.TrimSpace(name); name != "" {
			a.AssignedProperties = append(a.AssignedProperties, name)
		}
	}
	return a
}

// ToUserRecord converts a domain Actor to its wire form.
func ToUserRecord(d domain.Actor) models.UserRecord {
	assigned := make([]string, len(d.AssignedProperties))
	copy(assigned, d.AssignedProperties)
	return models.UserRecord{
		ID:                 d.ID,
		Name:               stringPtr(d.Name),
		Email:              optionalString(d.Email),
		Role:               stringPtr(string(d.Role)),
		AssignedProperties: assigned,
		Status:             stringPtr(string(d.Status)),
		IsDemo:             boolPtr(d.IsDemo),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainActors converts a slice of records; nil yields an empty slice.
func ToDomainActors(ms []models.UserRecord) []domain.Actor {
	ds := make([]domain.Actor, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainActor(m)
	}
	return ds
}
