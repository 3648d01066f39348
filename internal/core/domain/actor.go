package domain

import "strings"

// Role is the single role an actor holds in the console.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RoleViewer     Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAccountant, RoleViewer:
		return true
	}
	return false
}

// UserStatus is the account status of an actor.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// Capability is an action class gated by role.
type Capability string

const (
	CapRead             Capability = "read"
	CapManageProperties Capability = "manage_properties"
	CapManageOccupancy  Capability = "manage_occupancy" // rooms and tenants
	CapRecordPayments   Capability = "record_payments"
	CapVerifyPayments   Capability = "verify_payments"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapRead:             true,
		CapManageProperties: true,
		CapManageOccupancy:  true,
		CapRecordPayments:   true,
	},
	RoleManager: {
		CapRead:            true,
		CapManageOccupancy: true,
		CapRecordPayments:  true,
	},
	RoleAccountant: {
		CapRead:           true,
		CapRecordPayments: true,
		CapVerifyPayments: true,
	},
	RoleViewer: {
		CapRead: true,
	},
}

// Actor is an authenticated user of the console.
// AssignedProperties holds property names, not ids.
type Actor struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Role               Role       `json:"role"`
	AssignedProperties []string   `json:"assignedProperties"`
	Status             UserStatus `json:"status"`
	IsDemo             bool       `json:"isDemo"`
	AuditFields
}

// Can reports whether the actor's role grants c. Inactive actors can do nothing.
func (a *Actor) Can(c Capability) bool {
	if a == nil || a.Status == UserInactive {
		return false
	}
	return roleCapabilities[a.Role][c]
}

// HasFullVisibility is true for roles that see every property.
func (a *Actor) HasFullVisibility() bool {
	if a == nil {
		return false
	}
	return a.Role == RoleAdmin || a.Role == RoleAccountant
}

// IsAssignedTo reports whether propertyName is in the actor's assignment list.
func (a *Actor) IsAssignedTo(propertyName string) bool {
	if a == nil {
		return false
	}
	for _, name := range a.AssignedProperties {
		if strings.TrimSpace(name) == strings.TrimSpace(propertyName) {
			return true
		}
	}
	return false
}
