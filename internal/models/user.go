package models

// UserRecord is a row of the users table. assigned_properties is a text[]
// of property names.
type UserRecord struct {
	ID                 string   `db:"id" json:"id"`
	Name               *string  `db:"name" json:"name"`
	Email              *string  `db:"email" json:"email"`
	Role               *string  `db:"role" json:"role"`
	AssignedProperties []string `db:"assigned_properties" json:"assigned_properties"`
	Status             *string  `db:"status" json:"status"`
	IsDemo             *bool    `db:"is_demo" json:"is_demo"`
	AuditFields
}
