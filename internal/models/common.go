package models

import "time"

// AuditFields mirrors the audit columns present on every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at" json:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by" json:"last_updated_by"`
}
