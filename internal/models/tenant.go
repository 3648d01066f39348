package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TenantRecord is a row of the tenants table. Payments are attached by the
// store adapter and are not a column.
type TenantRecord struct {
	ID            string              `db:"id" json:"id"`
	Name          *string             `db:"name" json:"name"`
	Phone         *string             `db:"phone" json:"phone"`
	Email         *string             `db:"email" json:"email"`
	NationalID    *string             `db:"national_id" json:"national_id"`
	GuardianName  *string             `db:"guardian_name" json:"guardian_name"`
	GuardianPhone *string             `db:"guardian_phone" json:"guardian_phone"`
	Address       *string             `db:"address" json:"address"`
	TotalFees     decimal.NullDecimal `db:"total_fees" json:"total_fees"`
	Deposit       decimal.NullDecimal `db:"deposit" json:"deposit"`
	StartDate     *time.Time          `db:"start_date" json:"start_date"`
	EndDate       *time.Time          `db:"end_date" json:"end_date"`
	RoomID        *string             `db:"room_id" json:"room_id"`
	PropertyID    *string             `db:"property_id" json:"property_id"`
	Payments      []PaymentRecord     `db:"-" json:"payments"`
	AuditFields
}
