package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TenantRequest carries the editable fields of a tenant. The property is
// always taken from the room.
type TenantRequest struct {
	Name          string          `json:"name" binding:"required,max=120"`
	Phone         string          `json:"phone" binding:"omitempty,max=20"`
	Email         string          `json:"email" binding:"omitempty,email"`
	NationalID    string          `json:"nationalId" binding:"omitempty,max=40"`
	GuardianName  string          `json:"guardianName" binding:"max=120"`
	GuardianPhone string          `json:"guardianPhone" binding:"omitempty,max=20"`
	Address       string          `json:"address" binding:"max=250"`
	TotalFees     decimal.Decimal `json:"totalFees"`
	Deposit       decimal.Decimal `json:"deposit"`
	StartDate     time.Time       `json:"startDate" binding:"required"`
	EndDate       *time.Time      `json:"endDate"`
	RoomID        string          `json:"roomId" binding:"required"`
}

// MoveTenantRequest names the room a tenant moves to.
type MoveTenantRequest struct {
	RoomID string `json:"roomId" binding:"required"`
}
