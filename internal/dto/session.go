package dto

import (
	"time"

	"github.com/SscSPs/pg_console/internal/core/domain"
)

// SessionResponse describes the caller's open session.
type SessionResponse struct {
	User         domain.Actor        `json:"user"`
	Backend      string              `json:"backend"`
	Capabilities []domain.Capability `json:"capabilities"`
	OpenedAt     time.Time           `json:"openedAt"`
}

var allCapabilities = []domain.Capability{
	domain.CapRead,
	domain.CapManageProperties,
	domain.CapManageOccupancy,
	domain.CapRecordPayments,
	domain.CapVerifyPayments,
}

// ToSessionResponse lists what actor may do on backend.
func ToSessionResponse(actor *domain.Actor, backend string, openedAt time.Time) SessionResponse {
	caps := []domain.Capability{}
	for _, c := range allCapabilities {
		if actor.Can(c) {
			caps = append(caps, c)
		}
	}
	return SessionResponse{User: *actor, Backend: backend, Capabilities: caps, OpenedAt: openedAt}
}
