package services

import (
	"context"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/snapshot"
)

// ServiceContainer holds instances of all the application services.
// One container exists per remote store; the session decides which one an
// actor uses.
type ServiceContainer struct {
	Property PropertySvcFacade
	Room     RoomSvcFacade
	Tenant   TenantSvcFacade
	Payment  PaymentSvcFacade
}

// Scope is the per-actor state a mutation runs against: who is acting, the
// dataset they can currently see, and how to refresh it after a write.
type Scope interface {
	Actor() *domain.Actor
	Current() *snapshot.Dataset
	Refresh(ctx context.Context) error
}
