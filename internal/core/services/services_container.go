package services

import (
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pg_console/internal/core/ports/services"
)

// NewServiceContainer creates the mutation services for one remote store.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Property: NewPropertyService(repos.PropertyRepo, options...),
		Room:     NewRoomService(repos.RoomRepo, options...),
		Tenant:   NewTenantService(repos.TenantRepo, options...),
		Payment:  NewPaymentService(repos.PaymentRepo, options...),
	}
}
