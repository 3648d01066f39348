package services

import (
	"context"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/dto"
)

// TenantWriterSvc defines write operations for tenants
type TenantWriterSvc interface {
	// CreateTenant assigns a new tenant to a room that has a free bed.
	CreateTenant(ctx context.Context, scope Scope, req dto.TenantRequest) (*domain.Tenant, error)

	UpdateTenant(ctx context.Context, scope Scope, tenantID string, req dto.TenantRequest) (*domain.Tenant, error)

	// MoveTenant reassigns a tenant to another room with a free bed.
	MoveTenant(ctx context.Context, scope Scope, tenantID, roomID string) (*domain.Tenant, error)

	DeleteTenant(ctx context.Context, scope Scope, tenantID string) error
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantWriterSvc
}
