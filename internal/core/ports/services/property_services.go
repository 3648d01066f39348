package services

import (
	"context"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/dto"
)

// PropertyWriterSvc defines write operations for properties
type PropertyWriterSvc interface {
	// CreateProperty persists a new property. Admin only.
	CreateProperty(ctx context.Context, scope Scope, req dto.PropertyRequest) (*domain.Property, error)

	// UpdateProperty replaces the editable fields of a property. A changed room
	// type capacity is applied to every room of that type in the same write.
	UpdateProperty(ctx context.Context, scope Scope, propertyID string, req dto.PropertyRequest) (*domain.Property, error)

	// DeleteProperty removes a property that has no rooms left.
	DeleteProperty(ctx context.Context, scope Scope, propertyID string) error
}

// PropertySvcFacade combines all property-related service interfaces
type PropertySvcFacade interface {
	PropertyWriterSvc
}
