package repositories

import (
	"context"

	"github.com/SscSPs/pg_console/internal/models"
)

// PropertyReader defines read operations for property data
type PropertyReader interface {
	// ListProperties retrieves every property row.
	ListProperties(ctx context.Context) ([]models.PropertyRecord, error)
}

// PropertyWriter defines write operations for property data
type PropertyWriter interface {
	// InsertProperty persists a new property and returns the stored row.
	InsertProperty(ctx context.Context, property models.PropertyRecord) (*models.PropertyRecord, error)

	// UpdateProperty overwrites an existing property row.
	UpdateProperty(ctx context.Context, property models.PropertyRecord) (*models.PropertyRecord, error)

	// UpdatePropertyWithRoomCapacities updates the property and sets the capacity of every room
	// of each listed room type in that property, atomically.
	UpdatePropertyWithRoomCapacities(ctx context.Context, property models.PropertyRecord, capacityByRoomType map[string]int) (*models.PropertyRecord, error)

	// DeleteProperty removes a property row.
	DeleteProperty(ctx context.Context, propertyID string) error
}

// PropertyRepositoryFacade combines all property-related repository interfaces
type PropertyRepositoryFacade interface {
	PropertyReader
	PropertyWriter
}
