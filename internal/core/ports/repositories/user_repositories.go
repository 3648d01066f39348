package repositories

import (
	"context"

	"github.com/SscSPs/pg_console/internal/models"
)

// UserReader defines read operations for user data
type UserReader interface {
	// ListUsers retrieves every user row.
	ListUsers(ctx context.Context) ([]models.UserRecord, error)

	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*models.UserRecord, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
}
