package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/pg_console/internal/apperrors"
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, role, assigned_properties, status, is_demo,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	out, err := queryAll[models.UserRecord](ctx, r.Pool,
		`SELECT `+userColumns+` FROM users ORDER BY name`)
	if err != nil {
		return nil, translateError(err, "list users")
	}
	return out, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*models.UserRecord, error) {
	out, err := queryOne[models.UserRecord](ctx, r.Pool,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find user %s", userID))
	}
	return out, nil
}
