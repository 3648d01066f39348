package pgsql

import (
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository over dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PropertyRepo: newPgxPropertyRepository(dbPool),
		RoomRepo:     newPgxRoomRepository(dbPool),
		TenantRepo:   newPgxTenantRepository(dbPool),
		PaymentRepo:  newPgxPaymentRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
