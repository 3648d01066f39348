package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgres error codes mapped to application errors
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// rollbackOnError rolls tx back when *errp is set. Use it deferred.
func (r *BaseRepository) rollbackOnError(ctx context.Context, tx pgx.Tx, errp *error) {
	if *errp == nil {
		return
	}
	if rbErr := r.Rollback(ctx, tx); rbErr != nil {
		slog.ErrorContext(ctx, "Failed to roll back transaction", slog.String("error", rbErr.Error()))
	}
}

// queryAll runs sql and scans every row into T by column name.
func queryAll[T any](ctx context.Context, q querier, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// queryOne scans exactly one row. No row is apperrors.ErrNotFound.
func queryOne[T any](ctx context.Context, q querier, sql string, args ...any) (*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	return out, err
}

// translateError maps constraint violations to application errors and wraps
// everything else with the failed operation.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewDuplicateError(fmt.Sprintf("%s: %s already exists", op, pgErr.ConstraintName))
		case pgForeignKeyViolation:
			return apperrors.NewConflictError(fmt.Sprintf("%s: %s", op, pgErr.Detail))
		case pgCheckViolation:
			return apperrors.NewValidationFailedError(fmt.Sprintf("%s: %s violated", op, pgErr.ConstraintName))
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireAffected turns a zero-row write into apperrors.ErrNotFound.
func requireAffected(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrNotFound)
	}
	return nil
}
