package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "rooms_property_number_key"}, apperrors.ErrDuplicate},
		{"foreign key violation", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgForeignKeyViolation}), apperrors.ErrConflict},
		{"check violation", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "payments_amount_check"}, apperrors.ErrValidation},
		{"not found passes through", apperrors.ErrNotFound, apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err, "write"), tt.target)
		})
	}

	assert.NoError(t, translateError(nil, "write"))

	cause := errors.New("connection reset")
	err := translateError(cause, "list rooms")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list rooms: connection reset", err.Error())
}

func TestRequireAffected(t *testing.T) {
	assert.NoError(t, requireAffected(pgconn.NewCommandTag("DELETE 1"), "room", "r1"))

	err := requireAffected(pgconn.NewCommandTag("DELETE 0"), "room", "r1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "room r1")
}

func TestCheckBed(t *testing.T) {
	assert.NoError(t, checkBed("r1", 2, 1, false))

	err := checkBed("r1", 2, 2, false)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "full (2/2)")

	assert.ErrorIs(t, checkBed("r1", 3, 0, true), apperrors.ErrConflict)
}
