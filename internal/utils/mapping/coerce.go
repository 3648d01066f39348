package mapping

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Defaults substituted when the store omits a required field.
const (
	DefaultCapacity = 1
	DefaultFloor    = 1
)

func warnDefaulted(entity, id, field string, raw any, fallback any) {
	slog.Default().Warn("Defaulting malformed field",
		slog.String("entity", entity),
		slog.String("id", id),
		slog.String("field", field),
		slog.Any("raw", raw),
		slog.Any("default", fallback))
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string {
	return &s
}

// optionalString maps "" to nil so empty optional columns are stored as null.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}

// positiveInt returns the value when it is at least 1, otherwise fallback.
// A present but non-positive value is logged.
func positiveInt(entity, id, field string, v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	if *v < 1 {
		warnDefaulted(entity, id, field, *v, fallback)
		return fallback
	}
	return *v
}

func nonNegativeInt(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func decimalOrZero(entity, id, field string, d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	if d.Decimal.IsNegative() {
		warnDefaulted(entity, id, field, d.Decimal.String(), "0")
		return decimal.Zero
	}
	return d.Decimal
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
