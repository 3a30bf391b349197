package shared

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("share_percent", "must be > 0 and <= 100")
	require.Equal(t, "share_percent: must be > 0 and <= 100", err.Error())
	require.True(t, IsValidation(err))
	require.True(t, IsValidation(fmt.Errorf("create ownership: %w", err)))
	require.False(t, IsNotFound(err))
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := NewNotFoundError("unit", int64(7))
	require.Equal(t, "unit 7 not found", err.Error())
	require.True(t, IsNotFound(err))
	require.False(t, IsValidation(err))
}

func TestIsConstraintViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503"}
	require.True(t, IsConstraintViolation(fmt.Errorf("insert: %w", fk)))
	syntax := &pgconn.PgError{Code: "42601"}
	require.False(t, IsConstraintViolation(syntax))
	require.False(t, IsConstraintViolation(fmt.Errorf("plain")))
}

func TestPeriodParity(t *testing.T) {
	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, ParityOdd, PeriodParity(jan))
	require.Equal(t, ParityEven, PeriodParity(feb))
}

func TestRound2(t *testing.T) {
	require.Equal(t, 33.33, Round2(33.3333))
	require.Equal(t, 0.01, Round2(0.005))
	require.Equal(t, -0.01, Round2(-0.005))
	require.Equal(t, 100.0, Round2(99.999))
}

func TestUserSafeMessage(t *testing.T) {
	require.Equal(t, "unit 3 not found", UserSafeMessage(NewNotFoundError("unit", 3)))
	require.Equal(t, "internal error", UserSafeMessage(fmt.Errorf("pg down")))
	require.Equal(t, "", UserSafeMessage(nil))
}
