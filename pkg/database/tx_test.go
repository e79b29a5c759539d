package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestRetryableTxError(t *testing.T) {
	serialization := &pgconn.PgError{Code: "40001"}
	deadlock := &pgconn.PgError{Code: "40P01"}
	uniqueViolation := &pgconn.PgError{Code: "23505"}

	require.True(t, retryableTxError(serialization))
	require.True(t, retryableTxError(deadlock))
	require.True(t, retryableTxError(fmt.Errorf("run reserve: %w", serialization)))

	require.False(t, retryableTxError(uniqueViolation))
	require.False(t, retryableTxError(errors.New("slot is not open for booking")))
	require.False(t, retryableTxError(nil))
}

func TestBackoffDelayGrowsAndCaps(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := backoffDelay(attempt)
		require.GreaterOrEqual(t, d, 25*time.Millisecond)
		// base caps at 1s, jitter adds at most half of the base
		require.LessOrEqual(t, d, 1500*time.Millisecond)
	}

	// later attempts never shrink below the earliest base
	require.GreaterOrEqual(t, backoffDelay(6), backoffDelay(0)-25*time.Millisecond)
}

func TestTxSentinelsAreDistinct(t *testing.T) {
	wrapped := fmt.Errorf("%w: %v", ErrTxConflict, errors.New("40001"))
	require.ErrorIs(t, wrapped, ErrTxConflict)
	require.NotErrorIs(t, wrapped, ErrTxTimeout)
}
