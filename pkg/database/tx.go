package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrTxConflict is returned after the bounded retry budget for
	// serialization conflicts is exhausted. Safe to retry with the same inputs.
	ErrTxConflict = errors.New("transaction conflict: too much contention, retry")

	// ErrTxTimeout is returned when the operation exceeded its time budget.
	ErrTxTimeout = errors.New("transaction timed out")
)

// TxOptions bounds the retry loop of RunTx.
type TxOptions struct {
	MaxRetries int           // attempts after the first try
	Timeout    time.Duration // per-operation budget, 0 = none
}

// TxRunner executes a function inside a single database transaction.
// Conflicting transactions are retried with exponential backoff; business
// errors returned by fn abort the transaction without retry.
type TxRunner struct {
	db   PgxIface
	opts TxOptions
	log  *zap.Logger
}

func NewTxRunner(db PgxIface, opts TxOptions, log *zap.Logger) *TxRunner {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &TxRunner{
		db:   db,
		opts: opts,
		log:  log.With(zap.String("component", "tx_runner")),
	}
}

// RunTx runs fn inside a repeatable-read transaction. fn receives the open
// transaction as a Queryer; all reads and writes of one coordinator
// operation must go through it.
func (t *TxRunner) RunTx(ctx context.Context, fn func(q Queryer) error) error {
	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = t.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", ErrTxTimeout, ctxErr)
		}
		if !retryableTxError(err) {
			return err
		}
		if attempt >= t.opts.MaxRetries {
			t.log.Warn("Transaction retries exhausted",
				zap.Int("attempts", attempt+1),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %v", ErrTxConflict, err)
		}

		backoff := backoffDelay(attempt)
		t.log.Debug("Retrying conflicting transaction",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrTxTimeout, ctx.Err())
		}
	}
}

func (t *TxRunner) runOnce(ctx context.Context, fn func(q Queryer) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// retryableTxError reports whether err is a serialization or deadlock
// failure, the only classes worth retrying with the same inputs.
func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return true
	}
	return false
}

func backoffDelay(attempt int) time.Duration {
	base := 25 * time.Millisecond << uint(attempt)
	if base > time.Second {
		base = time.Second
	}
	// jitter so retrying peers do not collide again
	return base + time.Duration(rand.Int63n(int64(base/2)+1))
}
