package repository

import (
	"context"

	"slot-booking/pkg/database"
)

// Atomic runs a unit of work against a Repository bound to one database
// transaction. Returning an error aborts the transaction with no partial
// writes; conflicting transactions are retried by the underlying runner.
type Atomic interface {
	InTx(ctx context.Context, fn func(r *Repository) error) error
}

type txManager struct {
	runner *database.TxRunner
	base   *Repository
}

func NewAtomic(runner *database.TxRunner, base *Repository) Atomic {
	return &txManager{
		runner: runner,
		base:   base,
	}
}

func (t *txManager) InTx(ctx context.Context, fn func(r *Repository) error) error {
	return t.runner.RunTx(ctx, func(q database.Queryer) error {
		return fn(t.base.WithTx(q))
	})
}
