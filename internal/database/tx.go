package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// DBTX is the statement surface shared by *pgxpool.Pool, pgx.Tx and test
// mocks, so repositories work the same inside and outside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxStarter is anything that can open a transaction.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is a DBTX that can also open transactions (a pool or a mock pool).
type Store interface {
	DBTX
	TxStarter
}

// WithTx runs fn inside a single transaction.
//
// The transaction is committed only when fn returns nil. Any error returned
// by fn, or a panic raised inside it, rolls the transaction back before
// WithTx returns (or re-panics). A failed rollback is added to fn's error
// message; the cause stays fn's error. A failed commit is reported as-is: pgx
// already closed the transaction, so no rollback is attempted.
func WithTx(ctx context.Context, db TxStarter, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	finished := false
	defer func() {
		if finished {
			return
		}

		// context.WithoutCancel keeps the rollback alive when ctx was the
		// reason the statement failed.
		rbErr := tx.Rollback(context.WithoutCancel(ctx))
		if rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.WithMessagef(err, "rollback transaction: %v", rbErr)
		}

		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	finished = true
	if err = tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	return nil
}
