// Package txmanager runs callbacks inside a database transaction on top
// of a metrics-wrapped pool (pkg/dbmetrics), retrying automatically when
// Postgres reports a serialization failure under SERIALIZABLE isolation.
package txmanager

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/tutorly/booking-engine/pkg/dbmetrics"
)

// serializationFailure is the Postgres SQLSTATE for a transaction that
// lost a serializable-isolation race and must be retried from scratch.
const serializationFailure = "40001"

// maxSerializableRetries bounds how many times DoSerializable re-runs
// fn after a serialization failure before giving up.
const maxSerializableRetries = 3

// txBeginner is satisfied by *dbmetrics.DB.
type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs callbacks against a metrics-wrapped pool.
type TransactionManager struct {
	db txBeginner
}

// NewTransactionManager builds a TransactionManager over a metrics-wrapped pool.
func NewTransactionManager(db txBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do runs fn inside a READ COMMITTED transaction.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, sql.LevelDefault, false, fn)
}

// DoReadOnly runs fn inside a read-only transaction.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, sql.LevelDefault, true, fn)
}

// DoSerializable runs fn inside a SERIALIZABLE transaction, retrying the
// whole callback when Postgres aborts it for a serialization failure.
// fn must be idempotent with respect to reads it performs through the
// context it is handed, since it may run more than once.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= maxSerializableRetries; attempt++ {
		err = m.run(ctx, sql.LevelSerializable, false, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (m *TransactionManager) run(ctx context.Context, level sql.IsolationLevel, readOnly bool, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: level, ReadOnly: readOnly})
	if err != nil {
		return err
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == serializationFailure
}
