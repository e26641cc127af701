// Package simpletxmanager is the unwrapped counterpart to
// pkg/txmanager: it runs callbacks directly against *sql.DB when
// metrics collection is disabled, so cmd/bookingengine/main.go doesn't
// have to wrap the pool just to get a TransactionManager.
package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/tutorly/booking-engine/pkg/dbmetrics"
)

const serializationFailure = "40001"
const maxSerializableRetries = 3

// TransactionManager runs callbacks against a raw *sql.DB.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager builds a TransactionManager over db.
func NewTransactionManager(db *sql.DB) *TransactionManager {
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

// DoSerializable runs fn inside a SERIALIZABLE transaction, retrying on
// serialization failure like pkg/txmanager.
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
