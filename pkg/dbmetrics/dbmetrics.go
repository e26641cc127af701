// Package dbmetrics wraps *sql.DB with Prometheus instrumentation and
// supplies the thin executor abstraction repositories and transaction
// managers share: a query can run either directly against the pool or
// against whatever *sql.Tx is stashed in the context by a transaction
// manager, without the repository caring which.
package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/tutorly/booking-engine/pkg/metrics"
)

// DBExecutor is satisfied by both *sql.DB and *sql.Tx (and by *DB
// below), letting repositories issue queries without knowing whether
// they are inside a transaction.
type DBExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxExecutor is a DBExecutor that can also be committed or rolled back.
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txKey struct{}

// WithTx returns a context carrying tx as the active transaction. Any
// DBExecutor obtained from that context via GetExecutor uses tx instead
// of the pool.
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// IsInTransaction reports whether ctx carries an active transaction.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(TxExecutor)
	return ok
}

// GetExecutor returns the transaction stashed in ctx, if any, otherwise
// falls back to fallback (usually the wrapped pool).
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// DB wraps *sql.DB, recording query/exec duration and pool stats on the
// metrics collector passed to WrapWithDefault.
type DB struct {
	*sql.DB
	metrics     *metrics.Metrics
	serviceName string
}

// QueryRowContext instruments sql.DB.QueryRowContext.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.DB.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start)
	return row
}

// QueryContext instruments sql.DB.QueryContext.
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	d.observe("query", start)
	return rows, err
}

// ExecContext instruments sql.DB.ExecContext.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.DB.ExecContext(ctx, query, args...)
	d.observe("exec", start)
	return res, err
}

// BeginTx begins a transaction and returns it as a TxExecutor.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (d *DB) observe(op string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.ObserveDBQuery(d.serviceName, op, time.Since(start))
}

// WrapWithDefault wraps db with metrics collection and starts a
// background goroutine publishing connection-pool gauges (open,
// in-use, idle connections) every 5 seconds until stopCh is closed.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{DB: db, metrics: m, serviceName: serviceName}

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.SetDBPoolStats(serviceName, stats.OpenConnections, stats.InUse, stats.Idle)
			case <-stopCh:
				return
			}
		}
	}()

	return wrapped
}
