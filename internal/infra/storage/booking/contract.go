package booking

import (
	"context"
	"database/sql"

	"github.com/tutorly/booking-engine/pkg/dbmetrics"
)

// DBExecutor and TxExecutor are reused from pkg/dbmetrics so the
// repository runs against either the bare pool or whatever
// transaction pkg/txmanager has stashed in ctx.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner is satisfied by *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
