package user

import (
	"context"
	"database/sql"

	"github.com/tutorly/booking-engine/pkg/dbmetrics"
)

// DBExecutor and TxExecutor are reused from pkg/dbmetrics so the
// repository can run either against the pool directly or against
// whatever transaction is active in ctx.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
