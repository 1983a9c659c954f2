package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle. Repositories accept nil (pool
// path) or an infra-defined handle (e.g. pgx.Tx) and must handle both.
type Tx interface{}

// TransactionManager runs fn inside a database transaction, passing the
// transaction handle via tx. Keeps use-case interfaces free of storage
// types; the concrete handle type is infra-defined.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
