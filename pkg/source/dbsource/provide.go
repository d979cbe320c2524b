/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voedger/charcoal/pkg/source"
)

// Returns relational database source
func New(params Params) *DbSource {
	if params.Dialect.Name == "" {
		params.Dialect = defaultDialect
	}
	return &DbSource{
		Source: source.MakeSource(params.Logger),
		d:      params.Dialect,
		exec:   params.Executor,
	}
}

// Returns factory of sources sharing params, e.g. for source.Collections
func NewFactory(params Params) func() source.ISource {
	return func() source.ISource { return New(params) }
}

// Returns executor over database/sql connection pool
func NewSQLExecutor(db *sql.DB) IExecutor {
	return &sqlExecutor{db: db}
}

// Returns executor over pgx connection pool
func NewPgxExecutor(pool *pgxpool.Pool) IExecutor {
	return &pgxExecutor{pool: pool}
}

// Connects to Postgres. Returned cleanup closes connection pool
func OpenPgx(ctx context.Context, dsn string) (IExecutor, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return NewPgxExecutor(pool), pool.Close, nil
}
