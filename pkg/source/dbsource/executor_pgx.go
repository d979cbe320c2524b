/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres has no last insert id, inserts use RETURNING clause instead
//
// # Implements:
//   - IExecutor
type pgxExecutor struct {
	pool *pgxpool.Pool
}

func (e *pgxExecutor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	tag, err := e.pool.Exec(ctx, query, args...)
	if err != nil {
		return Result{}, err
	}
	return Result{RowsAffected: tag.RowsAffected()}, nil
}

func (e *pgxExecutor) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := e.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	res, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	for _, row := range res {
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
	}
	return res, nil
}
