/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import (
	"context"
	"database/sql"
)

// # Implements:
//   - IExecutor
type sqlExecutor struct {
	db *sql.DB
}

func (e *sqlExecutor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, err
	}
	r := Result{}
	if r.RowsAffected, err = res.RowsAffected(); err != nil {
		return r, err
	}
	// drivers without last insert id support report error, it is not a failure of statement
	r.LastInsertId, _ = res.LastInsertId()
	return r, nil
}

func (e *sqlExecutor) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	res := []map[string]any{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		res = append(res, rowMap(cols, vals))
	}
	return res, rows.Err()
}

func rowMap(cols []string, vals []any) map[string]any {
	row := make(map[string]any, len(cols))
	for i, c := range cols {
		if b, ok := vals[i].([]byte); ok {
			row[c] = string(b)
			continue
		}
		row[c] = vals[i]
	}
	return row
}
