/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import "context"

// Statements executor of database connection.
//
// Ref. to executor_sql.go and executor_pgx.go for implementations
type IExecutor interface {
	// Executes statement which returns no rows
	Exec(ctx context.Context, query string, args ...any) (Result, error)

	// Executes query and returns rows keyed by column name.
	// Byte slices are returned as strings
	Query(ctx context.Context, query string, args ...any) ([]map[string]any, error)
}
