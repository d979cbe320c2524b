/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import (
	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/ilog"
)

type Params struct {
	Dialect  expression.Dialect
	Executor IExecutor
	Logger   ilog.ILogger
}

// Result of executed statement
type Result struct {
	RowsAffected int64

	// Identifier generated by insert, zero if not supported by driver
	LastInsertId int64
}

// Table column as reported by database
type Column struct {
	Name     string
	Type     string
	Nullable bool
}
