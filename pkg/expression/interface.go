/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

// Query constraint which renders to SQL.
//
// Ref. to filter.go, order.go and pagination.go for implementations
type IExpression interface {
	// Renders SQL fragment. Returns empty string for inactive expression
	SQL(d Dialect) (string, error)

	// Configures expression from raw data. Unknown keys are rejected
	SetData(data map[string]any) error

	// Returns is expression active
	Active() bool
}
